// Package id generates and validates the opaque identifiers used for
// every entity. Identifiers are lowercase UUIDv4 strings.
package id

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// New returns a fresh identifier.
func New() string {
	return uuid.NewString()
}

// IsValid checks if a string is a valid identifier
func IsValid(s string) bool {
	return uuidPattern.MatchString(strings.ToLower(s))
}

// Allocator issues identifiers that are guaranteed unique within one
// allocator's lifetime. An import batch uses a single allocator so two
// rows can never be handed the same fresh identifier, regardless of the
// randomness underneath.
type Allocator struct {
	issued map[string]bool
}

// NewAllocator creates an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{issued: make(map[string]bool)}
}

// Next returns a fresh identifier not previously issued by this allocator.
func (a *Allocator) Next() string {
	for {
		candidate := uuid.NewString()
		if !a.issued[candidate] {
			a.issued[candidate] = true
			return candidate
		}
	}
}

// Reserve marks an identifier as taken so Next never returns it.
// Reserving an already-issued identifier reports false.
func (a *Allocator) Reserve(id string) bool {
	if a.issued[id] {
		return false
	}
	a.issued[id] = true
	return true
}
