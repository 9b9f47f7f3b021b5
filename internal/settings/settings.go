// Package settings is the single gate for user-configuration writes.
// Every (key, value) pair is checked against a declarative schema before
// it reaches storage, whether it arrives from the CLI or from inside an
// imported snapshot document.
package settings

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Sentinel errors for the two failure cases. Callers match with errors.Is;
// the message text distinguishes an unrecognized key from a bad value.
var (
	ErrInvalidKey   = errors.New("invalid setting key")
	ErrInvalidValue = errors.New("invalid value")
)

type kind int

const (
	kindBoolean kind = iota
	kindInteger
	kindEnum
)

// rule is one key's value contract. Integer rules are inclusive ranges;
// enum rules list every allowed literal.
type rule struct {
	kind    kind
	min     int
	max     int
	allowed []string
}

// schema is the full set of recognized setting keys. Adding a setting is
// a one-line edit here.
var schema = map[string]rule{
	"theme":                {kind: kindEnum, allowed: []string{"light", "dark", "system"}},
	"timeFormat":           {kind: kindEnum, allowed: []string{"12h", "24h"}},
	"dateFormat":           {kind: kindEnum, allowed: []string{"mdy", "dmy", "ymd"}},
	"weekStart":            {kind: kindEnum, allowed: []string{"monday", "sunday", "saturday"}},
	"dayStartHour":         {kind: kindInteger, min: 0, max: 23},
	"dailyGoal":            {kind: kindInteger, min: 1, max: 100},
	"showCompleted":        {kind: kindBoolean},
	"confirmDelete":        {kind: kindBoolean},
	"desktopNotifications": {kind: kindBoolean},
}

// Validate checks a single (key, value) pair against the schema and
// returns the normalized pair. The key must match a recognized key
// exactly; the value is trimmed of surrounding whitespace before the
// kind check and is returned in trimmed form. Failures wrap
// ErrInvalidKey or ErrInvalidValue.
func Validate(key, rawValue string) (string, string, error) {
	r, ok := schema[key]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	value := strings.TrimSpace(rawValue)

	switch r.kind {
	case kindBoolean:
		// Exactly true/false. ParseBool would also admit 1/0/TRUE.
		if value != "true" && value != "false" {
			return "", "", fmt.Errorf("%w for %s: must be true or false, got %q", ErrInvalidValue, key, value)
		}
	case kindInteger:
		n, err := strconv.Atoi(value)
		if err != nil {
			return "", "", fmt.Errorf("%w for %s: not an integer: %q", ErrInvalidValue, key, value)
		}
		if n < r.min || n > r.max {
			return "", "", fmt.Errorf("%w for %s: %d is outside range %d-%d", ErrInvalidValue, key, n, r.min, r.max)
		}
	case kindEnum:
		found := false
		for _, a := range r.allowed {
			if value == a {
				found = true
				break
			}
		}
		if !found {
			return "", "", fmt.Errorf("%w for %s: must be one of: %s", ErrInvalidValue, key, strings.Join(r.allowed, ", "))
		}
	}

	return key, value, nil
}

// Keys returns every recognized setting key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(schema))
	for k := range schema {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Describe returns a human-readable summary of a key's constraint, or
// false if the key is not recognized.
func Describe(key string) (string, bool) {
	r, ok := schema[key]
	if !ok {
		return "", false
	}
	switch r.kind {
	case kindBoolean:
		return "true or false", true
	case kindInteger:
		return fmt.Sprintf("integer %d-%d", r.min, r.max), true
	default:
		return "one of: " + strings.Join(r.allowed, ", "), true
	}
}
