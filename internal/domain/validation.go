package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// colorRegex validates lowercase or uppercase #rrggbb color values
var colorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateColor validates a label color. An empty color is allowed.
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if !colorRegex.MatchString(color) {
		return fmt.Errorf("invalid color: must be #rrggbb format (e.g., #ff8800)")
	}
	return nil
}

// ValidateProjectName validates a project name
func ValidateProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("invalid project name: must not be empty")
	}
	return nil
}

// ValidateSectionName validates a section name
func ValidateSectionName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("invalid section name: must not be empty")
	}
	return nil
}

// ValidateTaskContent validates task content
func ValidateTaskContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("invalid task content: must not be empty")
	}
	return nil
}

// ValidateResourceType validates an event resource type
func ValidateResourceType(resourceType string) error {
	switch resourceType {
	case "project", "section", "task", "label", "comment", "attachment", "setting", "snapshot":
		return nil
	default:
		return fmt.Errorf("invalid resource type: must be one of: project, section, task, label, comment, attachment, setting, snapshot")
	}
}
