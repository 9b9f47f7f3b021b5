package domain

import (
	"testing"
)

func TestValidateColor(t *testing.T) {
	tests := []struct {
		name    string
		color   string
		wantErr bool
	}{
		{"empty allowed", "", false},
		{"lowercase hex", "#ff8800", false},
		{"uppercase hex", "#FF8800", false},
		{"missing hash", "ff8800", true},
		{"too short", "#fff", true},
		{"too long", "#ff880000", true},
		{"non-hex chars", "#gg8800", true},
		{"named color", "orange", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColor(tt.color)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.color, err, tt.wantErr)
			}
		})
	}
}

func TestValidateProjectName(t *testing.T) {
	if err := ValidateProjectName("Home"); err != nil {
		t.Errorf("expected valid name, got: %v", err)
	}
	if err := ValidateProjectName(""); err == nil {
		t.Error("expected error for empty name")
	}
	if err := ValidateProjectName("   "); err == nil {
		t.Error("expected error for whitespace-only name")
	}
}

func TestValidateTaskContent(t *testing.T) {
	if err := ValidateTaskContent("buy milk"); err != nil {
		t.Errorf("expected valid content, got: %v", err)
	}
	if err := ValidateTaskContent(""); err == nil {
		t.Error("expected error for empty content")
	}
}

func TestValidateResourceType(t *testing.T) {
	for _, rt := range []string{"project", "section", "task", "label", "comment", "attachment", "setting", "snapshot"} {
		if err := ValidateResourceType(rt); err != nil {
			t.Errorf("ValidateResourceType(%q) unexpected error: %v", rt, err)
		}
	}
	if err := ValidateResourceType("bogus"); err == nil {
		t.Error("expected error for unknown resource type")
	}
}
