package domain

import (
	"testing"
)

func TestProject_GetAttributes(t *testing.T) {
	tests := []struct {
		name       string
		attributes *string
		wantKeys   int
		wantErr    bool
	}{
		{
			name:       "nil attributes",
			attributes: nil,
			wantKeys:   0,
		},
		{
			name:       "empty string",
			attributes: stringPtr(""),
			wantKeys:   0,
		},
		{
			name:       "empty object",
			attributes: stringPtr(`{}`),
			wantKeys:   0,
		},
		{
			name:       "populated object",
			attributes: stringPtr(`{"color":"#ff8800","favorite":true}`),
			wantKeys:   2,
		},
		{
			name:       "invalid JSON",
			attributes: stringPtr(`not-json`),
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Project{ID: "p1", Name: "Home", Attributes: tt.attributes}
			got, err := p.GetAttributes()
			if tt.wantErr {
				if err == nil {
					t.Error("GetAttributes() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("GetAttributes() unexpected error: %v", err)
			}
			if len(got) != tt.wantKeys {
				t.Errorf("GetAttributes() = %v, want %d keys", got, tt.wantKeys)
			}
		})
	}
}

func TestProject_SetAttributes(t *testing.T) {
	p := &Project{ID: "p1", Name: "Home"}

	if err := p.SetAttributes(map[string]interface{}{"color": "#ff8800"}); err != nil {
		t.Fatalf("SetAttributes() failed: %v", err)
	}
	if p.Attributes == nil {
		t.Fatal("expected attributes to be set")
	}

	got, err := p.GetAttributes()
	if err != nil {
		t.Fatalf("GetAttributes() failed: %v", err)
	}
	if got["color"] != "#ff8800" {
		t.Errorf("round-trip lost color: %v", got)
	}
}

func TestProject_SetAttributesNil(t *testing.T) {
	p := &Project{ID: "p1", Name: "Home"}
	if err := p.SetAttributes(nil); err != nil {
		t.Fatalf("SetAttributes(nil) failed: %v", err)
	}
	if p.Attributes == nil || *p.Attributes != "{}" {
		t.Errorf("expected empty object, got %v", p.Attributes)
	}
}

func stringPtr(s string) *string {
	return &s
}
