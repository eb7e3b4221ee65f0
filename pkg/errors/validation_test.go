package errors

import (
	"strings"
	"testing"
)

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "root", false},
		{"valid with dash", "node-12", false},
		{"valid unicode", "überblick", false},
		{"valid with spaces", "my node", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidNodeID) {
				t.Errorf("ValidateNodeID(%q) code = %v, want %v", tt.input, CodeOf(err), ErrCodeInvalidNodeID)
			}
		})
	}
}

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "Project plan", false},
		{"blank", "   ", true},
		{"empty", "", true},
		{"multi line", "a\nb", true},
		{"too long", strings.Repeat("x", MaxLabelLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSummary(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty clears", "", false},
		{"multi line", "line one\nline two", false},
		{"invalid utf8", "\xff\xfe", true},
		{"too long", strings.Repeat("x", MaxSummaryLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSummary(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSummary() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateExportName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"default", "mindmap.json", false},
		{"upper ext", "Plan.JSON", false},

		{"empty", "", true},
		{"with path /", "out/mindmap.json", true},
		{"with path \\", "out\\mindmap.json", true},
		{"quote", "a\".json", true},
		{"hidden file", ".mindmap.json", true},
		{"wrong ext", "mindmap.yaml", true},
		{"control char", "mind\x01map.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExportName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateExportName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
