package errors

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Limits applied to values arriving over HTTP. Loaded documents and the
// terminal browser are not limited.
const (
	MaxNodeIDLength  = 256
	MaxLabelLength   = 512
	MaxSummaryLength = 64 * 1024
)

// ValidateNodeID validates a node identifier taken from a request path that
// did not match any loaded node, so a bad request gets a 400 instead of a 404.
//
// It rejects:
//   - empty IDs
//   - control characters or null bytes
//   - more than MaxNodeIDLength bytes
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "node id cannot be empty")
	}
	if len(id) > MaxNodeIDLength {
		return New(ErrCodeInvalidNodeID, "node id too long (max %d characters)", MaxNodeIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNodeID, "node id contains invalid control characters")
		}
	}
	return nil
}

// ValidateLabel validates a replacement label. Labels must be non-blank
// single-line text.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return New(ErrCodeInvalidInput, "label cannot be empty")
	}
	if utf8.RuneCountInString(label) > MaxLabelLength {
		return New(ErrCodeInvalidInput, "label too long (max %d characters)", MaxLabelLength)
	}
	if strings.ContainsAny(label, "\r\n") {
		return New(ErrCodeInvalidInput, "label must be a single line")
	}
	return nil
}

// ValidateSummary validates replacement summary text. Empty text is allowed:
// it clears the summary.
func ValidateSummary(text string) error {
	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidInput, "summary is not valid UTF-8")
	}
	if utf8.RuneCountInString(text) > MaxSummaryLength {
		return New(ErrCodeInvalidInput, "summary too long (max %d characters)", MaxSummaryLength)
	}
	return nil
}

// ValidateExportName validates the file name offered for downloads.
// It must be a simple, visible basename with a .json extension.
func ValidateExportName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "export file name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\\"") {
		return New(ErrCodeInvalidPath, "export file name cannot contain path separators or quotes")
	}
	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidPath, "export file name cannot be a hidden file")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "export file name contains invalid characters")
		}
	}
	if !strings.EqualFold(filepath.Ext(name), ".json") {
		return New(ErrCodeInvalidPath, "export file name must end in .json")
	}
	return nil
}
