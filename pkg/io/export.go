package io

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/mindmap/pkg/mindmap"
)

// DefaultExportName is the file name offered for downloads and used by the
// CLI when no output path is given.
const DefaultExportName = "mindmap.json"

// WriteJSON encodes doc as pretty-printed JSON (two-space indent) and writes
// it to w. The output can be re-imported with [ReadJSON].
func WriteJSON(doc *mindmap.Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes doc as YAML and writes it to w.
func WriteYAML(doc *mindmap.Document, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// Write encodes doc in the given format.
func Write(doc *mindmap.Document, w io.Writer, format string) error {
	switch format {
	case FormatJSON:
		return WriteJSON(doc, w)
	case FormatYAML:
		return WriteYAML(doc, w)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ExportFile writes doc to path, choosing the codec from the file extension.
func ExportFile(doc *mindmap.Document, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(doc, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
