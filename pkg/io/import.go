package io

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/mindmap/pkg/mindmap"
)

// Supported document formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnsupportedFormat is returned when a path's extension does not name a
// supported document format.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ErrEmptyDocument is returned when the input decodes to nothing (an empty
// YAML stream or a JSON null).
var ErrEmptyDocument = errors.New("empty document")

// FormatFromPath returns the document format implied by the file extension:
// ".json" for JSON, ".yaml" or ".yml" for YAML.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadJSON decodes a JSON document from r.
//
// Unknown fields are ignored. ReadJSON returns [ErrEmptyDocument] for a JSON
// null and wraps syntax errors with "decode". It does not close r.
func ReadJSON(r io.Reader) (*mindmap.Document, error) {
	var doc *mindmap.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if doc == nil {
		return nil, ErrEmptyDocument
	}
	return doc, nil
}

// ReadYAML decodes a YAML document from r. It does not close r.
func ReadYAML(r io.Reader) (*mindmap.Document, error) {
	var doc mindmap.Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &doc, nil
}

// Read decodes a document in the given format from r.
func Read(r io.Reader, format string) (*mindmap.Document, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ImportFile reads the document at path, choosing the codec from the file
// extension. Errors are wrapped with the path for context.
func ImportFile(path string) (*mindmap.Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// LoadFile imports the document at path and builds its tree.
// Schema violations surface as [*mindmap.MalformedDocumentError].
func LoadFile(path string) (*mindmap.Tree, error) {
	doc, err := ImportFile(path)
	if err != nil {
		return nil, err
	}
	t, err := mindmap.Load(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
