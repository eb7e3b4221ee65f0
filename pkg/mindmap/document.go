package mindmap

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Document is the canonical serializable form of a mindmap node and, through
// Children, of the whole hierarchy below it.
//
// The same shape is accepted by [Load] and produced by [Tree.Serialize]:
//
//	{
//	  "id": "root",
//	  "label": "Root",
//	  "shortSummary": "optional",
//	  "longSummary": "optional",
//	  "children": [ ... ]
//	}
//
// An absent or empty children list marks a leaf. Empty and absent summaries
// are the same: encoders omit empty ones, so an explicit "shortSummary": ""
// comes back without the key.
type Document struct {
	ID           string      `json:"id" yaml:"id"`
	Label        string      `json:"label" yaml:"label"`
	ShortSummary string      `json:"shortSummary,omitempty" yaml:"shortSummary,omitempty"`
	LongSummary  string      `json:"longSummary,omitempty" yaml:"longSummary,omitempty"`
	Children     []*Document `json:"children,omitempty" yaml:"children,omitempty"`
}

// Validate checks the fields of this node only; children are not visited.
// ID and Label must be non-empty.
func (d Document) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.ID, validation.Required),
		validation.Field(&d.Label, validation.Required),
	)
}

// Count returns the number of nodes in the document, including d itself.
// A nil document has zero nodes.
func (d *Document) Count() int {
	if d == nil {
		return 0
	}
	n := 1
	for _, c := range d.Children {
		n += c.Count()
	}
	return n
}

// Equal reports whether a and b describe the same hierarchy. A nil children
// list and an empty one are treated as equal.
func Equal(a, b *Document) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.ID != b.ID || a.Label != b.Label ||
		a.ShortSummary != b.ShortSummary || a.LongSummary != b.LongSummary {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// MalformedDocumentError is returned by [Load] when the document violates the
// node schema: a missing node, an empty id or label, or a duplicate id.
type MalformedDocumentError struct {
	Path   string // Location of the offending node, e.g. "$.children[2]"
	Reason string // What is wrong with it
}

// Error implements the error interface.
func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed document at %s: %s", e.Path, e.Reason)
}

func childPath(parent string, i int) string {
	return fmt.Sprintf("%s.children[%d]", parent, i)
}
