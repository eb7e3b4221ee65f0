package session

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/matzehuels/mindmap/pkg/mindmap"
)

const genRootID = "\x00root"

// flatDocGen draws a root with children whose ids are arbitrary strings,
// including control characters and ids longer than any request limit.
func flatDocGen() *rapid.Generator[*mindmap.Document] {
	return rapid.Custom(func(t *rapid.T) *mindmap.Document {
		id := rapid.StringN(1, 400, -1).Filter(func(s string) bool { return s != genRootID })
		ids := rapid.SliceOfNDistinct(id, 1, 8, rapid.ID[string]).Draw(t, "ids")
		doc := &mindmap.Document{ID: genRootID, Label: "Root"}
		for _, id := range ids {
			doc.Children = append(doc.Children, &mindmap.Document{ID: id, Label: "node"})
		}
		return doc
	})
}

func TestPropertyEveryLoadedIDIsAddressable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		doc := flatDocGen().Draw(t, "doc")
		sess, err := Open(doc, "gen.json")
		if err != nil {
			t.Fatalf("Open() error: %v", err)
		}
		for _, c := range doc.Children {
			if err := sess.Toggle(c.ID); err != nil {
				t.Fatalf("Toggle(%q) error: %v", c.ID, err)
			}
			if err := sess.Select(c.ID); err != nil {
				t.Fatalf("Select(%q) error: %v", c.ID, err)
			}
			if err := sess.EditSummary(c.ID, c.ID); err != nil {
				t.Fatalf("EditSummary(%q) error: %v", c.ID, err)
			}
		}
		for _, c := range doc.Children {
			if err := sess.Delete(c.ID); err != nil {
				t.Fatalf("Delete(%q) error: %v", c.ID, err)
			}
		}
		if n := sess.Tree().Len(); n != 1 {
			t.Fatalf("Len() = %d after deleting every child, want 1", n)
		}
	})
}
