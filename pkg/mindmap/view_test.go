package mindmap

import (
	"slices"
	"testing"
)

func TestRenderNodes(t *testing.T) {
	tree := mustLoad(t, sample())
	tree.Toggle("a")

	nodes := slices.Collect(tree.Render().Nodes())
	want := []VisibleNode{
		{ID: "r", Label: "Root", ShortSummary: "root short", Depth: 0, Order: 0},
		{ID: "a", Label: "A", Depth: 1, Order: 1},
		{ID: "b", Label: "B", LongSummary: "bee", Depth: 2, Order: 2, Leaf: true},
		{ID: "c", Label: "C", Depth: 2, Order: 3, Collapsed: true},
		{ID: "e", Label: "E", Depth: 1, Order: 4, Leaf: true},
		{ID: "f", Label: "F", Depth: 1, Order: 5, Leaf: true},
	}
	if !slices.Equal(nodes, want) {
		t.Errorf("Nodes() =\n%+v\nwant\n%+v", nodes, want)
	}
}

func TestRenderEdges(t *testing.T) {
	tree := mustLoad(t, sample())
	tree.Toggle("a")

	edges := slices.Collect(tree.Render().Edges())
	want := []Edge{
		{From: "r", To: "a"},
		{From: "a", To: "b"},
		{From: "a", To: "c"},
		{From: "r", To: "e"},
		{From: "r", To: "f"},
	}
	if !slices.Equal(edges, want) {
		t.Errorf("Edges() = %v, want %v", edges, want)
	}
}

func TestRenderEdgesMatchNodes(t *testing.T) {
	tree := mustLoad(t, sample())
	tree.ExpandAll("r")

	v := tree.Render()
	visible := map[string]bool{}
	for n := range v.Nodes() {
		visible[n.ID] = true
	}
	count := 0
	for e := range v.Edges() {
		count++
		if !visible[e.From] || !visible[e.To] {
			t.Errorf("edge %v references a node that is not visible", e)
		}
	}
	if count != v.Len()-1 {
		t.Errorf("edge count = %d, want %d", count, v.Len()-1)
	}
}

func TestRenderRestartable(t *testing.T) {
	tree := mustLoad(t, sample())
	v := tree.Render()

	first := slices.Collect(v.Nodes())
	second := slices.Collect(v.Nodes())
	if !slices.Equal(first, second) {
		t.Error("ranging twice over the same view should yield the same nodes")
	}

	tree.Toggle("a")
	if got := v.Len(); got != 6 {
		t.Errorf("Len() after toggle = %d, want 6 (view reads live state)", got)
	}
}

func TestRenderEarlyBreak(t *testing.T) {
	tree := mustLoad(t, sample())
	tree.ExpandAll("r")

	var seen []string
	for n := range tree.Render().Nodes() {
		seen = append(seen, n.ID)
		if n.ID == "b" {
			break
		}
	}
	if !slices.Equal(seen, []string{"r", "a", "b"}) {
		t.Errorf("seen = %v, want [r a b]", seen)
	}

	edges := 0
	for range tree.Render().Edges() {
		edges++
		if edges == 2 {
			break
		}
	}
	if edges != 2 {
		t.Errorf("edges = %d, want 2", edges)
	}
}

func TestRenderExcludesDeleted(t *testing.T) {
	tree := mustLoad(t, sample())
	tree.ExpandAll("r")
	if err := tree.Delete("a"); err != nil {
		t.Fatalf("Delete(a) error: %v", err)
	}
	for n := range tree.Render().Nodes() {
		switch n.ID {
		case "a", "b", "c", "d":
			t.Errorf("deleted node %s still rendered", n.ID)
		}
	}
	for e := range tree.Render().Edges() {
		if e.From == "a" || e.To == "a" {
			t.Errorf("edge %v touches deleted node", e)
		}
	}
}
