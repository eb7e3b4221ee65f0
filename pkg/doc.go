// Package pkg holds the libraries behind the mindmap command.
//
// # Overview
//
// A mindmap is a single nested JSON (or YAML) document of nodes, each with an
// id, a label and optional short and long summaries. The libraries load it
// into a tree whose nodes can be expanded and collapsed, annotated, pruned,
// rendered and exported again:
//
//	document (.json / .yaml)
//	         ↓
//	    [io] package (decode, encode, watch)
//	         ↓
//	    [mindmap] package (tree state: toggle, expand, collapse, edit, delete)
//	         ↓
//	    [session] package (selection and one method per user event)
//	         ↓
//	    [render/nodelink] package (Graphviz DOT and SVG)
//
// Supporting packages:
//
//   - [cache]: render cache (memory, file, null)
//   - [config]: TOML file, .env and environment settings
//   - [errors]: error codes shared by the CLI and the HTTP API
//   - [httputil]: JSON and problem+json responses
//   - [observability]: hooks for load, mutation, cache and HTTP events
//   - [buildinfo]: version stamped at link time
//
// # Quick Start
//
//	doc, err := io.ImportFile("project.json")
//	if err != nil {
//	    return err
//	}
//	sess, err := session.Open(doc, "project.json")
//	if err != nil {
//	    return err
//	}
//	sess.Activate("backend")       // expand and select
//	sess.EditSummary("backend", "Go services behind the API gateway")
//	dot := nodelink.ToDOT(sess.Render(), nodelink.Options{Palette: render.Light})
//
// [io]: github.com/matzehuels/mindmap/pkg/io
// [mindmap]: github.com/matzehuels/mindmap/pkg/mindmap
// [session]: github.com/matzehuels/mindmap/pkg/session
// [render/nodelink]: github.com/matzehuels/mindmap/pkg/render/nodelink
// [cache]: github.com/matzehuels/mindmap/pkg/cache
// [config]: github.com/matzehuels/mindmap/pkg/config
// [errors]: github.com/matzehuels/mindmap/pkg/errors
// [httputil]: github.com/matzehuels/mindmap/pkg/httputil
// [observability]: github.com/matzehuels/mindmap/pkg/observability
// [buildinfo]: github.com/matzehuels/mindmap/pkg/buildinfo
package pkg
