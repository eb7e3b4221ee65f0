// Package io reads and writes mindmap documents.
//
// # Overview
//
// A mindmap document is a single nested node object:
//
//	{
//	  "id": "root",
//	  "label": "Project",
//	  "shortSummary": "One line shown on hover",
//	  "longSummary": "Longer text shown in the side panel",
//	  "children": [
//	    {"id": "a", "label": "First"},
//	    {"id": "b", "label": "Second", "children": [ ... ]}
//	  ]
//	}
//
// id and label are required on every node; the summaries and children are
// optional. The same shape is also accepted as YAML.
//
// # Import
//
// Use [ImportFile] to read a document from a path (the codec is chosen by
// extension), or [ReadJSON] / [ReadYAML] to read from any io.Reader. [LoadFile]
// additionally builds the [mindmap.Tree]:
//
//	t, err := io.LoadFile("data/mindmap.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Decoding only checks syntax. Schema checks (required fields, unique ids)
// happen in [mindmap.Load].
//
// # Export
//
// Use [ExportFile] to write a document to a path, or [WriteJSON] / [WriteYAML]
// to write to any io.Writer. JSON output is pretty-printed with two-space
// indentation, matching what the web front end offers for download as
// [DefaultExportName]. Collapse state is never written.
//
// # Concurrency
//
// The functions in this package hold no state and may be called concurrently
// on distinct documents.
package io
