// Package io reads dialogues and writes variation sets.
//
// # Input
//
// A dialogue file holds an optional post and a list of labeled comments.
// JSON and TOML files share the same shape:
//
//	{
//	  "post": "Check out this fantastic opportunity!",
//	  "comments": [
//	    {"id": 1, "role": "responder", "text": "Is this real?"},
//	    {"id": 2, "role": "poster", "text": "Yes, totally free."}
//	  ]
//	}
//
//	post = "Check out this fantastic opportunity!"
//
//	[[comments]]
//	role = "responder"
//	text = "Is this real?"
//
// Roles are "poster" or "responder" (the aliases accepted by
// [variation.ParseRole] also work). Comments without an id are numbered 1..n
// in file order. Use [Import] to read a file by extension, or [ReadJSON] and
// [ReadTOML] to read from any io.Reader.
//
// # Output
//
// [Write] renders a [Set] in one of four formats:
//
//   - text: numbered variations with "Original Poster" / "Responder" labels
//   - json: the set as indented JSON, re-readable with [ReadSet]
//   - markdown: one section per variation, texts quoted
//   - html: the markdown rendering converted by goldmark into a standalone page
//
// [variation.ParseRole]: github.com/matzehuels/textvary/pkg/variation.ParseRole
package io
