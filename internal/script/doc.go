// Package script replays recorded host event sequences against an editor
// rendered on an in-memory host.
//
// A script is a YAML document naming the initial content, the initial
// selection, a list of events and optional expectations:
//
//	blocks:
//	  - key: a
//	    text: Hel
//	selection:
//	  anchor: {key: a, offset: 3}
//	events:
//	  - kind: compositionstart
//	  - kind: compositionupdate
//	    text: Hello
//	  - kind: compositionend
//	    text: Hello
//	expect:
//	  blocks: [Hello]
//	  mode: edit
//
// Positions are given in model coordinates and translated to host nodes,
// unless a point names a host node directly.
package script
