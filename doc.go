// Package vellum is the transactional core of a visual node-graph editor:
// an in-memory blueprint graph plus a command engine whose every mutation
// is exactly invertible.
//
// 🚀 What is vellum?
//
//	A pure-Go library that brings together:
//		• Graph store: nodes, ports, edges, subgraph frames & comments
//		• Commands: Execute/Undo pairs, compound transactions, merge-on-push
//		• Subgraph encapsulation: boundary-port inference & edge rewiring,
//		  fully reversible in both directions (Group / Ungroup)
//		• Persistence collaborators: YAML documents and a SQLite repository
//
// ✨ Why choose vellum?
//
//   - Exact inverses – every structural command snapshots enough state to
//     restore the graph byte-for-byte, stable IDs included
//   - Deterministic – sorted accessors, seedable ID generators
//   - Pure Go – no cgo, embeddable in any editor shell
//
// Everything is organized under four subpackages:
//
//	graph/      — Node, Port, Edge, SubGraphFrame types & mutation primitives
//	command/    — Command, History, Compound & the encapsulation algorithm
//	codec/      — YAML blueprint document import/export
//	repository/ — SQLite-backed durable store
//
// Quick ASCII example:
//
//	    A.o ──▶ B.i            group {A}             A.o ─▶ R.complete ─▶ B.i
//	    A.o ──▶ C.i2       ───────────────▶          R.complete ─▶ C.i2
//
//	two cross-boundary edges of one shape merge into a single boundary port.
//
//	go get github.com/harwick/vellum
package vellum
