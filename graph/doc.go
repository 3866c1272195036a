// Package graph is the blueprint store: an arena of nodes, ports, edges,
// subgraph frames and comments keyed by opaque string IDs.
//
// What:
//
//   - Node owns an ordered list of Ports; both are destroyed together.
//   - Edge references two ports by ID (weak relation, no ownership).
//   - SubGraphFrame records which nodes a boundary node stands in for.
//   - *Direct primitives insert pre-built entities verbatim — the restore
//     path for undo and persistence; Connect/Disconnect carry the
//     interactive displacement semantics for Single-capacity ports.
//
// Why:
//
//   - Arena-style ID maps mean structural removal can never dangle a
//     pointer: stale lookups return nil and callers treat that as a no-op.
//   - Deterministic sorted accessors keep command replay, boundary-port
//     inference and persistence output stable across runs.
//   - Clone/Equal give commands and tests cheap exact-inverse checks.
//
// Concurrency:
//
//   - A Graph is owned by a single editing session. All mutation is
//     synchronous on the caller's thread; no locking is provided or needed.
//
// Errors:
//
//   - ErrNilEntity, ErrEmptyID, ErrDuplicateID: programmer errors, fail fast.
//   - ErrNodeNotFound / ErrPortNotFound / ErrEdgeNotFound / ErrFrameNotFound /
//     ErrCommentNotFound: stale references; callers usually no-op on these.
//   - ErrDanglingEdge: an edge naming a missing port was rejected.
package graph
