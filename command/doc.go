// Package command implements the transactional mutation engine over a
// graph store: invertible commands, a bounded undo/redo history with
// merge-on-push and nested transactions, and the subgraph encapsulation
// algorithm (Group / Ungroup / CreateSubGraph).
//
// What:
//
//   - Command: one Execute/Undo pair; destructive commands snapshot full
//     prior state (IDs included) so Undo restores the graph byte-for-byte.
//   - History: linear undo/redo stacks, MaxHistorySize trimming, optional
//     merge of the incoming command into the stack top (Merger), and
//     depth-counted transactions committing one atomic Compound entry.
//   - Group: infers boundary ports from cross-boundary edges — merging all
//     edges of one (direction, kind, data type) shape into one shared
//     port — and rewires each edge through a new representative node.
//   - Ungroup: the exact mirror; reconnects straight through via the
//     cross-product of each boundary port's fan-in and fan-out.
//   - CreateSubGraph: instantiates external content and groups it; the
//     only command whose Redo re-mints IDs (the instantiator owns them).
//
// Why:
//
//   - Plan-then-apply: id-minting commands compute their whole mutation on
//     first Execute and replay the recorded plan on Redo, so Redo
//     reproduces identical IDs and can never half-apply.
//   - Missing references are silent no-ops, not errors: in an undo system,
//     stale IDs are a normal state, and a no-op Execute pairs with a no-op
//     Undo through the same empty-snapshot guard.
//
// Errors:
//
//   - ErrNilCommand: nil command passed to History.Execute.
//   - ErrNilGraph: nil graph passed to NewHistory.
//
// Concurrency:
//
//   - Single-threaded by design; a command's Execute must not call back
//     into History.Execute. Transactions are the only nesting mechanism.
package command
