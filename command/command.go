// Package command: the Command contract and its change taxonomy.
package command

import (
	"errors"

	"github.com/harwick/vellum/graph"
)

// Sentinel errors for command/history operations.
var (
	// ErrNilCommand indicates a nil command was passed to the history.
	ErrNilCommand = errors.New("command: command is nil")
	// ErrNilGraph indicates a nil graph was passed to NewHistory.
	ErrNilGraph = errors.New("command: graph is nil")
)

// ChangeClass discriminates structural changes (topology changed, dependent
// analyses must recompute) from style changes (repaint only).
type ChangeClass int

const (
	// Structural changes alter nodes, ports, edges or frames.
	Structural ChangeClass = iota
	// Style changes alter positions, captions or display flags only.
	Style
)

// String returns the lowercase textual form.
func (c ChangeClass) String() string {
	if c == Style {
		return "style"
	}
	return "structural"
}

// Command is one invertible mutation of a graph store.
//
// Lifecycle: Unexecuted → Executed → Undone ⇄ Executed (via Redo); a command
// never re-enters Unexecuted and is owned by a single History. Execute
// performs the mutation and populates the undo snapshot on first run;
// replayed Executes (Redo) re-apply the recorded snapshot verbatim, minted
// IDs included. Undo restores the graph to the exact state before the first
// Execute. A command whose target no longer resolves is a silent no-op, and
// its Undo is then a no-op too (guarded by the same empty-snapshot check).
type Command interface {
	Execute(g *graph.Graph)
	Undo(g *graph.Graph)
	Class() ChangeClass
	Description() string
}

// Merger is the optional merge hook. When the history is about to push a
// new command, it asks the current top of the undo stack — if it implements
// Merger — to absorb the incoming command. Returning true keeps the merged
// top as the single history entry and discards the incoming command.
//
// The incoming command has already executed; TryMergeWith must only fold
// its intent (e.g. final positions) into the receiver, never re-apply it.
type Merger interface {
	TryMergeWith(incoming Command) bool
}
