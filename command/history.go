// Package command: the undo/redo engine.
package command

import (
	"log/slog"

	"github.com/harwick/vellum/graph"
)

// DefaultMaxHistory bounds the undo stack when WithMaxHistory is not given.
const DefaultMaxHistory = 100

// Origin tells a notification sink which direction a change came from.
type Origin int

const (
	// OriginExecute marks a fresh command execution.
	OriginExecute Origin = iota
	// OriginUndo marks a rollback.
	OriginUndo
	// OriginRedo marks a replayed execution.
	OriginRedo
)

// String returns the lowercase textual form.
func (o Origin) String() string {
	switch o {
	case OriginUndo:
		return "undo"
	case OriginRedo:
		return "redo"
	default:
		return "execute"
	}
}

// Change describes one applied command to the notification sink, so a
// dependent analysis pass can distinguish "recompute" from "just repaint".
type Change struct {
	Class       ChangeClass
	Description string
	Origin      Origin
}

// Notifier receives a Change after every Execute/Undo/Redo.
type Notifier interface {
	GraphChanged(Change)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(Change)

// GraphChanged calls f(c).
func (f NotifierFunc) GraphChanged(c Change) { f(c) }

// HistoryOption configures a History before first use.
type HistoryOption func(*History)

// WithMaxHistory bounds the undo stack; the oldest entries are trimmed.
// Panics on n < 1 to surface programmer error early.
func WithMaxHistory(n int) HistoryOption {
	if n < 1 {
		panic("command: WithMaxHistory requires n >= 1")
	}
	return func(h *History) { h.max = n }
}

// WithNotifier installs the change notification sink.
// Panics on nil.
func WithNotifier(n Notifier) HistoryOption {
	if n == nil {
		panic("command: WithNotifier(nil)")
	}
	return func(h *History) { h.notifier = n }
}

// WithLogger injects the structured logger used for call-site diagnostics.
// Panics on nil.
func WithLogger(l *slog.Logger) HistoryOption {
	if l == nil {
		panic("command: WithLogger(nil)")
	}
	return func(h *History) { h.log = l }
}

// History owns the undo and redo stacks of one editing session and runs
// every command against its graph. Linear history: executing a new command
// clears the redo stack.
//
// A History is exclusively owned by its session; a command's Execute must
// never call back into History.Execute — transactions are the only nesting
// mechanism, and they are cooperative and depth-counted.
type History struct {
	g        *graph.Graph
	undo     []Command
	redo     []Command
	max      int
	active   *Compound // open transaction accumulator, nil when none
	depth    int       // transaction nesting depth
	log      *slog.Logger
	notifier Notifier
}

// NewHistory creates a History over the given graph.
// Returns ErrNilGraph when g is nil.
func NewHistory(g *graph.Graph, opts ...HistoryOption) (*History, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	h := &History{g: g, max: DefaultMaxHistory, log: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Graph returns the graph this history mutates.
func (h *History) Graph() *graph.Graph { return h.g }

// Execute runs the command and records it for undo.
//
// Inside an open transaction the command runs immediately (intermediate
// state stays visible) and is appended to the pending compound; only the
// transaction commit pushes a single undo entry. Outside a transaction the
// top of the undo stack is offered the merge first; on rejection the
// command is pushed and the stack trimmed to the configured bound.
// Returns ErrNilCommand for a nil command.
func (h *History) Execute(cmd Command) error {
	if cmd == nil {
		return ErrNilCommand
	}
	cmd.Execute(h.g)
	h.redo = h.redo[:0]

	if h.active != nil {
		h.active.Append(cmd)
		h.notify(cmd, OriginExecute)
		return nil
	}
	if n := len(h.undo); n > 0 {
		if m, ok := h.undo[n-1].(Merger); ok && m.TryMergeWith(cmd) {
			h.log.Debug("command merged into history top",
				"description", cmd.Description())
			h.notify(cmd, OriginExecute)
			return nil
		}
	}
	h.undo = append(h.undo, cmd)
	h.trim()
	h.notify(cmd, OriginExecute)
	return nil
}

// Undo rolls back the most recent undo entry. Returns false when the stack
// is empty or a transaction is open.
func (h *History) Undo() bool {
	if h.active != nil {
		h.log.Warn("undo ignored: transaction open")
		return false
	}
	n := len(h.undo)
	if n == 0 {
		return false
	}
	cmd := h.undo[n-1]
	h.undo = h.undo[:n-1]
	cmd.Undo(h.g)
	h.redo = append(h.redo, cmd)
	h.notify(cmd, OriginUndo)
	return true
}

// Redo replays the most recently undone entry. Returns false when the redo
// stack is empty or a transaction is open.
func (h *History) Redo() bool {
	if h.active != nil {
		h.log.Warn("redo ignored: transaction open")
		return false
	}
	n := len(h.redo)
	if n == 0 {
		return false
	}
	cmd := h.redo[n-1]
	h.redo = h.redo[:n-1]
	cmd.Execute(h.g)
	h.undo = append(h.undo, cmd)
	h.notify(cmd, OriginRedo)
	return true
}

// CanUndo reports whether Undo would act.
func (h *History) CanUndo() bool { return h.active == nil && len(h.undo) > 0 }

// CanRedo reports whether Redo would act.
func (h *History) CanRedo() bool { return h.active == nil && len(h.redo) > 0 }

// UndoDepth returns the undo stack size.
func (h *History) UndoDepth() int { return len(h.undo) }

// RedoDepth returns the redo stack size.
func (h *History) RedoDepth() int { return len(h.redo) }

// Clear drops both stacks. Executed commands are not reverted.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

// BeginTransaction opens (or nests into) a compound scope. Sub-commands
// executed until the matching EndTransaction commit as one atomic undo
// entry. Nested calls only increment a depth counter; the outermost
// EndTransaction performs the commit.
func (h *History) BeginTransaction(description string) {
	h.depth++
	if h.depth == 1 {
		h.active = NewCompound(description)
	}
}

// EndTransaction closes one nesting level; the outermost close commits the
// accumulated compound as a single undo entry. An empty compound is
// discarded, not pushed. Unbalanced calls are logged and ignored.
func (h *History) EndTransaction() {
	if h.depth == 0 {
		h.log.Warn("EndTransaction without matching BeginTransaction")
		return
	}
	h.depth--
	if h.depth > 0 {
		return
	}
	c := h.active
	h.active = nil
	if c.Len() == 0 {
		return
	}
	h.undo = append(h.undo, c)
	h.trim()
}

// WithTransaction runs fn inside a transaction scope and guarantees the
// commit on every exit path, panics included.
func (h *History) WithTransaction(description string, fn func()) {
	h.BeginTransaction(description)
	defer h.EndTransaction()
	fn()
}

// trim drops the oldest undo entries beyond the configured bound.
func (h *History) trim() {
	if over := len(h.undo) - h.max; over > 0 {
		h.undo = append(h.undo[:0:0], h.undo[over:]...)
	}
}

func (h *History) notify(cmd Command, o Origin) {
	if h.notifier == nil {
		return
	}
	h.notifier.GraphChanged(Change{
		Class:       cmd.Class(),
		Description: cmd.Description(),
		Origin:      o,
	})
}
