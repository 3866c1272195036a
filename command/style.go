package command

// Style-class commands change how the graph is drawn, never what it
// computes, so dependents may skip recomputation on notification.

import (
	"fmt"

	"github.com/harwick/vellum/graph"
)

// MoveNodes assigns new positions to a set of nodes. Successive moves of the
// same node set merge into one history entry, so an interactive drag that
// fires many small moves undoes in a single step.
type MoveNodes struct {
	targets map[string]graph.Point
	prev    map[string]graph.Point
}

// NewMoveNodes builds the command from nodeID → target position.
func NewMoveNodes(targets map[string]graph.Point) *MoveNodes {
	m := &MoveNodes{targets: make(map[string]graph.Point, len(targets))}
	for id, p := range targets {
		m.targets[id] = p
	}
	return m
}

// Execute captures prior positions on first run and applies the targets.
// Missing node IDs are skipped.
func (c *MoveNodes) Execute(g *graph.Graph) {
	if c.prev == nil {
		c.prev = make(map[string]graph.Point, len(c.targets))
		for id := range c.targets {
			if n := g.FindNode(id); n != nil {
				c.prev[id] = n.Position
			}
		}
	}
	for id, p := range c.targets {
		if n := g.FindNode(id); n != nil {
			n.Position = p
		}
	}
}

// Undo restores the captured positions.
func (c *MoveNodes) Undo(g *graph.Graph) {
	for id, p := range c.prev {
		if n := g.FindNode(id); n != nil {
			n.Position = p
		}
	}
}

// Class reports Style.
func (c *MoveNodes) Class() ChangeClass { return Style }

// Description names the operation.
func (c *MoveNodes) Description() string {
	return fmt.Sprintf("move %d node(s)", len(c.targets))
}

// TryMergeWith absorbs a subsequent MoveNodes over the same node set: the
// receiver keeps its original prev snapshot and adopts the incoming final
// positions. The incoming command has already executed, so only intent is
// folded in.
func (c *MoveNodes) TryMergeWith(incoming Command) bool {
	o, ok := incoming.(*MoveNodes)
	if !ok || len(o.targets) != len(c.targets) {
		return false
	}
	for id := range o.targets {
		if _, ok := c.targets[id]; !ok {
			return false
		}
	}
	for id, p := range o.targets {
		c.targets[id] = p
	}
	return true
}

// SetDisplayMode switches a node between expanded and collapsed rendering.
type SetDisplayMode struct {
	nodeID string
	mode   graph.DisplayMode
	prev   *graph.DisplayMode
}

// NewSetDisplayMode builds the command. A missing node makes Execute a no-op.
func NewSetDisplayMode(nodeID string, mode graph.DisplayMode) *SetDisplayMode {
	return &SetDisplayMode{nodeID: nodeID, mode: mode}
}

// Execute applies the display mode, snapshotting the prior one on first run.
func (c *SetDisplayMode) Execute(g *graph.Graph) {
	n := g.FindNode(c.nodeID)
	if n == nil {
		return
	}
	if c.prev == nil {
		v := n.DisplayMode
		c.prev = &v
	}
	n.DisplayMode = c.mode
}

// Undo restores the prior display mode.
func (c *SetDisplayMode) Undo(g *graph.Graph) {
	if c.prev == nil {
		return
	}
	if n := g.FindNode(c.nodeID); n != nil {
		n.DisplayMode = *c.prev
	}
}

// Class reports Style.
func (c *SetDisplayMode) Class() ChangeClass { return Style }

// Description names the operation.
func (c *SetDisplayMode) Description() string {
	return fmt.Sprintf("set display mode of %s to %s", c.nodeID, c.mode)
}

// SetFrameCollapsed collapses or expands a subgraph frame.
type SetFrameCollapsed struct {
	frameID   string
	collapsed bool
	prev      *bool
}

// NewSetFrameCollapsed builds the command. A missing frame makes Execute a no-op.
func NewSetFrameCollapsed(frameID string, collapsed bool) *SetFrameCollapsed {
	return &SetFrameCollapsed{frameID: frameID, collapsed: collapsed}
}

// Execute applies the collapse flag, snapshotting the prior one on first run.
func (c *SetFrameCollapsed) Execute(g *graph.Graph) {
	f := g.FindSubGraphFrame(c.frameID)
	if f == nil {
		return
	}
	if c.prev == nil {
		v := f.IsCollapsed
		c.prev = &v
	}
	f.IsCollapsed = c.collapsed
}

// Undo restores the prior collapse flag.
func (c *SetFrameCollapsed) Undo(g *graph.Graph) {
	if c.prev == nil {
		return
	}
	if f := g.FindSubGraphFrame(c.frameID); f != nil {
		f.IsCollapsed = *c.prev
	}
}

// Class reports Style.
func (c *SetFrameCollapsed) Class() ChangeClass { return Style }

// Description names the operation.
func (c *SetFrameCollapsed) Description() string {
	return fmt.Sprintf("set frame %s collapsed=%t", c.frameID, c.collapsed)
}
