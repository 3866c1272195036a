package command

import (
	"fmt"

	"github.com/harwick/vellum/graph"
)

// Connect wires a source port to a target port. Connecting to an occupied
// Single-capacity target displaces the resident edge; the displaced edge is
// snapshotted and restored on Undo with its original identity.
type Connect struct {
	sourcePortID string
	targetPortID string
	ran          bool
	created      *graph.Edge
	displaced    *graph.Edge
}

// NewConnect builds the command. Missing ports make Execute a silent no-op.
func NewConnect(sourcePortID, targetPortID string) *Connect {
	return &Connect{sourcePortID: sourcePortID, targetPortID: targetPortID}
}

// CreatedEdgeID returns the minted edge ID, or "" before Execute / on no-op.
func (c *Connect) CreatedEdgeID() string {
	if c.created == nil {
		return ""
	}
	return c.created.ID
}

// Execute connects the ports. The first run goes through the store's
// displacement logic and snapshots the outcome; replays re-apply the
// snapshot so the minted edge keeps its ID across Redo.
func (c *Connect) Execute(g *graph.Graph) {
	if !c.ran {
		c.ran = true
		created, displaced := g.Connect(c.sourcePortID, c.targetPortID)
		if created != nil {
			c.created = created.Clone()
		}
		if displaced != nil {
			c.displaced = displaced.Clone()
		}
		return
	}
	if c.created == nil {
		return
	}
	if c.displaced != nil {
		g.Disconnect(c.displaced.ID)
	}
	_ = g.AddEdgeDirect(c.created.Clone())
}

// Undo removes the created edge and restores the displaced one verbatim.
func (c *Connect) Undo(g *graph.Graph) {
	if c.created == nil {
		return
	}
	g.Disconnect(c.created.ID)
	if c.displaced != nil {
		_ = g.AddEdgeDirect(c.displaced.Clone())
	}
}

// Class reports Structural.
func (c *Connect) Class() ChangeClass { return Structural }

// Description names the operation.
func (c *Connect) Description() string {
	return fmt.Sprintf("connect %s -> %s", c.sourcePortID, c.targetPortID)
}

// Disconnect removes one edge by ID, snapshotting its full identity so Undo
// restores it verbatim.
type Disconnect struct {
	edgeID  string
	ran     bool
	removed *graph.Edge
}

// NewDisconnect builds the command. A missing edge makes Execute a no-op.
func NewDisconnect(edgeID string) *Disconnect {
	return &Disconnect{edgeID: edgeID}
}

// Execute removes the edge.
func (c *Disconnect) Execute(g *graph.Graph) {
	if !c.ran {
		c.ran = true
		if e := g.FindEdge(c.edgeID); e != nil {
			c.removed = e.Clone()
			g.Disconnect(c.edgeID)
		}
		return
	}
	if c.removed != nil {
		g.Disconnect(c.removed.ID)
	}
}

// Undo restores the removed edge verbatim.
func (c *Disconnect) Undo(g *graph.Graph) {
	if c.removed == nil {
		return
	}
	_ = g.AddEdgeDirect(c.removed.Clone())
}

// Class reports Structural.
func (c *Disconnect) Class() ChangeClass { return Structural }

// Description names the operation.
func (c *Disconnect) Description() string {
	return fmt.Sprintf("disconnect %s", c.edgeID)
}
