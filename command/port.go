package command

import (
	"fmt"

	"github.com/harwick/vellum/graph"
)

// AddPort appends a port to an existing node. The port ID is minted on first
// Execute and reused verbatim on Redo.
type AddPort struct {
	nodeID string
	def    graph.PortDef
	ran    bool
	port   *graph.Port
}

// NewAddPort builds the command. A missing node makes Execute a no-op.
func NewAddPort(nodeID string, def graph.PortDef) *AddPort {
	return &AddPort{nodeID: nodeID, def: def}
}

// PortID returns the minted port ID, or "" before Execute / on no-op.
func (c *AddPort) PortID() string {
	if c.port == nil {
		return ""
	}
	return c.port.ID
}

// Execute attaches the port.
func (c *AddPort) Execute(g *graph.Graph) {
	if !c.ran {
		c.ran = true
		if g.FindNode(c.nodeID) == nil {
			return
		}
		c.port = &graph.Port{
			ID:        g.NewID(),
			NodeID:    c.nodeID,
			Name:      c.def.Name,
			Direction: c.def.Direction,
			Kind:      c.def.Kind,
			DataType:  c.def.DataType,
			Capacity:  c.def.Capacity,
			SortOrder: c.def.SortOrder,
		}
	}
	if c.port == nil {
		return
	}
	_ = g.AddPortDirect(c.port.Clone())
}

// Undo detaches the port, disconnecting any edges that still reference it
// so the store never holds a dangling edge.
func (c *AddPort) Undo(g *graph.Graph) {
	if c.port == nil {
		return
	}
	for _, e := range g.GetEdgesForPort(c.port.ID) {
		g.Disconnect(e.ID)
	}
	_ = g.RemovePort(c.port.ID)
}

// Class reports Structural.
func (c *AddPort) Class() ChangeClass { return Structural }

// Description names the operation.
func (c *AddPort) Description() string {
	return fmt.Sprintf("add port %s to %s", c.def.Name, c.nodeID)
}

// RemovePort detaches a port from its node. Edges referencing the port are
// disconnected first (snapshotted for undo), then the port is removed.
type RemovePort struct {
	portID string
	ran    bool
	port   *graph.Port
	edges  []*graph.Edge
}

// NewRemovePort builds the command. A missing port makes Execute a no-op.
func NewRemovePort(portID string) *RemovePort {
	return &RemovePort{portID: portID}
}

// Execute snapshots and removes the port and its edges.
func (c *RemovePort) Execute(g *graph.Graph) {
	if !c.ran {
		c.ran = true
		p := g.FindPort(c.portID)
		if p == nil {
			return
		}
		c.port = p.Clone()
		for _, e := range g.GetEdgesForPort(c.portID) {
			c.edges = append(c.edges, e.Clone())
		}
	}
	if c.port == nil {
		return
	}
	for _, e := range c.edges {
		g.Disconnect(e.ID)
	}
	_ = g.RemovePort(c.portID)
}

// Undo restores the port and every removed edge under their original IDs.
func (c *RemovePort) Undo(g *graph.Graph) {
	if c.port == nil {
		return
	}
	if err := g.AddPortDirect(c.port.Clone()); err != nil {
		return
	}
	for _, e := range c.edges {
		_ = g.AddEdgeDirect(e.Clone())
	}
}

// Class reports Structural.
func (c *RemovePort) Class() ChangeClass { return Structural }

// Description names the operation.
func (c *RemovePort) Description() string {
	return fmt.Sprintf("remove port %s", c.portID)
}
