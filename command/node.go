package command

import (
	"fmt"

	"github.com/harwick/vellum/graph"
)

// AddNode creates a node with the given type, geometry and port definitions.
// IDs are minted on first Execute and reused verbatim on Redo.
type AddNode struct {
	typeID   string
	position graph.Point
	size     graph.Size
	defs     []graph.PortDef
	node     *graph.Node // populated on first Execute
}

// NewAddNode builds the command.
func NewAddNode(typeID string, position graph.Point, size graph.Size, ports ...graph.PortDef) *AddNode {
	return &AddNode{typeID: typeID, position: position, size: size, defs: ports}
}

// NodeID returns the minted node ID, or "" before Execute.
func (c *AddNode) NodeID() string {
	if c.node == nil {
		return ""
	}
	return c.node.ID
}

// Execute inserts the node (and its ports) into the graph.
func (c *AddNode) Execute(g *graph.Graph) {
	if c.node == nil {
		n := &graph.Node{
			ID:       g.NewID(),
			TypeID:   c.typeID,
			Position: c.position,
			Size:     c.size,
		}
		for _, def := range c.defs {
			n.Ports = append(n.Ports, &graph.Port{
				ID:        g.NewID(),
				NodeID:    n.ID,
				Name:      def.Name,
				Direction: def.Direction,
				Kind:      def.Kind,
				DataType:  def.DataType,
				Capacity:  def.Capacity,
				SortOrder: def.SortOrder,
			})
		}
		c.node = n
	}
	_ = g.AddNodeDirect(c.node.Clone())
}

// Undo removes the node again.
func (c *AddNode) Undo(g *graph.Graph) {
	if c.node == nil {
		return
	}
	_ = g.RemoveNode(c.node.ID)
}

// Class reports Structural.
func (c *AddNode) Class() ChangeClass { return Structural }

// Description names the operation.
func (c *AddNode) Description() string {
	return fmt.Sprintf("add node %s", c.typeID)
}

// RemoveNode deletes a node, cascading to its ports and edges. The full node
// state (ports included), every touching edge and the containing frame are
// snapshotted before deletion so Undo can reconstruct them byte-for-byte.
type RemoveNode struct {
	nodeID  string
	ran     bool
	node    *graph.Node
	edges   []*graph.Edge
	frameID string
}

// NewRemoveNode builds the command. A missing node makes Execute a no-op.
func NewRemoveNode(nodeID string) *RemoveNode {
	return &RemoveNode{nodeID: nodeID}
}

// Execute snapshots and removes the node.
func (c *RemoveNode) Execute(g *graph.Graph) {
	if !c.ran {
		c.ran = true
		n := g.FindNode(c.nodeID)
		if n == nil {
			return
		}
		c.node = n.Clone()
		for _, e := range g.GetEdgesForNode(c.nodeID) {
			c.edges = append(c.edges, e.Clone())
		}
		if f := g.FindContainerSubGraphFrame(c.nodeID); f != nil {
			c.frameID = f.ID
		}
	}
	if c.node == nil {
		return
	}
	if c.frameID != "" {
		if f := g.FindSubGraphFrame(c.frameID); f != nil {
			f.RemoveMember(c.nodeID)
		}
	}
	_ = g.RemoveNode(c.nodeID)
}

// Undo restores the node, its ports, every removed edge and the frame
// membership, all under their original IDs.
func (c *RemoveNode) Undo(g *graph.Graph) {
	if c.node == nil {
		return
	}
	if err := g.AddNodeDirect(c.node.Clone()); err != nil {
		return
	}
	for _, e := range c.edges {
		_ = g.AddEdgeDirect(e.Clone())
	}
	if c.frameID != "" {
		if f := g.FindSubGraphFrame(c.frameID); f != nil {
			f.AddMember(c.nodeID)
		}
	}
}

// Class reports Structural.
func (c *RemoveNode) Class() ChangeClass { return Structural }

// Description names the operation.
func (c *RemoveNode) Description() string {
	return fmt.Sprintf("remove node %s", c.nodeID)
}
