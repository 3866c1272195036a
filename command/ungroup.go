package command

import (
	"fmt"

	"github.com/harwick/vellum/graph"
)

// Ungroup dissolves a subgraph frame: the boundary node is removed and the
// wiring it mediated is reconnected straight through. For every boundary
// port carrying both incoming and outgoing edges, one direct edge is
// created per (incoming-source, outgoing-target) pair — the cross-product
// mirror of Group's many-to-one fan-in/fan-out. Contained nodes are not
// deleted; they become top-level.
type Ungroup struct {
	frameID string

	planned  bool
	frame    *graph.SubGraphFrame
	repNode  *graph.Node
	repEdges []*graph.Edge
	bypass   []*graph.Edge
}

// NewUngroup builds the command. A missing frame makes Execute a no-op.
func NewUngroup(frameID string) *Ungroup {
	return &Ungroup{frameID: frameID}
}

// BypassEdgeIDs returns the IDs of the direct edges created by Execute.
func (c *Ungroup) BypassEdgeIDs() []string {
	ids := make([]string, 0, len(c.bypass))
	for _, e := range c.bypass {
		ids = append(ids, e.ID)
	}
	return ids
}

// plan snapshots the frame, the representative node (with all its ports)
// and every edge touching it, then computes the bypass edges with minted
// IDs so Redo replays identical identities.
func (c *Ungroup) plan(g *graph.Graph) {
	c.planned = true
	f := g.FindSubGraphFrame(c.frameID)
	if f == nil {
		return
	}
	c.frame = f.Clone()
	rep := g.FindNode(f.RepresentativeNodeID)
	if rep == nil {
		return
	}
	c.repNode = rep.Clone()
	for _, e := range g.GetEdgesForNode(rep.ID) {
		c.repEdges = append(c.repEdges, e.Clone())
	}
	for _, p := range c.repNode.Ports {
		var incoming, outgoing []*graph.Edge
		for _, e := range c.repEdges {
			if e.TargetPortID == p.ID {
				incoming = append(incoming, e)
			}
			if e.SourcePortID == p.ID {
				outgoing = append(outgoing, e)
			}
		}
		seen := make(map[[2]string]struct{})
		for _, in := range incoming {
			for _, out := range outgoing {
				pair := [2]string{in.SourcePortID, out.TargetPortID}
				if _, dup := seen[pair]; dup {
					continue
				}
				seen[pair] = struct{}{}
				c.bypass = append(c.bypass, &graph.Edge{
					ID:           g.NewID(),
					SourcePortID: in.SourcePortID,
					TargetPortID: out.TargetPortID,
				})
			}
		}
	}
}

// Execute removes the boundary node (cascading its edges) and the frame,
// then wires the bypass edges.
func (c *Ungroup) Execute(g *graph.Graph) {
	if !c.planned {
		c.plan(g)
	}
	if c.frame == nil {
		return
	}
	if c.repNode != nil {
		_ = g.RemoveNode(c.repNode.ID)
	}
	_ = g.RemoveSubGraphFrame(c.frame.ID)
	for _, e := range c.bypass {
		_ = g.AddEdgeDirect(e.Clone())
	}
}

// Undo deletes the bypass edges, recreates the representative node with its
// original ports and edges, and restores the frame — all original IDs.
func (c *Ungroup) Undo(g *graph.Graph) {
	if c.frame == nil {
		return
	}
	for _, e := range c.bypass {
		g.Disconnect(e.ID)
	}
	if c.repNode != nil {
		_ = g.AddNodeDirect(c.repNode.Clone())
		for _, e := range c.repEdges {
			_ = g.AddEdgeDirect(e.Clone())
		}
	}
	_ = g.AddSubGraphFrameDirect(c.frame.Clone())
}

// Class reports Structural.
func (c *Ungroup) Class() ChangeClass { return Structural }

// Description names the operation.
func (c *Ungroup) Description() string {
	return fmt.Sprintf("ungroup frame %s", c.frameID)
}
