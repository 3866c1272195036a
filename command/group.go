package command

import (
	"fmt"

	"github.com/harwick/vellum/graph"
)

// edgeRewire records how one cross-boundary edge was split through the
// representative node: the original edge's full identity plus the
// replacement edges whose creation this original triggered. Replacement
// edges shared with earlier originals (merged fan-in/fan-out) appear only
// under the original that first allocated them.
type edgeRewire struct {
	original *graph.Edge
	created  []*graph.Edge
}

// Group encapsulates a node selection into a subgraph frame represented by
// a single boundary node.
//
// Execute (first run) builds a plan: filter the selection, infer boundary
// ports from cross-boundary edges — merging every edge of one
// (direction, kind, data type) shape into one shared port — rewire each
// cross edge through the representative node, and enclose the members in a
// new frame. All IDs are minted during planning, so Redo re-applies the
// identical plan and reproduces identical IDs. Undo reverses the plan
// exactly: frame out, rewires unwound to the original edges, boundary node
// removed.
type Group struct {
	title     string
	selection []string

	planned   bool
	memberIDs []string
	repNode   *graph.Node
	frame     *graph.SubGraphFrame
	rewires   []edgeRewire
}

// NewGroup builds the command over the selected node IDs. Ineligible IDs
// are silently dropped at Execute time; an empty eligible set makes the
// whole command a no-op.
func NewGroup(title string, nodeIDs ...string) *Group {
	return &Group{title: title, selection: nodeIDs}
}

// FrameID returns the minted frame ID, or "" before Execute / on no-op.
func (c *Group) FrameID() string {
	if c.frame == nil {
		return ""
	}
	return c.frame.ID
}

// RepresentativeNodeID returns the minted boundary node ID, or "".
func (c *Group) RepresentativeNodeID() string {
	if c.repNode == nil {
		return ""
	}
	return c.repNode.ID
}

// MemberIDs returns the filtered member set, sorted. Empty before Execute.
func (c *Group) MemberIDs() []string {
	return append([]string(nil), c.memberIDs...)
}

// plan computes the full mutation up front; apply() then only replays
// already-validated store primitives, so Execute can never leave a
// half-mutated graph.
func (c *Group) plan(g *graph.Graph) {
	c.planned = true
	members := filterGroupable(g, c.selection)
	if len(members) == 0 {
		return
	}
	c.memberIDs = members
	memberSet := make(map[string]struct{}, len(members))
	for _, id := range members {
		memberSet[id] = struct{}{}
	}

	cross := classifyCrossEdges(g, memberSet)

	repID := g.NewID()
	alloc := newBoundaryAllocator(repID)
	for _, ce := range cross {
		alloc.portFor(g, ce.key)
	}
	alloc.ensureDefaults(g)

	bounds := memberBounds(g, members)
	c.repNode = &graph.Node{
		ID:       repID,
		TypeID:   graph.BoundaryNodeType,
		Position: graph.Point{X: bounds.X - repNodeMargin, Y: bounds.Y - repNodeMargin},
		Size:     graph.Size{W: repNodeWidth, H: repNodeHeight},
		Ports:    alloc.ports,
	}

	// Rewire every cross edge through its boundary port. Both segments are
	// deduplicated: many originals of one shape share the internal and
	// external segments their boundary port funnels through.
	internalSeen := make(map[[2]string]struct{})
	externalSeen := make(map[[2]string]struct{})
	for _, ce := range cross {
		rp := alloc.byKey[ce.key]
		rw := edgeRewire{original: ce.edge.Clone()}

		ikey := [2]string{ce.internalPortID, rp.ID}
		if _, dup := internalSeen[ikey]; !dup {
			internalSeen[ikey] = struct{}{}
			seg := &graph.Edge{ID: g.NewID()}
			if ce.key.direction == graph.Output {
				seg.SourcePortID, seg.TargetPortID = ce.internalPortID, rp.ID
			} else {
				seg.SourcePortID, seg.TargetPortID = rp.ID, ce.internalPortID
			}
			rw.created = append(rw.created, seg)
		}

		ekey := [2]string{rp.ID, ce.externalPortID}
		if _, dup := externalSeen[ekey]; !dup {
			externalSeen[ekey] = struct{}{}
			seg := &graph.Edge{ID: g.NewID()}
			if ce.key.direction == graph.Output {
				seg.SourcePortID, seg.TargetPortID = rp.ID, ce.externalPortID
			} else {
				seg.SourcePortID, seg.TargetPortID = ce.externalPortID, rp.ID
			}
			rw.created = append(rw.created, seg)
		}
		c.rewires = append(c.rewires, rw)
	}

	c.frame = graph.NewSubGraphFrame(g.NewID(), c.title, repID, members...)
	c.frame.Bounds = bounds
}

// Execute applies the plan (building it on first run).
func (c *Group) Execute(g *graph.Graph) {
	if !c.planned {
		c.plan(g)
	}
	if c.repNode == nil {
		return
	}
	_ = g.AddNodeDirect(c.repNode.Clone())
	for _, rw := range c.rewires {
		g.Disconnect(rw.original.ID)
		for _, seg := range rw.created {
			_ = g.AddEdgeDirect(seg.Clone())
		}
	}
	_ = g.AddSubGraphFrameDirect(c.frame.Clone())
}

// Undo removes the frame, unwinds every rewire back to its original edge
// (original IDs included) and deletes the boundary node, cascading whatever
// synthesized-port edges remain.
func (c *Group) Undo(g *graph.Graph) {
	if c.repNode == nil {
		return
	}
	_ = g.RemoveSubGraphFrame(c.frame.ID)
	for _, rw := range c.rewires {
		for _, seg := range rw.created {
			g.Disconnect(seg.ID)
		}
		_ = g.AddEdgeDirect(rw.original.Clone())
	}
	_ = g.RemoveNode(c.repNode.ID)
}

// Class reports Structural.
func (c *Group) Class() ChangeClass { return Structural }

// Description names the operation.
func (c *Group) Description() string {
	return fmt.Sprintf("group %d node(s) into %q", len(c.selection), c.title)
}
