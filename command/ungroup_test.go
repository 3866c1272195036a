package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harwick/vellum/command"
	"github.com/harwick/vellum/graph"
)

// groupedFanOut groups {A} in the canonical scenario and returns the graph
// plus the executed Group command.
func groupedFanOut(t *testing.T) (*graph.Graph, *command.Group) {
	t.Helper()
	g := fanOutGraph(t)
	c := command.NewGroup("Sub", "A")
	c.Execute(g)
	return g, c
}

// TestUngroup_BypassCrossProduct dissolves the grouped fan-out: the
// "complete" port carried one incoming and two outgoing edges, so exactly
// two direct bypass edges replace it.
func TestUngroup_BypassCrossProduct(t *testing.T) {
	g, grp := groupedFanOut(t)

	c := command.NewUngroup(grp.FrameID())
	c.Execute(g)

	assert.Nil(t, g.FindSubGraphFrame(grp.FrameID()))
	assert.Nil(t, g.FindNode(grp.RepresentativeNodeID()))
	assert.NotNil(t, g.FindNode("A"), "members survive")

	require.Len(t, c.BypassEdgeIDs(), 2)
	require.Equal(t, 2, g.EdgeCount())

	type pair struct{ src, tgt string }
	seen := make(map[pair]bool)
	for _, e := range g.Edges() {
		seen[pair{e.SourcePortID, e.TargetPortID}] = true
	}
	assert.True(t, seen[pair{"A.o", "B.i"}])
	assert.True(t, seen[pair{"A.o", "C.i2"}])
}

func TestUngroup_ExactInverse(t *testing.T) {
	g, grp := groupedFanOut(t)
	before := g.Clone()

	c := command.NewUngroup(grp.FrameID())
	c.Execute(g)
	require.False(t, g.Equal(before))

	c.Undo(g)
	assert.True(t, g.Equal(before))
}

func TestUngroup_RedoReplaysSameIDs(t *testing.T) {
	g, grp := groupedFanOut(t)

	c := command.NewUngroup(grp.FrameID())
	c.Execute(g)
	after := g.Clone()
	ids := c.BypassEdgeIDs()

	c.Undo(g)
	c.Execute(g)

	assert.Equal(t, ids, c.BypassEdgeIDs())
	assert.True(t, g.Equal(after))
}

// A boundary port wired on one side only produces no bypass: with no
// (source, target) pair to close, the dangling half simply disappears.
func TestUngroup_OneSidedPortDropsSilently(t *testing.T) {
	g := newGraph()
	buildNode(t, g, "A", outPort("A.o", "A", "o", graph.Control, ""))
	buildNode(t, g, "B", inPort("B.i", "B", "i", graph.Control, "", graph.Multiple))
	mustEdge(t, g, "e1", "A.o", "B.i")
	c := command.NewGroup("Sub", "A")
	c.Execute(g)

	// Sever the external side so "complete" keeps only its internal feed.
	rep := g.FindNode(c.RepresentativeNodeID())
	complete := rep.PortByName("complete")
	for _, e := range g.GetEdgesForPort(complete.ID) {
		if e.SourcePortID == complete.ID {
			g.Disconnect(e.ID)
		}
	}
	require.Equal(t, 1, g.EdgeCount())

	u := command.NewUngroup(c.FrameID())
	u.Execute(g)

	assert.Empty(t, u.BypassEdgeIDs())
	assert.Equal(t, 0, g.EdgeCount())
	assert.NotNil(t, g.FindNode("A"))
	assert.NotNil(t, g.FindNode("B"))
}

func TestUngroup_MissingFrameIsNoOp(t *testing.T) {
	g := fanOutGraph(t)
	before := g.Clone()

	c := command.NewUngroup("ghost")
	c.Execute(g)
	c.Undo(g)
	assert.True(t, g.Equal(before))
}

// Group then Ungroup restores the original wiring shape, though under
// fresh edge IDs: identity is not promised across the pair, topology is.
func TestGroupUngroup_RestoresTopology(t *testing.T) {
	g := fanOutGraph(t)

	grp := command.NewGroup("Sub", "A")
	grp.Execute(g)
	ung := command.NewUngroup(grp.FrameID())
	ung.Execute(g)

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())
	assert.Empty(t, g.SubGraphFrames())

	type pair struct{ src, tgt string }
	seen := make(map[pair]bool)
	for _, e := range g.Edges() {
		seen[pair{e.SourcePortID, e.TargetPortID}] = true
	}
	assert.True(t, seen[pair{"A.o", "B.i"}])
	assert.True(t, seen[pair{"A.o", "C.i2"}])
}
