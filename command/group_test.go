package command_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harwick/vellum/command"
	"github.com/harwick/vellum/graph"
)

// portNames collects the rep node's port names keyed by direction.
func portNames(n *graph.Node, dir graph.Direction) []string {
	var out []string
	for _, p := range n.Ports {
		if p.Direction == dir {
			out = append(out, p.Name)
		}
	}
	return out
}

// TestGroup_FanOutScenario walks the canonical case end to end: one
// Control output feeding two external inputs collapses into a single
// "complete" boundary port with one internal and two external segments.
func TestGroup_FanOutScenario(t *testing.T) {
	g := fanOutGraph(t)

	c := command.NewGroup("Sub", "A")
	c.Execute(g)

	require.NotEmpty(t, c.FrameID())
	rep := g.FindNode(c.RepresentativeNodeID())
	require.NotNil(t, rep)
	assert.Equal(t, graph.BoundaryNodeType, rep.TypeID)

	// One inferred "complete" output plus the synthesized "activate" entry.
	assert.Equal(t, []string{"complete"}, portNames(rep, graph.Output))
	assert.Equal(t, []string{"activate"}, portNames(rep, graph.Input))

	complete := rep.PortByName("complete")
	require.NotNil(t, complete)
	assert.Equal(t, graph.Control, complete.Kind)
	assert.Equal(t, graph.Multiple, complete.Capacity)

	// Originals are gone; exactly three segments replace them.
	assert.Nil(t, g.FindEdge("e1"))
	assert.Nil(t, g.FindEdge("e2"))
	require.Equal(t, 3, g.EdgeCount())

	type pair struct{ src, tgt string }
	seen := make(map[pair]int)
	for _, e := range g.Edges() {
		seen[pair{e.SourcePortID, e.TargetPortID}]++
	}
	assert.Equal(t, 1, seen[pair{"A.o", complete.ID}], "internal segment deduplicated")
	assert.Equal(t, 1, seen[pair{complete.ID, "B.i"}])
	assert.Equal(t, 1, seen[pair{complete.ID, "C.i2"}])

	f := g.FindSubGraphFrame(c.FrameID())
	require.NotNil(t, f)
	assert.Equal(t, rep.ID, f.RepresentativeNodeID)
	assert.Equal(t, []string{"A"}, f.MemberIDs())
	assert.Equal(t, f, g.FindContainerSubGraphFrame("A"))
}

func TestGroup_ExactInverse(t *testing.T) {
	g := fanOutGraph(t)
	before := g.Clone()

	c := command.NewGroup("Sub", "A")
	c.Execute(g)
	require.False(t, g.Equal(before))

	c.Undo(g)
	assert.True(t, g.Equal(before))
}

func TestGroup_RedoReplaysSameIDs(t *testing.T) {
	g := fanOutGraph(t)

	c := command.NewGroup("Sub", "A")
	c.Execute(g)
	after := g.Clone()
	frameID, repID := c.FrameID(), c.RepresentativeNodeID()

	c.Undo(g)
	c.Execute(g)

	assert.Equal(t, frameID, c.FrameID())
	assert.Equal(t, repID, c.RepresentativeNodeID())
	assert.True(t, g.Equal(after))
}

// TestGroup_MergesSameShapeIncoming checks the many-to-one rule on the
// incoming side: one external source fanning into N distinct members over
// edges of one (direction, kind, data type) shape yields one boundary
// port, N internal segments and one deduplicated external segment.
func TestGroup_MergesSameShapeIncoming(t *testing.T) {
	const n = 3
	g := newGraph()
	buildNode(t, g, "X", outPort("X.o", "X", "o", graph.Control, ""))
	members := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("M%d", i)
		buildNode(t, g, id, inPort(id+".run", id, "run", graph.Control, "", graph.Multiple))
		mustEdge(t, g, fmt.Sprintf("e%d", i), "X.o", id+".run")
		members = append(members, id)
	}

	c := command.NewGroup("Sub", members...)
	c.Execute(g)
	rep := g.FindNode(c.RepresentativeNodeID())
	require.NotNil(t, rep)

	// One shared Control entry; the default exit covers the uncovered
	// direction.
	assert.Equal(t, []string{"activate"}, portNames(rep, graph.Input))
	assert.Equal(t, []string{"complete"}, portNames(rep, graph.Output))

	boundary := rep.PortByName("activate")
	var internal, external int
	for _, e := range g.Edges() {
		switch {
		case e.SourcePortID == boundary.ID:
			internal++
		case e.TargetPortID == boundary.ID:
			external++
		}
	}
	assert.Equal(t, n, internal, "one internal segment per member input")
	assert.Equal(t, 1, external, "shared external source deduplicated")
}

// Distinct data types must not share a boundary port.
func TestGroup_SplitsByDataType(t *testing.T) {
	g := newGraph()
	buildNode(t, g, "M",
		outPort("M.f", "M", "f", graph.Data, "float"),
		outPort("M.s", "M", "s", graph.Data, "string"))
	buildNode(t, g, "Y",
		inPort("Y.f", "Y", "f", graph.Data, "float", graph.Multiple),
		inPort("Y.s", "Y", "s", graph.Data, "string", graph.Multiple))
	mustEdge(t, g, "e1", "M.f", "Y.f")
	mustEdge(t, g, "e2", "M.s", "Y.s")

	c := command.NewGroup("Sub", "M")
	c.Execute(g)
	rep := g.FindNode(c.RepresentativeNodeID())
	require.NotNil(t, rep)

	assert.Equal(t, []string{"out1", "out2"}, portNames(rep, graph.Output))
	assert.Equal(t, []string{"activate"}, portNames(rep, graph.Input))
}

// Grouping nodes with no cross edges still yields a usable frame: both
// default Control ports are synthesized.
func TestGroup_SynthesizesDefaultPorts(t *testing.T) {
	g := newGraph()
	buildNode(t, g, "lone")

	c := command.NewGroup("Sub", "lone")
	c.Execute(g)
	rep := g.FindNode(c.RepresentativeNodeID())
	require.NotNil(t, rep)

	assert.Equal(t, []string{"activate"}, portNames(rep, graph.Input))
	assert.Equal(t, []string{"complete"}, portNames(rep, graph.Output))
	for _, p := range rep.Ports {
		assert.Equal(t, graph.Control, p.Kind)
	}
	assert.Equal(t, 0, g.EdgeCount())
}

// Edges between two selected members stay untouched.
func TestGroup_KeepsInternalEdges(t *testing.T) {
	g := newGraph()
	buildNode(t, g, "a", outPort("a.out", "a", "out", graph.Data, "float"))
	buildNode(t, g, "b", inPort("b.in", "b", "in", graph.Data, "float", graph.Single))
	mustEdge(t, g, "inner", "a.out", "b.in")

	c := command.NewGroup("Sub", "a", "b")
	c.Execute(g)

	assert.NotNil(t, g.FindEdge("inner"))
	f := g.FindSubGraphFrame(c.FrameID())
	require.NotNil(t, f)
	assert.Equal(t, []string{"a", "b"}, f.MemberIDs())
}

func TestGroup_FiltersIneligibleSelection(t *testing.T) {
	g := fanOutGraph(t)

	first := command.NewGroup("Inner", "A")
	first.Execute(g)
	rep := first.RepresentativeNodeID()

	// Framed members, boundary nodes, unknown IDs and duplicates all drop
	// out; B survives.
	c := command.NewGroup("Outer", "A", rep, "ghost", "B", "B")
	c.Execute(g)

	f := g.FindSubGraphFrame(c.FrameID())
	require.NotNil(t, f)
	assert.Equal(t, []string{"B"}, f.MemberIDs())
}

func TestGroup_EmptySelectionIsNoOp(t *testing.T) {
	g := fanOutGraph(t)
	first := command.NewGroup("Inner", "A")
	first.Execute(g)
	before := g.Clone()

	// Every candidate filters out, so nothing may change.
	c := command.NewGroup("Outer", "A", "ghost")
	c.Execute(g)
	assert.Empty(t, c.FrameID())
	assert.True(t, g.Equal(before))

	c.Undo(g)
	assert.True(t, g.Equal(before))
}

func TestGroup_FrameBoundsEncloseMembers(t *testing.T) {
	g := newGraph()
	a := buildNode(t, g, "a")
	a.Position = graph.Point{X: 100, Y: 100}
	b := buildNode(t, g, "b")
	b.Position = graph.Point{X: 300, Y: 250}

	c := command.NewGroup("Sub", "a", "b")
	c.Execute(g)
	f := g.FindSubGraphFrame(c.FrameID())
	require.NotNil(t, f)

	for _, n := range []*graph.Node{a, b} {
		nb := n.Bounds()
		assert.LessOrEqual(t, f.Bounds.X, nb.X)
		assert.LessOrEqual(t, f.Bounds.Y, nb.Y)
		assert.GreaterOrEqual(t, f.Bounds.X+f.Bounds.W, nb.X+nb.W)
		assert.GreaterOrEqual(t, f.Bounds.Y+f.Bounds.H, nb.Y+nb.H)
	}
}
