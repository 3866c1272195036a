package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harwick/vellum/command"
	"github.com/harwick/vellum/graph"
)

// template builds a reusable two-node source graph: src.out -> dst.in.
func template(t *testing.T) *graph.Graph {
	t.Helper()
	src := graph.New(graph.WithIDGen(graph.NewSequentialGen("tpl")))
	buildNode(t, src, "src", outPort("src.out", "src", "out", graph.Data, "float"))
	buildNode(t, src, "dst", inPort("dst.in", "dst", "in", graph.Data, "float", graph.Single))
	mustEdge(t, src, "tpl.e", "src.out", "dst.in")
	return src
}

func TestTemplateInstantiator_CopiesWithFreshIDs(t *testing.T) {
	src := template(t)
	g := newGraph()

	inst := &command.TemplateInstantiator{Source: src, Offset: graph.Point{X: 50, Y: 60}}
	ids := inst.Instantiate(g)

	require.Len(t, ids, 2)
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())

	for _, id := range ids {
		n := g.FindNode(id)
		require.NotNil(t, n)
		assert.Nil(t, src.FindNode(id), "IDs are minted, never reused")
		assert.Equal(t, graph.Point{X: 50, Y: 60}, n.Position)
		for _, p := range n.Ports {
			assert.Equal(t, id, p.NodeID)
			assert.Nil(t, src.FindPort(p.ID))
		}
	}

	// The copied edge connects copied ports, not template ports.
	e := g.Edges()[0]
	assert.NotNil(t, g.FindPort(e.SourcePortID))
	assert.NotNil(t, g.FindPort(e.TargetPortID))

	// The template stays pristine.
	assert.Equal(t, 2, src.NodeCount())
	assert.NotNil(t, src.FindEdge("tpl.e"))
}

func TestTemplateInstantiator_NilSource(t *testing.T) {
	g := newGraph()
	inst := &command.TemplateInstantiator{}
	assert.Empty(t, inst.Instantiate(g))
	assert.Equal(t, 0, g.NodeCount())
}

func TestNewCreateSubGraph_PanicsOnNilInstantiator(t *testing.T) {
	assert.Panics(t, func() { command.NewCreateSubGraph("Sub", nil) })
}

func TestCreateSubGraph_InstantiatesAndGroups(t *testing.T) {
	src := template(t)
	g := newGraph()

	c := command.NewCreateSubGraph("Library Asset", &command.TemplateInstantiator{Source: src})
	c.Execute(g)

	require.Len(t, c.NodeIDs(), 2)
	f := g.FindSubGraphFrame(c.FrameID())
	require.NotNil(t, f)
	assert.Equal(t, "Library Asset", f.Title)
	assert.ElementsMatch(t, c.NodeIDs(), f.MemberIDs())

	rep := g.FindNode(f.RepresentativeNodeID)
	require.NotNil(t, rep)
	assert.Equal(t, graph.BoundaryNodeType, rep.TypeID)
	// 2 instantiated + 1 boundary node.
	assert.Equal(t, 3, g.NodeCount())
}

func TestCreateSubGraph_UndoRemovesEverything(t *testing.T) {
	src := template(t)
	g := newGraph()
	buildNode(t, g, "pre") // pre-existing content must survive
	before := g.Clone()

	c := command.NewCreateSubGraph("Sub", &command.TemplateInstantiator{Source: src})
	c.Execute(g)
	require.False(t, g.Equal(before))

	c.Undo(g)
	assert.True(t, g.Equal(before))
}

// Redo re-runs the instantiation: IDs may differ between runs, but the
// resulting shape is identical and Undo always tracks the latest run.
func TestCreateSubGraph_RedoReinstantiates(t *testing.T) {
	src := template(t)
	g := newGraph()
	empty := g.Clone()

	c := command.NewCreateSubGraph("Sub", &command.TemplateInstantiator{Source: src})
	c.Execute(g)
	firstIDs := c.NodeIDs()

	c.Undo(g)
	require.True(t, g.Equal(empty))

	c.Execute(g)
	secondIDs := c.NodeIDs()

	// Same shape, fresh identities.
	assert.NotEqual(t, firstIDs, secondIDs)
	assert.Equal(t, 3, g.NodeCount())
	assert.NotNil(t, g.FindSubGraphFrame(c.FrameID()))

	// Undo targets the latest run's IDs, not the first run's.
	c.Undo(g)
	assert.True(t, g.Equal(empty))
}
