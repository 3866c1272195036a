package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harwick/vellum/command"
	"github.com/harwick/vellum/graph"
)

func TestAddPort_ExactInverse(t *testing.T) {
	g := newGraph()
	buildNode(t, g, "a")
	before := g.Clone()

	c := command.NewAddPort("a", graph.PortDef{
		Name: "result", Direction: graph.Output, Kind: graph.Data, DataType: "string", Capacity: graph.Multiple,
	})
	c.Execute(g)

	require.Equal(t, "id1", c.PortID())
	p := g.FindPort("id1")
	require.NotNil(t, p)
	assert.Equal(t, "a", p.NodeID)
	assert.Equal(t, "result", p.Name)
	require.Len(t, g.FindNode("a").Ports, 1)

	c.Undo(g)
	assert.True(t, g.Equal(before))
}

func TestAddPort_RedoReplaysSameID(t *testing.T) {
	g := newGraph()
	buildNode(t, g, "a")

	c := command.NewAddPort("a", graph.PortDef{Name: "p", Direction: graph.Input, Kind: graph.Event, Capacity: graph.Multiple})
	c.Execute(g)
	after := g.Clone()
	id := c.PortID()

	c.Undo(g)
	c.Execute(g)
	assert.Equal(t, id, c.PortID())
	assert.True(t, g.Equal(after))
}

func TestAddPort_UndoDisconnectsLaterEdges(t *testing.T) {
	g := newGraph()
	buildNode(t, g, "a")
	buildNode(t, g, "b", inPort("b.in", "b", "in", graph.Data, "float", graph.Single))

	c := command.NewAddPort("a", graph.PortDef{Name: "out", Direction: graph.Output, Kind: graph.Data, DataType: "float", Capacity: graph.Multiple})
	c.Execute(g)
	mustEdge(t, g, "late", c.PortID(), "b.in")

	// An edge wired after the fact must not survive as a dangling reference.
	c.Undo(g)
	assert.Nil(t, g.FindPort(c.PortID()))
	assert.Nil(t, g.FindEdge("late"))
}

func TestAddPort_MissingNodeIsNoOp(t *testing.T) {
	g := newGraph()
	before := g.Clone()

	c := command.NewAddPort("ghost", graph.PortDef{Name: "p"})
	c.Execute(g)
	assert.Empty(t, c.PortID())
	c.Undo(g)
	assert.True(t, g.Equal(before))
}

func TestRemovePort_ExactInverse(t *testing.T) {
	g := newGraph()
	buildNode(t, g, "a", outPort("a.out", "a", "out", graph.Data, "float"))
	buildNode(t, g, "b", inPort("b.in", "b", "in", graph.Data, "float", graph.Multiple))
	buildNode(t, g, "c", inPort("c.in", "c", "in", graph.Data, "float", graph.Multiple))
	mustEdge(t, g, "e1", "a.out", "b.in")
	mustEdge(t, g, "e2", "a.out", "c.in")
	before := g.Clone()

	c := command.NewRemovePort("a.out")
	c.Execute(g)

	assert.Nil(t, g.FindPort("a.out"))
	assert.Equal(t, 0, g.EdgeCount())
	assert.Empty(t, g.FindNode("a").Ports)

	c.Undo(g)
	assert.True(t, g.Equal(before))
}

func TestRemovePort_MissingIsNoOp(t *testing.T) {
	g := newGraph()
	buildNode(t, g, "a")
	before := g.Clone()

	c := command.NewRemovePort("ghost")
	c.Execute(g)
	c.Undo(g)
	assert.True(t, g.Equal(before))
}
