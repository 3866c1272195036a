package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harwick/vellum/command"
	"github.com/harwick/vellum/graph"
)

func TestConnect_ExactInverse(t *testing.T) {
	g := newGraph()
	buildNode(t, g, "a", outPort("a.out", "a", "out", graph.Data, "float"))
	buildNode(t, g, "b", inPort("b.in", "b", "in", graph.Data, "float", graph.Single))
	before := g.Clone()

	c := command.NewConnect("a.out", "b.in")
	c.Execute(g)
	require.NotEmpty(t, c.CreatedEdgeID())
	require.NotNil(t, g.FindEdge(c.CreatedEdgeID()))

	c.Undo(g)
	assert.True(t, g.Equal(before))
}

func TestConnect_DisplacementRestoredOnUndo(t *testing.T) {
	g := newGraph()
	buildNode(t, g, "a", outPort("a.out", "a", "out", graph.Data, "float"))
	buildNode(t, g, "b", outPort("b.out", "b", "out", graph.Data, "float"))
	buildNode(t, g, "c", inPort("c.in", "c", "in", graph.Data, "float", graph.Single))
	mustEdge(t, g, "resident", "a.out", "c.in")
	before := g.Clone()

	c := command.NewConnect("b.out", "c.in")
	c.Execute(g)

	assert.Nil(t, g.FindEdge("resident"))
	require.NotNil(t, g.FindEdge(c.CreatedEdgeID()))
	assert.Equal(t, 1, g.EdgeCount())

	// Undo restores the displaced edge under its original ID.
	c.Undo(g)
	assert.True(t, g.Equal(before))
	assert.NotNil(t, g.FindEdge("resident"))
}

func TestConnect_RedoKeepsEdgeID(t *testing.T) {
	g := newGraph()
	buildNode(t, g, "a", outPort("a.out", "a", "out", graph.Data, "float"))
	buildNode(t, g, "b", inPort("b.in", "b", "in", graph.Data, "float", graph.Single))

	c := command.NewConnect("a.out", "b.in")
	c.Execute(g)
	id := c.CreatedEdgeID()
	after := g.Clone()

	c.Undo(g)
	c.Execute(g)

	assert.Equal(t, id, c.CreatedEdgeID())
	assert.True(t, g.Equal(after))
}

func TestConnect_MissingPortIsNoOp(t *testing.T) {
	g := newGraph()
	buildNode(t, g, "a", outPort("a.out", "a", "out", graph.Data, "float"))
	before := g.Clone()

	c := command.NewConnect("a.out", "ghost")
	c.Execute(g)
	assert.Empty(t, c.CreatedEdgeID())
	assert.True(t, g.Equal(before))

	// Undo of a no-op stays a no-op.
	c.Undo(g)
	assert.True(t, g.Equal(before))
}

func TestDisconnect_ExactInverse(t *testing.T) {
	g := newGraph()
	buildNode(t, g, "a", outPort("a.out", "a", "out", graph.Data, "float"))
	buildNode(t, g, "b", inPort("b.in", "b", "in", graph.Data, "float", graph.Single))
	mustEdge(t, g, "e1", "a.out", "b.in")
	before := g.Clone()

	c := command.NewDisconnect("e1")
	c.Execute(g)
	assert.Nil(t, g.FindEdge("e1"))

	c.Undo(g)
	assert.True(t, g.Equal(before))
}

func TestDisconnect_MissingEdgeIsNoOp(t *testing.T) {
	g := newGraph()
	before := g.Clone()

	c := command.NewDisconnect("ghost")
	c.Execute(g)
	c.Undo(g)
	assert.True(t, g.Equal(before))
}
