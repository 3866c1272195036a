package command_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harwick/vellum/graph"
)

// newGraph returns a store with a deterministic ID sequence so tests can
// assert minted identities directly.
func newGraph() *graph.Graph {
	return graph.New(graph.WithIDGen(graph.NewSequentialGen("id")))
}

func outPort(id, nodeID, name string, kind graph.PortKind, dataType string) *graph.Port {
	return &graph.Port{
		ID: id, NodeID: nodeID, Name: name,
		Direction: graph.Output, Kind: kind, DataType: dataType, Capacity: graph.Multiple,
	}
}

func inPort(id, nodeID, name string, kind graph.PortKind, dataType string, cap_ graph.Capacity) *graph.Port {
	return &graph.Port{
		ID: id, NodeID: nodeID, Name: name,
		Direction: graph.Input, Kind: kind, DataType: dataType, Capacity: cap_,
	}
}

// buildNode inserts a node with explicit IDs so assertions stay readable.
func buildNode(t *testing.T, g *graph.Graph, id string, ports ...*graph.Port) *graph.Node {
	t.Helper()
	n := &graph.Node{ID: id, TypeID: "test.op", Size: graph.Size{W: 120, H: 60}}
	n.Ports = append(n.Ports, ports...)
	require.NoError(t, g.AddNodeDirect(n))
	return n
}

func mustEdge(t *testing.T, g *graph.Graph, id, src, tgt string) {
	t.Helper()
	require.NoError(t, g.AddEdgeDirect(&graph.Edge{ID: id, SourcePortID: src, TargetPortID: tgt}))
}

// fanOutGraph builds the canonical grouping scenario:
//
//	A.o (Control, Output) --e1--> B.i (Control, Input)
//	A.o                   --e2--> C.i2 (Control, Input)
//
// Grouping {A} must merge both edges through one "complete" boundary port.
func fanOutGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := newGraph()
	buildNode(t, g, "A", outPort("A.o", "A", "o", graph.Control, ""))
	buildNode(t, g, "B", inPort("B.i", "B", "i", graph.Control, "", graph.Multiple))
	buildNode(t, g, "C", inPort("C.i2", "C", "i2", graph.Control, "", graph.Multiple))
	mustEdge(t, g, "e1", "A.o", "B.i")
	mustEdge(t, g, "e2", "A.o", "C.i2")
	return g
}
