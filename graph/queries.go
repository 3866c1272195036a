// Package graph: read queries. Every enumerating accessor returns entities
// sorted by ID so that iteration order is deterministic across runs (stable
// logs, stable goldens, stable boundary-port naming).
package graph

import "sort"

// FindNode returns the node with the given ID, or nil.
func (g *Graph) FindNode(id string) *Node { return g.nodes[id] }

// FindPort returns the port with the given ID, or nil.
func (g *Graph) FindPort(id string) *Port { return g.ports[id] }

// FindEdge returns the edge with the given ID, or nil.
func (g *Graph) FindEdge(id string) *Edge { return g.edges[id] }

// FindSubGraphFrame returns the frame with the given ID, or nil.
func (g *Graph) FindSubGraphFrame(id string) *SubGraphFrame { return g.frames[id] }

// FindComment returns the comment with the given ID, or nil.
func (g *Graph) FindComment(id string) *Comment { return g.comments[id] }

// Nodes returns all nodes sorted by ID.
// Complexity: O(V log V).
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Edges returns all edges sorted by ID.
// Complexity: O(E log E).
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SubGraphFrames returns all frames sorted by ID.
func (g *Graph) SubGraphFrames() []*SubGraphFrame {
	out := make([]*SubGraphFrame, 0, len(g.frames))
	for _, f := range g.frames {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Comments returns all comments sorted by ID.
func (g *Graph) Comments() []*Comment {
	out := make([]*Comment, 0, len(g.comments))
	for _, c := range g.comments {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// GetEdgesForPort returns every edge whose source or target is the port,
// sorted by edge ID. The result reflects the store at call time.
// Complexity: O(E).
func (g *Graph) GetEdgesForPort(portID string) []*Edge {
	var out []*Edge
	for _, e := range g.edges {
		if e.SourcePortID == portID || e.TargetPortID == portID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetEdgesForNode returns every edge touching any port of the node,
// sorted by edge ID. Empty when the node is absent.
// Complexity: O(E).
func (g *Graph) GetEdgesForNode(nodeID string) []*Edge {
	n, ok := g.nodes[nodeID]
	if !ok {
		return nil
	}
	owned := make(map[string]struct{}, len(n.Ports))
	for _, p := range n.Ports {
		owned[p.ID] = struct{}{}
	}
	var out []*Edge
	for _, e := range g.edges {
		if _, hit := owned[e.SourcePortID]; hit {
			out = append(out, e)
			continue
		}
		if _, hit := owned[e.TargetPortID]; hit {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FindContainerSubGraphFrame returns the frame containing the node, or nil.
// Frames never overlap, so at most one frame matches.
// Complexity: O(F).
func (g *Graph) FindContainerSubGraphFrame(nodeID string) *SubGraphFrame {
	for _, f := range g.SubGraphFrames() {
		if f.Contains(nodeID) {
			return f
		}
	}
	return nil
}
