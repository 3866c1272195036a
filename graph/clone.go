// Package graph: deep copy and structural equality.
//
// Clone/Equal exist so that callers (and tests) can capture a snapshot
// before a command runs and assert the exact-inverse property after undo.
package graph

import "reflect"

// Clone returns a deep copy of the store: nodes (with ports), edges, frames
// and comments. IDs are preserved; UserData is shared by reference; the ID
// generator is carried so minting continues the same sequence on the clone.
// Complexity: O(V + P + E + F + C).
func (g *Graph) Clone() *Graph {
	clone := New(WithIDGen(g.idgen))
	for id, n := range g.nodes {
		cn := n.Clone()
		clone.nodes[id] = cn
		for _, p := range cn.Ports {
			clone.ports[p.ID] = p
		}
	}
	for id, e := range g.edges {
		clone.edges[id] = e.Clone()
	}
	for id, f := range g.frames {
		clone.frames[id] = f.Clone()
	}
	for id, c := range g.comments {
		clone.comments[id] = c.Clone()
	}
	return clone
}

// Equal reports whether two stores hold structurally identical content:
// same entity IDs, same field values, same port order, same frame members.
// UserData is compared with reflect.DeepEqual.
// Complexity: O(V + P + E + F + C).
func (g *Graph) Equal(o *Graph) bool {
	if o == nil {
		return false
	}
	if len(g.nodes) != len(o.nodes) || len(g.edges) != len(o.edges) ||
		len(g.frames) != len(o.frames) || len(g.comments) != len(o.comments) {
		return false
	}
	for id, n := range g.nodes {
		on, ok := o.nodes[id]
		if !ok || !nodesEqual(n, on) {
			return false
		}
	}
	for id, e := range g.edges {
		oe, ok := o.edges[id]
		if !ok || !edgesEqual(e, oe) {
			return false
		}
	}
	for id, f := range g.frames {
		of, ok := o.frames[id]
		if !ok || !framesEqual(f, of) {
			return false
		}
	}
	for id, c := range g.comments {
		oc, ok := o.comments[id]
		if !ok || *c != *oc {
			return false
		}
	}
	return true
}

func nodesEqual(a, b *Node) bool {
	if a.ID != b.ID || a.TypeID != b.TypeID || a.Position != b.Position ||
		a.Size != b.Size || a.DisplayMode != b.DisplayMode || len(a.Ports) != len(b.Ports) {
		return false
	}
	for i := range a.Ports {
		if *a.Ports[i] != *b.Ports[i] {
			return false
		}
	}
	return reflect.DeepEqual(a.UserData, b.UserData)
}

func edgesEqual(a, b *Edge) bool {
	return a.ID == b.ID && a.SourcePortID == b.SourcePortID &&
		a.TargetPortID == b.TargetPortID && reflect.DeepEqual(a.UserData, b.UserData)
}

func framesEqual(a, b *SubGraphFrame) bool {
	if a.ID != b.ID || a.Title != b.Title || a.RepresentativeNodeID != b.RepresentativeNodeID ||
		a.Bounds != b.Bounds || a.IsCollapsed != b.IsCollapsed || len(a.members) != len(b.members) {
		return false
	}
	for id := range a.members {
		if _, ok := b.members[id]; !ok {
			return false
		}
	}
	return true
}
