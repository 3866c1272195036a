package command

// Shared machinery of the subgraph encapsulation algorithm: boundary-port
// inference and cross-edge classification, used by Group, Ungroup and
// CreateSubGraph.

import (
	"fmt"
	"sort"

	"github.com/harwick/vellum/graph"
)

// Fixed semantic names for Control-kind boundary ports.
const (
	boundaryActivateName = "activate"
	boundaryCompleteName = "complete"
)

// Geometry of created frames and representative nodes.
const (
	framePadding   = 24.0
	frameTitleBar  = 28.0
	repNodeMargin  = 48.0
	repNodeWidth   = 160.0
	repNodeHeight  = 80.0
	defaultFrameW  = 200.0
	defaultFrameH  = 120.0
)

// boundaryKey is the coarse compatibility classifier for cross-boundary
// edges: every edge of one key funnels through one shared boundary port.
// Two unrelated data edges of the same primitive type deliberately share a
// port — a bounded, predictable port count beats per-edge precision.
type boundaryKey struct {
	direction graph.Direction
	kind      graph.PortKind
	dataType  string
}

// crossEdge is one edge crossing the selection boundary, resolved to its
// internal and external endpoints.
type crossEdge struct {
	edge           *graph.Edge
	internalPortID string
	externalPortID string
	key            boundaryKey
}

// classifyCrossEdges scans every edge and returns the ones crossing the
// member boundary, in edge-ID order so boundary-port allocation (and thus
// port naming) is deterministic. Edges fully inside or fully outside the
// selection are not returned.
func classifyCrossEdges(g *graph.Graph, members map[string]struct{}) []crossEdge {
	var out []crossEdge
	for _, e := range g.Edges() {
		src := g.FindPort(e.SourcePortID)
		tgt := g.FindPort(e.TargetPortID)
		if src == nil || tgt == nil {
			continue
		}
		_, srcIn := members[src.NodeID]
		_, tgtIn := members[tgt.NodeID]
		switch {
		case srcIn && !tgtIn: // outgoing
			out = append(out, crossEdge{
				edge:           e,
				internalPortID: src.ID,
				externalPortID: tgt.ID,
				key:            boundaryKey{direction: graph.Output, kind: src.Kind, dataType: src.DataType},
			})
		case !srcIn && tgtIn: // incoming
			out = append(out, crossEdge{
				edge:           e,
				internalPortID: tgt.ID,
				externalPortID: src.ID,
				key:            boundaryKey{direction: graph.Input, kind: tgt.Kind, dataType: tgt.DataType},
			})
		}
	}
	return out
}

// boundaryAllocator mints at most one boundary port per key on the
// representative node being built.
type boundaryAllocator struct {
	repNodeID string
	byKey     map[boundaryKey]*graph.Port
	ports     []*graph.Port
	inSeq     int
	outSeq    int
}

func newBoundaryAllocator(repNodeID string) *boundaryAllocator {
	return &boundaryAllocator{
		repNodeID: repNodeID,
		byKey:     make(map[boundaryKey]*graph.Port),
	}
}

// portFor returns the boundary port for the key, minting it on first use.
// Control ports carry fixed semantic names; other kinds are numbered per
// direction. Boundary ports always have Capacity Multiple: they fan many
// internal endpoints in and out.
func (a *boundaryAllocator) portFor(g *graph.Graph, k boundaryKey) *graph.Port {
	if p, ok := a.byKey[k]; ok {
		return p
	}
	var name string
	switch {
	case k.kind == graph.Control && k.direction == graph.Input:
		name = boundaryActivateName
	case k.kind == graph.Control:
		name = boundaryCompleteName
	case k.direction == graph.Input:
		a.inSeq++
		name = fmt.Sprintf("in%d", a.inSeq)
	default:
		a.outSeq++
		name = fmt.Sprintf("out%d", a.outSeq)
	}
	p := &graph.Port{
		ID:        g.NewID(),
		NodeID:    a.repNodeID,
		Name:      name,
		Direction: k.direction,
		Kind:      k.kind,
		DataType:  k.dataType,
		Capacity:  graph.Multiple,
		SortOrder: len(a.ports),
	}
	a.byKey[k] = p
	a.ports = append(a.ports, p)
	return p
}

// ensureDefaults synthesizes the default Control entry and exit ports when
// inference found none: a frame must always expose at least one way in and
// one way out.
func (a *boundaryAllocator) ensureDefaults(g *graph.Graph) {
	var hasIn, hasOut bool
	for _, p := range a.ports {
		if p.Direction == graph.Input {
			hasIn = true
		} else {
			hasOut = true
		}
	}
	if !hasIn {
		a.portFor(g, boundaryKey{direction: graph.Input, kind: graph.Control})
	}
	if !hasOut {
		a.portFor(g, boundaryKey{direction: graph.Output, kind: graph.Control})
	}
}

// memberBounds computes the frame rectangle: the bounding box of the member
// nodes grown by padding, with extra headroom for the title bar.
func memberBounds(g *graph.Graph, memberIDs []string) graph.Rect {
	first := true
	var minX, minY, maxX, maxY float64
	for _, id := range memberIDs {
		n := g.FindNode(id)
		if n == nil {
			continue
		}
		b := n.Bounds()
		if first {
			minX, minY, maxX, maxY = b.X, b.Y, b.X+b.W, b.Y+b.H
			first = false
			continue
		}
		minX = min(minX, b.X)
		minY = min(minY, b.Y)
		maxX = max(maxX, b.X+b.W)
		maxY = max(maxY, b.Y+b.H)
	}
	if first {
		return graph.Rect{W: defaultFrameW, H: defaultFrameH}
	}
	return graph.Rect{
		X: minX - framePadding,
		Y: minY - framePadding - frameTitleBar,
		W: maxX - minX + 2*framePadding,
		H: maxY - minY + 2*framePadding + frameTitleBar,
	}
}

// filterGroupable narrows a selection to the node IDs eligible for
// grouping: the ID must resolve, must not be of the reserved boundary type,
// and must not already live inside another frame (single-level nesting).
// Duplicates are dropped; the result is sorted for deterministic plans.
func filterGroupable(g *graph.Graph, selection []string) []string {
	seen := make(map[string]struct{}, len(selection))
	var out []string
	for _, id := range selection {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		n := g.FindNode(id)
		if n == nil || n.TypeID == graph.BoundaryNodeType {
			continue
		}
		if g.FindContainerSubGraphFrame(id) != nil {
			continue
		}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
