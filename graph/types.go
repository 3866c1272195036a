// Package graph defines the blueprint entities (Node, Port, Edge,
// SubGraphFrame, Comment), their enums, and sentinel errors for the
// graph subpackage of github.com/harwick/vellum.
package graph

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors for graph store operations.
var (
	// ErrNilEntity indicates a nil Node/Port/Edge/SubGraphFrame/Comment was passed.
	ErrNilEntity = errors.New("graph: entity is nil")
	// ErrEmptyID indicates the provided entity has an empty ID.
	ErrEmptyID = errors.New("graph: entity ID is empty")
	// ErrDuplicateID indicates the ID is already taken in this store.
	ErrDuplicateID = errors.New("graph: duplicate entity ID")
	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("graph: node not found")
	// ErrPortNotFound indicates an operation referenced a non-existent port.
	ErrPortNotFound = errors.New("graph: port not found")
	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("graph: edge not found")
	// ErrFrameNotFound indicates an operation referenced a non-existent subgraph frame.
	ErrFrameNotFound = errors.New("graph: subgraph frame not found")
	// ErrCommentNotFound indicates an operation referenced a non-existent comment.
	ErrCommentNotFound = errors.New("graph: comment not found")
	// ErrDanglingEdge indicates an edge references a port that does not exist.
	ErrDanglingEdge = errors.New("graph: edge references missing port")
)

// BoundaryNodeType is the reserved TypeID of subgraph representative nodes.
// Nodes of this type are never eligible for grouping themselves.
const BoundaryNodeType = "vellum.boundary"

// Point is a 2D position in editor coordinates.
type Point struct {
	X, Y float64
}

// Size is a 2D extent in editor coordinates.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle (origin + extent).
type Rect struct {
	X, Y, W, H float64
}

// Direction tells whether a port consumes (Input) or produces (Output).
type Direction int

const (
	// Input ports are edge targets.
	Input Direction = iota
	// Output ports are edge sources.
	Output
)

// String returns the lowercase textual form used by codecs and repositories.
func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// ParseDirection converts the textual form back into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "input":
		return Input, nil
	case "output":
		return Output, nil
	default:
		return Input, fmt.Errorf("graph: unknown direction %q", s)
	}
}

// PortKind classifies what flows through a port.
type PortKind int

const (
	// Data ports carry values.
	Data PortKind = iota
	// Control ports carry execution order.
	Control
	// Event ports carry asynchronous triggers.
	Event
)

// String returns the lowercase textual form used by codecs and repositories.
func (k PortKind) String() string {
	switch k {
	case Control:
		return "control"
	case Event:
		return "event"
	default:
		return "data"
	}
}

// ParsePortKind converts the textual form back into a PortKind.
func ParsePortKind(s string) (PortKind, error) {
	switch s {
	case "data":
		return Data, nil
	case "control":
		return Control, nil
	case "event":
		return Event, nil
	default:
		return Data, fmt.Errorf("graph: unknown port kind %q", s)
	}
}

// Capacity tells how many simultaneous edges a port accepts.
type Capacity int

const (
	// Single ports accept at most one incoming edge; connecting a second displaces the first.
	Single Capacity = iota
	// Multiple ports accept any number of edges.
	Multiple
)

// String returns the lowercase textual form used by codecs and repositories.
func (c Capacity) String() string {
	if c == Multiple {
		return "multiple"
	}
	return "single"
}

// ParseCapacity converts the textual form back into a Capacity.
func ParseCapacity(s string) (Capacity, error) {
	switch s {
	case "single":
		return Single, nil
	case "multiple":
		return Multiple, nil
	default:
		return Single, fmt.Errorf("graph: unknown capacity %q", s)
	}
}

// DisplayMode selects how a node is rendered.
type DisplayMode int

const (
	// Expanded shows the node with its full port list.
	Expanded DisplayMode = iota
	// Collapsed shows the node as a compact header.
	Collapsed
)

// String returns the lowercase textual form used by codecs and repositories.
func (m DisplayMode) String() string {
	if m == Collapsed {
		return "collapsed"
	}
	return "expanded"
}

// ParseDisplayMode converts the textual form back into a DisplayMode.
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch s {
	case "expanded":
		return Expanded, nil
	case "collapsed":
		return Collapsed, nil
	default:
		return Expanded, fmt.Errorf("graph: unknown display mode %q", s)
	}
}

// Port is an attachment point on a Node. It is owned exclusively by its node
// and never outlives it; edges reference ports by ID only.
type Port struct {
	// ID uniquely identifies this port within its store.
	ID string
	// NodeID is the owning node.
	NodeID string
	// Name is the user-visible label.
	Name string
	// Direction tells whether the port consumes or produces.
	Direction Direction
	// Kind classifies the payload.
	Kind PortKind
	// DataType is an opaque type tag ("exec", "float", ...).
	DataType string
	// Capacity limits simultaneous edges (Single displaces, Multiple fans).
	Capacity Capacity
	// SortOrder fixes the display position among sibling ports.
	SortOrder int
}

// Clone returns a copy of the port.
func (p *Port) Clone() *Port {
	cp := *p
	return &cp
}

// PortDef describes a port to be created; the caller mints the ID.
type PortDef struct {
	Name      string
	Direction Direction
	Kind      PortKind
	DataType  string
	Capacity  Capacity
	SortOrder int
}

// Node is a blueprint node: a typed entity with an ordered port list.
type Node struct {
	// ID uniquely identifies this node within its store.
	ID string
	// TypeID names the node archetype; BoundaryNodeType is reserved.
	TypeID string
	// Position is the top-left corner in editor coordinates.
	Position Point
	// Size is the rendered extent.
	Size Size
	// DisplayMode selects expanded or collapsed rendering.
	DisplayMode DisplayMode
	// Ports is the ordered list of owned ports (SortOrder asc, then ID).
	Ports []*Port
	// UserData carries opaque caller state; shared, never deep-copied.
	UserData any
}

// Port returns the owned port with the given ID, or nil.
func (n *Node) Port(id string) *Port {
	for _, p := range n.Ports {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PortByName returns the first owned port with the given name, or nil.
func (n *Node) PortByName(name string) *Port {
	for _, p := range n.Ports {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Bounds returns the node's rectangle (Position + Size).
func (n *Node) Bounds() Rect {
	return Rect{X: n.Position.X, Y: n.Position.Y, W: n.Size.W, H: n.Size.H}
}

// Clone returns a deep copy of the node and its ports.
// UserData is shared by reference.
func (n *Node) Clone() *Node {
	cn := *n
	cn.Ports = make([]*Port, len(n.Ports))
	for i, p := range n.Ports {
		cn.Ports[i] = p.Clone()
	}
	return &cn
}

// sortPorts restores the canonical SortOrder-then-ID ordering.
func (n *Node) sortPorts() {
	sort.SliceStable(n.Ports, func(i, j int) bool {
		if n.Ports[i].SortOrder != n.Ports[j].SortOrder {
			return n.Ports[i].SortOrder < n.Ports[j].SortOrder
		}
		return n.Ports[i].ID < n.Ports[j].ID
	})
}

// Edge connects a source port to a target port. Endpoints are weak
// references by ID: removing a port must first remove its edges.
type Edge struct {
	// ID uniquely identifies this edge within its store.
	ID string
	// SourcePortID is the producing endpoint.
	SourcePortID string
	// TargetPortID is the consuming endpoint.
	TargetPortID string
	// UserData carries opaque caller state; shared, never deep-copied.
	UserData any
}

// Clone returns a copy of the edge. UserData is shared by reference.
func (e *Edge) Clone() *Edge {
	ce := *e
	return &ce
}

// SubGraphFrame is a collapsible group of nodes represented by a single
// boundary node. Frames do not nest: a contained node belongs to at most
// one frame, and a representative node is never itself contained.
type SubGraphFrame struct {
	// ID uniquely identifies this frame within its store.
	ID string
	// Title is the user-visible frame caption.
	Title string
	// RepresentativeNodeID is the boundary node standing in for the frame.
	RepresentativeNodeID string
	// Bounds is the frame rectangle enclosing its members.
	Bounds Rect
	// IsCollapsed hides members and shows only the representative node.
	IsCollapsed bool

	members map[string]struct{}
}

// NewSubGraphFrame builds a frame containing the given member node IDs.
func NewSubGraphFrame(id, title, representativeNodeID string, memberIDs ...string) *SubGraphFrame {
	f := &SubGraphFrame{
		ID:                   id,
		Title:                title,
		RepresentativeNodeID: representativeNodeID,
		members:              make(map[string]struct{}, len(memberIDs)),
	}
	for _, m := range memberIDs {
		f.members[m] = struct{}{}
	}
	return f
}

// Contains reports whether the node is a member of this frame.
func (f *SubGraphFrame) Contains(nodeID string) bool {
	_, ok := f.members[nodeID]
	return ok
}

// AddMember records the node as contained in this frame.
func (f *SubGraphFrame) AddMember(nodeID string) {
	if f.members == nil {
		f.members = make(map[string]struct{})
	}
	f.members[nodeID] = struct{}{}
}

// RemoveMember drops the node from this frame's containment record.
func (f *SubGraphFrame) RemoveMember(nodeID string) {
	delete(f.members, nodeID)
}

// MemberIDs returns the contained node IDs, sorted.
func (f *SubGraphFrame) MemberIDs() []string {
	ids := make([]string, 0, len(f.members))
	for id := range f.members {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MemberCount returns the number of contained nodes.
func (f *SubGraphFrame) MemberCount() int { return len(f.members) }

// Clone returns a deep copy of the frame.
func (f *SubGraphFrame) Clone() *SubGraphFrame {
	cf := *f
	cf.members = make(map[string]struct{}, len(f.members))
	for id := range f.members {
		cf.members[id] = struct{}{}
	}
	return &cf
}

// Comment is a free-floating annotation; it takes no part in wiring.
type Comment struct {
	// ID uniquely identifies this comment within its store.
	ID string
	// Text is the annotation body.
	Text string
	// Position is the top-left corner in editor coordinates.
	Position Point
	// Size is the rendered extent.
	Size Size
}

// Clone returns a copy of the comment.
func (c *Comment) Clone() *Comment {
	cc := *c
	return &cc
}
