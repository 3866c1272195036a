package command

import (
	"fmt"

	"github.com/harwick/vellum/graph"
)

// Instantiator materializes external content (a template, a clipboard
// fragment, a library asset) into a graph, minting fresh IDs as it goes.
// It is the source of truth for ID assignment: every call may produce a
// different ID set. It returns the IDs of the nodes it created.
type Instantiator interface {
	Instantiate(g *graph.Graph) []string
}

// TemplateInstantiator copies the full content of a source graph into the
// target, minting new IDs from the target's generator and offsetting
// positions. Edges whose endpoints both live in the source are copied;
// nothing else is.
type TemplateInstantiator struct {
	Source *graph.Graph
	Offset graph.Point
}

// Instantiate copies the source content and returns the new node IDs.
func (t *TemplateInstantiator) Instantiate(g *graph.Graph) []string {
	if t.Source == nil {
		return nil
	}
	portMap := make(map[string]string)
	var nodeIDs []string
	for _, n := range t.Source.Nodes() {
		cn := n.Clone()
		cn.ID = g.NewID()
		cn.Position = graph.Point{X: n.Position.X + t.Offset.X, Y: n.Position.Y + t.Offset.Y}
		for _, p := range cn.Ports {
			old := p.ID
			p.ID = g.NewID()
			p.NodeID = cn.ID
			portMap[old] = p.ID
		}
		if err := g.AddNodeDirect(cn); err != nil {
			continue
		}
		nodeIDs = append(nodeIDs, cn.ID)
	}
	for _, e := range t.Source.Edges() {
		src, okSrc := portMap[e.SourcePortID]
		tgt, okTgt := portMap[e.TargetPortID]
		if !okSrc || !okTgt {
			continue
		}
		_ = g.AddEdgeDirect(&graph.Edge{
			ID:           g.NewID(),
			SourcePortID: src,
			TargetPortID: tgt,
			UserData:     e.UserData,
		})
	}
	return nodeIDs
}

// CreateSubGraph instantiates external content into the graph and groups it
// into a subgraph frame in one step.
//
// Unlike every other command, Execute is NOT a verbatim replay on Redo: the
// instantiator owns ID assignment, so each Execute re-runs the full
// instantiation and re-captures the created ID set. Undo therefore always
// targets the most recent run's IDs. Structure and shape are stable across
// Redo; identities are allowed to differ.
type CreateSubGraph struct {
	title string
	inst  Instantiator

	nodeIDs []string // most recent run
	group   *Group   // most recent run
}

// NewCreateSubGraph builds the command.
// Panics on a nil instantiator to surface programmer error early.
func NewCreateSubGraph(title string, inst Instantiator) *CreateSubGraph {
	if inst == nil {
		panic("command: NewCreateSubGraph(nil Instantiator)")
	}
	return &CreateSubGraph{title: title, inst: inst}
}

// FrameID returns the most recent run's frame ID, or "".
func (c *CreateSubGraph) FrameID() string {
	if c.group == nil {
		return ""
	}
	return c.group.FrameID()
}

// NodeIDs returns the most recent run's instantiated node IDs.
func (c *CreateSubGraph) NodeIDs() []string {
	return append([]string(nil), c.nodeIDs...)
}

// Execute instantiates the content and groups it. Re-runs fully on Redo.
func (c *CreateSubGraph) Execute(g *graph.Graph) {
	c.nodeIDs = c.inst.Instantiate(g)
	c.group = nil
	if len(c.nodeIDs) == 0 {
		return
	}
	c.group = NewGroup(c.title, c.nodeIDs...)
	c.group.Execute(g)
}

// Undo ungroups and deletes the most recent instantiation.
func (c *CreateSubGraph) Undo(g *graph.Graph) {
	if c.group != nil {
		c.group.Undo(g)
	}
	for i := len(c.nodeIDs) - 1; i >= 0; i-- {
		_ = g.RemoveNode(c.nodeIDs[i])
	}
}

// Class reports Structural.
func (c *CreateSubGraph) Class() ChangeClass { return Structural }

// Description names the operation.
func (c *CreateSubGraph) Description() string {
	return fmt.Sprintf("create subgraph %q", c.title)
}
