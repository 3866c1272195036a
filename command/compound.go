package command

import "github.com/harwick/vellum/graph"

// Compound groups several commands into one atomic undo/redo unit.
// Execute replays children in original order; Undo reverses them in strict
// reverse order. The History's transaction scopes accumulate into one.
type Compound struct {
	description string
	children    []Command
}

// NewCompound builds a compound from the given children.
func NewCompound(description string, children ...Command) *Compound {
	return &Compound{description: description, children: children}
}

// Append adds a child that has already been executed by the History.
func (c *Compound) Append(cmd Command) {
	c.children = append(c.children, cmd)
}

// Len returns the number of children.
func (c *Compound) Len() int { return len(c.children) }

// Execute replays all children in original order.
func (c *Compound) Execute(g *graph.Graph) {
	for _, child := range c.children {
		child.Execute(g)
	}
}

// Undo reverses all children in strict reverse order.
func (c *Compound) Undo(g *graph.Graph) {
	for i := len(c.children) - 1; i >= 0; i-- {
		c.children[i].Undo(g)
	}
}

// Class is Structural if any child is Structural, otherwise Style.
func (c *Compound) Class() ChangeClass {
	for _, child := range c.children {
		if child.Class() == Structural {
			return Structural
		}
	}
	return Style
}

// Description returns the transaction description.
func (c *Compound) Description() string { return c.description }
