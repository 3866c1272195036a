package command

import (
	"fmt"

	"github.com/harwick/vellum/graph"
)

// AddComment places a free-floating annotation. The comment ID is minted on
// first Execute and reused verbatim on Redo.
type AddComment struct {
	text     string
	position graph.Point
	size     graph.Size
	comment  *graph.Comment
}

// NewAddComment builds the command.
func NewAddComment(text string, position graph.Point, size graph.Size) *AddComment {
	return &AddComment{text: text, position: position, size: size}
}

// CommentID returns the minted comment ID, or "" before Execute.
func (c *AddComment) CommentID() string {
	if c.comment == nil {
		return ""
	}
	return c.comment.ID
}

// Execute inserts the comment.
func (c *AddComment) Execute(g *graph.Graph) {
	if c.comment == nil {
		c.comment = &graph.Comment{
			ID:       g.NewID(),
			Text:     c.text,
			Position: c.position,
			Size:     c.size,
		}
	}
	_ = g.AddCommentDirect(c.comment.Clone())
}

// Undo removes the comment again.
func (c *AddComment) Undo(g *graph.Graph) {
	if c.comment == nil {
		return
	}
	_ = g.RemoveComment(c.comment.ID)
}

// Class reports Style.
func (c *AddComment) Class() ChangeClass { return Style }

// Description names the operation.
func (c *AddComment) Description() string { return "add comment" }

// RemoveComment deletes an annotation, snapshotting it for undo.
type RemoveComment struct {
	commentID string
	ran       bool
	removed   *graph.Comment
}

// NewRemoveComment builds the command. A missing comment makes Execute a no-op.
func NewRemoveComment(commentID string) *RemoveComment {
	return &RemoveComment{commentID: commentID}
}

// Execute snapshots and removes the comment.
func (c *RemoveComment) Execute(g *graph.Graph) {
	if !c.ran {
		c.ran = true
		if cm := g.FindComment(c.commentID); cm != nil {
			c.removed = cm.Clone()
		}
	}
	if c.removed == nil {
		return
	}
	_ = g.RemoveComment(c.commentID)
}

// Undo restores the comment verbatim.
func (c *RemoveComment) Undo(g *graph.Graph) {
	if c.removed == nil {
		return
	}
	_ = g.AddCommentDirect(c.removed.Clone())
}

// Class reports Style.
func (c *RemoveComment) Class() ChangeClass { return Style }

// Description names the operation.
func (c *RemoveComment) Description() string {
	return fmt.Sprintf("remove comment %s", c.commentID)
}
