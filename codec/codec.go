// Package codec serializes a blueprint graph to and from a YAML document.
//
// The Document DTO is the durable shape: entity IDs, geometry, port
// definitions, wiring and frame containment. Opaque UserData is not
// serialized — it belongs to the embedding application. Loading applies the
// document through the store's *Direct primitives, bypassing the command
// layer: import/export is not undoable.
package codec

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/harwick/vellum/graph"
)

// Document is the YAML shape of a whole blueprint graph.
type Document struct {
	Nodes    []NodeDoc    `yaml:"nodes"`
	Edges    []EdgeDoc    `yaml:"edges"`
	Frames   []FrameDoc   `yaml:"frames,omitempty"`
	Comments []CommentDoc `yaml:"comments,omitempty"`
}

// NodeDoc is the YAML shape of one node and its ports.
type NodeDoc struct {
	ID          string    `yaml:"id"`
	Type        string    `yaml:"type"`
	X           float64   `yaml:"x"`
	Y           float64   `yaml:"y"`
	W           float64   `yaml:"w,omitempty"`
	H           float64   `yaml:"h,omitempty"`
	DisplayMode string    `yaml:"display_mode,omitempty"`
	Ports       []PortDoc `yaml:"ports,omitempty"`
}

// PortDoc is the YAML shape of one port.
type PortDoc struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Direction string `yaml:"direction"`
	Kind      string `yaml:"kind"`
	DataType  string `yaml:"data_type,omitempty"`
	Capacity  string `yaml:"capacity"`
	SortOrder int    `yaml:"sort_order,omitempty"`
}

// EdgeDoc is the YAML shape of one edge.
type EdgeDoc struct {
	ID     string `yaml:"id"`
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// FrameDoc is the YAML shape of one subgraph frame.
type FrameDoc struct {
	ID             string   `yaml:"id"`
	Title          string   `yaml:"title,omitempty"`
	Representative string   `yaml:"representative"`
	X              float64  `yaml:"x"`
	Y              float64  `yaml:"y"`
	W              float64  `yaml:"w"`
	H              float64  `yaml:"h"`
	Collapsed      bool     `yaml:"collapsed,omitempty"`
	Members        []string `yaml:"members"`
}

// CommentDoc is the YAML shape of one comment.
type CommentDoc struct {
	ID   string  `yaml:"id"`
	Text string  `yaml:"text"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	W    float64 `yaml:"w,omitempty"`
	H    float64 `yaml:"h,omitempty"`
}

// Snapshot captures the full store as a Document. Output order follows the
// store's sorted accessors, so repeated snapshots of one graph are
// byte-identical.
func Snapshot(g *graph.Graph) *Document {
	doc := &Document{}
	for _, n := range g.Nodes() {
		nd := NodeDoc{
			ID:          n.ID,
			Type:        n.TypeID,
			X:           n.Position.X,
			Y:           n.Position.Y,
			W:           n.Size.W,
			H:           n.Size.H,
			DisplayMode: n.DisplayMode.String(),
		}
		for _, p := range n.Ports {
			nd.Ports = append(nd.Ports, PortDoc{
				ID:        p.ID,
				Name:      p.Name,
				Direction: p.Direction.String(),
				Kind:      p.Kind.String(),
				DataType:  p.DataType,
				Capacity:  p.Capacity.String(),
				SortOrder: p.SortOrder,
			})
		}
		doc.Nodes = append(doc.Nodes, nd)
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, EdgeDoc{ID: e.ID, Source: e.SourcePortID, Target: e.TargetPortID})
	}
	for _, f := range g.SubGraphFrames() {
		doc.Frames = append(doc.Frames, FrameDoc{
			ID:             f.ID,
			Title:          f.Title,
			Representative: f.RepresentativeNodeID,
			X:              f.Bounds.X,
			Y:              f.Bounds.Y,
			W:              f.Bounds.W,
			H:              f.Bounds.H,
			Collapsed:      f.IsCollapsed,
			Members:        f.MemberIDs(),
		})
	}
	for _, c := range g.Comments() {
		doc.Comments = append(doc.Comments, CommentDoc{
			ID: c.ID, Text: c.Text, X: c.Position.X, Y: c.Position.Y, W: c.Size.W, H: c.Size.H,
		})
	}
	return doc
}

// Load applies a Document to the graph through the *Direct primitives.
// The document lands in a scratch store first and replaces the graph's
// content only after every entity applied cleanly, so a malformed document
// never half-loads and never destroys prior content.
func Load(g *graph.Graph, doc *Document) error {
	if doc == nil {
		return fmt.Errorf("codec: nil document")
	}
	scratch := graph.New()
	if err := apply(scratch, doc); err != nil {
		return err
	}
	g.ReplaceContent(scratch)
	return nil
}

// apply lands every document entity in an empty store.
func apply(g *graph.Graph, doc *Document) error {
	nodes, err := buildNodes(doc)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		if err := g.AddNodeDirect(n); err != nil {
			return fmt.Errorf("codec: node %s: %w", n.ID, err)
		}
	}
	for _, ed := range doc.Edges {
		e := &graph.Edge{ID: ed.ID, SourcePortID: ed.Source, TargetPortID: ed.Target}
		if err := g.AddEdgeDirect(e); err != nil {
			return fmt.Errorf("codec: edge %s: %w", ed.ID, err)
		}
	}
	for _, fd := range doc.Frames {
		f := graph.NewSubGraphFrame(fd.ID, fd.Title, fd.Representative, fd.Members...)
		f.Bounds = graph.Rect{X: fd.X, Y: fd.Y, W: fd.W, H: fd.H}
		f.IsCollapsed = fd.Collapsed
		if err := g.AddSubGraphFrameDirect(f); err != nil {
			return fmt.Errorf("codec: frame %s: %w", fd.ID, err)
		}
	}
	for _, cd := range doc.Comments {
		c := &graph.Comment{
			ID:       cd.ID,
			Text:     cd.Text,
			Position: graph.Point{X: cd.X, Y: cd.Y},
			Size:     graph.Size{W: cd.W, H: cd.H},
		}
		if err := g.AddCommentDirect(c); err != nil {
			return fmt.Errorf("codec: comment %s: %w", cd.ID, err)
		}
	}
	return nil
}

// buildNodes converts and validates every node before mutation starts.
func buildNodes(doc *Document) ([]*graph.Node, error) {
	nodes := make([]*graph.Node, 0, len(doc.Nodes))
	for _, nd := range doc.Nodes {
		mode := graph.Expanded
		if nd.DisplayMode != "" {
			m, err := graph.ParseDisplayMode(nd.DisplayMode)
			if err != nil {
				return nil, fmt.Errorf("codec: node %s: %w", nd.ID, err)
			}
			mode = m
		}
		n := &graph.Node{
			ID:          nd.ID,
			TypeID:      nd.Type,
			Position:    graph.Point{X: nd.X, Y: nd.Y},
			Size:        graph.Size{W: nd.W, H: nd.H},
			DisplayMode: mode,
		}
		for _, pd := range nd.Ports {
			dir, err := graph.ParseDirection(pd.Direction)
			if err != nil {
				return nil, fmt.Errorf("codec: port %s: %w", pd.ID, err)
			}
			kind, err := graph.ParsePortKind(pd.Kind)
			if err != nil {
				return nil, fmt.Errorf("codec: port %s: %w", pd.ID, err)
			}
			cap_, err := graph.ParseCapacity(pd.Capacity)
			if err != nil {
				return nil, fmt.Errorf("codec: port %s: %w", pd.ID, err)
			}
			n.Ports = append(n.Ports, &graph.Port{
				ID:        pd.ID,
				NodeID:    nd.ID,
				Name:      pd.Name,
				Direction: dir,
				Kind:      kind,
				DataType:  pd.DataType,
				Capacity:  cap_,
				SortOrder: pd.SortOrder,
			})
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// Encode writes the document as YAML.
func Encode(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("codec: encode: %w", err)
	}
	return enc.Close()
}

// Decode reads a document from YAML.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("codec: decode: %w", err)
	}
	return &doc, nil
}

// Write snapshots the graph and encodes it in one step.
func Write(w io.Writer, g *graph.Graph) error {
	return Encode(w, Snapshot(g))
}

// Read decodes a document and loads it into the graph in one step.
func Read(r io.Reader, g *graph.Graph) error {
	doc, err := Decode(r)
	if err != nil {
		return err
	}
	return Load(g, doc)
}
