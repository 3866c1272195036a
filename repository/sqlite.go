// Package repository persists a blueprint graph to SQLite.
//
// Save/Load round-trip the full store — nodes, ports, edges, frames, frame
// membership, comments — through the graph's enumerable accessors and
// *Direct primitives, bypassing the command layer: persistence is not
// undoable. Opaque UserData is not persisted.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/harwick/vellum/graph"
)

// Repository stores blueprint graphs in a SQLite database.
type Repository struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and migrates the
// schema. Use ":memory:" for an in-process throwaway store.
func Open(path string) (*Repository, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("repository: open: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}
	r := &Repository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("repository: migrate: %w", err)
	}
	return r, nil
}

// Close releases the underlying database handle.
func (r *Repository) Close() error { return r.db.Close() }

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS nodes (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		x REAL NOT NULL DEFAULT 0,
		y REAL NOT NULL DEFAULT 0,
		w REAL NOT NULL DEFAULT 0,
		h REAL NOT NULL DEFAULT 0,
		display_mode TEXT NOT NULL DEFAULT 'expanded'
	);

	CREATE TABLE IF NOT EXISTS ports (
		id TEXT PRIMARY KEY,
		node_id TEXT NOT NULL,
		name TEXT NOT NULL,
		direction TEXT NOT NULL,
		kind TEXT NOT NULL,
		data_type TEXT NOT NULL DEFAULT '',
		capacity TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (node_id) REFERENCES nodes(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS edges (
		id TEXT PRIMARY KEY,
		source_port_id TEXT NOT NULL,
		target_port_id TEXT NOT NULL,
		FOREIGN KEY (source_port_id) REFERENCES ports(id) ON DELETE CASCADE,
		FOREIGN KEY (target_port_id) REFERENCES ports(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS frames (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		representative_node_id TEXT NOT NULL,
		x REAL NOT NULL DEFAULT 0,
		y REAL NOT NULL DEFAULT 0,
		w REAL NOT NULL DEFAULT 0,
		h REAL NOT NULL DEFAULT 0,
		collapsed INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS frame_members (
		frame_id TEXT NOT NULL,
		node_id TEXT NOT NULL,
		PRIMARY KEY (frame_id, node_id),
		FOREIGN KEY (frame_id) REFERENCES frames(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS comments (
		id TEXT PRIMARY KEY,
		text TEXT NOT NULL DEFAULT '',
		x REAL NOT NULL DEFAULT 0,
		y REAL NOT NULL DEFAULT 0,
		w REAL NOT NULL DEFAULT 0,
		h REAL NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_ports_node ON ports(node_id);
	CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source_port_id);
	CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target_port_id);
	`
	_, err := r.db.Exec(schema)
	return err
}

// Save writes the full graph inside one transaction, replacing any prior
// content.
func (r *Repository) Save(ctx context.Context, g *graph.Graph) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"frame_members", "frames", "edges", "ports", "nodes", "comments"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("repository: clear %s: %w", table, err)
		}
	}

	for _, n := range g.Nodes() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO nodes (id, type, x, y, w, h, display_mode) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			n.ID, n.TypeID, n.Position.X, n.Position.Y, n.Size.W, n.Size.H, n.DisplayMode.String(),
		); err != nil {
			return fmt.Errorf("repository: insert node %s: %w", n.ID, err)
		}
		for _, p := range n.Ports {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO ports (id, node_id, name, direction, kind, data_type, capacity, sort_order)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				p.ID, p.NodeID, p.Name, p.Direction.String(), p.Kind.String(),
				p.DataType, p.Capacity.String(), p.SortOrder,
			); err != nil {
				return fmt.Errorf("repository: insert port %s: %w", p.ID, err)
			}
		}
	}
	for _, e := range g.Edges() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO edges (id, source_port_id, target_port_id) VALUES (?, ?, ?)`,
			e.ID, e.SourcePortID, e.TargetPortID,
		); err != nil {
			return fmt.Errorf("repository: insert edge %s: %w", e.ID, err)
		}
	}
	for _, f := range g.SubGraphFrames() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO frames (id, title, representative_node_id, x, y, w, h, collapsed)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			f.ID, f.Title, f.RepresentativeNodeID,
			f.Bounds.X, f.Bounds.Y, f.Bounds.W, f.Bounds.H, boolToInt(f.IsCollapsed),
		); err != nil {
			return fmt.Errorf("repository: insert frame %s: %w", f.ID, err)
		}
		for _, m := range f.MemberIDs() {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO frame_members (frame_id, node_id) VALUES (?, ?)`, f.ID, m,
			); err != nil {
				return fmt.Errorf("repository: insert frame member %s/%s: %w", f.ID, m, err)
			}
		}
	}
	for _, c := range g.Comments() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO comments (id, text, x, y, w, h) VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, c.Text, c.Position.X, c.Position.Y, c.Size.W, c.Size.H,
		); err != nil {
			return fmt.Errorf("repository: insert comment %s: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

// Load fills a scratch store from the database through the *Direct
// primitives and replaces the graph's content only when every row applied
// cleanly, so a failed load never leaves the target half-filled.
func (r *Repository) Load(ctx context.Context, g *graph.Graph) error {
	scratch := graph.New()
	nodes, err := r.loadNodes(ctx)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		if err := scratch.AddNodeDirect(n); err != nil {
			return fmt.Errorf("repository: load node %s: %w", n.ID, err)
		}
	}
	if err := r.loadEdges(ctx, scratch); err != nil {
		return err
	}
	if err := r.loadFrames(ctx, scratch); err != nil {
		return err
	}
	if err := r.loadComments(ctx, scratch); err != nil {
		return err
	}
	g.ReplaceContent(scratch)
	return nil
}

func (r *Repository) loadNodes(ctx context.Context) ([]*graph.Node, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, x, y, w, h, display_mode FROM nodes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("repository: query nodes: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*graph.Node)
	var nodes []*graph.Node
	for rows.Next() {
		var n graph.Node
		var mode string
		if err := rows.Scan(&n.ID, &n.TypeID, &n.Position.X, &n.Position.Y,
			&n.Size.W, &n.Size.H, &mode); err != nil {
			return nil, fmt.Errorf("repository: scan node: %w", err)
		}
		if n.DisplayMode, err = graph.ParseDisplayMode(mode); err != nil {
			return nil, fmt.Errorf("repository: node %s: %w", n.ID, err)
		}
		node := n
		byID[node.ID] = &node
		nodes = append(nodes, &node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: nodes: %w", err)
	}

	prows, err := r.db.QueryContext(ctx,
		`SELECT id, node_id, name, direction, kind, data_type, capacity, sort_order
		 FROM ports ORDER BY node_id, sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("repository: query ports: %w", err)
	}
	defer prows.Close()
	for prows.Next() {
		var p graph.Port
		var dir, kind, cap_ string
		if err := prows.Scan(&p.ID, &p.NodeID, &p.Name, &dir, &kind,
			&p.DataType, &cap_, &p.SortOrder); err != nil {
			return nil, fmt.Errorf("repository: scan port: %w", err)
		}
		if p.Direction, err = graph.ParseDirection(dir); err != nil {
			return nil, fmt.Errorf("repository: port %s: %w", p.ID, err)
		}
		if p.Kind, err = graph.ParsePortKind(kind); err != nil {
			return nil, fmt.Errorf("repository: port %s: %w", p.ID, err)
		}
		if p.Capacity, err = graph.ParseCapacity(cap_); err != nil {
			return nil, fmt.Errorf("repository: port %s: %w", p.ID, err)
		}
		n, ok := byID[p.NodeID]
		if !ok {
			return nil, fmt.Errorf("repository: port %s: %w", p.ID, graph.ErrNodeNotFound)
		}
		port := p
		n.Ports = append(n.Ports, &port)
	}
	if err := prows.Err(); err != nil {
		return nil, fmt.Errorf("repository: ports: %w", err)
	}
	return nodes, nil
}

func (r *Repository) loadEdges(ctx context.Context, g *graph.Graph) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, source_port_id, target_port_id FROM edges ORDER BY id`)
	if err != nil {
		return fmt.Errorf("repository: query edges: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e graph.Edge
		if err := rows.Scan(&e.ID, &e.SourcePortID, &e.TargetPortID); err != nil {
			return fmt.Errorf("repository: scan edge: %w", err)
		}
		edge := e
		if err := g.AddEdgeDirect(&edge); err != nil {
			return fmt.Errorf("repository: load edge %s: %w", e.ID, err)
		}
	}
	return rows.Err()
}

func (r *Repository) loadFrames(ctx context.Context, g *graph.Graph) error {
	members := make(map[string][]string)
	mrows, err := r.db.QueryContext(ctx,
		`SELECT frame_id, node_id FROM frame_members ORDER BY frame_id, node_id`)
	if err != nil {
		return fmt.Errorf("repository: query frame members: %w", err)
	}
	defer mrows.Close()
	for mrows.Next() {
		var frameID, nodeID string
		if err := mrows.Scan(&frameID, &nodeID); err != nil {
			return fmt.Errorf("repository: scan frame member: %w", err)
		}
		members[frameID] = append(members[frameID], nodeID)
	}
	if err := mrows.Err(); err != nil {
		return fmt.Errorf("repository: frame members: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, representative_node_id, x, y, w, h, collapsed FROM frames ORDER BY id`)
	if err != nil {
		return fmt.Errorf("repository: query frames: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id, title, rep string
			bounds         graph.Rect
			collapsed      int
		)
		if err := rows.Scan(&id, &title, &rep, &bounds.X, &bounds.Y,
			&bounds.W, &bounds.H, &collapsed); err != nil {
			return fmt.Errorf("repository: scan frame: %w", err)
		}
		f := graph.NewSubGraphFrame(id, title, rep, members[id]...)
		f.Bounds = bounds
		f.IsCollapsed = collapsed != 0
		if err := g.AddSubGraphFrameDirect(f); err != nil {
			return fmt.Errorf("repository: load frame %s: %w", id, err)
		}
	}
	return rows.Err()
}

func (r *Repository) loadComments(ctx context.Context, g *graph.Graph) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, text, x, y, w, h FROM comments ORDER BY id`)
	if err != nil {
		return fmt.Errorf("repository: query comments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c graph.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.Position.X, &c.Position.Y,
			&c.Size.W, &c.Size.H); err != nil {
			return fmt.Errorf("repository: scan comment: %w", err)
		}
		comment := c
		if err := g.AddCommentDirect(&comment); err != nil {
			return fmt.Errorf("repository: load comment %s: %w", c.ID, err)
		}
	}
	return rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
