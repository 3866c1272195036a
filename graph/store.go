// Package graph: store construction and mutation primitives.
//
// The *Direct primitives insert pre-built entities verbatim (IDs included);
// they are the restore path for undo and for persistence collaborators.
// Connect/Disconnect are the interactive wiring primitives with displacement
// semantics. Validation happens here, before any mutation, so a failed call
// never leaves the store half-changed.
package graph

// Option configures a Graph before first use.
type Option func(*Graph)

// WithIDGen injects the identifier generator used by NewID and Connect.
// Panics on nil to surface programmer error early.
func WithIDGen(gen IDGen) Option {
	if gen == nil {
		panic("graph: WithIDGen(nil)")
	}
	return func(g *Graph) { g.idgen = gen }
}

// Graph is the blueprint store: arena-style maps keyed by opaque IDs.
// Entities reference each other by ID only, so removal can never leave a
// dangling pointer — lookups on stale IDs simply return nil.
//
// A Graph is exclusively owned by one editing session and is not safe for
// concurrent use; all mutation happens synchronously on the caller's thread.
type Graph struct {
	idgen    IDGen
	nodes    map[string]*Node
	ports    map[string]*Port // index over every node's owned ports
	edges    map[string]*Edge
	frames   map[string]*SubGraphFrame
	comments map[string]*Comment
}

// New creates an empty Graph. The default ID generator is UUIDGen.
func New(opts ...Option) *Graph {
	g := &Graph{
		idgen:    UUIDGen{},
		nodes:    make(map[string]*Node),
		ports:    make(map[string]*Port),
		edges:    make(map[string]*Edge),
		frames:   make(map[string]*SubGraphFrame),
		comments: make(map[string]*Comment),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewID mints a fresh identifier from the injected generator.
func (g *Graph) NewID() string { return g.idgen.NewID() }

// Clear drops every entity while keeping configuration (ID generator).
func (g *Graph) Clear() {
	g.nodes = make(map[string]*Node)
	g.ports = make(map[string]*Port)
	g.edges = make(map[string]*Edge)
	g.frames = make(map[string]*SubGraphFrame)
	g.comments = make(map[string]*Comment)
}

// ReplaceContent drops every entity and adopts those held by src in one
// step, keeping the receiver's ID generator. Loaders build into a scratch
// graph and commit with this call, so a failed load never leaves the
// target half-filled. Entities are adopted, not copied; the source must be
// discarded afterwards.
func (g *Graph) ReplaceContent(src *Graph) {
	g.nodes = src.nodes
	g.ports = src.ports
	g.edges = src.edges
	g.frames = src.frames
	g.comments = src.comments
}

// AddNodeDirect inserts a pre-built node and registers its ports.
// The node and all its ports must carry unique, non-empty IDs, and each
// port's NodeID must equal the node's ID.
// Complexity: O(P log P) for P owned ports (canonical port ordering).
func (g *Graph) AddNodeDirect(n *Node) error {
	if n == nil {
		return ErrNilEntity
	}
	if n.ID == "" {
		return ErrEmptyID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateID
	}
	// Validate all ports before touching the store.
	for _, p := range n.Ports {
		if p == nil {
			return ErrNilEntity
		}
		if p.ID == "" {
			return ErrEmptyID
		}
		if _, exists := g.ports[p.ID]; exists {
			return ErrDuplicateID
		}
		if p.NodeID != n.ID {
			return ErrNodeNotFound
		}
	}
	g.nodes[n.ID] = n
	for _, p := range n.Ports {
		g.ports[p.ID] = p
	}
	n.sortPorts()
	return nil
}

// RemoveNode deletes the node, cascading to its ports and every edge
// touching them. Frame containment records are the caller's concern.
// Complexity: O(E) over the edge catalog.
func (g *Graph) RemoveNode(id string) error {
	n, ok := g.nodes[id]
	if !ok {
		return ErrNodeNotFound
	}
	owned := make(map[string]struct{}, len(n.Ports))
	for _, p := range n.Ports {
		owned[p.ID] = struct{}{}
	}
	for eid, e := range g.edges {
		if _, hit := owned[e.SourcePortID]; hit {
			delete(g.edges, eid)
			continue
		}
		if _, hit := owned[e.TargetPortID]; hit {
			delete(g.edges, eid)
		}
	}
	for pid := range owned {
		delete(g.ports, pid)
	}
	delete(g.nodes, id)
	return nil
}

// AddPortDirect attaches a pre-built port to its owning node.
// Complexity: O(P log P) for the owning node's port count.
func (g *Graph) AddPortDirect(p *Port) error {
	if p == nil {
		return ErrNilEntity
	}
	if p.ID == "" {
		return ErrEmptyID
	}
	if _, exists := g.ports[p.ID]; exists {
		return ErrDuplicateID
	}
	n, ok := g.nodes[p.NodeID]
	if !ok {
		return ErrNodeNotFound
	}
	n.Ports = append(n.Ports, p)
	n.sortPorts()
	g.ports[p.ID] = p
	return nil
}

// RemovePort detaches the port from its node. The caller is responsible
// for removing edges referencing the port first; commands that call this
// must disconnect explicitly.
func (g *Graph) RemovePort(id string) error {
	p, ok := g.ports[id]
	if !ok {
		return ErrPortNotFound
	}
	if n, ok := g.nodes[p.NodeID]; ok {
		for i, owned := range n.Ports {
			if owned.ID == id {
				n.Ports = append(n.Ports[:i], n.Ports[i+1:]...)
				break
			}
		}
	}
	delete(g.ports, id)
	return nil
}

// AddEdgeDirect inserts a pre-built edge. Both endpoints must resolve to
// existing ports (no dangling edges, ever).
func (g *Graph) AddEdgeDirect(e *Edge) error {
	if e == nil {
		return ErrNilEntity
	}
	if e.ID == "" {
		return ErrEmptyID
	}
	if _, exists := g.edges[e.ID]; exists {
		return ErrDuplicateID
	}
	if _, ok := g.ports[e.SourcePortID]; !ok {
		return ErrDanglingEdge
	}
	if _, ok := g.ports[e.TargetPortID]; !ok {
		return ErrDanglingEdge
	}
	g.edges[e.ID] = e
	return nil
}

// RemoveEdge deletes the edge.
func (g *Graph) RemoveEdge(id string) error {
	if _, ok := g.edges[id]; !ok {
		return ErrEdgeNotFound
	}
	delete(g.edges, id)
	return nil
}

// Connect creates an edge from sourcePortID to targetPortID with a minted ID.
//
// If the target port has Capacity Single and already has an incoming edge,
// that edge is displaced (removed and returned) before the new edge is added;
// the caller is expected to snapshot it for undo.
//
// Fails silently — returns (nil, nil) — when either port is missing or a
// same-port self-connect is attempted; callers treat a nil created edge as
// a no-op.
func (g *Graph) Connect(sourcePortID, targetPortID string) (created, displaced *Edge) {
	if sourcePortID == targetPortID {
		return nil, nil
	}
	if _, ok := g.ports[sourcePortID]; !ok {
		return nil, nil
	}
	tgt, ok := g.ports[targetPortID]
	if !ok {
		return nil, nil
	}
	if tgt.Capacity == Single {
		for _, e := range g.GetEdgesForPort(targetPortID) {
			if e.TargetPortID == targetPortID {
				displaced = e
				delete(g.edges, e.ID)
				break
			}
		}
	}
	created = &Edge{ID: g.NewID(), SourcePortID: sourcePortID, TargetPortID: targetPortID}
	g.edges[created.ID] = created
	return created, displaced
}

// Disconnect removes the edge; no-op if absent.
func (g *Graph) Disconnect(edgeID string) {
	delete(g.edges, edgeID)
}

// AddSubGraphFrameDirect inserts a pre-built frame.
func (g *Graph) AddSubGraphFrameDirect(f *SubGraphFrame) error {
	if f == nil {
		return ErrNilEntity
	}
	if f.ID == "" {
		return ErrEmptyID
	}
	if _, exists := g.frames[f.ID]; exists {
		return ErrDuplicateID
	}
	g.frames[f.ID] = f
	return nil
}

// RemoveSubGraphFrame deletes the frame and its containment record only;
// contained nodes are untouched.
func (g *Graph) RemoveSubGraphFrame(id string) error {
	if _, ok := g.frames[id]; !ok {
		return ErrFrameNotFound
	}
	delete(g.frames, id)
	return nil
}

// AddCommentDirect inserts a pre-built comment.
func (g *Graph) AddCommentDirect(c *Comment) error {
	if c == nil {
		return ErrNilEntity
	}
	if c.ID == "" {
		return ErrEmptyID
	}
	if _, exists := g.comments[c.ID]; exists {
		return ErrDuplicateID
	}
	g.comments[c.ID] = c
	return nil
}

// RemoveComment deletes the comment.
func (g *Graph) RemoveComment(id string) error {
	if _, ok := g.comments[id]; !ok {
		return ErrCommentNotFound
	}
	delete(g.comments, id)
	return nil
}
