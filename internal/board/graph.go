package board

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/talgya/hexboard/internal/hexgrid"
)

// NodeID names a settlement slot by the three tiles meeting at the corner,
// sorted so every tile sharing the corner derives the same id.
type NodeID [3]hexgrid.Hex

// NewNodeID returns the canonical id for the corner shared by a, b and c.
func NewNodeID(a, b, c hexgrid.Hex) NodeID {
	id := NodeID{a, b, c}
	slices.SortFunc(id[:], hexgrid.Compare)
	return id
}

// Key is the stable text form "r,g,b|r,g,b|r,g,b".
func (n NodeID) Key() string {
	parts := make([]string, len(n))
	for i, h := range n {
		parts[i] = fmt.Sprintf("%d,%d,%d", h.R(), h.G(), h.B())
	}
	return strings.Join(parts, "|")
}

func (n NodeID) String() string {
	return n.Key()
}

// ParseNodeID parses a key produced by NodeID.Key.
func ParseNodeID(s string) (NodeID, error) {
	parts := strings.Split(s, "|")
	if len(parts) != 3 {
		return NodeID{}, errors.Errorf("node id %q: want 3 coordinates", s)
	}
	var hs [3]hexgrid.Hex
	for i, p := range parts {
		fields := strings.Split(p, ",")
		if len(fields) != 3 {
			return NodeID{}, errors.Errorf("node id %q: coordinate %q", s, p)
		}
		var v [3]int
		for j, f := range fields {
			n, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return NodeID{}, errors.Wrapf(err, "node id %q", s)
			}
			v[j] = n
		}
		h, err := hexgrid.New(v[0], v[1], v[2])
		if err != nil {
			return NodeID{}, err
		}
		hs[i] = h
	}
	return NewNodeID(hs[0], hs[1], hs[2]), nil
}

func (n NodeID) MarshalText() ([]byte, error) {
	return []byte(n.Key()), nil
}

func (n *NodeID) UnmarshalText(text []byte) error {
	id, err := ParseNodeID(string(text))
	if err != nil {
		return err
	}
	*n = id
	return nil
}

// centroid is three times the projected centre of the corner.
func (n NodeID) centroid() hexgrid.Point {
	var p hexgrid.Point
	for _, h := range n {
		q := h.Project()
		p.X += q.X
		p.Y += q.Y
	}
	return p
}

// EdgeID names a road slot; A sorts before B.
type EdgeID struct {
	A, B NodeID
}

// NewEdgeID returns the canonical id for the road between a and b.
func NewEdgeID(a, b NodeID) EdgeID {
	if compareNodes(b, a) < 0 {
		a, b = b, a
	}
	return EdgeID{A: a, B: b}
}

func compareNodes(a, b NodeID) int {
	for i := range a {
		if c := hexgrid.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Node is a settlement slot.
type Node struct {
	ID       NodeID   `json:"id"`
	Building Building `json:"building,omitempty"`
	Player   Player   `json:"player,omitempty"`
	Harbor   Harbor   `json:"harbor,omitempty"`
}

// Edge is a road slot between two nodes.
type Edge struct {
	ID     EdgeID `json:"id"`
	Road   bool   `json:"road,omitempty"`
	Player Player `json:"player,omitempty"`
}

// Graph is the settlement/road network laid over the tiles. Nodes and
// adjacency lists keep insertion order.
type Graph struct {
	nodes     map[NodeID]*Node
	nodeOrder []NodeID
	adj       map[NodeID][]NodeID
	edges     map[EdgeID]*Edge
	edgeOrder []EdgeID
}

func newGraph() *Graph {
	return &Graph{
		nodes: make(map[NodeID]*Node),
		adj:   make(map[NodeID][]NodeID),
		edges: make(map[EdgeID]*Edge),
	}
}

// BuildGraph derives the network from tile positions. Each tile contributes
// its six corners and the six roads around it; corners and roads shared with
// neighbouring tiles are created once.
func BuildGraph(positions []hexgrid.Hex) *Graph {
	g := newGraph()
	dirs := hexgrid.Directions
	for _, p := range positions {
		var corners [len(dirs)]NodeID
		for i := range dirs {
			corners[i] = NewNodeID(p.Add(dirs[i]), p.Add(dirs[(i+1)%len(dirs)]), p)
			g.addNode(corners[i])
		}
		for i := range corners {
			g.addEdge(corners[i], corners[(i+1)%len(corners)])
		}
	}
	return g
}

func (g *Graph) addNode(id NodeID) *Node {
	if n, ok := g.nodes[id]; ok {
		return n
	}
	n := &Node{ID: id}
	g.nodes[id] = n
	g.nodeOrder = append(g.nodeOrder, id)
	return n
}

func (g *Graph) addEdge(a, b NodeID) *Edge {
	id := NewEdgeID(a, b)
	if e, ok := g.edges[id]; ok {
		return e
	}
	e := &Edge{ID: id}
	g.edges[id] = e
	g.edgeOrder = append(g.edgeOrder, id)
	g.adj[a] = append(g.adj[a], b)
	g.adj[b] = append(g.adj[b], a)
	return e
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id NodeID) *Node {
	return g.nodes[id]
}

// Edge returns the road slot between a and b, or nil.
func (g *Graph) Edge(a, b NodeID) *Edge {
	return g.edges[NewEdgeID(a, b)]
}

// Neighbors returns the nodes one road away from id.
func (g *Graph) Neighbors(id NodeID) []NodeID {
	return slices.Clone(g.adj[id])
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodeOrder))
	for i, id := range g.nodeOrder {
		out[i] = g.nodes[id]
	}
	return out
}

// Edges returns all road slots in insertion order.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, len(g.edgeOrder))
	for i, id := range g.edgeOrder {
		out[i] = g.edges[id]
	}
	return out
}

func (g *Graph) NodeCount() int { return len(g.nodes) }
func (g *Graph) EdgeCount() int { return len(g.edges) }
