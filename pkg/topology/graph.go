package topology

import (
	"github.com/paulmach/orb"
)

type FinalNode struct {
	ID    NodeID
	Point orb.Point
}

// FinalEdge is a maximal run of one way between two consecutive junctions, endpoints included.
type FinalEdge struct {
	WayID    WayID
	Source   NodeID
	Target   NodeID
	Length   float64
	Geometry orb.LineString
}

// WayLine is an unsplit input way with its full geometry.
type WayLine struct {
	WayID       WayID
	Source      NodeID
	Target      NodeID
	SourcePoint orb.Point
	TargetPoint orb.Point
	Length      float64
	Geometry    orb.LineString
}

type edgeRange struct {
	start, end int
}

// Graph is the simplified street graph. Nodes keep insertion order, edges keep way order then traversal order.
type Graph struct {
	nodes     []FinalNode
	nodeIndex map[NodeID]int
	edges     []FinalEdge
	wayEdges  map[WayID]edgeRange
}

func NewGraph() *Graph {
	return &Graph{
		nodes:     make([]FinalNode, 0),
		nodeIndex: make(map[NodeID]int),
		edges:     make([]FinalEdge, 0),
		wayEdges:  make(map[WayID]edgeRange),
	}
}

// addNode inserts id once. Later inserts of the same id are no-ops.
func (g *Graph) addNode(id NodeID, p orb.Point) {
	if _, ok := g.nodeIndex[id]; ok {
		return
	}
	g.nodeIndex[id] = len(g.nodes)
	g.nodes = append(g.nodes, FinalNode{ID: id, Point: p})
}

// addWayEdges appends every edge of one way. edges must be non-empty and share the same way id.
func (g *Graph) addWayEdges(edges []FinalEdge) {
	start := len(g.edges)
	for _, e := range edges {
		g.addNode(e.Source, e.Geometry[0])
		g.addNode(e.Target, e.Geometry[len(e.Geometry)-1])
		g.edges = append(g.edges, e)
	}
	g.wayEdges[edges[0].WayID] = edgeRange{start: start, end: len(g.edges)}
}

// Nodes returns the nodes in insertion order. The slice is read-only; appending to it never touches the graph.
func (g *Graph) Nodes() []FinalNode {
	return g.nodes[:len(g.nodes):len(g.nodes)]
}

// Edges returns the edges grouped by way. The slice is read-only; appending to it never touches the graph.
func (g *Graph) Edges() []FinalEdge {
	return g.edges[:len(g.edges):len(g.edges)]
}

func (g *Graph) Node(id NodeID) (FinalNode, bool) {
	idx, ok := g.nodeIndex[id]
	if !ok {
		return FinalNode{}, false
	}
	return g.nodes[idx], true
}

func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.nodeIndex[id]
	return ok
}

// EdgesOfWay returns the edges produced from way id in traversal order.
func (g *Graph) EdgesOfWay(id WayID) []FinalEdge {
	r, ok := g.wayEdges[id]
	if !ok {
		return nil
	}
	return g.edges[r.start:r.end:r.end]
}

func (g *Graph) NumberOfNodes() int {
	return len(g.nodes)
}

func (g *Graph) NumberOfEdges() int {
	return len(g.edges)
}
