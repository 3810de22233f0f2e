package topology

import (
	"github.com/lintang-b-s/osmtopology/pkg/util"
)

// WayInventory holds the ordered node ids of every accepted way.
type WayInventory struct {
	ways map[WayID][]NodeID
}

func NewWayInventory() *WayInventory {
	return &WayInventory{
		ways: make(map[WayID][]NodeID),
	}
}

// Add records a copy of nodeIDs under id. Ways with fewer than two nodes and repeated way ids are rejected
// with ErrMalformedWay.
func (wi *WayInventory) Add(id WayID, nodeIDs []NodeID) error {
	if len(nodeIDs) < 2 {
		return util.WrapErrorf(nil, ErrMalformedWay, "way %d has %d node(s), need at least 2", id, len(nodeIDs))
	}
	if _, ok := wi.ways[id]; ok {
		return util.WrapErrorf(nil, ErrMalformedWay, "way %d is duplicated", id)
	}

	nodes := make([]NodeID, len(nodeIDs))
	copy(nodes, nodeIDs)
	wi.ways[id] = nodes
	return nil
}

func (wi *WayInventory) Has(id WayID) bool {
	_, ok := wi.ways[id]
	return ok
}

// Get returns the node ids of way id. The returned slice must not be modified.
func (wi *WayInventory) Get(id WayID) ([]NodeID, bool) {
	nodes, ok := wi.ways[id]
	return nodes, ok
}

// IDs returns every way id in ascending order.
func (wi *WayInventory) IDs() []WayID {
	return util.SortedKeys(wi.ways)
}

func (wi *WayInventory) Len() int {
	return len(wi.ways)
}
