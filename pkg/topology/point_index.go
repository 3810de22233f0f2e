package topology

import (
	"github.com/lintang-b-s/osmtopology/pkg/util"
	"github.com/paulmach/orb"
)

// PointIndex holds the resolved location of every node id seen during ingestion.
type PointIndex struct {
	points map[NodeID]orb.Point
}

func NewPointIndex() *PointIndex {
	return &PointIndex{
		points: make(map[NodeID]orb.Point),
	}
}

// Put records the point of id. The first write wins, later writes are no-ops.
func (pi *PointIndex) Put(id NodeID, p orb.Point) {
	if _, ok := pi.points[id]; ok {
		return
	}
	pi.points[id] = p
}

func (pi *PointIndex) Get(id NodeID) (orb.Point, error) {
	p, ok := pi.points[id]
	if !ok {
		return orb.Point{}, util.WrapErrorf(nil, ErrMissingNode, "node %d has no resolved location", id)
	}
	return p, nil
}

func (pi *PointIndex) Has(id NodeID) bool {
	_, ok := pi.points[id]
	return ok
}

func (pi *PointIndex) Len() int {
	return len(pi.points)
}
