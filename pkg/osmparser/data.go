package osmparser

import "github.com/lintang-b-s/osmtopology/pkg/topology"

type NodeCoord struct {
	lat float64
	lon float64
}

func NewNodeCoord(lat, lon float64) NodeCoord {
	return NodeCoord{lat, lon}
}

func (c NodeCoord) GetLat() float64 {
	return c.lat
}

func (c NodeCoord) GetLon() float64 {
	return c.lon
}

// ParseStats summarizes one Parse run.
type ParseStats struct {
	Ways            int
	SkippedWays     int
	ReferencedNodes int
	LocatedNodes    int
}

func (s ParseStats) UnresolvedNodes() int {
	return s.ReferencedNodes - s.LocatedNodes
}

func toWayNode(id int64, coord NodeCoord, located bool) topology.WayNode {
	if !located {
		return topology.WayNode{ID: topology.NodeID(id)}
	}
	return topology.NewWayNode(topology.NodeID(id), coord.lon, coord.lat)
}
