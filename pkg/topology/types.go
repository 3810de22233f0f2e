package topology

import (
	"errors"

	"github.com/paulmach/orb"
)

type NodeID int64

type WayID int64

var (
	ErrMalformedWay         = errors.New("malformed way")
	ErrMissingNode          = errors.New("missing node")
	ErrGeometryConstruction = errors.New("geometry construction error")
	ErrSessionReleased      = errors.New("session already released")
)

// WayNode is one node reference of a way as handed over by a reader.
// Located is false when the reader could not resolve the node location.
type WayNode struct {
	ID      NodeID
	Point   orb.Point
	Located bool
}

func NewWayNode(id NodeID, lon, lat float64) WayNode {
	return WayNode{
		ID:      id,
		Point:   orb.Point{lon, lat},
		Located: true,
	}
}

// WayIngester is the single capability a raw-format reader needs from the core.
type WayIngester interface {
	IngestWay(id WayID, nodes []WayNode) error
}

// NodeIngester is implemented by ingesters that also accept node locations resolved outside of any way.
type NodeIngester interface {
	IngestNode(id NodeID, p orb.Point) error
}
