package topology

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

type testWay struct {
	id    WayID
	nodes []NodeID
}

// pointOf places node ids on a small grid around Yogyakarta so every id has a distinct location.
func pointOf(id NodeID) orb.Point {
	return orb.Point{110.37 + float64(id%10)*0.001, -7.76 + float64(id/10)*0.001}
}

func wayNodes(ids []NodeID) []WayNode {
	nodes := make([]WayNode, len(ids))
	for i, id := range ids {
		p := pointOf(id)
		nodes[i] = NewWayNode(id, p.Lon(), p.Lat())
	}
	return nodes
}

func newTestSession(t *testing.T, ways []testWay, opts ...Option) *Session {
	t.Helper()
	s := NewSession(opts...)
	for _, w := range ways {
		require.NoError(t, s.IngestWay(w.id, wayNodes(w.nodes)))
	}
	return s
}

func lineOf(ids ...NodeID) orb.LineString {
	ls := make(orb.LineString, len(ids))
	for i, id := range ids {
		ls[i] = pointOf(id)
	}
	return ls
}
