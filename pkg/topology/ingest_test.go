package topology

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestPointIndex(t *testing.T) {
	pi := NewPointIndex()
	pi.Put(1, orb.Point{110.0, -7.0})
	pi.Put(1, orb.Point{0, 0})

	p, err := pi.Get(1)
	assert.NoError(t, err)
	assert.Equal(t, orb.Point{110.0, -7.0}, p)
	assert.Equal(t, 1, pi.Len())
	assert.True(t, pi.Has(1))

	_, err = pi.Get(2)
	assert.True(t, errors.Is(err, ErrMissingNode))
	assert.False(t, pi.Has(2))
}

func TestWayInventory(t *testing.T) {
	testCases := []struct {
		name    string
		id      WayID
		nodes   []NodeID
		wantErr bool
	}{
		{name: "empty way", id: 1, nodes: []NodeID{}, wantErr: true},
		{name: "single node way", id: 2, nodes: []NodeID{5}, wantErr: true},
		{name: "two node way", id: 3, nodes: []NodeID{5, 6}},
		{name: "duplicate way id", id: 3, nodes: []NodeID{7, 8}, wantErr: true},
		{name: "longer way", id: -4, nodes: []NodeID{9, 8, 7, 9}},
	}

	wi := NewWayInventory()
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			err := wi.Add(tt.id, tt.nodes)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrMalformedWay))
				return
			}
			assert.NoError(t, err)
			got, ok := wi.Get(tt.id)
			assert.True(t, ok)
			assert.Equal(t, tt.nodes, got)
		})
	}

	assert.Equal(t, []WayID{-4, 3}, wi.IDs())
	assert.Equal(t, 2, wi.Len())
	got, _ := wi.Get(3)
	assert.Equal(t, []NodeID{5, 6}, got)
}

func TestWayInventoryCopiesInput(t *testing.T) {
	wi := NewWayInventory()
	nodes := []NodeID{1, 2, 3}
	assert.NoError(t, wi.Add(1, nodes))

	nodes[1] = 99
	got, _ := wi.Get(1)
	assert.Equal(t, []NodeID{1, 2, 3}, got)
}

func TestUsageTally(t *testing.T) {
	ut := NewUsageTally()
	ut.Observe([]NodeID{1, 2, 3, 4})
	ut.Observe([]NodeID{5, 2, 6})
	ut.Observe(nil)

	testCases := []struct {
		id           NodeID
		wantCount    uint32
		wantJunction bool
	}{
		{id: 1, wantCount: 2, wantJunction: true},
		{id: 2, wantCount: 2, wantJunction: true},
		{id: 3, wantCount: 1, wantJunction: false},
		{id: 4, wantCount: 2, wantJunction: true},
		{id: 5, wantCount: 2, wantJunction: true},
		{id: 6, wantCount: 2, wantJunction: true},
		{id: 7, wantCount: 0, wantJunction: false},
	}

	for _, tt := range testCases {
		assert.Equal(t, tt.wantCount, ut.Count(tt.id), "count of node %d", tt.id)
		assert.Equal(t, tt.wantJunction, ut.IsJunction(tt.id), "junction status of node %d", tt.id)
	}
	assert.Equal(t, 6, ut.Len())
}

func TestUsageTallyClosedWay(t *testing.T) {
	ut := NewUsageTally()
	ut.Observe([]NodeID{1, 2, 3, 1})

	assert.Equal(t, uint32(4), ut.Count(1))
	assert.Equal(t, uint32(1), ut.Count(2))
}

func TestSessionIngestMalformedWay(t *testing.T) {
	s := NewSession()

	err := s.IngestWay(1, wayNodes([]NodeID{1}))
	assert.True(t, errors.Is(err, ErrMalformedWay))

	assert.NoError(t, s.IngestWay(2, wayNodes([]NodeID{1, 2})))
	err = s.IngestWay(2, wayNodes([]NodeID{3, 4}))
	assert.True(t, errors.Is(err, ErrMalformedWay))

	assert.Equal(t, 1, s.NumberOfWays())
	// the rejected ways left no trace behind
	assert.Equal(t, 2, s.NumberOfPoints())
	assert.Equal(t, uint32(2), s.tally.Count(1))
	assert.Equal(t, uint32(0), s.tally.Count(3))

	diagnostics := s.Diagnostics()
	assert.Len(t, diagnostics, 2)
	assert.Equal(t, MALFORMED_WAY, diagnostics[0].Kind)
	assert.Equal(t, WayID(1), diagnostics[0].WayID)
	assert.Equal(t, WayID(2), diagnostics[1].WayID)
	assert.Contains(t, diagnostics[0].String(), "MalformedWay: way 1")
}

func TestSessionIngestNode(t *testing.T) {
	s := NewSession()
	assert.NoError(t, s.IngestNode(3, pointOf(3)))

	nodes := wayNodes([]NodeID{1, 3})
	nodes[1].Located = false
	assert.NoError(t, s.IngestWay(7, nodes))

	g, err := s.Normalize()
	assert.NoError(t, err)
	assert.Equal(t, 1, g.NumberOfEdges())
	assert.Equal(t, lineOf(1, 3), g.Edges()[0].Geometry)
}

func TestSessionRelease(t *testing.T) {
	s := newTestSession(t, []testWay{{id: 1, nodes: []NodeID{1, 2}}})
	s.Release()

	assert.True(t, errors.Is(s.IngestWay(2, wayNodes([]NodeID{3, 4})), ErrSessionReleased))
	assert.True(t, errors.Is(s.IngestNode(3, pointOf(3)), ErrSessionReleased))
	_, err := s.Normalize()
	assert.True(t, errors.Is(err, ErrSessionReleased))
	_, err = s.RawWays()
	assert.True(t, errors.Is(err, ErrSessionReleased))
	assert.Equal(t, 0, s.NumberOfWays())
	assert.Equal(t, 0, s.NumberOfPoints())
}
