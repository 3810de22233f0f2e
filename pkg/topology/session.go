package topology

import (
	"github.com/lintang-b-s/osmtopology/pkg/util"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

var (
	_ WayIngester  = (*Session)(nil)
	_ NodeIngester = (*Session)(nil)
)

// Session owns the ingestion state of one conversion run. Ingest every way first, then Normalize.
// Release drops the state once the graph has been produced.
type Session struct {
	points *PointIndex
	ways   *WayInventory
	tally  *UsageTally
	opts   options

	ingestDiagnostics    []Diagnostic
	normalizeDiagnostics []Diagnostic
	released             bool
}

func NewSession(opts ...Option) *Session {
	return &Session{
		points:            NewPointIndex(),
		ways:              NewWayInventory(),
		tally:             NewUsageTally(),
		opts:              newOptions(opts...),
		ingestDiagnostics: make([]Diagnostic, 0),
	}
}

// IngestWay records one way. A malformed way is reported and leaves the session state untouched.
// Nodes without a resolved location are still recorded on the way; Normalize fails on them later.
func (s *Session) IngestWay(id WayID, nodes []WayNode) error {
	if s.released {
		return util.WrapErrorf(nil, ErrSessionReleased, "ingest way %d", id)
	}

	nodeIDs := make([]NodeID, len(nodes))
	for i, n := range nodes {
		nodeIDs[i] = n.ID
	}

	if err := s.ways.Add(id, nodeIDs); err != nil {
		s.ingestDiagnostics = append(s.ingestDiagnostics, Diagnostic{Kind: MALFORMED_WAY, WayID: id, Err: err})
		s.opts.logger.Warn("skipping malformed way", zap.Int64("way_id", int64(id)), zap.Error(err))
		return err
	}

	for _, n := range nodes {
		if n.Located {
			s.points.Put(n.ID, n.Point)
		}
	}
	s.tally.Observe(nodeIDs)
	return nil
}

// IngestNode records a node location known independently of any way.
func (s *Session) IngestNode(id NodeID, p orb.Point) error {
	if s.released {
		return util.WrapErrorf(nil, ErrSessionReleased, "ingest node %d", id)
	}
	s.points.Put(id, p)
	return nil
}

// Normalize builds the graph from everything ingested so far. Calling it again over the same state yields an
// identical graph.
func (s *Session) Normalize() (*Graph, error) {
	if s.released {
		return nil, util.WrapErrorf(nil, ErrSessionReleased, "normalize")
	}

	gn := NewGraphNormalizer(s.points, s.ways, s.tally, s.normalizerOptions()...)
	graph, diagnostics, err := gn.Normalize()
	s.normalizeDiagnostics = diagnostics
	if err != nil {
		return nil, err
	}
	return graph, nil
}

// RawWays returns every ingested way unsplit.
func (s *Session) RawWays() ([]WayLine, error) {
	if s.released {
		return nil, util.WrapErrorf(nil, ErrSessionReleased, "raw ways")
	}

	gn := NewGraphNormalizer(s.points, s.ways, s.tally, s.normalizerOptions()...)
	lines, diagnostics, err := gn.WayLines()
	s.normalizeDiagnostics = append(s.normalizeDiagnostics, diagnostics...)
	return lines, err
}

func (s *Session) normalizerOptions() []Option {
	return []Option{WithLengthFunc(s.opts.lengthFn), WithLogger(s.opts.logger)}
}

// Diagnostics returns the ingestion diagnostics followed by those of the latest normalization.
func (s *Session) Diagnostics() []Diagnostic {
	diagnostics := make([]Diagnostic, 0, len(s.ingestDiagnostics)+len(s.normalizeDiagnostics))
	diagnostics = append(diagnostics, s.ingestDiagnostics...)
	return append(diagnostics, s.normalizeDiagnostics...)
}

func (s *Session) NumberOfWays() int {
	if s.released {
		return 0
	}
	return s.ways.Len()
}

func (s *Session) NumberOfPoints() int {
	if s.released {
		return 0
	}
	return s.points.Len()
}

func (s *Session) Release() {
	s.points = nil
	s.ways = nil
	s.tally = nil
	s.released = true
}
