package topology

import (
	"errors"
	"math"

	"github.com/lintang-b-s/osmtopology/pkg/geo"
	"github.com/lintang-b-s/osmtopology/pkg/util"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

type options struct {
	lengthFn geo.LengthFunc
	logger   *zap.Logger
}

type Option func(*options)

func WithLengthFunc(fn geo.LengthFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.lengthFn = fn
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts ...Option) options {
	o := options{
		lengthFn: geo.HaversineLength,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// GraphNormalizer turns the finalized ingestion state into the simplified graph.
type GraphNormalizer struct {
	points *PointIndex
	ways   *WayInventory
	tally  *UsageTally
	opts   options
}

func NewGraphNormalizer(points *PointIndex, ways *WayInventory, tally *UsageTally, opts ...Option) *GraphNormalizer {
	return &GraphNormalizer{
		points: points,
		ways:   ways,
		tally:  tally,
		opts:   newOptions(opts...),
	}
}

// Normalize splits every way at its junctions, ways in ascending id order.
// A missing node location aborts the run and no graph is returned. A way whose geometry cannot be built is
// skipped as a whole and reported in the returned diagnostics.
func (gn *GraphNormalizer) Normalize() (*Graph, []Diagnostic, error) {
	logger := gn.opts.logger
	graph := NewGraph()
	diagnostics := make([]Diagnostic, 0)

	wayIDs := gn.ways.IDs()
	for i, wayID := range wayIDs {
		if (i+1)%100000 == 0 {
			logger.Sugar().Infof("normalizing ways: %d/%d...", i+1, len(wayIDs))
		}

		nodeIDs, _ := gn.ways.Get(wayID)
		edges, nodeID, err := gn.splitWay(wayID, nodeIDs)
		if err != nil {
			diag := Diagnostic{Kind: diagnosticKindOf(err), WayID: wayID, NodeID: nodeID, Err: err}
			diagnostics = append(diagnostics, diag)
			if errors.Is(err, ErrMissingNode) {
				logger.Error("normalization aborted", zap.Int64("way_id", int64(wayID)),
					zap.Int64("node_id", int64(nodeID)), zap.Error(err))
				return nil, diagnostics, err
			}
			logger.Warn("skipping way", zap.Int64("way_id", int64(wayID)), zap.String("kind", diag.Kind.String()),
				zap.Error(err))
			continue
		}

		graph.addWayEdges(edges)
	}

	logger.Sugar().Infof("number of nodes: %d, number of edges: %d", graph.NumberOfNodes(), graph.NumberOfEdges())
	return graph, diagnostics, nil
}

// splitWay returns the edges of one way. On a missing location the offending node id is returned with the error.
func (gn *GraphNormalizer) splitWay(wayID WayID, nodeIDs []NodeID) ([]FinalEdge, NodeID, error) {
	source := nodeIDs[0]
	sourcePoint, err := gn.points.Get(source)
	if err != nil {
		return nil, source, util.WrapErrorf(err, ErrMissingNode, "way %d", wayID)
	}

	edges := make([]FinalEdge, 0, 1)
	steps := []orb.Point{sourcePoint}
	for _, target := range nodeIDs[1:] {
		targetPoint, err := gn.points.Get(target)
		if err != nil {
			return nil, target, util.WrapErrorf(err, ErrMissingNode, "way %d", wayID)
		}
		steps = append(steps, targetPoint)

		if !gn.tally.IsJunction(target) {
			continue
		}

		ls, length, err := gn.buildLineString(wayID, steps)
		if err != nil {
			return nil, 0, err
		}
		edges = append(edges, FinalEdge{
			WayID:    wayID,
			Source:   source,
			Target:   target,
			Length:   length,
			Geometry: ls,
		})

		source = target
		steps = []orb.Point{targetPoint}
	}

	return edges, 0, nil
}

func (gn *GraphNormalizer) buildLineString(wayID WayID, steps []orb.Point) (orb.LineString, float64, error) {
	if len(steps) < 2 {
		return nil, 0, util.WrapErrorf(nil, ErrGeometryConstruction, "way %d: linestring needs at least 2 points, got %d",
			wayID, len(steps))
	}

	ls := make(orb.LineString, len(steps))
	for i, p := range steps {
		if err := geo.ValidateCoordinate(p); err != nil {
			return nil, 0, util.WrapErrorf(err, ErrGeometryConstruction, "way %d", wayID)
		}
		ls[i] = p
	}

	length := gn.opts.lengthFn(ls)
	if math.IsNaN(length) || math.IsInf(length, 0) {
		return nil, 0, util.WrapErrorf(nil, ErrGeometryConstruction, "way %d: length is not finite", wayID)
	}
	return ls, length, nil
}

// WayLines returns every input way unsplit, ascending by way id.
func (gn *GraphNormalizer) WayLines() ([]WayLine, []Diagnostic, error) {
	wayIDs := gn.ways.IDs()
	lines := make([]WayLine, 0, len(wayIDs))
	diagnostics := make([]Diagnostic, 0)

	for _, wayID := range wayIDs {
		nodeIDs, _ := gn.ways.Get(wayID)
		steps := make([]orb.Point, len(nodeIDs))
		for i, id := range nodeIDs {
			p, err := gn.points.Get(id)
			if err != nil {
				err = util.WrapErrorf(err, ErrMissingNode, "way %d", wayID)
				diagnostics = append(diagnostics, Diagnostic{Kind: MISSING_NODE, WayID: wayID, NodeID: id, Err: err})
				return nil, diagnostics, err
			}
			steps[i] = p
		}

		ls, length, err := gn.buildLineString(wayID, steps)
		if err != nil {
			diagnostics = append(diagnostics, Diagnostic{Kind: GEOMETRY_CONSTRUCTION, WayID: wayID, Err: err})
			gn.opts.logger.Warn("skipping way line", zap.Int64("way_id", int64(wayID)), zap.Error(err))
			continue
		}

		lines = append(lines, WayLine{
			WayID:       wayID,
			Source:      nodeIDs[0],
			Target:      nodeIDs[len(nodeIDs)-1],
			SourcePoint: ls[0],
			TargetPoint: ls[len(ls)-1],
			Length:      length,
			Geometry:    ls,
		})
	}
	return lines, diagnostics, nil
}
