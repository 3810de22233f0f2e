package converter

import (
	"context"
	"time"

	"github.com/lintang-b-s/osmtopology/pkg/config"
	"github.com/lintang-b-s/osmtopology/pkg/emitter"
	"github.com/lintang-b-s/osmtopology/pkg/geo"
	"github.com/lintang-b-s/osmtopology/pkg/osmparser"
	"github.com/lintang-b-s/osmtopology/pkg/topology"
	"github.com/lintang-b-s/osmtopology/pkg/util"
	"go.uber.org/zap"
)

// Result summarizes one conversion run.
type Result struct {
	Stats         osmparser.ParseStats
	NumberOfNodes int
	NumberOfEdges int
	Diagnostics   []topology.Diagnostic
	Files         []string
}

// CountDiagnostics returns the number of diagnostics of the given kind.
func (r Result) CountDiagnostics(kind topology.DiagnosticKind) int {
	count := 0
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			count++
		}
	}
	return count
}

type Converter struct {
	cfg    *config.Config
	logger *zap.Logger
}

func NewConverter(cfg *config.Config, logger *zap.Logger) (*Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{cfg: cfg, logger: logger}, nil
}

// Run reads the configured map file, normalizes its street network and writes every output layer.
func (c *Converter) Run(ctx context.Context) (Result, error) {
	res := Result{}
	start := time.Now()

	lengthFn, err := geo.LengthFuncByName(c.cfg.LengthMetric)
	if err != nil {
		return res, err
	}
	em, err := emitter.NewEmitter(emitter.Options{
		OutputDir:        c.cfg.OutputDir,
		Formats:          c.cfg.Formats,
		GeometryEncoding: c.cfg.GeometryEncoding,
		Compress:         c.cfg.Compress,
		EncodeWorkers:    c.cfg.EncodeWorkers,
	}, c.logger)
	if err != nil {
		return res, err
	}

	session := topology.NewSession(topology.WithLengthFunc(lengthFn), topology.WithLogger(c.logger))
	defer session.Release()

	c.logger.Info("reading openstreetmap file", zap.String("file", c.cfg.InputFile))
	parser := osmparser.NewOSMParser(c.logger)
	res.Stats, err = parser.Parse(ctx, c.cfg.InputFile, session)
	if err != nil {
		return res, err
	}

	c.logger.Sugar().Infof("normalizing street network: %d ways, %d points", session.NumberOfWays(), session.NumberOfPoints())
	graph, err := session.Normalize()
	res.Diagnostics = session.Diagnostics()
	if err != nil {
		return res, err
	}
	res.NumberOfNodes = graph.NumberOfNodes()
	res.NumberOfEdges = graph.NumberOfEdges()

	var ways []topology.WayLine
	if c.cfg.EmitWays {
		ways, err = session.RawWays()
		if err != nil {
			return res, err
		}
	}

	res.Files, err = em.Emit(ctx, graph, ways)
	if err != nil {
		return res, err
	}

	if c.cfg.SnapshotFile != "" {
		if err := graph.WriteGraph(c.cfg.SnapshotFile); err != nil {
			return res, util.WrapErrorf(err, util.ErrInternalServerError, "write graph snapshot %s", c.cfg.SnapshotFile)
		}
		res.Files = append(res.Files, c.cfg.SnapshotFile)
	}

	c.logger.Info("conversion done",
		zap.Int("nodes", res.NumberOfNodes),
		zap.Int("edges", res.NumberOfEdges),
		zap.Int("malformed_ways", res.CountDiagnostics(topology.MALFORMED_WAY)),
		zap.Int("geometry_errors", res.CountDiagnostics(topology.GEOMETRY_CONSTRUCTION)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}
