package emitter

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/osmtopology/pkg/topology"
	"github.com/lintang-b-s/osmtopology/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	NODES_LAYER = "nodes"
	EDGES_LAYER = "edges"
	WAYS_LAYER  = "ways"

	FORMAT_CSV     = "csv"
	FORMAT_GEOJSON = "geojson"

	ENCODING_WKT      = "wkt"
	ENCODING_POLYLINE = "polyline"
)

type Options struct {
	OutputDir        string
	Formats          []string
	GeometryEncoding string
	Compress         bool
	EncodeWorkers    int
}

// Emitter writes the node, edge and optional way layers of a graph into OutputDir, one file per layer and format.
type Emitter struct {
	opts   Options
	logger *zap.Logger
}

func NewEmitter(opts Options, logger *zap.Logger) (*Emitter, error) {
	if opts.OutputDir == "" {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "output dir is required")
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []string{FORMAT_CSV}
	}
	for _, format := range opts.Formats {
		if format != FORMAT_CSV && format != FORMAT_GEOJSON {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown output format %q", format)
		}
	}
	if opts.GeometryEncoding == "" {
		opts.GeometryEncoding = ENCODING_WKT
	}
	if opts.GeometryEncoding != ENCODING_WKT && opts.GeometryEncoding != ENCODING_POLYLINE {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown geometry encoding %q", opts.GeometryEncoding)
	}
	if opts.EncodeWorkers < 1 {
		opts.EncodeWorkers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Emitter{opts: opts, logger: logger}, nil
}

type layerWriter func(w io.Writer) error

// Emit writes every layer concurrently and returns the written file paths. ways may be nil to skip the ways layer.
func (e *Emitter) Emit(ctx context.Context, graph *topology.Graph, ways []topology.WayLine) ([]string, error) {
	if err := os.MkdirAll(e.opts.OutputDir, 0755); err != nil {
		return nil, err
	}

	type job struct {
		path  string
		write layerWriter
	}
	jobs := make([]job, 0)
	for _, format := range e.opts.Formats {
		layers := e.layers(format, graph, ways)
		for _, layer := range util.SortedKeys(layers) {
			jobs = append(jobs, job{path: e.layerPath(layer, format), write: layers[layer]})
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := writeLayerFile(j.path, e.opts.Compress, j.write); err != nil {
				return util.WrapErrorf(err, util.ErrInternalServerError, "write %s", j.path)
			}
			e.logger.Info("layer written", zap.String("path", j.path))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	paths := make([]string, len(jobs))
	for i, j := range jobs {
		paths[i] = j.path
	}
	return paths, nil
}

func (e *Emitter) layers(format string, graph *topology.Graph, ways []topology.WayLine) map[string]layerWriter {
	layers := make(map[string]layerWriter, 3)
	switch format {
	case FORMAT_CSV:
		layers[NODES_LAYER] = func(w io.Writer) error { return e.writeNodesCSV(w, graph.Nodes()) }
		layers[EDGES_LAYER] = func(w io.Writer) error { return e.writeEdgesCSV(w, graph.Edges()) }
		if ways != nil {
			layers[WAYS_LAYER] = func(w io.Writer) error { return e.writeWaysCSV(w, ways) }
		}
	case FORMAT_GEOJSON:
		layers[NODES_LAYER] = func(w io.Writer) error { return writeNodesGeoJSON(w, graph.Nodes()) }
		layers[EDGES_LAYER] = func(w io.Writer) error { return writeEdgesGeoJSON(w, graph.Edges()) }
		if ways != nil {
			layers[WAYS_LAYER] = func(w io.Writer) error { return writeWaysGeoJSON(w, ways) }
		}
	}
	return layers
}

func (e *Emitter) layerPath(layer, format string) string {
	path := filepath.Join(e.opts.OutputDir, layer+"."+format)
	if e.opts.Compress {
		path += ".bz2"
	}
	return path
}

func writeLayerFile(path string, compress bool, write layerWriter) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if !compress {
		if err := write(f); err != nil {
			return err
		}
		return f.Close()
	}

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	if err := write(bz); err != nil {
		bz.Close()
		return err
	}
	if err := bz.Close(); err != nil {
		return err
	}
	return f.Close()
}
