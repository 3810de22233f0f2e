package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"

	"github.com/lintang-b-s/osmtopology/pkg/config"
	"github.com/lintang-b-s/osmtopology/pkg/converter"
	"github.com/lintang-b-s/osmtopology/pkg/logger"
	"github.com/lintang-b-s/osmtopology/pkg/topology"
	"go.uber.org/zap"
)

var (
	configDir        = flag.String("config_dir", config.DEFAULT_CONFIG_DIR, "directory containing config.yaml")
	inputFile        = flag.String("input_file", "", "openstreetmap file (.osm.pbf, .osm, .osm.bz2)")
	outputDir        = flag.String("output_dir", "", "directory for the output layers")
	formats          = flag.String("formats", "", "comma separated output formats: csv, geojson")
	geometryEncoding = flag.String("geometry_encoding", "", "csv geometry encoding: wkt or polyline")
	lengthMetric     = flag.String("length_metric", "", "edge length metric: haversine, spherical or planar")
	emitWays         = flag.Bool("emit_ways", false, "also write the unsplit ways layer")
	compress         = flag.Bool("compress", false, "bzip2 compress every output layer")
	snapshotFile     = flag.String("snapshot_file", "", "write a bzip2 graph snapshot to this file")
	encodeWorkers    = flag.Int("encode_workers", 0, "number of row encoding workers")
	logLevel         = flag.String("log_level", "", "log level: debug, info, warn, error")
)

func main() {
	flag.Parse()

	cfg, err := config.ReadConfig(*configDir)
	if err != nil {
		panic(err)
	}
	applyFlags(cfg)

	logger, err := logger.NewWithLevel(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	c, err := converter.NewConverter(cfg, logger)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := c.Run(ctx)
	if err != nil {
		for _, d := range res.Diagnostics {
			if d.Kind == topology.MISSING_NODE {
				logger.Error("conversion failed", zap.String("diagnostic", d.String()))
			}
		}
		panic(err)
	}
	logger.Info("files written", zap.Strings("files", res.Files))
}

// applyFlags overrides config values with the flags set on the command line.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input_file":
			cfg.InputFile = *inputFile
		case "output_dir":
			cfg.OutputDir = *outputDir
		case "formats":
			cfg.Formats = strings.Split(*formats, ",")
		case "geometry_encoding":
			cfg.GeometryEncoding = *geometryEncoding
		case "length_metric":
			cfg.LengthMetric = *lengthMetric
		case "emit_ways":
			cfg.EmitWays = *emitWays
		case "compress":
			cfg.Compress = *compress
		case "snapshot_file":
			cfg.SnapshotFile = *snapshotFile
		case "encode_workers":
			cfg.EncodeWorkers = *encodeWorkers
		case "log_level":
			cfg.LogLevel = *logLevel
		}
	})
}
