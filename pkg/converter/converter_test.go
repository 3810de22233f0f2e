package converter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/osmtopology/pkg/config"
	"github.com/lintang-b-s/osmtopology/pkg/topology"
	"github.com/lintang-b-s/osmtopology/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

/*
	1 ---- 2 ---- 3      way 10
	       |
	       4             way 11 (4, 2)

way 12 has a single node.
*/
const fixtureOsm = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="osmtopology-test">
  <node id="1" lat="-7.7600" lon="110.3700" version="1"/>
  <node id="2" lat="-7.7600" lon="110.3710" version="1"/>
  <node id="3" lat="-7.7600" lon="110.3720" version="1"/>
  <node id="4" lat="-7.7610" lon="110.3710" version="1"/>
  <way id="10" version="1"><nd ref="1"/><nd ref="2"/><nd ref="3"/></way>
  <way id="11" version="1"><nd ref="4"/><nd ref="2"/></way>
  <way id="12" version="1"><nd ref="3"/></way>
  %s
</osm>
`

func writeFixture(t *testing.T, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.osm")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(fixtureOsm, extra)), 0644))
	return path
}

func testConfig(t *testing.T, input string) *config.Config {
	t.Helper()
	return &config.Config{
		InputFile:        input,
		OutputDir:        filepath.Join(t.TempDir(), "out"),
		Formats:          []string{"csv", "geojson"},
		GeometryEncoding: "wkt",
		LengthMetric:     "haversine",
		EncodeWorkers:    2,
		LogLevel:         "info",
	}
}

func TestRun(t *testing.T) {
	cfg := testConfig(t, writeFixture(t, ""))
	cfg.EmitWays = true
	cfg.SnapshotFile = filepath.Join(cfg.OutputDir, "graph.bz2")

	c, err := NewConverter(cfg, zap.NewNop())
	require.NoError(t, err)

	res, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Stats.Ways)
	assert.Equal(t, 1, res.Stats.SkippedWays)
	assert.Equal(t, 4, res.NumberOfNodes)
	assert.Equal(t, 3, res.NumberOfEdges)
	assert.Equal(t, 1, res.CountDiagnostics(topology.MALFORMED_WAY))
	assert.Equal(t, 0, res.CountDiagnostics(topology.GEOMETRY_CONSTRUCTION))

	// csv and geojson for nodes, edges and ways, then the snapshot
	require.Len(t, res.Files, 7)
	for _, f := range res.Files {
		assert.FileExists(t, f)
	}
	assert.Equal(t, cfg.SnapshotFile, res.Files[6])

	g, err := topology.ReadGraph(cfg.SnapshotFile)
	require.NoError(t, err)
	assert.Equal(t, res.NumberOfNodes, g.NumberOfNodes())
	assert.Equal(t, res.NumberOfEdges, g.NumberOfEdges())
	assert.Len(t, g.EdgesOfWay(10), 2)
	assert.Len(t, g.EdgesOfWay(11), 1)
}

func TestRunMissingNode(t *testing.T) {
	cfg := testConfig(t, writeFixture(t, `<way id="13" version="1"><nd ref="3"/><nd ref="99"/></way>`))

	c, err := NewConverter(cfg, nil)
	require.NoError(t, err)

	res, err := c.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, topology.ErrMissingNode))
	assert.Equal(t, 1, res.CountDiagnostics(topology.MISSING_NODE))
	assert.Empty(t, res.Files)

	_, statErr := os.Stat(cfg.OutputDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewConverterInvalidConfig(t *testing.T) {
	cfg := testConfig(t, "")

	_, err := NewConverter(cfg, nil)
	assert.True(t, errors.Is(err, util.ErrBadParamInput))
}

func TestRunUnsupportedInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.gpkg")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	c, err := NewConverter(testConfig(t, path), nil)
	require.NoError(t, err)

	_, err = c.Run(context.Background())
	assert.True(t, errors.Is(err, util.ErrBadParamInput))
}
