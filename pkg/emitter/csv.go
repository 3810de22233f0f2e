package emitter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/lintang-b-s/osmtopology/pkg/concurrent"
	"github.com/lintang-b-s/osmtopology/pkg/topology"
	"github.com/lintang-b-s/osmtopology/pkg/util"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/twpayne/go-polyline"
)

func (e *Emitter) encodeGeometry(g orb.Geometry) string {
	if e.opts.GeometryEncoding == ENCODING_POLYLINE {
		return EncodePolyline(g)
	}
	return wkt.MarshalString(g)
}

// EncodePolyline encodes a point or linestring as a google encoded polyline (lat, lon order).
func EncodePolyline(g orb.Geometry) string {
	coords := make([][]float64, 0)
	switch geom := g.(type) {
	case orb.Point:
		coords = append(coords, []float64{geom.Lat(), geom.Lon()})
	case orb.LineString:
		for _, p := range geom {
			coords = append(coords, []float64{p.Lat(), p.Lon()})
		}
	}
	return string(polyline.EncodeCoords(coords))
}

func (e *Emitter) writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func (e *Emitter) writeNodesCSV(w io.Writer, nodes []topology.FinalNode) error {
	rows := concurrent.MapOrdered(nodes, e.opts.EncodeWorkers, func(n topology.FinalNode) []string {
		return []string{
			strconv.FormatInt(int64(n.ID), 10),
			util.FormatFloat(n.Point.Lon()),
			util.FormatFloat(n.Point.Lat()),
			e.encodeGeometry(n.Point),
		}
	})
	return e.writeCSV(w, []string{"id", "lon", "lat", e.opts.GeometryEncoding}, rows)
}

func (e *Emitter) writeEdgesCSV(w io.Writer, edges []topology.FinalEdge) error {
	rows := concurrent.MapOrdered(edges, e.opts.EncodeWorkers, func(edge topology.FinalEdge) []string {
		return []string{
			strconv.FormatInt(int64(edge.WayID), 10),
			strconv.FormatInt(int64(edge.Source), 10),
			strconv.FormatInt(int64(edge.Target), 10),
			util.FormatFloat(edge.Length),
			e.encodeGeometry(edge.Geometry),
		}
	})
	return e.writeCSV(w, []string{"way_id", "source", "target", "length", e.opts.GeometryEncoding}, rows)
}

func (e *Emitter) writeWaysCSV(w io.Writer, ways []topology.WayLine) error {
	rows := concurrent.MapOrdered(ways, e.opts.EncodeWorkers, func(way topology.WayLine) []string {
		return []string{
			strconv.FormatInt(int64(way.WayID), 10),
			strconv.FormatInt(int64(way.Source), 10),
			strconv.FormatInt(int64(way.Target), 10),
			util.FormatFloat(way.Length),
			e.encodeGeometry(way.Geometry),
		}
	})
	return e.writeCSV(w, []string{"way_id", "source", "target", "length", e.opts.GeometryEncoding}, rows)
}
