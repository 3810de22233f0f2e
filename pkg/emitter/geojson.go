package emitter

import (
	"io"

	"github.com/lintang-b-s/osmtopology/pkg/topology"
	"github.com/paulmach/orb/geojson"
)

func writeFeatureCollection(w io.Writer, fc *geojson.FeatureCollection) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func writeNodesGeoJSON(w io.Writer, nodes []topology.FinalNode) error {
	fc := geojson.NewFeatureCollection()
	for _, n := range nodes {
		f := geojson.NewFeature(n.Point)
		f.Properties["id"] = int64(n.ID)
		fc.Append(f)
	}
	return writeFeatureCollection(w, fc)
}

func writeEdgesGeoJSON(w io.Writer, edges []topology.FinalEdge) error {
	fc := geojson.NewFeatureCollection()
	for _, e := range edges {
		f := geojson.NewFeature(e.Geometry)
		f.Properties["way_id"] = int64(e.WayID)
		f.Properties["source"] = int64(e.Source)
		f.Properties["target"] = int64(e.Target)
		f.Properties["length"] = e.Length
		fc.Append(f)
	}
	return writeFeatureCollection(w, fc)
}

func writeWaysGeoJSON(w io.Writer, ways []topology.WayLine) error {
	fc := geojson.NewFeatureCollection()
	for _, way := range ways {
		f := geojson.NewFeature(way.Geometry)
		f.Properties["way_id"] = int64(way.WayID)
		f.Properties["source"] = int64(way.Source)
		f.Properties["target"] = int64(way.Target)
		f.Properties["length"] = way.Length
		fc.Append(f)
	}
	return writeFeatureCollection(w, fc)
}
