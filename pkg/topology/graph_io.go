package topology

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/osmtopology/pkg/util"
	"github.com/paulmach/orb"
)

// WriteGraph writes a bzip2 compressed text snapshot of g.
// header: numNodes numEdges
// node:   id lon lat
// edge:   wayID source target length n x1 y1 ... xn yn
func (g *Graph) WriteGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}

	w := bufio.NewWriter(bz)

	fmt.Fprintf(w, "%d %d\n", len(g.nodes), len(g.edges))

	for _, n := range g.nodes {
		fmt.Fprintf(w, "%d %s %s\n", n.ID, util.FormatFloat(n.Point.Lon()), util.FormatFloat(n.Point.Lat()))
	}

	for _, e := range g.edges {
		fmt.Fprintf(w, "%d %d %d %s %d", e.WayID, e.Source, e.Target, util.FormatFloat(e.Length), len(e.Geometry))
		for _, p := range e.Geometry {
			fmt.Fprintf(w, " %s %s", util.FormatFloat(p.Lon()), util.FormatFloat(p.Lat()))
		}
		fmt.Fprintf(w, "\n")
	}

	if err := w.Flush(); err != nil {
		return err
	}
	if err := bz.Close(); err != nil {
		return err
	}
	return f.Close()
}

func ReadGraph(filename string) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	br := bufio.NewReader(bz)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, err
	}
	tokens := strings.Fields(line)
	if len(tokens) != 2 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "invalid graph header %q", line)
	}
	numNodes, err := strconv.Atoi(tokens[0])
	if err != nil {
		return nil, err
	}
	numEdges, err := strconv.Atoi(tokens[1])
	if err != nil {
		return nil, err
	}

	g := NewGraph()
	for i := 0; i < numNodes; i++ {
		line, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		tokens := strings.Fields(line)
		if len(tokens) != 3 {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "invalid node line %q", line)
		}
		id, err := strconv.ParseInt(tokens[0], 10, 64)
		if err != nil {
			return nil, err
		}
		p, err := parsePoint(tokens[1], tokens[2])
		if err != nil {
			return nil, err
		}
		g.addNode(NodeID(id), p)
	}

	wayEdges := make([]FinalEdge, 0)
	for i := 0; i < numEdges; i++ {
		line, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		e, err := parseEdge(line)
		if err != nil {
			return nil, err
		}
		if len(wayEdges) > 0 && wayEdges[0].WayID != e.WayID {
			g.addWayEdges(wayEdges)
			wayEdges = make([]FinalEdge, 0)
		}
		wayEdges = append(wayEdges, e)
	}
	if len(wayEdges) > 0 {
		g.addWayEdges(wayEdges)
	}

	return g, nil
}

func parseEdge(line string) (FinalEdge, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 5 {
		return FinalEdge{}, util.WrapErrorf(nil, util.ErrBadParamInput, "invalid edge line %q", line)
	}

	ints := make([]int64, 3)
	for i := 0; i < 3; i++ {
		val, err := strconv.ParseInt(tokens[i], 10, 64)
		if err != nil {
			return FinalEdge{}, err
		}
		ints[i] = val
	}
	length, err := strconv.ParseFloat(tokens[3], 64)
	if err != nil {
		return FinalEdge{}, err
	}
	n, err := strconv.Atoi(tokens[4])
	if err != nil {
		return FinalEdge{}, err
	}
	if n < 2 || len(tokens) != 5+2*n {
		return FinalEdge{}, util.WrapErrorf(nil, util.ErrBadParamInput, "invalid edge geometry %q", line)
	}

	ls := make(orb.LineString, n)
	for i := 0; i < n; i++ {
		p, err := parsePoint(tokens[5+2*i], tokens[6+2*i])
		if err != nil {
			return FinalEdge{}, err
		}
		ls[i] = p
	}

	return FinalEdge{
		WayID:    WayID(ints[0]),
		Source:   NodeID(ints[1]),
		Target:   NodeID(ints[2]),
		Length:   length,
		Geometry: ls,
	}, nil
}

func parsePoint(lonStr, latStr string) (orb.Point, error) {
	lon, err := util.StringToFloat64(lonStr)
	if err != nil {
		return orb.Point{}, err
	}
	lat, err := util.StringToFloat64(latStr)
	if err != nil {
		return orb.Point{}, err
	}
	return orb.Point{lon, lat}, nil
}
