package osmparser

import (
	"context"
	"errors"

	"github.com/lintang-b-s/osmtopology/pkg/topology"
	"github.com/lintang-b-s/osmtopology/pkg/util"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"go.uber.org/zap"
)

// OsmParser streams openstreetmap ways into a topology.WayIngester. It makes three passes over the map file:
// referenced node ids, node locations, then the ways themselves with their resolved locations.
// An ingester that is also a topology.NodeIngester receives every located node before the first way.
type OsmParser struct {
	wayNodeMap      map[int64]struct{}
	acceptedNodeMap map[int64]NodeCoord
	logger          *zap.Logger
}

func NewOSMParser(logger *zap.Logger) *OsmParser {
	return &OsmParser{
		wayNodeMap:      make(map[int64]struct{}),
		acceptedNodeMap: make(map[int64]NodeCoord),
		logger:          logger,
	}
}

func (p *OsmParser) Parse(ctx context.Context, mapFile string, ingester topology.WayIngester) (ParseStats, error) {
	stats := ParseStats{}

	if err := p.scanWayNodes(ctx, mapFile); err != nil {
		return stats, err
	}
	stats.ReferencedNodes = len(p.wayNodeMap)

	if err := p.scanNodes(ctx, mapFile); err != nil {
		return stats, err
	}
	stats.LocatedNodes = len(p.acceptedNodeMap)
	if stats.UnresolvedNodes() > 0 {
		p.logger.Warn("some referenced nodes have no location", zap.Int("unresolved", stats.UnresolvedNodes()))
	}
	// the referenced set is not needed past this point
	p.wayNodeMap = make(map[int64]struct{})

	if nodeIngester, ok := ingester.(topology.NodeIngester); ok {
		if err := p.ingestNodes(nodeIngester); err != nil {
			return stats, err
		}
	}

	if err := p.ingestWays(ctx, mapFile, ingester, &stats); err != nil {
		return stats, err
	}

	p.logger.Sugar().Infof("ingested openstreetmap ways: %d, skipped: %d", stats.Ways, stats.SkippedWays)
	return stats, nil
}

func (p *OsmParser) scanWayNodes(ctx context.Context, mapFile string) error {
	scanner, closer, err := openScanner(ctx, mapFile, WAY_PASS)
	if err != nil {
		return err
	}
	defer closer.Close()

	countWays := 0
	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeWay {
			continue
		}

		way := o.(*osm.Way)
		if (countWays+1)%50000 == 0 {
			p.logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
		}
		countWays++

		for _, node := range way.Nodes {
			p.wayNodeMap[int64(node.ID)] = struct{}{}
		}
	}
	return scanner.Err()
}

func (p *OsmParser) scanNodes(ctx context.Context, mapFile string) error {
	scanner, closer, err := openScanner(ctx, mapFile, NODE_PASS)
	if err != nil {
		return err
	}
	defer closer.Close()

	countNodes := 0
	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeNode {
			continue
		}

		if (countNodes+1)%500000 == 0 {
			p.logger.Sugar().Infof("processing openstreetmap nodes: %d...", countNodes+1)
		}
		countNodes++

		node := o.(*osm.Node)
		if _, ok := p.wayNodeMap[int64(node.ID)]; ok {
			p.acceptedNodeMap[int64(node.ID)] = NewNodeCoord(node.Lat, node.Lon)
		}
	}
	return scanner.Err()
}

// ingestNodes hands the location index over in ascending node id order.
func (p *OsmParser) ingestNodes(ingester topology.NodeIngester) error {
	for _, id := range util.SortedKeys(p.acceptedNodeMap) {
		coord := p.acceptedNodeMap[id]
		if err := ingester.IngestNode(topology.NodeID(id), orb.Point{coord.lon, coord.lat}); err != nil {
			return err
		}
	}
	return nil
}

func (p *OsmParser) ingestWays(ctx context.Context, mapFile string, ingester topology.WayIngester, stats *ParseStats) error {
	scanner, closer, err := openScanner(ctx, mapFile, WAY_PASS)
	if err != nil {
		return err
	}
	defer closer.Close()

	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeWay {
			continue
		}

		way := o.(*osm.Way)
		if (stats.Ways+stats.SkippedWays+1)%100000 == 0 {
			p.logger.Sugar().Infof("processing openstreetmap ways: %d...", stats.Ways+stats.SkippedWays+1)
		}

		nodes := make([]topology.WayNode, 0, len(way.Nodes))
		for _, node := range way.Nodes {
			coord, ok := p.acceptedNodeMap[int64(node.ID)]
			nodes = append(nodes, toWayNode(int64(node.ID), coord, ok))
		}

		err := ingester.IngestWay(topology.WayID(way.ID), nodes)
		if errors.Is(err, topology.ErrMalformedWay) {
			stats.SkippedWays++
			continue
		} else if err != nil {
			return err
		}
		stats.Ways++
	}
	return scanner.Err()
}
