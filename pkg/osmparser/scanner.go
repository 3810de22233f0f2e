package osmparser

import (
	"context"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/osmtopology/pkg/util"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
)

type scanPass uint8

const (
	WAY_PASS scanPass = iota
	NODE_PASS
)

// objectScanner is satisfied by both the osmpbf and osmxml scanners.
type objectScanner interface {
	Scan() bool
	Object() osm.Object
	Err() error
	Close() error
}

type multiCloser []io.Closer

func (mc multiCloser) Close() error {
	var firstErr error
	for i := len(mc) - 1; i >= 0; i-- {
		if err := mc[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// openScanner opens mapFile as .osm.pbf, .osm or .osm.bz2. The returned closer releases the scanner and the file.
func openScanner(ctx context.Context, mapFile string, pass scanPass) (objectScanner, io.Closer, error) {
	f, err := os.Open(mapFile)
	if os.IsNotExist(err) {
		return nil, nil, util.WrapErrorf(err, util.ErrNotFound, "map file %s", mapFile)
	} else if err != nil {
		return nil, nil, err
	}

	switch {
	case strings.HasSuffix(mapFile, ".pbf"):
		scanner := osmpbf.New(ctx, f, runtime.GOMAXPROCS(0))
		scanner.SkipRelations = true
		switch pass {
		case WAY_PASS:
			scanner.SkipNodes = true
		case NODE_PASS:
			scanner.SkipWays = true
		}
		return scanner, multiCloser{f, scanner}, nil
	case strings.HasSuffix(mapFile, ".osm.bz2"):
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			f.Close()
			return nil, nil, err
		}
		scanner := osmxml.New(ctx, bz)
		return scanner, multiCloser{f, bz, scanner}, nil
	case strings.HasSuffix(mapFile, ".osm"):
		scanner := osmxml.New(ctx, f)
		return scanner, multiCloser{f, scanner}, nil
	default:
		f.Close()
		return nil, nil, util.WrapErrorf(nil, util.ErrBadParamInput, "unsupported map file %s, want .osm.pbf, .osm or .osm.bz2",
			mapFile)
	}
}
