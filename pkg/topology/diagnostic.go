package topology

import (
	"errors"
	"fmt"
)

type DiagnosticKind uint8

const (
	MALFORMED_WAY DiagnosticKind = iota
	MISSING_NODE
	GEOMETRY_CONSTRUCTION
)

func (k DiagnosticKind) String() string {
	switch k {
	case MALFORMED_WAY:
		return "MalformedWay"
	case MISSING_NODE:
		return "MissingNode"
	case GEOMETRY_CONSTRUCTION:
		return "GeometryConstructionError"
	default:
		return "Unknown"
	}
}

// Diagnostic identifies an entity that was skipped or that failed a run.
type Diagnostic struct {
	Kind   DiagnosticKind
	WayID  WayID
	NodeID NodeID
	Err    error
}

func (d Diagnostic) String() string {
	if d.Kind == MISSING_NODE {
		return fmt.Sprintf("%s: way %d node %d: %v", d.Kind, d.WayID, d.NodeID, d.Err)
	}
	return fmt.Sprintf("%s: way %d: %v", d.Kind, d.WayID, d.Err)
}

func diagnosticKindOf(err error) DiagnosticKind {
	switch {
	case errors.Is(err, ErrMissingNode):
		return MISSING_NODE
	case errors.Is(err, ErrGeometryConstruction):
		return GEOMETRY_CONSTRUCTION
	default:
		return MALFORMED_WAY
	}
}
