package topology

// UsageTally counts how many times each node id is traversed across all ways.
// The first and last node of every way get one extra count, so way endpoints always end up as junctions.
type UsageTally struct {
	counts map[NodeID]uint32
}

func NewUsageTally() *UsageTally {
	return &UsageTally{
		counts: make(map[NodeID]uint32),
	}
}

func (ut *UsageTally) Observe(nodeIDs []NodeID) {
	if len(nodeIDs) == 0 {
		return
	}
	for _, id := range nodeIDs {
		ut.counts[id]++
	}
	// endpoint bonus
	ut.counts[nodeIDs[0]]++
	ut.counts[nodeIDs[len(nodeIDs)-1]]++
}

func (ut *UsageTally) Count(id NodeID) uint32 {
	return ut.counts[id]
}

func (ut *UsageTally) IsJunction(id NodeID) bool {
	return ut.counts[id] > 1
}

func (ut *UsageTally) Len() int {
	return len(ut.counts)
}
