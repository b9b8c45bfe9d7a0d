package vmem

import (
	"strconv"
	"strings"

	"github.com/kvlabs/vmemsim/pkg/cache"
)

// workingSet is a 32-bit bitmask over page ids 0..31, the representation
// spec.md §4.3.4/§9 calls for: "the bitmask is load-bearing (O(1) set ops,
// PROC_MAX_PAGES=32 is the hard cap)". Adapted from util.c's set_t and the
// reference repo's pkg/clockx/clock.go bitmask bookkeeping, collapsed down
// to just membership tracking since WS's victim scan walks page ids
// directly rather than sweeping a clock hand.
type workingSet uint32

func (s workingSet) contains(pageID int) bool {
	return s&(1<<uint(pageID)) != 0
}

func (s *workingSet) add(pageID int) {
	*s |= 1 << uint(pageID)
}

func (s *workingSet) remove(pageID int) {
	*s &^= 1 << uint(pageID)
}

// String renders membership as "p1, p2, p3", the format util.c's
// set_to_str produced.
func (s workingSet) String() string {
	var b strings.Builder
	for i := 0; i < ProcMaxPages; i++ {
		if s.contains(i) {
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Itoa(i))
		}
	}
	return b.String()
}

// processAux bundles the policy-specific auxiliary structures for one
// process. Only the structure matching the selected algorithm is
// populated; the others stay nil/zero, matching spec.md §3: "Aux
// structures are created iff the corresponding policy is selected."
type processAux struct {
	fifo *cache.PageFIFO // Second Chance: load-order queue of resident pages
	wset workingSet      // WS: resident-and-recently-referenced page ids
}

func newProcessAux(algo Algorithm) *processAux {
	a := &processAux{}
	if algo == AlgoSecondChance {
		a.fifo = cache.NewPageFIFO()
	}
	return a
}
