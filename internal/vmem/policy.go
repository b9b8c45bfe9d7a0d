package vmem

// policy selects a victim page from the faulting process' own resident
// pages when physical memory is full. Re-cast from the original C
// function-pointer dispatch (page_algo_func_t) as a small closed interface
// with four implementations, per spec.md §9's "polymorphism over a small
// closed set" note.
type policy interface {
	// selectVictim returns the page id within procIdx's table to evict.
	// It must panic via unreachablef if no candidate exists; the spec
	// treats that as a structural invariant violation, never a normal
	// return.
	selectVictim(e *Engine, procIdx int) int
}

func newPolicy(algo Algorithm) policy {
	switch algo {
	case AlgoNRU:
		return nruPolicy{}
	case AlgoSecondChance:
		return secondChancePolicy{}
	case AlgoLRU:
		return lruPolicy{}
	case AlgoWS:
		return wsPolicy{}
	default:
		unreachablef("newPolicy: unknown algorithm %v", algo)
		return nil
	}
}

// --- NRU -----------------------------------------------------------------

// nruPolicy implements spec.md §4.3.1: scan valid pages of the process in
// ascending page-id order, grouped into four categories by (R,M), and pick
// the lowest-numbered non-empty category's first page.
type nruPolicy struct{}

func (nruPolicy) selectVictim(e *Engine, procIdx int) int {
	table := e.tables[procIdx]

	// category order: (R=0,M=0), (R=0,M=1), (R=1,M=0), (R=1,M=1)
	for cat := 0; cat < 4; cat++ {
		wantR := cat>>1 != 0
		wantM := cat&1 != 0
		for i := 0; i < ProcMaxPages; i++ {
			entry := &table[i]
			if !entry.valid() {
				continue
			}
			if entry.referenced() == wantR && entry.modified() == wantM {
				return i
			}
		}
	}
	unreachablef("NRU: no valid page found for process index %d", procIdx)
	return -1
}

// --- Second Chance ---------------------------------------------------------

// secondChancePolicy implements spec.md §4.3.2. Grounded on the reference
// buffer pool's CLOCK sweep (internal/bufferpool/pool.go pickVictimLocked):
// dequeue the head, and while its Referenced bit is set, clear it and
// re-enqueue at the tail instead of evicting it — the "second chance".
type secondChancePolicy struct{}

func (secondChancePolicy) selectVictim(e *Engine, procIdx int) int {
	fifo := e.aux[procIdx].fifo
	table := e.tables[procIdx]

	for {
		pageID, ok := fifo.PopFront()
		if !ok {
			unreachablef("2ndC: FIFO empty for process index %d while selecting a victim", procIdx)
		}
		entry := &table[pageID]
		if entry.referenced() {
			entry.setReferenced(false)
			fifo.PushBack(pageID)
			continue
		}
		return pageID
	}
}

// --- LRU by Aging ----------------------------------------------------------

// lruPolicy implements spec.md §4.3.3: the valid page with numerically
// smallest AgeBits is oldest and is evicted, ties broken by lowest page id.
type lruPolicy struct{}

func (lruPolicy) selectVictim(e *Engine, procIdx int) int {
	table := e.tables[procIdx]

	victim := -1
	var victimAge uint8
	for i := 0; i < ProcMaxPages; i++ {
		entry := &table[i]
		if !entry.valid() {
			continue
		}
		if victim == -1 || entry.AgeBits < victimAge {
			victim = i
			victimAge = entry.AgeBits
		}
	}
	if victim == -1 {
		unreachablef("LRU: no valid page found for process index %d", procIdx)
	}
	return victim
}

// --- Working Set -------------------------------------------------------------

// wsPolicy implements spec.md §4.3.4: any valid page outside the
// process' working set is a legal victim; the feasibility check in
// Engine.Step guarantees at least one exists whenever this runs. Ties
// broken by lowest page id.
type wsPolicy struct{}

func (wsPolicy) selectVictim(e *Engine, procIdx int) int {
	table := e.tables[procIdx]
	wset := e.aux[procIdx].wset

	for i := 0; i < ProcMaxPages; i++ {
		entry := &table[i]
		if entry.valid() && !wset.contains(i) {
			return i
		}
	}
	unreachablef("WS: no page outside the working set for process index %d despite passed feasibility check", procIdx)
	return -1
}
