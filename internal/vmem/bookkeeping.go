package vmem

// EndRound runs the periodic bookkeeping of spec.md §4.4 (component C6)
// and advances the round counter. It must be called exactly once after all
// four processes' requests for a round have been handled via Step, and
// before the first request of the next round.
func (e *Engine) EndRound() {
	switch e.algo {
	case AlgoNRU:
		if e.shouldClearReferenced() {
			e.clearAllReferenced()
		}
	case AlgoSecondChance:
		// Second Chance never clears R globally; it is cleared lazily
		// during victim search (policy.go secondChancePolicy).
	case AlgoLRU:
		e.ageShift()
	case AlgoWS:
		e.recomputeWorkingSets()
		e.clockCounter++
		if e.shouldClearReferenced() {
			e.clearAllReferenced()
		}
	}
	e.round++
	e.logger.Debug(logPrefix+"end of round", "round", e.round, "algo", e.algo)
}

// shouldClearReferenced reports whether this round boundary falls on a
// REF_CLEAR_INTERVAL tick. Rounds are 1-indexed for this purpose: the
// interval-th, 2*interval-th, ... round boundary clears R.
func (e *Engine) shouldClearReferenced() bool {
	return (e.round+1)%RefClearInterval == 0
}

func (e *Engine) clearAllReferenced() {
	for i := 0; i < NumProcs; i++ {
		table := e.tables[i]
		for p := range table {
			table[p].setReferenced(false)
		}
	}
}

// ageShift implements LRU-by-Aging's per-round update, spec.md §4.3.3 and
// §4.4: shift AgeBits right by one, OR in the high bit from the current
// Referenced value, then clear Referenced. Both the absorption and the
// clear happen in the same step, per spec.md §9's open-question resolution.
func (e *Engine) ageShift() {
	for i := 0; i < NumProcs; i++ {
		table := e.tables[i]
		for p := range table {
			entry := &table[p]
			entry.AgeBits >>= 1
			if entry.referenced() {
				entry.AgeBits |= 0b1000_0000
			}
			entry.setReferenced(false)
		}
	}
}

// recomputeWorkingSets rebuilds each process' working-set bitmask per the
// invariant in spec.md §3: p is in the set iff Valid(p) and
// (clock - AgeClock(p)) < k. This runs with clockCounter still holding the
// value used to stamp accesses during the round just finished; the counter
// increments only after this recompute, per spec.md §9's ordering note.
func (e *Engine) recomputeWorkingSets() {
	for i := 0; i < NumProcs; i++ {
		table := e.tables[i]
		wset := &e.aux[i].wset
		*wset = 0
		for p := range table {
			entry := &table[p]
			if entry.valid() && e.clockCounter-entry.AgeClock < e.k {
				wset.add(entry.PageID)
			}
		}
	}
}
