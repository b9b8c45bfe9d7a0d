package vmem

import (
	"fmt"
	"log/slog"
)

const logPrefix = "vmem: "

// Engine is the owning aggregate for the whole simulation: four page
// tables, the shared frame pool, policy-specific auxiliary structures, and
// the WS clock. Re-cast from the original C's extern globals into a single
// value created at startup, per spec.md §9: "all mutating operations
// become method-like calls on that aggregate."
//
// Engine is not safe for concurrent use. Per spec.md §5 the simulation is
// single-threaded and strictly sequential; no internal locking is done.
type Engine struct {
	algo Algorithm
	k    int

	tables [NumProcs]*pageTable
	mem    physicalMemory
	aux    [NumProcs]*processAux
	policy policy

	clockCounter       int
	wsetCheckPerformed bool

	round  int
	logger *slog.Logger
}

// NewEngine constructs an Engine for the given algorithm. k is only
// consulted (and required) for AlgoWS.
func NewEngine(algo Algorithm, k int, logger *slog.Logger) (*Engine, error) {
	if algo == AlgoWS {
		if k <= 0 {
			return nil, ErrMissingKParam
		}
		if k > RAMMaxPages {
			return nil, ErrKParamTooLarge
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		algo:   algo,
		k:      k,
		policy: newPolicy(algo),
		logger: logger,
	}
	for i := 0; i < NumProcs; i++ {
		e.tables[i] = newPageTable()
		e.aux[i] = newProcessAux(algo)
	}
	return e, nil
}

// Algorithm returns the engine's configured replacement policy.
func (e *Engine) Algorithm() Algorithm { return e.algo }

// K returns the configured working-set window, 0 for non-WS algorithms.
func (e *Engine) K() int {
	if e.algo != AlgoWS {
		return 0
	}
	return e.k
}

// Round returns the number of rounds whose bookkeeping has completed.
func (e *Engine) Round() int { return e.round }

// Page returns a copy of one process' page-table entry, for reporting and
// tests. procID is 1..4, pageID is 0..31.
func (e *Engine) Page(procID, pageID int) PageEntry {
	idx, err := procIndex(procID)
	if err != nil {
		panic(err)
	}
	if pageID < 0 || pageID >= ProcMaxPages {
		panic(fmt.Sprintf("vmem: page id out of range: %d", pageID))
	}
	return e.tables[idx][pageID]
}

func procIndex(procID int) (int, error) {
	if procID < 1 || procID > NumProcs {
		return 0, newInvalidRequestError(RequestTuple{ProcID: procID}, "proc id out of range [1,4]")
	}
	return procID - 1, nil
}

// Step processes a single request, implementing spec.md §4.2's C4
// algorithm: validate, update stats, stamp WS clock, then dispatch to a
// hit, a cold fault, or a replacement fault.
func (e *Engine) Step(req RequestTuple) error {
	procIdx, err := procIndex(req.ProcID)
	if err != nil {
		return err
	}
	if req.PageID < 0 || req.PageID >= ProcMaxPages {
		return newInvalidRequestError(req, "page id out of range [0,31]")
	}
	if req.Op != OpRead && req.Op != OpWrite {
		return newInvalidRequestError(req, "op must be 'R' or 'W'")
	}

	entry := &e.tables[procIdx][req.PageID]

	// 1-3: stats, reference bit, modified bit.
	if req.Op == OpRead {
		entry.ReadCount++
	} else {
		entry.WriteCount++
	}
	entry.setReferenced(true)
	if req.Op == OpWrite {
		entry.setModified(true)
	}

	// 4: WS feasibility check, evaluated exactly once, the first time
	// physical memory is observed full.
	if e.algo == AlgoWS && !e.wsetCheckPerformed && !e.mem.anyFree() {
		e.wsetCheckPerformed = true
		minResident := e.minResidentAcrossProcesses()
		if e.k >= minResident {
			return &wsInfeasibleError{k: e.k, minResident: minResident}
		}
	}

	// 5: WS clock stamp, unconditional, before residency dispatch.
	if e.algo == AlgoWS {
		entry.AgeClock = e.clockCounter
	}

	// 6: residency dispatch.
	switch {
	case entry.valid():
		e.logger.Debug(logPrefix+"hit", "proc", req.ProcID, "page", req.PageID)
	case e.mem.anyFree():
		e.coldFault(procIdx, req.PageID)
	default:
		e.replacementFault(procIdx, req.PageID)
	}

	return nil
}

func (e *Engine) minResidentAcrossProcesses() int {
	min := -1
	for i := 0; i < NumProcs; i++ {
		n := 0
		for _, entry := range e.tables[i] {
			if entry.valid() {
				n++
			}
		}
		if min == -1 || n < min {
			min = n
		}
	}
	return min
}

func (e *Engine) coldFault(procIdx, pageID int) {
	frame := e.mem.firstFree()
	if frame == -1 {
		unreachablef("coldFault called with no free frame")
	}
	entry := &e.tables[procIdx][pageID]
	entry.setValid(true)
	entry.Frame = frame
	e.mem.occupy(frame)
	entry.PageFaultCount++

	if e.algo == AlgoSecondChance {
		e.aux[procIdx].fifo.PushBack(pageID)
	}

	e.logger.Debug(logPrefix+"cold fault",
		"proc", procIdx+1, "page", pageID, "frame", frame)
}

func (e *Engine) replacementFault(procIdx, pageID int) {
	victimID := e.policy.selectVictim(e, procIdx)
	victim := &e.tables[procIdx][victimID]
	frame := victim.Frame
	dirty := victim.modified()

	entry := &e.tables[procIdx][pageID]
	entry.PageFaultCount++
	if dirty {
		entry.ModifiedFaultCount++
	}

	// Absent state per spec.md §4.5: all flag and age data reset.
	victim.setValid(false)
	victim.Frame = -1
	victim.setReferenced(false)
	victim.setModified(false)
	victim.AgeBits = 0
	victim.AgeClock = 0

	entry.setValid(true)
	entry.Frame = frame
	e.mem.occupy(frame) // already occupied by victim's old frame; keep the invariant explicit

	if e.algo == AlgoSecondChance {
		e.aux[procIdx].fifo.PushBack(pageID)
	}
	if e.algo == AlgoWS {
		e.aux[procIdx].wset.remove(victimID)
	}

	e.logger.Info(formatFaultRecord(procIdx+1, pageID, frame, victimID, dirty))
}
