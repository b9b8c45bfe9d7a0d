package vmem

import (
	"fmt"
	"strings"
)

// formatFaultRecord renders the observability line spec.md §4.2 requires:
//
//	Page fault Pp: pp -> frame ff (replaced qq) (clean|dirty)
func formatFaultRecord(procID, pageID, frame, victimID int, dirty bool) string {
	state := "clean"
	if dirty {
		state = "dirty"
	}
	return fmt.Sprintf("Page fault P%d: %02d -> frame %02d (replaced %02d) (%s)",
		procID, pageID, frame, victimID, state)
}

// DumpPage renders one page-table row per spec.md §6:
//
//	Page pp: Frame ff | Flags bbbbbbbb (M?R?V?) [| Age bits bbbbbbbb] [| Age clock N]
func (e *Engine) DumpPage(procID, pageID int) string {
	entry := e.Page(procID, pageID)

	var b strings.Builder
	fmt.Fprintf(&b, "Page %02d: Frame %02d | Flags %08b (%s)", pageID, frameOrNeg1(entry.Frame), entry.Flags, entry.dumpFlags())

	switch e.algo {
	case AlgoLRU:
		fmt.Fprintf(&b, " | Age bits %08b", entry.AgeBits)
	case AlgoWS:
		fmt.Fprintf(&b, " | Age clock %d", entry.AgeClock)
	}
	return b.String()
}

func frameOrNeg1(frame int) int {
	if frame < 0 {
		return -1
	}
	return frame
}

// ProcessStats is the set of per-process totals spec.md §6 requires.
type ProcessStats struct {
	ProcID         int
	Reads          int
	Writes         int
	PageFaults     int
	ModifiedFaults int
	PageFaultRate  float64 // PageFaults / (Reads+Writes)
	DirtyFaultRate float64 // ModifiedFaults / PageFaults
}

// Stats computes per-process and combined totals over the page tables.
func (e *Engine) Stats() (perProcess [NumProcs]ProcessStats, combined ProcessStats) {
	for i := 0; i < NumProcs; i++ {
		var s ProcessStats
		s.ProcID = i + 1
		for _, entry := range e.tables[i] {
			s.Reads += entry.ReadCount
			s.Writes += entry.WriteCount
			s.PageFaults += entry.PageFaultCount
			s.ModifiedFaults += entry.ModifiedFaultCount
		}
		s.PageFaultRate = rate(s.PageFaults, s.Reads+s.Writes)
		s.DirtyFaultRate = rate(s.ModifiedFaults, s.PageFaults)
		perProcess[i] = s

		combined.Reads += s.Reads
		combined.Writes += s.Writes
		combined.PageFaults += s.PageFaults
		combined.ModifiedFaults += s.ModifiedFaults
	}
	combined.PageFaultRate = rate(combined.PageFaults, combined.Reads+combined.Writes)
	combined.DirtyFaultRate = rate(combined.ModifiedFaults, combined.PageFaults)
	return perProcess, combined
}

func rate(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}

// String renders a ProcessStats row as "Reads: N, Writes: N, Page Faults:
// N, Modified Faults: N, Page Fault Rate: X.XXXX, Dirty Fault Rate: X.XXXX".
func (s ProcessStats) String() string {
	return fmt.Sprintf(
		"Reads: %d, Writes: %d, Page Faults: %d, Modified Faults: %d, Page Fault Rate: %.4f, Dirty Fault Rate: %.4f",
		s.Reads, s.Writes, s.PageFaults, s.ModifiedFaults, s.PageFaultRate, s.DirtyFaultRate)
}
