// Package workload implements the request-source collaborator spec.md §1
// and §6 name as out-of-scope for the core engine: a trace-file workload
// generator with tunable locality, and readers/sources that satisfy
// vmem.RequestSource. None of this package is imported by internal/vmem;
// the engine only ever sees the RequestTuple/RequestSource contract.
package workload

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/kvlabs/vmemsim/internal/vmem"
)

// TraceFileName returns the conventional file name for one process' trace,
// matching the original generator's PAGELIST_Pn_FILE naming.
func TraceFileName(procID int) string {
	return fmt.Sprintf("pagelist_P%d.txt", procID)
}

// GenerateOptions controls the synthetic workload, grounded on
// pagelist_gen.c (uniform random baseline) extended with the
// locality/sequentiality bias spec.md §6 calls for.
type GenerateOptions struct {
	NumLines int
	// Locality is the probability [0,1] that the next page is the current
	// page ± 1 (mod ProcMaxPages) instead of a fresh uniform draw.
	Locality float64
	// Sequential, when true, always advances +1 instead of choosing
	// randomly between -1/+1 on a locality hit.
	Sequential bool
}

// GenerateTrace writes NumLines "PP C\n" records to w: a two-digit
// zero-padded page id, a space, and 'R' or 'W', matching spec.md §6's wire
// format exactly.
func GenerateTrace(w io.Writer, opts GenerateOptions, rng *rand.Rand) error {
	bw := bufio.NewWriter(w)
	current := rng.Intn(vmem.ProcMaxPages)

	for i := 0; i < opts.NumLines; i++ {
		page := current
		if i > 0 && rng.Float64() < opts.Locality {
			if opts.Sequential {
				page = (current + 1) % vmem.ProcMaxPages
			} else if rng.Intn(2) == 0 {
				page = (current + 1) % vmem.ProcMaxPages
			} else {
				page = (current - 1 + vmem.ProcMaxPages) % vmem.ProcMaxPages
			}
		} else {
			page = rng.Intn(vmem.ProcMaxPages)
		}

		op := byte('R')
		if rng.Intn(2) == 1 {
			op = 'W'
		}

		if _, err := fmt.Fprintf(bw, "%02d %c\n", page, op); err != nil {
			return fmt.Errorf("workload: write trace line: %w", err)
		}
		current = page
	}
	return bw.Flush()
}

// GenerateTraceFile creates (or truncates) path and writes a generated
// trace to it.
func GenerateTraceFile(path string, opts GenerateOptions, rng *rand.Rand) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("workload: create trace file: %w", err)
	}
	defer f.Close()

	if err := GenerateTrace(f, opts, rng); err != nil {
		return err
	}
	return f.Close()
}

// ParseLine parses one "PP C" trace line into a page id and op.
func ParseLine(line string) (pageID int, op vmem.Op, err error) {
	if len(line) < 4 || line[2] != ' ' || (line[0] < '0' || line[0] > '9') || (line[1] < '0' || line[1] > '9') {
		return 0, 0, fmt.Errorf("workload: malformed trace line %q", line)
	}
	pageID = int(line[0]-'0')*10 + int(line[1]-'0')
	op = vmem.Op(line[3])
	if pageID < 0 || pageID >= vmem.ProcMaxPages {
		return 0, 0, fmt.Errorf("workload: page id out of range in line %q", line)
	}
	if op != vmem.OpRead && op != vmem.OpWrite {
		return 0, 0, fmt.Errorf("workload: invalid op in line %q", line)
	}
	return pageID, op, nil
}
