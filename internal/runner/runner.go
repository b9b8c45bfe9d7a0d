// Package runner drives the round loop and final reporting described by
// spec.md's C7 component. It is the "outer driver" layer: it depends on
// internal/vmem for the engine and on a vmem.RequestSource for requests,
// but the core engine never imports this package.
package runner

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/kvlabs/vmemsim/internal/vmem"
)

// Runner ties a RequestSource to an Engine and drives it round by round,
// the way the reference server's run() function drives its TCP accept
// loop: a small, explicit loop with no hidden goroutines.
type Runner struct {
	engine *vmem.Engine
	source vmem.RequestSource
	logger *slog.Logger
}

// New returns a Runner over engine, pulling requests from source.
func New(engine *vmem.Engine, source vmem.RequestSource, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{engine: engine, source: source, logger: logger}
}

// RunRounds drives numRounds rounds: each round asks source for exactly
// one request per process, in fixed P1..P4 order, feeds it to the engine,
// and then runs end-of-round bookkeeping, per spec.md §5's ordering
// guarantees.
func (r *Runner) RunRounds(numRounds int) error {
	for round := 0; round < numRounds; round++ {
		for procID := 1; procID <= vmem.NumProcs; procID++ {
			req, err := r.source.Next(procID)
			if err != nil {
				return fmt.Errorf("runner: round %d, proc %d: %w", round+1, procID, err)
			}
			if err := r.engine.Step(req); err != nil {
				return fmt.Errorf("runner: round %d, proc %d: %w", round+1, procID, err)
			}
		}
		r.engine.EndRound()
		r.logger.Debug("round complete", "round", round+1)
	}
	return nil
}

// Report writes the final human-readable report spec.md §6 requires: a
// per-page dump for every process, followed by per-process and combined
// statistics.
func (r *Runner) Report(w io.Writer) error {
	for procID := 1; procID <= vmem.NumProcs; procID++ {
		fmt.Fprintf(w, "=== Process P%d page table ===\n", procID)
		for pageID := 0; pageID < vmem.ProcMaxPages; pageID++ {
			fmt.Fprintln(w, r.engine.DumpPage(procID, pageID))
		}
	}

	perProcess, combined := r.engine.Stats()
	for _, s := range perProcess {
		fmt.Fprintf(w, "Process P%d: %s\n", s.ProcID, s)
	}
	fmt.Fprintf(w, "Combined: %s\n", combined)
	return nil
}
