package workload

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kvlabs/vmemsim/internal/vmem"
)

// ErrExhausted is returned by a RequestSource once it has no more requests
// for a process, the in-process analogue of the trace file reaching EOF.
var ErrExhausted = errors.New("workload: request source exhausted")

// TraceSource reads the four "PP C" trace files round-robin per process,
// the reference implementation of the pipe+semaphore collaborator spec.md
// §1/§6 name as external: "any in-process or in-memory substitute
// satisfies the contract", and this is the on-disk one driving cmd/vmemsim.
type TraceSource struct {
	files    [vmem.NumProcs]*os.File
	scanners [vmem.NumProcs]*bufio.Scanner
}

// NewTraceSource opens dir/pagelist_P1.txt .. pagelist_P4.txt.
func NewTraceSource(dir string) (*TraceSource, error) {
	ts := &TraceSource{}
	for i := 0; i < vmem.NumProcs; i++ {
		path := dir + string(os.PathSeparator) + TraceFileName(i+1)
		f, err := os.Open(path)
		if err != nil {
			ts.Close()
			return nil, fmt.Errorf("workload: open trace file: %w", err)
		}
		ts.files[i] = f
		ts.scanners[i] = bufio.NewScanner(f)
	}
	return ts, nil
}

// Next implements vmem.RequestSource.
func (ts *TraceSource) Next(procID int) (vmem.RequestTuple, error) {
	if procID < 1 || procID > vmem.NumProcs {
		return vmem.RequestTuple{}, fmt.Errorf("workload: invalid proc id %d", procID)
	}
	sc := ts.scanners[procID-1]
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return vmem.RequestTuple{}, fmt.Errorf("workload: read trace file: %w", err)
		}
		return vmem.RequestTuple{}, ErrExhausted
	}
	pageID, op, err := ParseLine(sc.Text())
	if err != nil {
		return vmem.RequestTuple{}, err
	}
	return vmem.RequestTuple{ProcID: procID, PageID: pageID, Op: op}, nil
}

// Close releases the underlying trace files.
func (ts *TraceSource) Close() error {
	var firstErr error
	for _, f := range ts.files {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ChannelSource is an in-memory, buffered-channel request source. It
// stands in for the pipe+semaphore handshake in tests, per spec.md §9:
// "within-process tests should substitute a deterministic in-memory
// request iterator."
type ChannelSource struct {
	chans [vmem.NumProcs]chan vmem.RequestTuple
}

// NewChannelSource returns a ChannelSource with the given per-process
// buffer capacity.
func NewChannelSource(capacity int) *ChannelSource {
	cs := &ChannelSource{}
	for i := range cs.chans {
		cs.chans[i] = make(chan vmem.RequestTuple, capacity)
	}
	return cs
}

// Push enqueues a request for delivery to procID.
func (cs *ChannelSource) Push(req vmem.RequestTuple) {
	cs.chans[req.ProcID-1] <- req
}

// Close signals that no more requests will be pushed for any process;
// subsequent Next calls on drained channels return ErrExhausted.
func (cs *ChannelSource) Close() {
	for _, ch := range cs.chans {
		close(ch)
	}
}

// Next implements vmem.RequestSource.
func (cs *ChannelSource) Next(procID int) (vmem.RequestTuple, error) {
	if procID < 1 || procID > vmem.NumProcs {
		return vmem.RequestTuple{}, fmt.Errorf("workload: invalid proc id %d", procID)
	}
	req, ok := <-cs.chans[procID-1]
	if !ok {
		return vmem.RequestTuple{}, ErrExhausted
	}
	return req, nil
}

var _ io.Closer = (*TraceSource)(nil)
