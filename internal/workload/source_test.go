package workload

import (
	"math/rand"
	"testing"

	"github.com/kvlabs/vmemsim/internal/vmem"
	"github.com/stretchr/testify/require"
)

func writeAllTraces(t *testing.T, dir string, lines int) {
	t.Helper()
	rng := rand.New(rand.NewSource(3))
	for procID := 1; procID <= vmem.NumProcs; procID++ {
		path := dir + "/" + TraceFileName(procID)
		require.NoError(t, GenerateTraceFile(path, GenerateOptions{NumLines: lines}, rng))
	}
}

func TestTraceSource_NextDrainsAllFourFiles(t *testing.T) {
	dir := t.TempDir()
	writeAllTraces(t, dir, 3)

	src, err := NewTraceSource(dir)
	require.NoError(t, err)
	defer src.Close()

	for procID := 1; procID <= vmem.NumProcs; procID++ {
		for i := 0; i < 3; i++ {
			req, err := src.Next(procID)
			require.NoError(t, err)
			require.Equal(t, procID, req.ProcID)
		}
		_, err := src.Next(procID)
		require.ErrorIs(t, err, ErrExhausted)
	}
}

func TestTraceSource_RejectsOutOfRangeProcID(t *testing.T) {
	dir := t.TempDir()
	writeAllTraces(t, dir, 1)

	src, err := NewTraceSource(dir)
	require.NoError(t, err)
	defer src.Close()

	_, err = src.Next(0)
	require.Error(t, err)
	_, err = src.Next(5)
	require.Error(t, err)
}

func TestChannelSource_PushAndDrain(t *testing.T) {
	cs := NewChannelSource(2)
	cs.Push(vmem.RequestTuple{ProcID: 1, PageID: 5, Op: vmem.OpRead})
	cs.Push(vmem.RequestTuple{ProcID: 1, PageID: 6, Op: vmem.OpWrite})
	cs.Close()

	req, err := cs.Next(1)
	require.NoError(t, err)
	require.Equal(t, 5, req.PageID)

	req, err = cs.Next(1)
	require.NoError(t, err)
	require.Equal(t, 6, req.PageID)

	_, err = cs.Next(1)
	require.ErrorIs(t, err, ErrExhausted)
}

func TestChannelSource_RejectsOutOfRangeProcID(t *testing.T) {
	cs := NewChannelSource(1)
	_, err := cs.Next(0)
	require.Error(t, err)
}
