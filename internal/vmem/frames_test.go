package vmem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPhysicalMemory_FirstFree_LowestIndexWins(t *testing.T) {
	var m physicalMemory
	require.True(t, m.anyFree())
	require.Equal(t, 0, m.firstFree())

	m.occupy(0)
	m.occupy(1)
	require.Equal(t, 2, m.firstFree())

	m.release(0)
	require.Equal(t, 0, m.firstFree())
}

func TestPhysicalMemory_AnyFree_FalseWhenFull(t *testing.T) {
	var m physicalMemory
	for i := 0; i < RAMMaxPages; i++ {
		m.occupy(i)
	}
	require.False(t, m.anyFree())
	require.Equal(t, -1, m.firstFree())
	require.Equal(t, RAMMaxPages, m.residentCount())
}

func TestPhysicalMemory_ResidentCount(t *testing.T) {
	var m physicalMemory
	require.Equal(t, 0, m.residentCount())
	m.occupy(3)
	m.occupy(7)
	require.Equal(t, 2, m.residentCount())
	m.release(3)
	require.Equal(t, 1, m.residentCount())
}
