package vmem

// physicalMemory tracks which of the RAMMaxPages frames are occupied.
// Grounded on the reference buffer pool's Pool.frames occupancy scan
// (internal/bufferpool/pool.go GetPage step 2): a linear, lowest-index-wins
// search for a free slot. The determinism is load-bearing for test
// reproducibility per spec.md §4.1.
type physicalMemory struct {
	occupied [RAMMaxPages]bool
}

// firstFree returns the lowest-index unoccupied frame, or -1 if none.
func (m *physicalMemory) firstFree() int {
	for i, occ := range m.occupied {
		if !occ {
			return i
		}
	}
	return -1
}

func (m *physicalMemory) anyFree() bool {
	return m.firstFree() != -1
}

func (m *physicalMemory) occupy(frame int) {
	m.occupied[frame] = true
}

func (m *physicalMemory) release(frame int) {
	m.occupied[frame] = false
}

// residentCount returns how many frames are currently occupied.
func (m *physicalMemory) residentCount() int {
	n := 0
	for _, occ := range m.occupied {
		if occ {
			n++
		}
	}
	return n
}
