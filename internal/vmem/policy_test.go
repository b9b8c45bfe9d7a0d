package vmem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, algo Algorithm, k int) *Engine {
	t.Helper()
	e, err := NewEngine(algo, k, nil)
	require.NoError(t, err)
	return e
}

// TestNRUPolicy_VictimOrder mirrors scenario B: page0 (R=1,M=1), page1
// (R=1,M=0), page2 (R=0,M=1), page3 (R=0,M=0) resident on P1. The
// lowest-numbered non-empty category is (R=0,M=0), so page 3 is evicted.
func TestNRUPolicy_VictimOrder(t *testing.T) {
	e := newTestEngine(t, AlgoNRU, 0)
	table := e.tables[0]

	set := func(id int, r, m bool) {
		table[id].setValid(true)
		table[id].setReferenced(r)
		table[id].setModified(m)
		table[id].Frame = id
	}
	set(0, true, true)
	set(1, true, false)
	set(2, false, true)
	set(3, false, false)

	victim := nruPolicy{}.selectVictim(e, 0)
	require.Equal(t, 3, victim)
}

func TestNRUPolicy_TieBreakIsLowestPageID(t *testing.T) {
	e := newTestEngine(t, AlgoNRU, 0)
	table := e.tables[0]

	table[5].setValid(true)
	table[2].setValid(true)
	table[9].setValid(true)

	victim := nruPolicy{}.selectVictim(e, 0)
	require.Equal(t, 2, victim)
}

func TestNRUPolicy_PanicsWithNoValidPage(t *testing.T) {
	e := newTestEngine(t, AlgoNRU, 0)
	require.Panics(t, func() { nruPolicy{}.selectVictim(e, 0) })
}

// TestSecondChancePolicy_GivesReferencedPagesASecondChance mirrors
// scenario C: FIFO [0,1,2,3] with R bits [1,0,1,0]. Page 0 is dequeued,
// R=1 so it is re-enqueued with R cleared; page 1 is dequeued next with
// R=0 and becomes the victim.
func TestSecondChancePolicy_GivesReferencedPagesASecondChance(t *testing.T) {
	e := newTestEngine(t, AlgoSecondChance, 0)
	table := e.tables[0]
	fifo := e.aux[0].fifo

	refBits := []bool{true, false, true, false}
	for i, r := range refBits {
		table[i].setValid(true)
		table[i].setReferenced(r)
		table[i].Frame = i
		fifo.PushBack(i)
	}

	victim := secondChancePolicy{}.selectVictim(e, 0)
	require.Equal(t, 1, victim)

	// page 0 got a second chance, its R bit is now cleared, and it is back
	// at the tail behind 2, 3.
	require.False(t, table[0].referenced())
	require.Equal(t, "2, 3, 0", fifo.String())
}

func TestSecondChancePolicy_PanicsOnEmptyFIFO(t *testing.T) {
	e := newTestEngine(t, AlgoSecondChance, 0)
	require.Panics(t, func() { secondChancePolicy{}.selectVictim(e, 0) })
}

// TestLRUPolicy_OldestAgeWins mirrors scenario D: page 7 has been touched
// longer ago than page 8, so its age register reads numerically lower.
func TestLRUPolicy_OldestAgeWins(t *testing.T) {
	e := newTestEngine(t, AlgoLRU, 0)
	table := e.tables[0]

	table[7].setValid(true)
	table[7].AgeBits = 0b0001_1100 // aged out over several rounds
	table[8].setValid(true)
	table[8].AgeBits = 0b1110_0000 // touched recently

	victim := lruPolicy{}.selectVictim(e, 0)
	require.Equal(t, 7, victim)
}

func TestLRUPolicy_TieBreakIsLowestPageID(t *testing.T) {
	e := newTestEngine(t, AlgoLRU, 0)
	table := e.tables[0]

	table[4].setValid(true)
	table[4].AgeBits = 5
	table[1].setValid(true)
	table[1].AgeBits = 5

	victim := lruPolicy{}.selectVictim(e, 0)
	require.Equal(t, 1, victim)
}

func TestWSPolicy_VictimIsOutsideWorkingSet(t *testing.T) {
	e := newTestEngine(t, AlgoWS, 2)
	table := e.tables[0]

	table[0].setValid(true)
	table[1].setValid(true)
	table[2].setValid(true)
	e.aux[0].wset.add(0)
	e.aux[0].wset.add(1)

	victim := wsPolicy{}.selectVictim(e, 0)
	require.Equal(t, 2, victim)
}

func TestWSPolicy_PanicsWhenNoPageOutsideWorkingSet(t *testing.T) {
	e := newTestEngine(t, AlgoWS, 2)
	table := e.tables[0]

	table[0].setValid(true)
	e.aux[0].wset.add(0)

	require.Panics(t, func() { wsPolicy{}.selectVictim(e, 0) })
}
