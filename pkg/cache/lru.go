// Package cache provides small list-backed collections shared by the
// simulator's replacement policies.
package cache

import (
	"container/list"
	"strconv"
	"strings"
)

// PageFIFO is an ordered queue of resident page ids, used by the Second
// Chance policy to track load order per process. It is not safe for
// concurrent use; the engine that owns it is single-threaded, so unlike
// the list wrapper this replaces it carries no mutex.
type PageFIFO struct {
	l *list.List
	// index lets Remove and Contains avoid walking the list by hand for
	// the common case of "is this id queued".
	index map[int]*list.Element
}

// NewPageFIFO returns an empty queue.
func NewPageFIFO() *PageFIFO {
	return &PageFIFO{
		l:     list.New(),
		index: make(map[int]*list.Element),
	}
}

// PushBack enqueues pageID at the tail.
func (q *PageFIFO) PushBack(pageID int) {
	e := q.l.PushBack(pageID)
	q.index[pageID] = e
}

// PopFront dequeues and returns the head, and whether the queue was non-empty.
func (q *PageFIFO) PopFront() (int, bool) {
	e := q.l.Front()
	if e == nil {
		return 0, false
	}
	q.l.Remove(e)
	pageID := e.Value.(int)
	delete(q.index, pageID)
	return pageID, true
}

// Remove deletes pageID from the queue wherever it sits, if present.
func (q *PageFIFO) Remove(pageID int) {
	e, ok := q.index[pageID]
	if !ok {
		return
	}
	q.l.Remove(e)
	delete(q.index, pageID)
}

// Contains reports whether pageID is currently queued.
func (q *PageFIFO) Contains(pageID int) bool {
	_, ok := q.index[pageID]
	return ok
}

// Len returns the number of queued page ids.
func (q *PageFIFO) Len() int {
	return q.l.Len()
}

// String renders the queue front-to-back as "p1, p2, p3" for debug logging,
// the format util.c's queue_to_str produced.
func (q *PageFIFO) String() string {
	var b strings.Builder
	for e := q.l.Front(); e != nil; e = e.Next() {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(e.Value.(int)))
	}
	return b.String()
}
