// SPDX-License-Identifier: Unlicense OR MIT

package touch

import (
	"sort"

	"github.com/kaedeflow/touchplan/frame"
	"github.com/kaedeflow/touchplan/geom"
)

// pointer is the manager's bookkeeping record for one logical touch slot.
type pointer struct {
	pid       PointerID
	pos       geom.Point
	timestamp int
	occupied  int
}

// Emission is an Event the manager decided to emit on its own, outside of
// the per-FrameEvent processing loop: UP events from recycle and finish,
// each carrying the millisecond it belongs at (not necessarily the ms the
// manager is currently advancing through).
type Emission struct {
	MS    int
	Event Event
}

// Manager tracks which pointer serves which frame.ID, reuses released
// pointers for nearby gestures, and enforces the live-pointer budget.
type Manager struct {
	begin, delta, maxPointerID PointerID

	pointers       map[frame.ID]*pointer
	recycled       map[PointerID]struct{}
	unused         map[PointerID]*pointer
	unusedNow      map[PointerID]*pointer
	markAsReleased []frame.ID

	now    int
	hasNow bool
}

// NewManager returns a Manager whose id allocator starts at begin and steps
// by delta.
func NewManager(begin, delta PointerID) *Manager {
	return &Manager{
		begin:        begin,
		delta:        delta,
		maxPointerID: begin,
		pointers:     make(map[frame.ID]*pointer),
		recycled:     make(map[PointerID]struct{}),
		unused:       make(map[PointerID]*pointer),
		unusedNow:    make(map[PointerID]*pointer),
	}
}

// Advance sets the millisecond the manager is currently planning. It is a
// fatal error to advance to an ms earlier than one already seen.
func (m *Manager) Advance(ms int) error {
	if m.hasNow && ms < m.now {
		return &ErrMonotonicityViolation{MS: ms, Prev: m.now}
	}
	m.now = ms
	m.hasNow = true
	return nil
}

// newID allocates a fresh pointer id, preferring the smallest recycled id
// over growing the id space.
func (m *Manager) newID() PointerID {
	if len(m.recycled) > 0 {
		first := true
		var pid PointerID
		for id := range m.recycled {
			if first || id < pid {
				pid, first = id, false
			}
		}
		delete(m.recycled, pid)
		return pid
	}
	pid := m.maxPointerID
	m.maxPointerID += m.delta
	return pid
}

// del returns pid to the recycled pool, compacting the id space back to
// begin once every allocated id has been recycled.
func (m *Manager) del(pid PointerID) {
	m.recycled[pid] = struct{}{}
	if PointerID(len(m.recycled)) == (m.maxPointerID-m.begin)/m.delta {
		m.maxPointerID = m.begin
		m.recycled = make(map[PointerID]struct{})
	}
}

// Acquire binds ev.ID to a pointer. If ev.ID already owns one, it's updated
// in place. Otherwise, when newPointer is false, Acquire searches unused for
// the nearest-and-freshest candidate within ReuseDistanceThreshold before
// falling back to allocating a new pid. The returned bool reports whether a
// fresh pid was allocated.
func (m *Manager) Acquire(ev frame.Event, newPointer bool) (PointerID, bool) {
	if ptr, ok := m.pointers[ev.ID]; ok {
		ptr.timestamp = m.now
		ptr.pos = ev.Point
		return ptr.pid, false
	}

	if !newPointer {
		if pid, ptr, ok := m.nearestUnused(ev.Point); ok {
			delete(m.unused, pid)
			ptr.timestamp = m.now
			ptr.pos = ev.Point
			ptr.occupied = 0
			m.pointers[ev.ID] = ptr
			return pid, false
		}
	}

	pid := m.newID()
	m.pointers[ev.ID] = &pointer{pid: pid, pos: ev.Point, timestamp: m.now}
	return pid, true
}

// nearestUnused finds the unused pointer minimizing distance-plus-time-decay
// to p, restricted to candidates within ReuseDistanceThreshold. Ties break
// toward the smallest pid, independent of map iteration order, so the same
// chart always reuses the same pointer.
func (m *Manager) nearestUnused(p geom.Point) (PointerID, *pointer, bool) {
	var bestPid PointerID
	var best *pointer
	bestScore := 0.0
	for pid, ptr := range m.unused {
		d := geom.Distance(p, ptr.pos)
		if d >= ReuseDistanceThreshold {
			continue
		}
		score := d + float64(m.now-ptr.timestamp)/ReuseTimePenaltyDivisor
		if best == nil || score < bestScore || (score == bestScore && pid < bestPid) {
			best, bestPid, bestScore = ptr, pid, score
		}
	}
	return bestPid, best, best != nil
}

// Release defers ev.ID's pointer for end-of-ms cleanup: it moves the record
// into unusedNow (a one-ms quarantine so it isn't reused the same ms it was
// freed) but keeps it in pointers until Recycle runs, preserving same-ms
// lookups.
func (m *Manager) Release(ev frame.Event) {
	ptr, ok := m.pointers[ev.ID]
	if !ok {
		return
	}
	m.unusedNow[ptr.pid] = ptr
	m.markAsReleased = append(m.markAsReleased, ev.ID)
}

// Recycle runs the end-of-ms bookkeeping: it deletes every id released this
// ms, ages idle unused pointers on keyframes (emitting UP once a pointer has
// survived IdleKeyframeTolerance keyframes unused), and folds this ms's
// freshly-released pointers into the reuse pool. It fails if the live
// pointer count exceeds MaxLivePointers.
func (m *Manager) Recycle(isKeyframe bool) ([]Emission, error) {
	for _, id := range m.markAsReleased {
		delete(m.pointers, id)
	}
	m.markAsReleased = m.markAsReleased[:0]

	var emissions []Emission
	if isKeyframe {
		for _, pid := range sortedPointerIDs(m.unused) {
			ptr := m.unused[pid]
			ptr.occupied++
			if ptr.occupied > IdleKeyframeTolerance {
				emissions = append(emissions, upEmission(pid, ptr))
				m.del(pid)
				delete(m.unused, pid)
			}
		}
	}

	for pid, ptr := range m.unusedNow {
		m.unused[pid] = ptr
	}
	m.unusedNow = make(map[PointerID]*pointer)

	if live := len(m.unused) + len(m.pointers); live > MaxLivePointers {
		return nil, &ErrPointerBudgetExceeded{MS: m.now, Pointers: live}
	}
	return emissions, nil
}

// Finish yields an UP for every pointer still tracked anywhere (unused,
// unusedNow, and pointers, in that order) once the frame stream is
// exhausted.
func (m *Manager) Finish() []Emission {
	var emissions []Emission
	for _, pid := range sortedPointerIDs(m.unused) {
		emissions = append(emissions, upEmission(pid, m.unused[pid]))
	}
	for _, pid := range sortedPointerIDs(m.unusedNow) {
		emissions = append(emissions, upEmission(pid, m.unusedNow[pid]))
	}
	for _, id := range sortedFrameIDs(m.pointers) {
		ptr := m.pointers[id]
		emissions = append(emissions, upEmission(ptr.pid, ptr))
	}
	return emissions
}

func upEmission(pid PointerID, ptr *pointer) Emission {
	return Emission{MS: ptr.timestamp + 1, Event: Event{Pos: ptr.pos, Action: Up, PointerID: pid}}
}

func sortedPointerIDs(m map[PointerID]*pointer) []PointerID {
	ids := make([]PointerID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedFrameIDs(m map[frame.ID]*pointer) []frame.ID {
	ids := make([]frame.ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
