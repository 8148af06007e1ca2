// SPDX-License-Identifier: Unlicense OR MIT

package touch

import (
	"sort"

	"github.com/kaedeflow/touchplan/frame"
)

// Planner processes frame.Frames in ascending ms order and emits the
// low-level touch stream, dispatching each FrameEvent to an acquire/emit
// step keyed by its Action.
type Planner struct {
	manager *Manager
}

// NewPlanner returns a Planner whose pointer id allocator starts at
// DefaultPointerIDBase.
func NewPlanner() *Planner {
	return NewPlannerWithBase(DefaultPointerIDBase, 1)
}

// NewPlannerWithBase returns a Planner with a custom id allocator range, for
// deployments that reserve part of the pointer-id space.
func NewPlannerWithBase(begin, delta PointerID) *Planner {
	return &Planner{manager: NewManager(begin, delta)}
}

// Plan turns frames into map[ms][]Event. On a fatal error (pointer budget
// exceeded or a monotonicity violation) it returns nil and the error with no
// partial result.
func (p *Planner) Plan(frames frame.Frames) (map[int][]Event, error) {
	result := make(map[int][]Event)
	add := func(ms int, ev Event) {
		result[ms] = append(result[ms], ev)
	}

	mss := make([]int, 0, len(frames))
	for ms := range frames {
		mss = append(mss, ms)
	}
	sort.Ints(mss)

	for _, ms := range mss {
		if err := p.manager.Advance(ms); err != nil {
			return nil, err
		}
		isKeyframe := false
		for _, fe := range frames[ms] {
			switch fe.Action {
			case frame.TAP:
				pid, _ := p.manager.Acquire(fe, true)
				add(ms, Event{Pos: fe.Point, Action: Down, PointerID: pid})
				p.manager.Release(fe)
				isKeyframe = true
			case frame.DRAG:
				pid, fresh := p.manager.Acquire(fe, false)
				add(ms, Event{Pos: fe.Point, Action: downOrMove(fresh), PointerID: pid})
				p.manager.Release(fe)
			case frame.FlickStart:
				pid, fresh := p.manager.Acquire(fe, false)
				add(ms, Event{Pos: fe.Point, Action: downOrMove(fresh), PointerID: pid})
			case frame.Flick, frame.Hold:
				pid, _ := p.manager.Acquire(fe, true)
				add(ms, Event{Pos: fe.Point, Action: Move, PointerID: pid})
			case frame.FlickEnd, frame.HoldEnd:
				pid, _ := p.manager.Acquire(fe, true)
				add(ms, Event{Pos: fe.Point, Action: Move, PointerID: pid})
				p.manager.Release(fe)
			case frame.HoldStart:
				pid, _ := p.manager.Acquire(fe, true)
				add(ms, Event{Pos: fe.Point, Action: Down, PointerID: pid})
				isKeyframe = true
			}
		}
		emissions, err := p.manager.Recycle(isKeyframe)
		if err != nil {
			return nil, err
		}
		for _, em := range emissions {
			add(em.MS, em.Event)
		}
	}

	for _, em := range p.manager.Finish() {
		add(em.MS, em.Event)
	}
	return result, nil
}

func downOrMove(fresh bool) Action {
	if fresh {
		return Down
	}
	return Move
}
