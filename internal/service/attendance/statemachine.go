package attendance

import (
	"github.com/hadirin/hadirin-backend-go/internal/domain/attendance"
)

// dayState is the position of an employee within their working day,
// derived by replaying the day's events in chronological order.
type dayState int

const (
	stateOut dayState = iota
	stateIn
	stateOnBreak
)

func stateOf(events []attendance.Event) dayState {
	state := stateOut
	for _, ev := range events {
		switch ev.Kind {
		case attendance.KindClockIn, attendance.KindBreakIn:
			state = stateIn
		case attendance.KindClockOut:
			state = stateOut
		case attendance.KindBreakOut:
			state = stateOnBreak
		}
	}
	return state
}

// checkTransition reports whether kind is a legal next event given the
// day's prior events. Breaks are only valid while clocked in, and a clock
// out with an open break is rejected rather than silently closing it.
func checkTransition(events []attendance.Event, kind attendance.Kind) error {
	state := stateOf(events)

	switch kind {
	case attendance.KindClockIn:
		if state != stateOut {
			return attendance.ErrAlreadyClockedIn
		}
	case attendance.KindClockOut:
		switch state {
		case stateOut:
			return attendance.ErrNotClockedIn
		case stateOnBreak:
			return attendance.ErrOnBreak
		}
	case attendance.KindBreakOut:
		switch state {
		case stateOut:
			return attendance.ErrNotClockedIn
		case stateOnBreak:
			return attendance.ErrBreakOpen
		}
	case attendance.KindBreakIn:
		if state != stateOnBreak {
			return attendance.ErrNoOpenBreak
		}
	}
	return nil
}
