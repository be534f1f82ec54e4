package booking

import (
	"time"

	"github.com/Masterminds/squirrel"
)

// State is a listing filter bucket. WAITING and REJECTED double as
// lifecycle statuses; APPROVED is reachable only through ALL or the
// temporal buckets, never as a filter of its own.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState maps a raw query value onto the closed bucket set.
// An empty value defaults to ALL.
func ParseState(raw string) (State, error) {
	if raw == "" {
		return StateAll, nil
	}
	st := State(raw)
	if _, ok := buckets[st]; !ok {
		return "", ErrUnknownState(raw)
	}
	return st, nil
}

// bucket pairs the time/status predicate of a State with its ordering.
// The ordering asymmetry is intentional: PAST and FUTURE sort by start,
// every other bucket by end.
type bucket struct {
	where   func(now time.Time) squirrel.Sqlizer // nil means no extra predicate
	orderBy string
}

var buckets = map[State]bucket{
	StateAll: {
		orderBy: "b.end_date DESC",
	},
	StateCurrent: {
		where: func(now time.Time) squirrel.Sqlizer {
			return squirrel.And{
				squirrel.LtOrEq{"b.start_date": now},
				squirrel.GtOrEq{"b.end_date": now},
			}
		},
		orderBy: "b.end_date DESC",
	},
	StatePast: {
		where: func(now time.Time) squirrel.Sqlizer {
			return squirrel.Lt{"b.end_date": now}
		},
		orderBy: "b.start_date DESC",
	},
	StateFuture: {
		where: func(now time.Time) squirrel.Sqlizer {
			return squirrel.Gt{"b.start_date": now}
		},
		orderBy: "b.start_date DESC",
	},
	StateWaiting: {
		where: func(time.Time) squirrel.Sqlizer {
			return squirrel.Eq{"b.status": StatusWaiting}
		},
		orderBy: "b.end_date DESC",
	},
	StateRejected: {
		where: func(time.Time) squirrel.Sqlizer {
			return squirrel.Eq{"b.status": StatusRejected}
		},
		orderBy: "b.end_date DESC",
	},
}
