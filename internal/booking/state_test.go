package booking

import (
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	tests := []struct {
		raw  string
		want State
	}{
		{"", StateAll},
		{"ALL", StateAll},
		{"CURRENT", StateCurrent},
		{"PAST", StatePast},
		{"FUTURE", StateFuture},
		{"WAITING", StateWaiting},
		{"REJECTED", StateRejected},
	}

	for _, tt := range tests {
		st, err := ParseState(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, st)
	}
}

func TestParseStateUnknown(t *testing.T) {
	for _, raw := range []string{"UNSUPPORTED_STATUS", "APPROVED", "current", "all "} {
		_, err := ParseState(raw)
		require.Error(t, err, raw)
		assert.EqualError(t, err, "Unknown state: "+raw)
	}
}

// APPROVED is deliberately not a selectable bucket.
func TestApprovedIsNotABucket(t *testing.T) {
	_, err := ParseState("APPROVED")
	assert.Error(t, err)
}

func TestBucketOrdering(t *testing.T) {
	// PAST and FUTURE order by start, everything else by end.
	byStart := map[State]bool{StatePast: true, StateFuture: true}

	for st, bk := range buckets {
		if byStart[st] {
			assert.Equal(t, "b.start_date DESC", bk.orderBy, st)
		} else {
			assert.Equal(t, "b.end_date DESC", bk.orderBy, st)
		}
	}
}

func TestBucketPredicates(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	sqlFor := func(st State) (string, []any) {
		bk := buckets[st]
		if bk.where == nil {
			return "", nil
		}
		sql, args, err := squirrel.StatementBuilder.
			PlaceholderFormat(squirrel.Dollar).
			Select("1").From("bookings b").Where(bk.where(now)).
			ToSql()
		require.NoError(t, err)
		return sql, args
	}

	sql, _ := sqlFor(StateAll)
	assert.Empty(t, sql, "ALL carries no time filter")

	sql, args := sqlFor(StateCurrent)
	assert.Contains(t, sql, "b.start_date <= $1")
	assert.Contains(t, sql, "b.end_date >= $2")
	assert.Equal(t, []any{now, now}, args)

	sql, args = sqlFor(StatePast)
	assert.Contains(t, sql, "b.end_date < $1")
	assert.Equal(t, []any{now}, args)

	sql, args = sqlFor(StateFuture)
	assert.Contains(t, sql, "b.start_date > $1")
	assert.Equal(t, []any{now}, args)

	sql, args = sqlFor(StateWaiting)
	assert.Contains(t, sql, "b.status = $1")
	assert.Equal(t, []any{StatusWaiting}, args)

	sql, args = sqlFor(StateRejected)
	assert.Contains(t, sql, "b.status = $1")
	assert.Equal(t, []any{StatusRejected}, args)
}
