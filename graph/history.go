package graph

import (
	"time"

	"github.com/rickb777/date/v2/timespan"
)

// TimeSpan is the wall-clock interval type used by the mutation history.
type TimeSpan = timespan.TimeSpan

// NewTimeSpan builds the span between two instants.
func NewTimeSpan(from, to time.Time) TimeSpan {
	return timespan.BetweenTimes(from, to)
}

// MutationRecord ties a committed version to the wall-clock window in which
// it was written. Useful when debugging "when did version N happen".
type MutationRecord struct {
	Version Version
	Span    TimeSpan
}

const defaultHistoryLimit = 64

// historyLog keeps the most recent mutation windows, oldest first. Not
// goroutine-safe on its own; records are only appended under the mutation
// window's exclusivity.
type historyLog struct {
	limit   int
	records []MutationRecord
}

func newHistoryLog(limit int) *historyLog {
	return &historyLog{limit: limit}
}

func (h *historyLog) record(v Version, span TimeSpan) {
	if h.limit <= 0 {
		return
	}
	h.records = append(h.records, MutationRecord{Version: v, Span: span})
	if overflow := len(h.records) - h.limit; overflow > 0 {
		h.records = append(h.records[:0], h.records[overflow:]...)
	}
}

// History returns a copy of the retained mutation records, oldest first.
func (s *System) History() []MutationRecord {
	out := make([]MutationRecord, len(s.history.records))
	copy(out, s.history.records)
	return out
}
