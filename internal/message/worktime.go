package message

import (
	"strings"
	"time"

	"github.com/example/mail-composer/internal/apperror"
)

// SentinelTime is the textual stand-in for an unrecorded start time. It
// passes the HH:MM shape check and flows through templates and the
// start-time file unchanged.
const SentinelTime = "--:--"

// WorkTime is a wall-clock time in HH:MM form. The digits are not range
// checked; the sentinel "--:--" must remain a valid value.
type WorkTime struct {
	value string
}

// NewWorkTime validates the HH:MM shape: length five, a single ':' at
// offset two.
func NewWorkTime(s string) (WorkTime, error) {
	if len(s) != 5 || s[2] != ':' || strings.Count(s, ":") != 1 {
		return WorkTime{}, apperror.Newf(apperror.UnavailableForLegalReasons,
			"invalid time format: %s", s).
			WithHint("specify the time as HH:MM")
	}
	return WorkTime{value: s}, nil
}

// SentinelWorkTime returns the "--:--" marker used when no start time was
// recorded.
func SentinelWorkTime() WorkTime {
	return WorkTime{value: SentinelTime}
}

// Now formats the clock's current local time as HH:MM. A nil clock falls
// back to time.Now.
func Now(clock func() time.Time) WorkTime {
	if clock == nil {
		clock = time.Now
	}
	return WorkTime{value: clock().Format("15:04")}
}

// String returns the HH:MM text.
func (t WorkTime) String() string {
	return t.value
}

// IsZero reports whether the value was never set.
func (t WorkTime) IsZero() bool {
	return t.value == ""
}

// WorkTimeRange is an ordered start/end pair.
type WorkTimeRange struct {
	start WorkTime
	end   WorkTime
}

// NewWorkTimeRange pairs a start and end time.
func NewWorkTimeRange(start, end WorkTime) WorkTimeRange {
	return WorkTimeRange{start: start, end: end}
}

// Start returns the range's start time.
func (r WorkTimeRange) Start() WorkTime {
	return r.start
}

// End returns the range's end time.
func (r WorkTimeRange) End() WorkTime {
	return r.end
}

// String renders the range as "{start}-{end}".
func (r WorkTimeRange) String() string {
	return r.start.String() + "-" + r.end.String()
}
