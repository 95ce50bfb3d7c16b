package booking

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// horizonMonths bounds how far into the future hosts expose availability.
const horizonMonths = 3

// Interval is a clock range within a single day, in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

func (iv Interval) Contains(o Interval) bool {
	return o.Start >= iv.Start && o.End <= iv.End
}

func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start < o.End && o.Start < iv.End
}

func (iv Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"start": FormatClock(iv.Start),
		"end":   FormatClock(iv.End),
	})
}

// ParseClock converts an "HH:MM" string to minutes since midnight. All
// four clock positions must be ASCII digits; signs and spaces are invalid.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: invalid clock value %q", ErrValidation, s)
	}
	for _, i := range [...]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: invalid clock value %q", ErrValidation, s)
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: clock value %q out of range", ErrValidation, s)
	}
	return h*60 + m, nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DateOf truncates a timestamp to its calendar day in UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BookingHorizon returns the rolling window within which availability is
// exposed: the calendar day after now through three calendar months later,
// both inclusive.
func BookingHorizon(now time.Time) (time.Time, time.Time) {
	start := DateOf(now).AddDate(0, 0, 1)
	return start, start.AddDate(0, horizonMonths, 0)
}

// PartitionDay returns the open sub-intervals of a day: the host's working
// intervals minus the intervals already consumed by booked meetings. Pure
// function of its inputs. Malformed intervals (end <= start) fail with
// ErrInvalidCalendarData rather than being dropped.
func PartitionDay(working []Interval, booked []Interval) ([]Interval, error) {
	for _, iv := range working {
		if iv.End <= iv.Start {
			return nil, fmt.Errorf("%w: working interval %s-%s", ErrInvalidCalendarData, FormatClock(iv.Start), FormatClock(iv.End))
		}
	}
	for _, iv := range booked {
		if iv.End <= iv.Start {
			return nil, fmt.Errorf("%w: booked interval %s-%s", ErrInvalidCalendarData, FormatClock(iv.Start), FormatClock(iv.End))
		}
	}

	taken := make([]Interval, len(booked))
	copy(taken, booked)
	sort.Slice(taken, func(i, j int) bool { return taken[i].Start < taken[j].Start })

	open := make([]Interval, 0, len(working))
	for _, w := range working {
		cursor := w.Start
		for _, b := range taken {
			if b.End <= cursor || b.Start >= w.End {
				continue
			}
			if b.Start > cursor {
				open = append(open, Interval{Start: cursor, End: b.Start})
			}
			if b.End > cursor {
				cursor = b.End
			}
		}
		if cursor < w.End {
			open = append(open, Interval{Start: cursor, End: w.End})
		}
	}
	return open, nil
}
