package booking

import (
	"errors"
	"testing"
	"time"
)

func TestBookingHorizon(t *testing.T) {
	tests := []struct {
		now       string
		wantStart string
		wantEnd   string
	}{
		{"2024-01-10", "2024-01-11", "2024-04-11"},
		{"2024-11-30", "2024-12-01", "2025-03-01"},
		{"2024-02-28", "2024-02-29", "2024-05-29"},
		{"2023-12-31", "2024-01-01", "2024-04-01"},
	}

	for _, tt := range tests {
		now, _ := time.Parse("2006-01-02", tt.now)
		// Late in the day must not shift the start; the horizon is
		// calendar-day based, not 24h from the instant.
		now = now.Add(23*time.Hour + 59*time.Minute)

		start, end := BookingHorizon(now)
		if got := start.Format("2006-01-02"); got != tt.wantStart {
			t.Errorf("BookingHorizon(%s) start = %s, want %s", tt.now, got, tt.wantStart)
		}
		if got := end.Format("2006-01-02"); got != tt.wantEnd {
			t.Errorf("BookingHorizon(%s) end = %s, want %s", tt.now, got, tt.wantEnd)
		}
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"9:30", 0, true},
		{"09-30", 0, true},
		{"ab:cd", 0, true},
		{"+9:30", 0, true},
		{"-1:30", 0, true},
		{" 9:30", 0, true},
		{"09:3 ", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", tt.in)
			} else if !errors.Is(err, ErrValidation) {
				t.Errorf("ParseClock(%q): error %v is not ErrValidation", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(570); got != "09:30" {
		t.Errorf("FormatClock(570) = %q, want 09:30", got)
	}
	if got := FormatClock(0); got != "00:00" {
		t.Errorf("FormatClock(0) = %q, want 00:00", got)
	}
}

func TestPartitionDay(t *testing.T) {
	work := func(start, end string) Interval {
		s, _ := ParseClock(start)
		e, _ := ParseClock(end)
		return Interval{Start: s, End: e}
	}

	tests := []struct {
		name    string
		working []Interval
		booked  []Interval
		want    []Interval
	}{
		{
			name:    "no bookings",
			working: []Interval{work("09:00", "17:00")},
			want:    []Interval{work("09:00", "17:00")},
		},
		{
			name:    "one booking in the middle",
			working: []Interval{work("09:00", "17:00")},
			booked:  []Interval{work("10:00", "11:00")},
			want:    []Interval{work("09:00", "10:00"), work("11:00", "17:00")},
		},
		{
			name:    "bookings out of order",
			working: []Interval{work("09:00", "17:00")},
			booked:  []Interval{work("14:00", "15:00"), work("10:00", "11:00")},
			want:    []Interval{work("09:00", "10:00"), work("11:00", "14:00"), work("15:00", "17:00")},
		},
		{
			name:    "booking at the edges",
			working: []Interval{work("09:00", "17:00")},
			booked:  []Interval{work("09:00", "10:00"), work("16:00", "17:00")},
			want:    []Interval{work("10:00", "16:00")},
		},
		{
			name:    "fully booked",
			working: []Interval{work("09:00", "10:00")},
			booked:  []Interval{work("09:00", "10:00")},
			want:    []Interval{},
		},
		{
			name:    "overlapping bookings",
			working: []Interval{work("09:00", "17:00")},
			booked:  []Interval{work("10:00", "12:00"), work("11:00", "13:00")},
			want:    []Interval{work("09:00", "10:00"), work("13:00", "17:00")},
		},
		{
			name:    "booking outside working hours",
			working: []Interval{work("09:00", "12:00")},
			booked:  []Interval{work("13:00", "14:00")},
			want:    []Interval{work("09:00", "12:00")},
		},
		{
			name:    "split working day",
			working: []Interval{work("09:00", "12:00"), work("14:00", "17:00")},
			booked:  []Interval{work("10:00", "11:00"), work("14:00", "15:00")},
			want:    []Interval{work("09:00", "10:00"), work("11:00", "12:00"), work("15:00", "17:00")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PartitionDay(tt.working, tt.booked)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d intervals, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("interval %d = %s-%s, want %s-%s",
						i, FormatClock(got[i].Start), FormatClock(got[i].End),
						FormatClock(tt.want[i].Start), FormatClock(tt.want[i].End))
				}
			}
		})
	}
}

func TestPartitionDay_MalformedIntervals(t *testing.T) {
	valid := Interval{Start: 540, End: 1020}

	if _, err := PartitionDay([]Interval{{Start: 600, End: 600}}, nil); !errors.Is(err, ErrInvalidCalendarData) {
		t.Errorf("zero-width working interval: got %v, want ErrInvalidCalendarData", err)
	}
	if _, err := PartitionDay([]Interval{{Start: 700, End: 600}}, nil); !errors.Is(err, ErrInvalidCalendarData) {
		t.Errorf("inverted working interval: got %v, want ErrInvalidCalendarData", err)
	}
	if _, err := PartitionDay([]Interval{valid}, []Interval{{Start: 700, End: 600}}); !errors.Is(err, ErrInvalidCalendarData) {
		t.Errorf("inverted booked interval: got %v, want ErrInvalidCalendarData", err)
	}
}

func TestIntervalOverlapsAndContains(t *testing.T) {
	base := Interval{Start: 600, End: 660}

	if !base.Overlaps(Interval{Start: 630, End: 690}) {
		t.Error("expected overlap with 630-690")
	}
	if base.Overlaps(Interval{Start: 660, End: 720}) {
		t.Error("adjacent intervals must not overlap")
	}
	if !base.Contains(Interval{Start: 600, End: 660}) {
		t.Error("interval must contain itself")
	}
	if base.Contains(Interval{Start: 590, End: 660}) {
		t.Error("must not contain an interval starting earlier")
	}
}
