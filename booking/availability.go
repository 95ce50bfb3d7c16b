package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kamande0/meeting_desk/models"
)

// DaySlots is one day of a host's availability within the booking horizon.
// Active=false means the host blocked the whole day; a fully booked day is
// Active=true with an empty slot list.
type DaySlots struct {
	Date      time.Time  `json:"date"`
	DayOfWeek string     `json:"day_of_week"`
	Active    bool       `json:"active"`
	Slots     []Interval `json:"slots"`
}

// AvailabilityResolver computes open slots from the host calendar and the
// confirmed-booking set. It holds no cache of its own; every call reflects
// the store at that moment.
type AvailabilityResolver struct {
	store MeetingStore
}

func NewAvailabilityResolver(store MeetingStore) *AvailabilityResolver {
	return &AvailabilityResolver{store: store}
}

// GetAvailableSlots returns one entry per day of the booking horizon,
// soonest first.
func (r *AvailabilityResolver) GetAvailableSlots(ctx context.Context, hostID uuid.UUID, now time.Time) ([]DaySlots, error) {
	start, end := BookingHorizon(now)

	calendar, err := r.store.HostCalendar(ctx, hostID)
	if err != nil {
		return nil, err
	}
	byWeekday := make(map[int]models.HostCalendarDay, len(calendar))
	for _, day := range calendar {
		byWeekday[day.Weekday] = day
	}

	approved, err := r.store.ApprovedBetween(ctx, hostID, start, end)
	if err != nil {
		return nil, err
	}
	booked, err := groupByDate(approved, uuid.Nil)
	if err != nil {
		return nil, err
	}

	var days []DaySlots
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		entry := DaySlots{Date: date, DayOfWeek: date.Weekday().String()}

		day, ok := byWeekday[int(date.Weekday())]
		if !ok || !day.Active {
			days = append(days, entry)
			continue
		}
		working, err := workingInterval(day)
		if err != nil {
			return nil, err
		}

		open, err := PartitionDay([]Interval{working}, booked[dateKey(date)])
		if err != nil {
			return nil, err
		}
		entry.Active = true
		entry.Slots = open
		days = append(days, entry)
	}
	return days, nil
}

// SlotOpen re-checks a single proposed slot against the horizon, the host
// calendar and the confirmed-booking set, excluding the meeting being
// rescheduled from the booked set. Called at commit time to close the
// check-then-act race.
func (r *AvailabilityResolver) SlotOpen(ctx context.Context, hostID uuid.UUID, date time.Time, proposed Interval, exclude uuid.UUID, now time.Time) (bool, error) {
	start, end := BookingHorizon(now)
	date = DateOf(date)
	if date.Before(start) || date.After(end) {
		return false, nil
	}

	calendar, err := r.store.HostCalendar(ctx, hostID)
	if err != nil {
		return false, err
	}
	var day *models.HostCalendarDay
	for i := range calendar {
		if calendar[i].Weekday == int(date.Weekday()) {
			day = &calendar[i]
			break
		}
	}
	if day == nil || !day.Active {
		return false, nil
	}
	working, err := workingInterval(*day)
	if err != nil {
		return false, err
	}

	approved, err := r.store.ApprovedBetween(ctx, hostID, date, date)
	if err != nil {
		return false, err
	}
	booked, err := groupByDate(approved, exclude)
	if err != nil {
		return false, err
	}

	open, err := PartitionDay([]Interval{working}, booked[dateKey(date)])
	if err != nil {
		return false, err
	}
	for _, iv := range open {
		if iv.Contains(proposed) {
			return true, nil
		}
	}
	return false, nil
}

func workingInterval(day models.HostCalendarDay) (Interval, error) {
	start, err := ParseClock(day.StartTime)
	if err != nil {
		return Interval{}, ErrInvalidCalendarData
	}
	end, err := ParseClock(day.EndTime)
	if err != nil {
		return Interval{}, ErrInvalidCalendarData
	}
	return Interval{Start: start, End: end}, nil
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func groupByDate(meetings []models.Meeting, exclude uuid.UUID) (map[string][]Interval, error) {
	grouped := make(map[string][]Interval)
	for _, m := range meetings {
		if m.ID == exclude {
			continue
		}
		iv, err := meetingInterval(&m)
		if err != nil {
			return nil, err
		}
		key := dateKey(m.ScheduledDate)
		grouped[key] = append(grouped[key], iv)
	}
	return grouped, nil
}

func meetingInterval(m *models.Meeting) (Interval, error) {
	start, err := ParseClock(m.StartTime)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseClock(m.EndTime)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}
