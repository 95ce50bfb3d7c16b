package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kamande0/meeting_desk/models"
)

// memStore is an in-memory MeetingStore for tests. Get releases the lock
// before invoking getHook so race tests can use it as a barrier.
type memStore struct {
	mu         sync.Mutex
	meetings   map[uuid.UUID]*models.Meeting
	calendar   map[uuid.UUID][]models.HostCalendarDay
	countCalls int
	getHook    func()
}

func newMemStore() *memStore {
	return &memStore{
		meetings: make(map[uuid.UUID]*models.Meeting),
		calendar: make(map[uuid.UUID][]models.HostCalendarDay),
	}
}

func (s *memStore) Create(_ context.Context, m *models.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	stored := *m
	s.meetings[m.ID] = &stored
	return nil
}

func (s *memStore) Get(_ context.Context, id uuid.UUID) (*models.Meeting, error) {
	s.mu.Lock()
	stored, ok := s.meetings[id]
	var copied models.Meeting
	if ok {
		copied = *stored
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrMeetingNotFound
	}
	if s.getHook != nil {
		s.getHook()
	}
	return &copied, nil
}

func (s *memStore) UpdateIfVersion(_ context.Context, m *models.Meeting, expected int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.meetings[m.ID]
	if !ok {
		return false, ErrMeetingNotFound
	}
	if stored.Version != expected {
		return false, nil
	}
	updated := *m
	updated.Version = expected + 1
	s.meetings[m.ID] = &updated
	m.Version = expected + 1
	return true, nil
}

// CommitIfSlotFree holds the store lock across the overlap check and the
// write, matching the transactional semantics of the real store.
func (s *memStore) CommitIfSlotFree(_ context.Context, m *models.Meeting, expected int) (bool, error) {
	slot, err := meetingInterval(m)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.meetings[m.ID]
	if !ok {
		return false, ErrMeetingNotFound
	}
	if stored.Version != expected {
		return false, nil
	}
	for _, other := range s.meetings {
		if other.ID == m.ID || other.HostID != m.HostID || other.Status != StateApproved {
			continue
		}
		if !other.ScheduledDate.Equal(m.ScheduledDate) {
			continue
		}
		iv, err := meetingInterval(other)
		if err != nil {
			return false, err
		}
		if iv.Overlaps(slot) {
			return false, ErrSlotUnavailable
		}
	}

	updated := *m
	updated.Version = expected + 1
	s.meetings[m.ID] = &updated
	m.Version = expected + 1
	return true, nil
}

func (s *memStore) List(_ context.Context, q ListQuery) ([]models.Meeting, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []models.Meeting
	for _, m := range s.meetings {
		if q.Role == RoleHost {
			if m.HostID != q.ActorID || m.ArchivedByHost != q.Archived {
				continue
			}
		} else {
			if m.RequesterID != q.ActorID || m.ArchivedByRequester != q.Archived {
				continue
			}
		}
		if q.Status != "" && m.Status != q.Status {
			continue
		}
		switch q.DateStatus {
		case DateStatusUpcoming:
			if m.ScheduledDate.Before(q.Today) {
				continue
			}
		case DateStatusPast:
			if !m.ScheduledDate.Before(q.Today) {
				continue
			}
		}
		matched = append(matched, *m)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].ScheduledDate.Equal(matched[j].ScheduledDate) {
			return matched[i].ScheduledDate.Before(matched[j].ScheduledDate)
		}
		if matched[i].StartTime != matched[j].StartTime {
			return matched[i].StartTime < matched[j].StartTime
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})

	total := int64(len(matched))
	if q.Offset >= len(matched) {
		return nil, total, nil
	}
	end := q.Offset + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[q.Offset:end], total, nil
}

func (s *memStore) ApprovedBetween(_ context.Context, hostID uuid.UUID, from, to time.Time) ([]models.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []models.Meeting
	for _, m := range s.meetings {
		if m.HostID != hostID || m.Status != StateApproved {
			continue
		}
		if m.ScheduledDate.Before(from) || m.ScheduledDate.After(to) {
			continue
		}
		matched = append(matched, *m)
	}
	return matched, nil
}

func (s *memStore) HostCalendar(_ context.Context, hostID uuid.UUID) ([]models.HostCalendarDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.HostCalendarDay(nil), s.calendar[hostID]...), nil
}

func (s *memStore) StatusCounts(_ context.Context, hostID uuid.UUID, today time.Time) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.countCalls++
	counts := make(map[string]int64)
	for _, m := range s.meetings {
		if m.HostID != hostID {
			continue
		}
		counts[m.Status]++
		if m.Status == StateApproved && !m.ScheduledDate.Before(today) {
			counts["upcoming"]++
		}
	}
	return counts, nil
}

// setCalendar gives the host the same working hours on every listed
// weekday. Weekdays not listed stay unbookable.
func (s *memStore) setCalendar(hostID uuid.UUID, weekdays []time.Weekday, startTime, endTime string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	days := make([]models.HostCalendarDay, 0, len(weekdays))
	for _, wd := range weekdays {
		days = append(days, models.HostCalendarDay{
			ID:        uuid.New(),
			HostID:    hostID,
			Weekday:   int(wd),
			StartTime: startTime,
			EndTime:   endTime,
			Active:    true,
		})
	}
	s.calendar[hostID] = days
}

func (s *memStore) blockWeekday(hostID uuid.UUID, weekday time.Weekday) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calendar[hostID] = append(s.calendar[hostID], models.HostCalendarDay{
		ID:      uuid.New(),
		HostID:  hostID,
		Weekday: int(weekday),
		Active:  false,
	})
}

// Fixed clock for deterministic horizons: 2024-01-10 noon UTC, so the
// booking horizon runs 2024-01-11 through 2024-04-11.
var testNow = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func day(yearDay string) time.Time {
	t, err := time.Parse("2006-01-02", yearDay)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func seedMeeting(s *memStore, hostID, requesterID uuid.UUID, date time.Time, start, end, status string) *models.Meeting {
	m := &models.Meeting{
		ID:               uuid.New(),
		HostID:           hostID,
		RequesterID:      requesterID,
		ScheduledDate:    DateOf(date),
		StartTime:        start,
		EndTime:          end,
		Status:           status,
		Version:          1,
		LastTransitionAt: testNow,
		CreatedAt:        testNow,
	}
	stored := *m
	s.mu.Lock()
	s.meetings[m.ID] = &stored
	s.mu.Unlock()
	return m
}
