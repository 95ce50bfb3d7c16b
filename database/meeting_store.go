package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kamande0/meeting_desk/booking"
	"github.com/kamande0/meeting_desk/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MeetingStore is the Postgres-backed booking.MeetingStore. Every write of
// meeting state goes through UpdateIfVersion so concurrent transitions on
// the same record cannot both win.
type MeetingStore struct {
	db *gorm.DB
}

func NewMeetingStore(db *gorm.DB) *MeetingStore {
	return &MeetingStore{db: db}
}

func (s *MeetingStore) Create(ctx context.Context, m *models.Meeting) error {
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return wrapStoreErr(err)
	}
	return nil
}

func (s *MeetingStore) Get(ctx context.Context, id uuid.UUID) (*models.Meeting, error) {
	var m models.Meeting
	err := s.db.WithContext(ctx).
		Preload("Host").
		Preload("Requester").
		First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, booking.ErrMeetingNotFound
		}
		return nil, wrapStoreErr(err)
	}
	return &m, nil
}

func (s *MeetingStore) UpdateIfVersion(ctx context.Context, m *models.Meeting, expected int) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Meeting{}).
		Where("id = ? AND version = ?", m.ID, expected).
		Updates(meetingColumns(m, expected+1))
	if res.Error != nil {
		return false, wrapStoreErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	m.Version = expected + 1
	return true, nil
}

// CommitIfSlotFree runs the overlap check and the conditional write in one
// transaction. The host row is locked first so all slot commits for a host
// serialize; locking only the date's meeting rows would not block a
// concurrent commit moving a different meeting into the same date.
func (s *MeetingStore) CommitIfSlotFree(ctx context.Context, m *models.Meeting, expected int) (bool, error) {
	start, err := booking.ParseClock(m.StartTime)
	if err != nil {
		return false, err
	}
	end, err := booking.ParseClock(m.EndTime)
	if err != nil {
		return false, err
	}
	slot := booking.Interval{Start: start, End: end}

	var committed bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var host models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&host, "id = ?", m.HostID).Error; err != nil {
			return err
		}

		var neighbors []models.Meeting
		err := tx.Where("host_id = ? AND status = ? AND scheduled_date = ? AND id <> ?",
			m.HostID, booking.StateApproved, m.ScheduledDate, m.ID).
			Find(&neighbors).Error
		if err != nil {
			return err
		}
		for i := range neighbors {
			ns, err := booking.ParseClock(neighbors[i].StartTime)
			if err != nil {
				return err
			}
			ne, err := booking.ParseClock(neighbors[i].EndTime)
			if err != nil {
				return err
			}
			if (booking.Interval{Start: ns, End: ne}).Overlaps(slot) {
				return booking.ErrSlotUnavailable
			}
		}

		res := tx.Model(&models.Meeting{}).
			Where("id = ? AND version = ?", m.ID, expected).
			Updates(meetingColumns(m, expected+1))
		if res.Error != nil {
			return res.Error
		}
		committed = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		if errors.Is(err, booking.ErrSlotUnavailable) || errors.Is(err, booking.ErrValidation) {
			return false, err
		}
		return false, wrapStoreErr(err)
	}
	if committed {
		m.Version = expected + 1
	}
	return committed, nil
}

func meetingColumns(m *models.Meeting, version int) map[string]any {
	return map[string]any{
		"scheduled_date":        m.ScheduledDate,
		"start_time":            m.StartTime,
		"end_time":              m.EndTime,
		"status":                m.Status,
		"notes":                 m.Notes,
		"join_url":              m.JoinURL,
		"archived_by_host":      m.ArchivedByHost,
		"archived_by_requester": m.ArchivedByRequester,
		"last_transition_at":    m.LastTransitionAt,
		"version":               version,
	}
}

func (s *MeetingStore) List(ctx context.Context, q booking.ListQuery) ([]models.Meeting, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Meeting{})

	if q.Role == booking.RoleHost {
		query = query.Where("host_id = ? AND archived_by_host = ?", q.ActorID, q.Archived)
	} else {
		query = query.Where("requester_id = ? AND archived_by_requester = ?", q.ActorID, q.Archived)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	switch q.DateStatus {
	case booking.DateStatusUpcoming:
		query = query.Where("scheduled_date >= ?", q.Today)
	case booking.DateStatusPast:
		query = query.Where("scheduled_date < ?", q.Today)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapStoreErr(err)
	}

	var meetings []models.Meeting
	err := query.
		Order("scheduled_date asc, start_time asc, id asc").
		Offset(q.Offset).
		Limit(q.Limit).
		Preload("Host").
		Preload("Requester").
		Find(&meetings).Error
	if err != nil {
		return nil, 0, wrapStoreErr(err)
	}
	return meetings, total, nil
}

func (s *MeetingStore) ApprovedBetween(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]models.Meeting, error) {
	var meetings []models.Meeting
	err := s.db.WithContext(ctx).
		Where("host_id = ? AND status = ? AND scheduled_date BETWEEN ? AND ?",
			hostID, booking.StateApproved, from, to).
		Order("scheduled_date asc, start_time asc").
		Find(&meetings).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return meetings, nil
}

func (s *MeetingStore) HostCalendar(ctx context.Context, hostID uuid.UUID) ([]models.HostCalendarDay, error) {
	var days []models.HostCalendarDay
	err := s.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("weekday asc").
		Find(&days).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return days, nil
}

func (s *MeetingStore) StatusCounts(ctx context.Context, hostID uuid.UUID, today time.Time) (map[string]int64, error) {
	counts := make(map[string]int64, 4)

	type row struct {
		Status string
		N      int64
	}
	var rows []row
	err := s.db.WithContext(ctx).
		Model(&models.Meeting{}).
		Select("status, count(*) as n").
		Where("host_id = ?", hostID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	for _, r := range rows {
		counts[r.Status] = r.N
	}

	var upcoming int64
	err = s.db.WithContext(ctx).
		Model(&models.Meeting{}).
		Where("host_id = ? AND status = ? AND scheduled_date >= ?", hostID, booking.StateApproved, today).
		Count(&upcoming).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	counts["upcoming"] = upcoming

	return counts, nil
}

// ReplaceHostCalendar swaps a host's whole weekly calendar in one
// transaction.
func (s *MeetingStore) ReplaceHostCalendar(ctx context.Context, hostID uuid.UUID, days []models.HostCalendarDay) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("host_id = ?", hostID).Delete(&models.HostCalendarDay{}).Error; err != nil {
			return err
		}
		for i := range days {
			days[i].HostID = hostID
			if err := tx.Create(&days[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return wrapStoreErr(err)
	}
	return nil
}

func wrapStoreErr(err error) error {
	return fmt.Errorf("%w: %v", booking.ErrUnavailable, err)
}
