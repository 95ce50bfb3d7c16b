package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kamande0/meeting_desk/models"
)

type Role string

const (
	RoleHost      Role = "host"
	RoleRequester Role = "requester"
)

// Actor is the authenticated party performing an action, resolved by the
// identity layer before the coordinator is invoked.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// Decision states. Archival is a per-party side channel, not a state.
const (
	StatePending   = "pending"
	StateApproved  = "approved"
	StatePostponed = "postponed"
)

const (
	DateStatusUpcoming = "upcoming"
	DateStatusPast     = "past"
)

// ListQuery is the resolved persistence-level query for one party's view.
type ListQuery struct {
	ActorID    uuid.UUID
	Role       Role
	Status     string
	DateStatus string
	Archived   bool
	Today      time.Time
	Offset     int
	Limit      int
}

// MeetingStore is the persistence contract for the single shared mutable
// resource. UpdateIfVersion must apply the write only when the stored
// version still equals expected, returning false otherwise.
type MeetingStore interface {
	Create(ctx context.Context, m *models.Meeting) error
	Get(ctx context.Context, id uuid.UUID) (*models.Meeting, error)
	UpdateIfVersion(ctx context.Context, m *models.Meeting, expected int) (bool, error)

	// CommitIfSlotFree is UpdateIfVersion for writes that place the meeting
	// in a slot: the write and an overlap check against the host's other
	// approved meetings on that date happen atomically. An overlap fails
	// with ErrSlotUnavailable and nothing is written.
	CommitIfSlotFree(ctx context.Context, m *models.Meeting, expected int) (bool, error)
	List(ctx context.Context, q ListQuery) ([]models.Meeting, int64, error)
	ApprovedBetween(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]models.Meeting, error)
	HostCalendar(ctx context.Context, hostID uuid.UUID) ([]models.HostCalendarDay, error)
	StatusCounts(ctx context.Context, hostID uuid.UUID, today time.Time) (map[string]int64, error)
}
