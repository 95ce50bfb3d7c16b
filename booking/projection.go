package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/kamande0/meeting_desk/models"
)

// The two projections select from the single source-of-truth record; a
// write through either side is visible through the other on the next read.
// Each side's Archived field reflects only that party's own flag.

// HostView carries the fields a host needs to decide on a request.
type HostView struct {
	ID            uuid.UUID `json:"id"`
	RequesterID   uuid.UUID `json:"requester_id"`
	RequesterName string    `json:"requester_name,omitempty"`
	ScheduledDate string    `json:"scheduled_date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`
	Notes         *string   `json:"notes,omitempty"`
	JoinURL       *string   `json:"join_url,omitempty"`
	Archived      bool      `json:"archived"`
	CreatedAt     time.Time `json:"created_at"`
	LastChangeAt  time.Time `json:"last_change_at"`
}

// RequesterView carries the fields a requester needs to track and join.
type RequesterView struct {
	ID            uuid.UUID `json:"id"`
	HostID        uuid.UUID `json:"host_id"`
	HostName      string    `json:"host_name,omitempty"`
	ScheduledDate string    `json:"scheduled_date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`
	Notes         *string   `json:"notes,omitempty"`
	JoinURL       *string   `json:"join_url,omitempty"`
	Archived      bool      `json:"archived"`
	CreatedAt     time.Time `json:"created_at"`
	LastChangeAt  time.Time `json:"last_change_at"`
}

func HostProjection(m *models.Meeting) HostView {
	return HostView{
		ID:            m.ID,
		RequesterID:   m.RequesterID,
		RequesterName: m.Requester.FullName,
		ScheduledDate: m.ScheduledDate.Format("2006-01-02"),
		StartTime:     m.StartTime,
		EndTime:       m.EndTime,
		Status:        m.Status,
		Notes:         m.Notes,
		JoinURL:       m.JoinURL,
		Archived:      m.ArchivedByHost,
		CreatedAt:     m.CreatedAt,
		LastChangeAt:  m.LastTransitionAt,
	}
}

func RequesterProjection(m *models.Meeting) RequesterView {
	return RequesterView{
		ID:            m.ID,
		HostID:        m.HostID,
		HostName:      m.Host.FullName,
		ScheduledDate: m.ScheduledDate.Format("2006-01-02"),
		StartTime:     m.StartTime,
		EndTime:       m.EndTime,
		Status:        m.Status,
		Notes:         m.Notes,
		JoinURL:       m.JoinURL,
		Archived:      m.ArchivedByRequester,
		CreatedAt:     m.CreatedAt,
		LastChangeAt:  m.LastTransitionAt,
	}
}

// ProjectFor picks the projection matching the actor's role.
func ProjectFor(actor Actor, m *models.Meeting) any {
	if actor.Role == RoleHost {
		return HostProjection(m)
	}
	return RequesterProjection(m)
}
