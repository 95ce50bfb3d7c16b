package models

import (
	"time"

	"github.com/google/uuid"
)

// Meeting is the single source-of-truth record for a booking. Archival is
// stored per party, so each side hides only its own copy from default
// listings. Version backs the optimistic-concurrency check on transitions.
type Meeting struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	HostID      uuid.UUID `gorm:"not null;index" json:"host_id"`
	RequesterID uuid.UUID `gorm:"not null;index" json:"requester_id"`

	ScheduledDate time.Time `gorm:"type:date;not null" json:"scheduled_date"`
	StartTime     string    `gorm:"size:5;not null" json:"start_time"`
	EndTime       string    `gorm:"size:5;not null" json:"end_time"`

	Status string `gorm:"size:20;not null;default:'pending'" json:"status"`

	Notes   *string `gorm:"type:text" json:"notes,omitempty"`
	JoinURL *string `gorm:"size:255" json:"join_url,omitempty"`

	ArchivedByHost      bool `gorm:"not null;default:false" json:"archived_by_host"`
	ArchivedByRequester bool `gorm:"not null;default:false" json:"archived_by_requester"`

	Version          int       `gorm:"not null;default:1" json:"-"`
	LastTransitionAt time.Time `json:"last_transition_at"`

	Host      User `gorm:"foreignkey:HostID" json:"host,omitempty"`
	Requester User `gorm:"foreignkey:RequesterID" json:"requester,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
