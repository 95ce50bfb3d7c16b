package models

import (
	"time"

	"github.com/google/uuid"
)

// HostCalendarDay describes a host's bookable hours for one weekday.
// Active=false marks the whole weekday as blocked, which callers must
// distinguish from a day that is merely fully booked.
type HostCalendarDay struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	HostID  uuid.UUID `gorm:"not null;uniqueIndex:idx_host_weekday" json:"-"`
	Weekday int       `gorm:"not null;uniqueIndex:idx_host_weekday" json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Active    bool   `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
