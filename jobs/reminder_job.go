package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/kamande0/meeting_desk/booking"
	"github.com/kamande0/meeting_desk/database"
	"github.com/kamande0/meeting_desk/models"
	"github.com/kamande0/meeting_desk/notifications"
)

// reminderWindow is the 5 minute slice of start times, one hour out, that
// one run covers. Both ends carry their own date because the slice can
// straddle midnight.
type reminderWindow struct {
	startDate time.Time
	lower     string
	endDate   time.Time
	upper     string
}

func windowFor(now time.Time) reminderWindow {
	from := now.Add(60 * time.Minute)
	to := now.Add(65 * time.Minute)
	return reminderWindow{
		startDate: booking.DateOf(from),
		lower:     booking.FormatClock(from.Hour()*60 + from.Minute()),
		endDate:   booking.DateOf(to),
		upper:     booking.FormatClock(to.Hour()*60 + to.Minute()),
	}
}

// SendMeetingReminders emails both parties of approved meetings starting in
// roughly one hour. Runs every 5 minutes; the 5 minute clock window keeps a
// meeting from being reminded twice.
func SendMeetingReminders() {
	log.Println("Running job: SendMeetingReminders...")

	w := windowFor(time.Now().UTC())

	query := database.DB.
		Preload("Host").
		Preload("Requester").
		Where("status = ?", booking.StateApproved)
	if w.startDate.Equal(w.endDate) {
		query = query.Where("scheduled_date = ? AND start_time >= ? AND start_time < ?",
			w.startDate, w.lower, w.upper)
	} else {
		// Window straddles midnight: the tail of one day plus the head
		// of the next.
		query = query.Where("(scheduled_date = ? AND start_time >= ?) OR (scheduled_date = ? AND start_time < ?)",
			w.startDate, w.lower, w.endDate, w.upper)
	}

	var upcoming []models.Meeting
	if err := query.Find(&upcoming).Error; err != nil {
		log.Printf("Error checking for upcoming meetings: %v", err)
		return
	}

	for _, meeting := range upcoming {
		log.Printf("Sending reminder for meeting ID: %s", meeting.ID)

		joinURL := ""
		if meeting.JoinURL != nil {
			joinURL = *meeting.JoinURL
		}

		subject := "Reminder: Your Meeting Starts in 1 Hour!"
		body := fmt.Sprintf(
			"<h1>Meeting Reminder</h1><p>Hi there,</p><p>This is a friendly reminder that your meeting is scheduled to start at %s.</p><p><b>Join Link:</b> <a href='%s'>Join Meeting</a></p>",
			meeting.StartTime,
			joinURL,
		)

		go notifications.SendEmail(meeting.Host.FullName, meeting.Host.Email, subject, body)
		go notifications.SendEmail(meeting.Requester.FullName, meeting.Requester.Email, subject, body)
	}
}
