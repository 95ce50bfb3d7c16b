package notifications

import (
	"fmt"
	"log"

	"github.com/kamande0/meeting_desk/booking"
	"github.com/kamande0/meeting_desk/database"
	"github.com/kamande0/meeting_desk/models"
	"github.com/kamande0/meeting_desk/websocket"
)

// template text is looked up per call from the recipient's stored locale;
// there is no ambient locale state.
type emailTemplate struct {
	subject string
	body    string
}

var meetingTemplates = map[string]map[string]emailTemplate{
	booking.EventRequested: {
		"en": {"New Meeting Request", "<h1>New Meeting Request</h1><p>You have a new meeting request for %s at %s. Log in to approve or postpone it.</p>"},
		"sw": {"Ombi Jipya la Mkutano", "<h1>Ombi Jipya la Mkutano</h1><p>Una ombi jipya la mkutano tarehe %s saa %s. Ingia ili kulikubali au kuliahirisha.</p>"},
	},
	booking.EventApproved: {
		"en": {"Your Meeting Was Approved", "<h1>Meeting Approved</h1><p>Your meeting on %s at %s has been approved. Check your dashboard for the join link.</p>"},
		"sw": {"Mkutano Wako Umeidhinishwa", "<h1>Mkutano Umeidhinishwa</h1><p>Mkutano wako wa tarehe %s saa %s umeidhinishwa. Angalia dashibodi yako kwa kiungo cha kujiunga.</p>"},
	},
	booking.EventPostponed: {
		"en": {"Your Meeting Was Postponed", "<h1>Meeting Postponed</h1><p>Your meeting on %s at %s has been postponed. You can pick a new slot from the host's availability.</p>"},
		"sw": {"Mkutano Wako Umeahirishwa", "<h1>Mkutano Umeahirishwa</h1><p>Mkutano wako wa tarehe %s saa %s umeahirishwa. Unaweza kuchagua nafasi mpya kutoka kwa ratiba ya mwenyeji.</p>"},
	},
	booking.EventRescheduled: {
		"en": {"Meeting Rescheduled", "<h1>Meeting Rescheduled</h1><p>The meeting has been moved to %s at %s.</p>"},
		"sw": {"Mkutano Umebadilishwa Ratiba", "<h1>Mkutano Umebadilishwa</h1><p>Mkutano umehamishiwa tarehe %s saa %s.</p>"},
	},
}

// MeetingNotifier implements booking.Notifier: it emails the counterparty
// of a committed transition and pushes a live event to both parties.
// Failures are logged and never escalate.
type MeetingNotifier struct{}

func (MeetingNotifier) MeetingEvent(event string, m *models.Meeting) {
	go websocket.PushEvent(m.HostID, event, m)
	go websocket.PushEvent(m.RequesterID, event, m)

	recipientID := m.RequesterID
	if event == booking.EventRequested || event == booking.EventRescheduled {
		recipientID = m.HostID
	}
	if event == booking.EventArchived {
		// Archival only changes the acting party's own view.
		return
	}

	var recipient models.User
	if err := database.DB.First(&recipient, "id = ?", recipientID).Error; err != nil {
		log.Printf("🔥 Failed to load notification recipient %s: %v", recipientID, err)
		return
	}

	locales, ok := meetingTemplates[event]
	if !ok {
		return
	}
	tmpl, ok := locales[recipient.Locale]
	if !ok {
		tmpl = locales["en"]
	}

	date := m.ScheduledDate.Format("2006-01-02")
	body := fmt.Sprintf(tmpl.body, date, m.StartTime)
	SendEmail(recipient.FullName, recipient.Email, tmpl.subject, body)
}
