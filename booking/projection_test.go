package booking

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kamande0/meeting_desk/models"
)

func TestProjections_SelectPerRoleFields(t *testing.T) {
	notes := "room changed"
	url := "https://meet.test/xyz"
	m := &models.Meeting{
		ID:                  uuid.New(),
		HostID:              uuid.New(),
		RequesterID:         uuid.New(),
		ScheduledDate:       day("2024-01-15"),
		StartTime:           "10:00",
		EndTime:             "10:30",
		Status:              StateApproved,
		Notes:               &notes,
		JoinURL:             &url,
		ArchivedByHost:      true,
		ArchivedByRequester: false,
		Host:                models.User{FullName: "Grace Wanjiru"},
		Requester:           models.User{FullName: "Peter Otieno"},
	}

	hostView := HostProjection(m)
	if hostView.ID != m.ID || hostView.RequesterID != m.RequesterID {
		t.Error("host view must reference the record and the requester")
	}
	if hostView.RequesterName != "Peter Otieno" {
		t.Errorf("host view requester name = %q", hostView.RequesterName)
	}
	if !hostView.Archived {
		t.Error("host view archived flag must reflect the host's own flag")
	}
	if hostView.Notes == nil || *hostView.Notes != notes {
		t.Error("host view must carry the decision notes")
	}

	reqView := RequesterProjection(m)
	if reqView.HostID != m.HostID || reqView.HostName != "Grace Wanjiru" {
		t.Error("requester view must reference the host")
	}
	if reqView.Archived {
		t.Error("requester view archived flag must reflect the requester's own flag, not the host's")
	}
	if reqView.JoinURL == nil || *reqView.JoinURL != url {
		t.Error("requester view must carry the join URL")
	}

	if _, ok := ProjectFor(Actor{Role: RoleHost}, m).(HostView); !ok {
		t.Error("ProjectFor(host) must return a HostView")
	}
	if _, ok := ProjectFor(Actor{Role: RoleRequester}, m).(RequesterView); !ok {
		t.Error("ProjectFor(requester) must return a RequesterView")
	}
}

// A write through one perspective is visible through the other on the next
// read.
func TestProjections_ReadYourWritesAcrossPerspectives(t *testing.T) {
	f := newFixture(LifecycleConfig{})
	m := f.pending("2024-01-15")

	if _, err := f.engine.Approve(context.Background(), f.host, m.ID, "see you then"); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	fresh := f.stored(t, m.ID)
	reqView := RequesterProjection(fresh)
	if reqView.Status != StateApproved {
		t.Errorf("requester view status = %q, want approved immediately after the host's write", reqView.Status)
	}
	if reqView.JoinURL == nil {
		t.Error("requester view must see the join URL set by the host's approval")
	}

	// And the reverse direction: the requester reschedules, the host sees it.
	if _, err := f.engine.Reschedule(context.Background(), f.reqActor, m.ID, day("2024-01-16"), "11:00", "11:30"); err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	hostView := HostProjection(f.stored(t, m.ID))
	if hostView.ScheduledDate != "2024-01-16" || hostView.StartTime != "11:00" {
		t.Errorf("host view slot = %s %s, want the requester's reschedule", hostView.ScheduledDate, hostView.StartTime)
	}
}

// Archiving one perspective never leaks into the other.
func TestProjections_ArchiveIsolation(t *testing.T) {
	f := newFixture(LifecycleConfig{})
	m := seedMeeting(f.store, f.hostID, f.requester, day("2024-01-15"), "10:00", "10:30", StatePostponed)

	if _, err := f.engine.Archive(context.Background(), f.host, m.ID); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	fresh := f.stored(t, m.ID)
	if !HostProjection(fresh).Archived {
		t.Error("host view must show its copy archived")
	}
	if RequesterProjection(fresh).Archived {
		t.Error("requester view must not show the host's archival")
	}
}
