package booking

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kamande0/meeting_desk/models"
)

// Events emitted after a committed transition.
const (
	EventRequested   = "meeting.requested"
	EventApproved    = "meeting.approved"
	EventPostponed   = "meeting.postponed"
	EventRescheduled = "meeting.rescheduled"
	EventArchived    = "meeting.archived"
)

// Notifier delivers a committed transition to the interested parties.
// Delivery is fire-and-forget: failures are logged by the implementation
// and never surface to the caller.
type Notifier interface {
	MeetingEvent(event string, m *models.Meeting)
}

// StatsInvalidator drops cached statistics for a host after a commit.
type StatsInvalidator interface {
	Invalidate(hostID uuid.UUID)
}

// LifecycleConfig carries the collaborators and policy knobs of the engine.
// Nil collaborators are allowed and skipped.
type LifecycleConfig struct {
	Notifier Notifier
	Stats    StatsInvalidator

	// JoinURL produces the opaque meeting-join URL set on approval.
	JoinURL func() string

	// ArchivePastOnly gates archival on the meeting being decided and its
	// scheduled date having passed. Off by default: the explicit archive
	// action works from any state at any time.
	ArchivePastOnly bool

	Now func() time.Time
}

// LifecycleEngine validates and applies meeting transitions. Every write is
// conditional on the version observed at read time; a lost race fails with
// ErrConcurrentModification and is never silently overwritten.
type LifecycleEngine struct {
	store MeetingStore
	slots *AvailabilityResolver
	cfg   LifecycleConfig
}

func NewLifecycleEngine(store MeetingStore, slots *AvailabilityResolver, cfg LifecycleConfig) *LifecycleEngine {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.JoinURL == nil {
		cfg.JoinURL = func() string { return "https://meet.example.com/" + uuid.NewString() }
	}
	return &LifecycleEngine{store: store, slots: slots, cfg: cfg}
}

// Book creates a pending meeting for an open slot of the host. Intake
// normally happens upstream; this keeps the system operable end to end.
func (e *LifecycleEngine) Book(ctx context.Context, actor Actor, hostID uuid.UUID, date time.Time, startTime, endTime string) (*models.Meeting, error) {
	if actor.Role != RoleRequester {
		return nil, ErrUnauthorized
	}
	slot, err := parseSlot(startTime, endTime)
	if err != nil {
		return nil, err
	}

	now := e.cfg.Now()
	open, err := e.slots.SlotOpen(ctx, hostID, date, slot, uuid.Nil, now)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, ErrSlotUnavailable
	}

	m := &models.Meeting{
		HostID:           hostID,
		RequesterID:      actor.ID,
		ScheduledDate:    DateOf(date),
		StartTime:        startTime,
		EndTime:          endTime,
		Status:           StatePending,
		Version:          1,
		LastTransitionAt: now,
	}
	if err := e.store.Create(ctx, m); err != nil {
		return nil, err
	}
	e.dispatch(EventRequested, m)
	return m, nil
}

// Approve moves a pending meeting to approved and sets its join URL.
// Notes are optional. A request whose slot has since been taken by another
// approved meeting is rejected so approved meetings never overlap.
func (e *LifecycleEngine) Approve(ctx context.Context, actor Actor, meetingID uuid.UUID, notes string) (*models.Meeting, error) {
	m, err := e.ownedByHost(ctx, actor, meetingID)
	if err != nil {
		return nil, err
	}
	if m.Status != StatePending {
		return nil, ErrInvalidTransition
	}

	expected := m.Version
	m.Status = StateApproved
	if strings.TrimSpace(notes) != "" {
		m.Notes = &notes
	}
	url := e.cfg.JoinURL()
	m.JoinURL = &url
	m.LastTransitionAt = e.cfg.Now()

	return e.commitSlot(ctx, m, expected, EventApproved)
}

// Postpone moves a pending meeting to postponed. Notes are required:
// postponement without a reason is rejected before any state is read.
func (e *LifecycleEngine) Postpone(ctx context.Context, actor Actor, meetingID uuid.UUID, notes string) (*models.Meeting, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, fmt.Errorf("%w: notes required", ErrValidation)
	}
	m, err := e.ownedByHost(ctx, actor, meetingID)
	if err != nil {
		return nil, err
	}
	if m.Status != StatePending {
		return nil, ErrInvalidTransition
	}

	expected := m.Version
	m.Status = StatePostponed
	m.Notes = &notes
	m.LastTransitionAt = e.cfg.Now()

	return e.commit(ctx, m, expected, EventPostponed)
}

// Reschedule moves an approved or postponed meeting to a different slot.
// The slot is re-validated against availability at commit time, not merely
// at selection time, and the decision state is left unchanged.
func (e *LifecycleEngine) Reschedule(ctx context.Context, actor Actor, meetingID uuid.UUID, date time.Time, startTime, endTime string) (*models.Meeting, error) {
	if actor.Role != RoleRequester {
		return nil, ErrUnauthorized
	}
	slot, err := parseSlot(startTime, endTime)
	if err != nil {
		return nil, err
	}
	date = DateOf(date)

	m, err := e.store.Get(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if m.RequesterID != actor.ID {
		return nil, ErrUnauthorized
	}
	if m.Status != StateApproved && m.Status != StatePostponed {
		return nil, ErrInvalidTransition
	}
	if m.ScheduledDate.Equal(date) && m.StartTime == startTime && m.EndTime == endTime {
		return nil, ErrNoOpReschedule
	}

	open, err := e.slots.SlotOpen(ctx, m.HostID, date, slot, m.ID, e.cfg.Now())
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, ErrSlotUnavailable
	}

	expected := m.Version
	m.ScheduledDate = date
	m.StartTime = startTime
	m.EndTime = endTime
	if m.Status == StatePostponed {
		m.JoinURL = nil
	}
	m.LastTransitionAt = e.cfg.Now()

	return e.commitSlot(ctx, m, expected, EventRescheduled)
}

// Archive hides the meeting from the acting party's default listings. The
// other party's copy is untouched. With ArchivePastOnly set, only decided
// meetings whose date has passed may be archived.
func (e *LifecycleEngine) Archive(ctx context.Context, actor Actor, meetingID uuid.UUID) (*models.Meeting, error) {
	m, err := e.store.Get(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case RoleHost:
		if m.HostID != actor.ID {
			return nil, ErrUnauthorized
		}
	case RoleRequester:
		if m.RequesterID != actor.ID {
			return nil, ErrUnauthorized
		}
	default:
		return nil, ErrUnauthorized
	}

	if e.cfg.ArchivePastOnly {
		if m.Status != StateApproved && m.Status != StatePostponed {
			return nil, ErrInvalidTransition
		}
		if !m.ScheduledDate.Before(DateOf(e.cfg.Now())) {
			return nil, ErrInvalidTransition
		}
	}

	expected := m.Version
	switch actor.Role {
	case RoleHost:
		if m.ArchivedByHost {
			return nil, ErrInvalidTransition
		}
		m.ArchivedByHost = true
	case RoleRequester:
		if m.ArchivedByRequester {
			return nil, ErrInvalidTransition
		}
		m.ArchivedByRequester = true
	}
	m.LastTransitionAt = e.cfg.Now()

	return e.commit(ctx, m, expected, EventArchived)
}

func (e *LifecycleEngine) ownedByHost(ctx context.Context, actor Actor, meetingID uuid.UUID) (*models.Meeting, error) {
	if actor.Role != RoleHost {
		return nil, ErrUnauthorized
	}
	m, err := e.store.Get(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if m.HostID != actor.ID {
		return nil, ErrUnauthorized
	}
	return m, nil
}

func (e *LifecycleEngine) commit(ctx context.Context, m *models.Meeting, expected int, event string) (*models.Meeting, error) {
	ok, err := e.store.UpdateIfVersion(ctx, m, expected)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConcurrentModification
	}
	e.dispatch(event, m)
	return m, nil
}

// commitSlot is commit for writes that place the meeting in a slot. The
// store checks the slot against the host's other approved meetings inside
// the same transaction as the conditional write, so two records cannot race
// into overlapping intervals; the per-record CAS alone only serializes
// writes to the same record.
func (e *LifecycleEngine) commitSlot(ctx context.Context, m *models.Meeting, expected int, event string) (*models.Meeting, error) {
	ok, err := e.store.CommitIfSlotFree(ctx, m, expected)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConcurrentModification
	}
	e.dispatch(event, m)
	return m, nil
}

// dispatch fires the side effects of a committed transition. The lifecycle
// never depends on either succeeding.
func (e *LifecycleEngine) dispatch(event string, m *models.Meeting) {
	if e.cfg.Notifier != nil {
		notified := *m
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("🔥 Notifier panicked for %s on meeting %s: %v", event, notified.ID, r)
				}
			}()
			e.cfg.Notifier.MeetingEvent(event, &notified)
		}()
	}
	if e.cfg.Stats != nil {
		e.cfg.Stats.Invalidate(m.HostID)
	}
}

func parseSlot(startTime, endTime string) (Interval, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return Interval{}, err
	}
	if start >= end {
		return Interval{}, fmt.Errorf("%w: start time must be before end time", ErrValidation)
	}
	return Interval{Start: start, End: end}, nil
}
