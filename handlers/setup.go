package handlers

import (
	"github.com/kamande0/meeting_desk/booking"
	config "github.com/kamande0/meeting_desk/configs"
	"github.com/kamande0/meeting_desk/database"
	"github.com/kamande0/meeting_desk/notifications"
	"github.com/kamande0/meeting_desk/utils"
)

// Setup wires the coordinator services. Must run after ConnectDB.
func Setup() {
	store := database.NewMeetingStore(database.DB)
	CalendarStore = store

	Resolver = booking.NewAvailabilityResolver(store)
	Stats = booking.NewStatsService(store)
	Listing = booking.NewListingGateway(store)
	Lifecycle = booking.NewLifecycleEngine(store, Resolver, booking.LifecycleConfig{
		Notifier:        notifications.MeetingNotifier{},
		Stats:           Stats,
		JoinURL:         func() string { return utils.GenerateJoinURL(database.DB) },
		ArchivePastOnly: config.Config("ARCHIVE_PAST_ONLY") == "true",
	})
}
