package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kamande0/meeting_desk/handlers"
	"github.com/kamande0/meeting_desk/middleware"
)

func MeetingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	meetings := api.Group("/meetings", middleware.Protected())
	meetings.Get("", handlers.ListMeetings)
	meetings.Post("", middleware.RequesterRequired(), handlers.BookMeeting)
	meetings.Post("/:meetingId/approve", middleware.HostRequired(), handlers.ApproveMeeting)
	meetings.Post("/:meetingId/postpone", middleware.HostRequired(), handlers.PostponeMeeting)
	meetings.Post("/:meetingId/reschedule", middleware.RequesterRequired(), handlers.RescheduleMeeting)
	meetings.Post("/:meetingId/archive", handlers.ArchiveMeeting)
}
