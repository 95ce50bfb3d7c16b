package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kamande0/meeting_desk/booking"
)

// Wired in Setup (cmd/api/main.go) once the database is connected.
var (
	Lifecycle *booking.LifecycleEngine
	Resolver  *booking.AvailabilityResolver
	Listing   *booking.ListingGateway
	Stats     *booking.StatsService
)

type BookMeetingRequest struct {
	HostID    string `json:"host_id" validate:"required,uuid"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,len=5"`
	EndTime   string `json:"end_time" validate:"required,len=5"`
}

type ApproveRequest struct {
	Notes string `json:"notes,omitempty"`
}

type PostponeRequest struct {
	Notes string `json:"notes" validate:"required"`
}

type RescheduleRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,len=5"`
	EndTime   string `json:"end_time" validate:"required,len=5"`
}

func BookMeeting(c *fiber.Ctx) error {
	actor := actorFromToken(c)

	var req BookMeetingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	hostID, _ := uuid.Parse(req.HostID)
	date, _ := time.Parse("2006-01-02", req.Date)

	ctx, cancel := requestContext(c)
	defer cancel()

	meeting, err := Lifecycle.Book(ctx, actor, hostID, date, req.StartTime, req.EndTime)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(booking.ProjectFor(actor, meeting))
}

func ApproveMeeting(c *fiber.Ctx) error {
	actor := actorFromToken(c)
	meetingID, err := uuid.Parse(c.Params("meetingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid meeting id"})
	}

	var req ApproveRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	meeting, err := Lifecycle.Approve(ctx, actor, meetingID, req.Notes)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(booking.ProjectFor(actor, meeting))
}

func PostponeMeeting(c *fiber.Ctx) error {
	actor := actorFromToken(c)
	meetingID, err := uuid.Parse(c.Params("meetingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid meeting id"})
	}

	var req PostponeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	meeting, err := Lifecycle.Postpone(ctx, actor, meetingID, req.Notes)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(booking.ProjectFor(actor, meeting))
}

func RescheduleMeeting(c *fiber.Ctx) error {
	actor := actorFromToken(c)
	meetingID, err := uuid.Parse(c.Params("meetingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid meeting id"})
	}

	var req RescheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	ctx, cancel := requestContext(c)
	defer cancel()

	meeting, err := Lifecycle.Reschedule(ctx, actor, meetingID, date, req.StartTime, req.EndTime)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(booking.ProjectFor(actor, meeting))
}

func ArchiveMeeting(c *fiber.Ctx) error {
	actor := actorFromToken(c)
	meetingID, err := uuid.Parse(c.Params("meetingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid meeting id"})
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	meeting, err := Lifecycle.Archive(ctx, actor, meetingID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(booking.ProjectFor(actor, meeting))
}

func ListMeetings(c *fiber.Ctx) error {
	actor := actorFromToken(c)

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	archived := c.Query("archived", "false") == "true"

	filter := booking.ListFilter{
		Status:     c.Query("status"),
		DateStatus: c.Query("date_status"),
		Archived:   archived,
		Page:       page,
		PageSize:   pageSize,
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := Listing.List(ctx, actor, filter)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(result)
}

// domainError maps the coordinator's typed errors onto distinct HTTP
// responses so the UI can render each case differently.
func domainError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, booking.ErrValidation), errors.Is(err, booking.ErrNoOpReschedule):
		status = fiber.StatusBadRequest
	case errors.Is(err, booking.ErrUnauthorized):
		status = fiber.StatusForbidden
	case errors.Is(err, booking.ErrMeetingNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, booking.ErrSlotUnavailable),
		errors.Is(err, booking.ErrConcurrentModification):
		status = fiber.StatusConflict
	case errors.Is(err, booking.ErrInvalidCalendarData):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, booking.ErrUnavailable):
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
		"code":  booking.ErrorCode(err),
	})
}
