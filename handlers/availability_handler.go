package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kamande0/meeting_desk/booking"
	"github.com/kamande0/meeting_desk/database"
	"github.com/kamande0/meeting_desk/models"
)

var CalendarStore *database.MeetingStore

// GetHostSlots returns the host's open slots per day over the booking
// horizon. Recomputed on every call.
func GetHostSlots(c *fiber.Ctx) error {
	hostID, err := uuid.Parse(c.Params("hostId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid host id"})
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	days, err := Resolver.GetAvailableSlots(ctx, hostID, time.Now())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(days)
}

type CalendarDayRequest struct {
	Weekday   int    `json:"weekday" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required_if=Active true,omitempty,len=5"`
	EndTime   string `json:"end_time" validate:"required_if=Active true,omitempty,len=5"`
	Active    bool   `json:"active"`
}

type ReplaceCalendarRequest struct {
	Days []CalendarDayRequest `json:"days" validate:"required,max=7,dive"`
}

// ReplaceCalendar swaps the acting host's weekly working hours. Weekdays
// not listed stay unbookable.
func ReplaceCalendar(c *fiber.Ctx) error {
	actor := actorFromToken(c)

	var req ReplaceCalendarRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	days := make([]models.HostCalendarDay, 0, len(req.Days))
	for _, d := range req.Days {
		if d.Active {
			start, err := booking.ParseClock(d.StartTime)
			if err != nil {
				return domainError(c, err)
			}
			end, err := booking.ParseClock(d.EndTime)
			if err != nil {
				return domainError(c, err)
			}
			if start >= end {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Start time must be before end time"})
			}
		}
		days = append(days, models.HostCalendarDay{
			Weekday:   d.Weekday,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			Active:    d.Active,
		})
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := CalendarStore.ReplaceHostCalendar(ctx, actor.ID, days); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Calendar updated successfully", "days": days})
}

func GetMyCalendar(c *fiber.Ctx) error {
	actor := actorFromToken(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	days, err := CalendarStore.HostCalendar(ctx, actor.ID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(days)
}

func GetHostStats(c *fiber.Ctx) error {
	actor := actorFromToken(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := Stats.HostStats(ctx, actor.ID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(stats)
}
