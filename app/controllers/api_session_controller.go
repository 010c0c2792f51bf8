package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/EmilyHart/StudioPilot/app/models"
	"github.com/EmilyHart/StudioPilot/app/repository"
)

// HandleListSessions returns studio sessions with pagination. Optional
// filter: ?lead_id=N.
func HandleListSessions(c *fiber.Ctx) error {
	sessionRepo := repository.GetGlobalFactory().GetSessionRepository()

	if raw := c.QueryInt("lead_id", 0); raw > 0 {
		sessions, err := sessionRepo.GetByLeadID(uint(raw))
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
		}
		return c.JSON(fiber.Map{"sessions": sessions, "total": len(sessions)})
	}

	offset, limit := parsePagination(c)
	sessions, err := sessionRepo.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	total, err := sessionRepo.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.JSON(fiber.Map{"sessions": sessions, "total": total, "offset": offset, "limit": limit})
}

// HandleGetSession returns one session by ID.
func HandleGetSession(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid session id")
	}

	session, err := repository.GetGlobalFactory().GetSessionRepository().GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "session not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.JSON(session)
}

// HandleUpcomingSessions returns the next scheduled sessions.
func HandleUpcomingSessions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit <= 0 || limit > maxPageSize {
		limit = 10
	}

	sessions, err := repository.GetGlobalFactory().GetSessionRepository().GetUpcoming(time.Now(), limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.JSON(fiber.Map{"sessions": sessions, "total": len(sessions)})
}

// HandleCreateSession schedules a new session from the JSON body.
func HandleCreateSession(c *fiber.Ctx) error {
	var session models.StudioSession
	if err := c.BodyParser(&session); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	session.ID = 0

	if session.Status != "" && !models.IsValidSessionStatus(session.Status) {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "unknown session status: "+session.Status)
	}
	if err := session.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	// The lead must exist before a session can be scheduled against it.
	if session.LeadID != 0 {
		if _, err := repository.GetGlobalFactory().GetLeadRepository().GetByID(session.LeadID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "lead not found")
			}
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
		}
	}

	if err := repository.GetGlobalFactory().GetSessionRepository().Create(&session); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// HandleUpdateSession updates an existing session.
func HandleUpdateSession(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid session id")
	}

	sessionRepo := repository.GetGlobalFactory().GetSessionRepository()
	session, err := sessionRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "session not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}

	var input models.StudioSession
	if err := c.BodyParser(&input); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	if input.SessionType != "" {
		session.SessionType = input.SessionType
	}
	if !input.ScheduledAt.IsZero() {
		session.ScheduledAt = input.ScheduledAt
	}
	if input.Location != "" {
		session.Location = input.Location
	}
	if input.DurationMinutes > 0 {
		session.DurationMinutes = input.DurationMinutes
	}
	if input.Notes != "" {
		session.Notes = input.Notes
	}
	if input.Status != "" {
		if !models.IsValidSessionStatus(input.Status) {
			return jsonError(c, fiber.StatusBadRequest, "bad_request", "unknown session status: "+input.Status)
		}
		session.Status = input.Status
	}

	if err := sessionRepo.Update(session); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.JSON(session)
}

// HandleDeleteSession soft deletes a session.
func HandleDeleteSession(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid session id")
	}
	if err := repository.GetGlobalFactory().GetSessionRepository().Delete(id); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
