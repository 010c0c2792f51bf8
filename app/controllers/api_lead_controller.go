package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/EmilyHart/StudioPilot/app/models"
	"github.com/EmilyHart/StudioPilot/app/repository"
	"github.com/EmilyHart/StudioPilot/internal/pkg/statistics"
)

// HandleListLeads returns leads with pagination. Optional filters:
// ?status=<stage>, ?q=<search>, ?since_days=N (recency window).
func HandleListLeads(c *fiber.Ctx) error {
	leadRepo := repository.GetGlobalFactory().GetLeadRepository()

	if query := c.Query("q"); query != "" {
		leads, err := leadRepo.Search(query)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
		}
		return c.JSON(fiber.Map{"leads": leads, "total": len(leads)})
	}

	if status := c.Query("status"); status != "" {
		if !models.IsValidLeadStatus(status) {
			return jsonError(c, fiber.StatusBadRequest, "bad_request", "unknown lead status: "+status)
		}
		leads, err := leadRepo.GetByStatus(status)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
		}
		return c.JSON(fiber.Map{"leads": leads, "total": len(leads)})
	}

	if sinceDays := c.Query("since_days"); sinceDays != "" {
		days, err := strconv.Atoi(sinceDays)
		if err != nil || days < 0 {
			return jsonError(c, fiber.StatusBadRequest, "bad_request", "since_days must be a non-negative integer")
		}
		since := time.Now().AddDate(0, 0, -days)
		leads, err := leadRepo.GetCreatedSince(since)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
		}
		return c.JSON(fiber.Map{"leads": leads, "total": len(leads)})
	}

	offset, limit := parsePagination(c)
	leads, err := leadRepo.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	total, err := leadRepo.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.JSON(fiber.Map{"leads": leads, "total": total, "offset": offset, "limit": limit})
}

// HandleGetLead returns one lead by ID.
func HandleGetLead(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid lead id")
	}

	lead, err := repository.GetGlobalFactory().GetLeadRepository().GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "lead not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.JSON(lead)
}

// HandleCreateLead creates a new lead from the JSON body.
func HandleCreateLead(c *fiber.Ctx) error {
	var lead models.Lead
	if err := c.BodyParser(&lead); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	lead.ID = 0

	if lead.Status != "" && !models.IsValidLeadStatus(lead.Status) {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "unknown lead status: "+lead.Status)
	}
	if err := lead.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	if err := repository.GetGlobalFactory().GetLeadRepository().Create(&lead); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(lead)
}

// HandleUpdateLead updates an existing lead.
func HandleUpdateLead(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid lead id")
	}

	leadRepo := repository.GetGlobalFactory().GetLeadRepository()
	lead, err := leadRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "lead not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}

	var input models.Lead
	if err := c.BodyParser(&input); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	if input.Name != "" {
		lead.Name = input.Name
	}
	if input.Email != "" {
		lead.Email = input.Email
	}
	if input.Phone != "" {
		lead.Phone = input.Phone
	}
	if input.Source != "" {
		lead.Source = input.Source
	}
	if input.Notes != "" {
		lead.Notes = input.Notes
	}
	if input.Status != "" {
		if !models.IsValidLeadStatus(input.Status) {
			return jsonError(c, fiber.StatusBadRequest, "bad_request", "unknown lead status: "+input.Status)
		}
		lead.Status = input.Status
	}

	if err := lead.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}
	if err := leadRepo.Update(lead); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.JSON(lead)
}

// HandleDeleteLead soft deletes a lead.
func HandleDeleteLead(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid lead id")
	}
	if err := repository.GetGlobalFactory().GetLeadRepository().Delete(id); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleLeadPipeline returns the funnel snapshot: per-stage counts and
// conversion rates, served from the statistics cache when fresh.
func HandleLeadPipeline(c *fiber.Ctx) error {
	leadRepo := repository.GetGlobalFactory().GetLeadRepository()
	statistics.UpdateCacheIfNeeded(leadRepo)

	stats, err := statistics.GetPipelineStats(leadRepo)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.JSON(stats)
}
