package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/EmilyHart/StudioPilot/app/models"
	"github.com/EmilyHart/StudioPilot/app/repository"
	"github.com/EmilyHart/StudioPilot/internal/pkg/env"
	"github.com/EmilyHart/StudioPilot/internal/pkg/mail"
	"github.com/EmilyHart/StudioPilot/internal/pkg/security"
)

// proposalTokenTTL bounds how long a mailed proposal link stays valid.
const proposalTokenTTL = 30 * 24 * time.Hour

type proposalRequest struct {
	LeadID         uint   `json:"lead_id"`
	ExperienceUUID string `json:"experience_uuid"`
	Notes          string `json:"notes"`
}

// HandleListProposals returns proposals with pagination. Optional filter:
// ?lead_id=N.
func HandleListProposals(c *fiber.Ctx) error {
	propRepo := repository.GetGlobalFactory().GetProposalRepository()

	if raw := c.QueryInt("lead_id", 0); raw > 0 {
		proposals, err := propRepo.GetByLeadID(uint(raw))
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
		}
		return c.JSON(fiber.Map{"proposals": proposals, "total": len(proposals)})
	}

	offset, limit := parsePagination(c)
	proposals, err := propRepo.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	total, err := propRepo.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.JSON(fiber.Map{"proposals": proposals, "total": total, "offset": offset, "limit": limit})
}

// HandleGetProposal returns one proposal by its public UUID.
func HandleGetProposal(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	proposal, err := repository.GetGlobalFactory().GetProposalRepository().GetByUUID(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "proposal not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.JSON(proposal)
}

// HandleCreateProposal creates a draft proposal binding a lead to an
// already persisted experience.
func HandleCreateProposal(c *fiber.Ctx) error {
	var req proposalRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	factory := repository.GetGlobalFactory()

	if _, err := factory.GetLeadRepository().GetByID(req.LeadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "lead not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}

	exp, err := factory.GetExperienceRepository().GetByUUID(req.ExperienceUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "experience not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	if exp.IsTemplate() {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "proposals require a lead-bound experience, not a template")
	}

	proposal := models.Proposal{
		LeadID:       req.LeadID,
		ExperienceID: exp.ID,
		Notes:        req.Notes,
	}
	if err := factory.GetProposalRepository().Create(&proposal); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(proposal)
}

// HandleSendProposal marks a draft proposal as sent and stamps the send
// time. Re-sending an already sent proposal only refreshes the stamp.
func HandleSendProposal(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	propRepo := repository.GetGlobalFactory().GetProposalRepository()

	proposal, err := propRepo.GetByUUID(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "proposal not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}

	if proposal.Status != models.PROPOSAL_STATUS_DRAFT && proposal.Status != models.PROPOSAL_STATUS_SENT {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "proposal has already been responded to")
	}

	now := time.Now()
	proposal.Status = models.PROPOSAL_STATUS_SENT
	proposal.SentAt = &now
	if err := propRepo.Update(proposal); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}

	viewURL := ""
	secret := env.GetEnv("APP_SECRET", "")
	if secret != "" {
		token, err := security.GenerateProposalToken(proposal.ID, proposal.LeadID, proposalTokenTTL, secret)
		if err == nil {
			viewURL = fmt.Sprintf("%s/proposals/view?token=%s", env.GetEnv("APP_URL", "http://localhost:4000"), token)
			if lead, err := repository.GetGlobalFactory().GetLeadRepository().GetByID(proposal.LeadID); err == nil {
				// best-effort, delivery failures are logged inside the mailer
				_ = mail.SendProposalMail(lead.Email, lead.Name, viewURL)
			}
		}
	}

	return c.JSON(fiber.Map{"proposal": proposal, "view_url": viewURL})
}

// HandleViewProposal is the client-facing endpoint behind the mailed
// link. A valid token marks a sent proposal as viewed.
func HandleViewProposal(c *fiber.Ctx) error {
	secret := env.GetEnv("APP_SECRET", "")
	claims, err := security.VerifyProposalToken(c.Query("token"), secret)
	if err != nil {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "invalid or expired proposal link")
	}

	factory := repository.GetGlobalFactory()
	proposal, err := factory.GetProposalRepository().GetByID(claims.ProposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "proposal not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	if proposal.LeadID != claims.LeadID {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "invalid or expired proposal link")
	}

	if proposal.Status == models.PROPOSAL_STATUS_SENT {
		proposal.Status = models.PROPOSAL_STATUS_VIEWED
		if err := factory.GetProposalRepository().Update(proposal); err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
		}
	}

	experience, err := factory.GetExperienceRepository().GetByID(proposal.ExperienceID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.JSON(fiber.Map{"proposal": proposal, "experience": experience})
}

// HandleUpdateProposalStatus records the client response or a manual
// status change.
func HandleUpdateProposalStatus(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	propRepo := repository.GetGlobalFactory().GetProposalRepository()

	proposal, err := propRepo.GetByUUID(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "proposal not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}

	var req struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	if !models.IsValidProposalStatus(req.Status) {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "unknown proposal status: "+req.Status)
	}

	proposal.Status = req.Status
	if req.Notes != "" {
		proposal.Notes = req.Notes
	}
	if req.Status == models.PROPOSAL_STATUS_ACCEPTED || req.Status == models.PROPOSAL_STATUS_DECLINED {
		now := time.Now()
		proposal.RespondedAt = &now
	}
	if err := propRepo.Update(proposal); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.JSON(proposal)
}

// HandleDeleteProposal soft deletes a proposal.
func HandleDeleteProposal(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	propRepo := repository.GetGlobalFactory().GetProposalRepository()

	proposal, err := propRepo.GetByUUID(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "proposal not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}

	if err := propRepo.Delete(proposal.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
