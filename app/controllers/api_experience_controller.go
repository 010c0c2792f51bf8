package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/EmilyHart/StudioPilot/app/repository"
	"github.com/EmilyHart/StudioPilot/internal/pkg/experience"
	"github.com/EmilyHart/StudioPilot/internal/pkg/money"
	"github.com/EmilyHart/StudioPilot/internal/pkg/pricing"
)

// experienceRequest is the JSON body for building, previewing and updating
// an experience. Items are referenced by catalog UUID; required flags apply
// to enhancements and motion only.
type experienceRequest struct {
	Title        string             `json:"title"`
	ImageURL     string             `json:"image_url"`
	PackageUUIDs []string           `json:"package_uuids"`
	Enhancements []selectionRequest `json:"enhancements"`
	Motion       []selectionRequest `json:"motion"`
	Discount     *discountRequest   `json:"discount"`
	TargetLeadID *uint              `json:"target_lead_id"`
}

type selectionRequest struct {
	UUID     string `json:"uuid"`
	Required bool   `json:"required"`
}

type discountRequest struct {
	Kind      string     `json:"kind"`
	Value     float64    `json:"value"`
	Label     string     `json:"label"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (d *discountRequest) toDiscount() (pricing.Discount, error) {
	if d == nil || d.Kind == "" || d.Kind == string(pricing.DiscountNone) {
		return pricing.Discount{Kind: pricing.DiscountNone}, nil
	}
	kind := pricing.DiscountKind(d.Kind)
	switch kind {
	case pricing.DiscountPercentage:
		if d.Value < 0 || d.Value > 100 {
			return pricing.Discount{}, errors.New("percentage discount value must be between 0 and 100")
		}
	case pricing.DiscountFixed:
		if d.Value < 0 {
			return pricing.Discount{}, errors.New("fixed discount value must not be negative")
		}
	default:
		return pricing.Discount{}, errors.New("unknown discount kind: " + d.Kind)
	}
	return pricing.Discount{Kind: kind, Value: d.Value, Label: d.Label, ExpiresAt: d.ExpiresAt}, nil
}

// buildFromRequest resolves catalog references and assembles a builder.
func buildFromRequest(req experienceRequest) (*experience.Builder, error) {
	catalogRepo := repository.GetGlobalFactory().GetCatalogRepository()

	b := experience.NewBuilder().SetTitle(req.Title).SetImageURL(req.ImageURL)

	for _, uuid := range req.PackageUUIDs {
		item, err := catalogRepo.GetByUUID(uuid)
		if err != nil {
			return nil, errors.New("unknown package: " + uuid)
		}
		b.AddPackage(*item)
	}
	for _, sel := range req.Enhancements {
		item, err := catalogRepo.GetByUUID(sel.UUID)
		if err != nil {
			return nil, errors.New("unknown enhancement: " + sel.UUID)
		}
		b.AddEnhancement(*item, sel.Required)
	}
	for _, sel := range req.Motion {
		item, err := catalogRepo.GetByUUID(sel.UUID)
		if err != nil {
			return nil, errors.New("unknown motion add-on: " + sel.UUID)
		}
		b.AddMotion(*item, sel.Required)
	}

	d, err := req.Discount.toDiscount()
	if err != nil {
		return nil, err
	}
	b.SetDiscount(d)
	return b, nil
}

// HandlePreviewExperience computes what the customer would pay for the
// posted selections without persisting anything.
func HandlePreviewExperience(c *fiber.Ctx) error {
	var req experienceRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	b, err := buildFromRequest(req)
	if err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	quote, err := b.Preview()
	if err != nil {
		var vErr *experience.ValidationError
		if errors.As(err, &vErr) {
			return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", vErr.Error())
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}

	return c.JSON(fiber.Map{
		"subtotal":          quote.Subtotal,
		"discount_amount":   quote.DiscountAmount,
		"total":             quote.Total,
		"subtotal_display":  money.FormatUSD(quote.Subtotal),
		"total_display":     money.FormatUSD(quote.Total),
	})
}

// HandleCreateExperience validates, prices and persists a new experience.
// With target_lead_id the record is bound to that lead, otherwise it is
// saved as a reusable template.
func HandleCreateExperience(c *fiber.Ctx) error {
	var req experienceRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	b, err := buildFromRequest(req)
	if err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	svc := experience.NewServiceFromFactory(repository.GetGlobalFactory())
	record, err := svc.Save(b, req.TargetLeadID)
	if err != nil {
		var vErr *experience.ValidationError
		if errors.As(err, &vErr) {
			return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", vErr.Error())
		}
		return jsonError(c, fiber.StatusBadGateway, "persistence_failed", err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// HandleListExperiences returns experiences with pagination. Optional
// filter: ?lead_id=N.
func HandleListExperiences(c *fiber.Ctx) error {
	expRepo := repository.GetGlobalFactory().GetExperienceRepository()

	if raw := c.QueryInt("lead_id", 0); raw > 0 {
		experiences, err := expRepo.GetByLeadID(uint(raw))
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
		}
		return c.JSON(fiber.Map{"experiences": experiences, "total": len(experiences)})
	}

	offset, limit := parsePagination(c)
	experiences, err := expRepo.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	total, err := expRepo.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.JSON(fiber.Map{"experiences": experiences, "total": total, "offset": offset, "limit": limit})
}

// HandleListExperienceTemplates returns reusable templates only.
func HandleListExperienceTemplates(c *fiber.Ctx) error {
	templates, err := repository.GetGlobalFactory().GetExperienceRepository().GetTemplates()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.JSON(fiber.Map{"templates": templates, "total": len(templates)})
}

// HandleGetExperience returns one experience with its component links.
func HandleGetExperience(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	record, err := repository.GetGlobalFactory().GetExperienceRepository().GetByUUID(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "experience not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.JSON(record)
}

// HandleUpdateExperience re-prices and updates a persisted experience in
// place from the posted selections.
func HandleUpdateExperience(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	expRepo := repository.GetGlobalFactory().GetExperienceRepository()

	record, err := expRepo.GetByUUID(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "experience not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}

	var req experienceRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	b, err := buildFromRequest(req)
	if err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	svc := experience.NewServiceFromFactory(repository.GetGlobalFactory())
	updated, err := svc.Update(b, record)
	if err != nil {
		var vErr *experience.ValidationError
		if errors.As(err, &vErr) {
			return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", vErr.Error())
		}
		return jsonError(c, fiber.StatusBadGateway, "persistence_failed", err.Error())
	}
	return c.JSON(updated)
}

// HandleDeleteExperience soft deletes an experience and its item links.
func HandleDeleteExperience(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	expRepo := repository.GetGlobalFactory().GetExperienceRepository()

	record, err := expRepo.GetByUUID(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "experience not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}

	if err := expRepo.Delete(record.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAssignExperience copies a template to a lead, component links
// included, in one transaction.
func HandleAssignExperience(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	leadID, err := parseIDParam(c, "leadID")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid lead id")
	}

	svc := experience.NewServiceFromFactory(repository.GetGlobalFactory())
	record, err := svc.AssignTemplateToLead(uuid, leadID)
	if err != nil {
		switch {
		case errors.Is(err, experience.ErrNotTemplate):
			return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return jsonError(c, fiber.StatusNotFound, "not_found", err.Error())
		default:
			return jsonError(c, fiber.StatusBadGateway, "persistence_failed", err.Error())
		}
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}
