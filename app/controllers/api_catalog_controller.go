package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/EmilyHart/StudioPilot/app/models"
	"github.com/EmilyHart/StudioPilot/app/repository"
	"github.com/EmilyHart/StudioPilot/internal/pkg/catalog"
)

// HandleListCatalog returns catalog items with pagination. Optional filters:
// ?kind=<package|enhancement|motion>, ?q=<search>.
func HandleListCatalog(c *fiber.Ctx) error {
	catalogRepo := repository.GetGlobalFactory().GetCatalogRepository()

	if query := c.Query("q"); query != "" {
		items, err := catalogRepo.Search(query)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
		}
		return c.JSON(fiber.Map{"items": items, "total": len(items)})
	}

	if kind := c.Query("kind"); kind != "" {
		if !catalog.ValidKind(kind) {
			return jsonError(c, fiber.StatusBadRequest, "bad_request", "unknown catalog kind: "+kind)
		}
		items, err := catalogRepo.GetByKind(kind)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
		}
		return c.JSON(fiber.Map{"items": items, "total": len(items)})
	}

	offset, limit := parsePagination(c)
	items, err := catalogRepo.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	total, err := catalogRepo.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.JSON(fiber.Map{"items": items, "total": total, "offset": offset, "limit": limit})
}

// HandleGetCatalogItem returns one catalog item by UUID.
func HandleGetCatalogItem(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	if uuid == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "uuid missing")
	}

	item, err := repository.GetGlobalFactory().GetCatalogRepository().GetByUUID(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "catalog item not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.JSON(item)
}

// HandleGroupedCatalog partitions the active catalog into the three builder
// selection groups using the classifier.
func HandleGroupedCatalog(c *fiber.Ctx) error {
	items, err := repository.GetGlobalFactory().GetCatalogRepository().GetActive()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}

	grouped := fiber.Map{}
	packages := []models.CatalogItem{}
	enhancements := []models.CatalogItem{}
	motion := []models.CatalogItem{}
	for _, item := range items {
		switch item.ResolvedKind() {
		case catalog.KindEnhancement:
			enhancements = append(enhancements, item)
		case catalog.KindMotion:
			motion = append(motion, item)
		default:
			packages = append(packages, item)
		}
	}
	grouped["packages"] = packages
	grouped["enhancements"] = enhancements
	grouped["motion"] = motion
	return c.JSON(grouped)
}

// HandleCreateCatalogItem creates a catalog item from the JSON body.
func HandleCreateCatalogItem(c *fiber.Ctx) error {
	var item models.CatalogItem
	if err := c.BodyParser(&item); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	item.ID = 0
	item.UUID = ""

	if item.Kind != "" && !catalog.ValidKind(item.Kind) {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "unknown catalog kind: "+item.Kind)
	}
	if err := item.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	if err := repository.GetGlobalFactory().GetCatalogRepository().Create(&item); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateCatalogItem updates an existing catalog item by UUID.
func HandleUpdateCatalogItem(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	catalogRepo := repository.GetGlobalFactory().GetCatalogRepository()

	item, err := catalogRepo.GetByUUID(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "catalog item not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}

	var input models.CatalogItem
	if err := c.BodyParser(&input); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	if input.Title != "" {
		item.Title = input.Title
	}
	if input.Price > 0 {
		item.Price = input.Price
	}
	if input.Kind != "" {
		if !catalog.ValidKind(input.Kind) {
			return jsonError(c, fiber.StatusBadRequest, "bad_request", "unknown catalog kind: "+input.Kind)
		}
		item.Kind = input.Kind
	}
	if input.ThemeKeywords != "" {
		item.ThemeKeywords = input.ThemeKeywords
	}
	if input.Description != "" {
		item.Description = input.Description
	}
	if len(input.Highlights) > 0 {
		item.Highlights = input.Highlights
	}
	item.IsActive = input.IsActive
	item.IsTemplate = input.IsTemplate

	if err := item.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}
	if err := catalogRepo.Update(item); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.JSON(item)
}

// HandleDeleteCatalogItem soft deletes a catalog item by UUID.
func HandleDeleteCatalogItem(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	catalogRepo := repository.GetGlobalFactory().GetCatalogRepository()

	item, err := catalogRepo.GetByUUID(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "catalog item not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}

	if err := catalogRepo.Delete(item.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
