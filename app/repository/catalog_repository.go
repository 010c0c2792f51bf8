package repository

import (
	"github.com/EmilyHart/StudioPilot/app/models"
	"gorm.io/gorm"
)

// catalogRepository implements the CatalogRepository interface
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository instance
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// Create creates a new catalog item in the database
func (r *catalogRepository) Create(item *models.CatalogItem) error {
	return r.db.Create(item).Error
}

// GetByID retrieves a catalog item by its ID
func (r *catalogRepository) GetByID(id uint) (*models.CatalogItem, error) {
	var item models.CatalogItem
	err := r.db.First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetByUUID retrieves a catalog item by its public UUID
func (r *catalogRepository) GetByUUID(uuid string) (*models.CatalogItem, error) {
	var item models.CatalogItem
	err := r.db.Where("uuid = ?", uuid).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetByIDs retrieves multiple catalog items at once
func (r *catalogRepository) GetByIDs(ids []uint) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&items).Error
	return items, err
}

// Update updates an existing catalog item in the database
func (r *catalogRepository) Update(item *models.CatalogItem) error {
	return r.db.Save(item).Error
}

// Delete soft deletes a catalog item by its ID
func (r *catalogRepository) Delete(id uint) error {
	return r.db.Delete(&models.CatalogItem{}, id).Error
}

// List retrieves catalog items with pagination
func (r *catalogRepository) List(offset, limit int) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	err := r.db.Order("title ASC").Offset(offset).Limit(limit).Find(&items).Error
	return items, err
}

// Count returns the total number of catalog items
func (r *catalogRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.CatalogItem{}).Count(&count).Error
	return count, err
}

// GetActive retrieves all active catalog items
func (r *catalogRepository) GetActive() ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	err := r.db.Where("is_active = ?", true).Order("price ASC").Find(&items).Error
	return items, err
}

// GetByKind retrieves all active catalog items of one kind
func (r *catalogRepository) GetByKind(kind string) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	err := r.db.Where("is_active = ? AND kind = ?", true, kind).
		Order("price ASC").Find(&items).Error
	return items, err
}

// Search finds catalog items by title or keywords
func (r *catalogRepository) Search(query string) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	searchTerm := "%" + query + "%"
	err := r.db.Where("title LIKE ? OR theme_keywords LIKE ?", searchTerm, searchTerm).
		Order("title ASC").Find(&items).Error
	return items, err
}
