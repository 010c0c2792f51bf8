package repository

import (
	"time"

	"github.com/EmilyHart/StudioPilot/app/models"
	"gorm.io/gorm"
)

// leadRepository implements the LeadRepository interface
type leadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository instance
func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepository{db: db}
}

// Create creates a new lead in the database
func (r *leadRepository) Create(lead *models.Lead) error {
	return r.db.Create(lead).Error
}

// GetByID retrieves a lead by its ID
func (r *leadRepository) GetByID(id uint) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.First(&lead, id).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// Update updates an existing lead in the database
func (r *leadRepository) Update(lead *models.Lead) error {
	return r.db.Save(lead).Error
}

// Delete soft deletes a lead by its ID
func (r *leadRepository) Delete(id uint) error {
	return r.db.Delete(&models.Lead{}, id).Error
}

// List retrieves leads with pagination, newest first
func (r *leadRepository) List(offset, limit int) ([]models.Lead, error) {
	var leads []models.Lead
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&leads).Error
	return leads, err
}

// Count returns the total number of leads
func (r *leadRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Lead{}).Count(&count).Error
	return count, err
}

// Search finds leads by name or email
func (r *leadRepository) Search(query string) ([]models.Lead, error) {
	var leads []models.Lead
	searchTerm := "%" + query + "%"
	err := r.db.Where("name LIKE ? OR email LIKE ?", searchTerm, searchTerm).
		Order("created_at DESC").Find(&leads).Error
	return leads, err
}

// GetByStatus retrieves all leads in a given pipeline stage
func (r *leadRepository) GetByStatus(status string) ([]models.Lead, error) {
	var leads []models.Lead
	err := r.db.Where("status = ?", status).
		Order("created_at DESC").Find(&leads).Error
	return leads, err
}

// GetCreatedSince retrieves leads created after the given time
func (r *leadRepository) GetCreatedSince(since time.Time) ([]models.Lead, error) {
	var leads []models.Lead
	err := r.db.Where("created_at >= ?", since).
		Order("created_at DESC").Find(&leads).Error
	return leads, err
}

// CountByStatus returns lead counts grouped by pipeline stage
func (r *leadRepository) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	err := r.db.Model(&models.Lead{}).
		Select("status, COUNT(*) as total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Total
	}
	return counts, nil
}

// CountCreatedSince returns the number of leads created after the given time
func (r *leadRepository) CountCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Lead{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}
