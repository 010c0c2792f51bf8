package repository

import (
	"github.com/EmilyHart/StudioPilot/app/models"
	"gorm.io/gorm"
)

// experienceRepository implements the ExperienceRepository interface
type experienceRepository struct {
	db *gorm.DB
}

// NewExperienceRepository creates a new experience repository instance
func NewExperienceRepository(db *gorm.DB) ExperienceRepository {
	return &experienceRepository{db: db}
}

// CreateWithItems creates an experience and its item links in one transaction.
// If any item link fails the whole creation rolls back, so there is never an
// experience record without its components.
func (r *experienceRepository) CreateWithItems(experience *models.Experience, items []models.ExperienceItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(experience).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ExperienceID = experience.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves an experience with its item links by ID
func (r *experienceRepository) GetByID(id uint) (*models.Experience, error) {
	var experience models.Experience
	err := r.db.Preload("Items").Preload("Lead").First(&experience, id).Error
	if err != nil {
		return nil, err
	}
	return &experience, nil
}

// GetByUUID retrieves an experience with its item links by public UUID
func (r *experienceRepository) GetByUUID(uuid string) (*models.Experience, error) {
	var experience models.Experience
	err := r.db.Preload("Items").Preload("Lead").Where("uuid = ?", uuid).First(&experience).Error
	if err != nil {
		return nil, err
	}
	return &experience, nil
}

// Update updates an experience record in place. Item links established at
// original save time are intentionally not re-created; the JSON snapshot in
// custom_message remains the source of truth for components.
func (r *experienceRepository) Update(experience *models.Experience) error {
	return r.db.Save(experience).Error
}

// Delete soft deletes an experience and removes its item links
func (r *experienceRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("experience_id = ?", id).Delete(&models.ExperienceItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Experience{}, id).Error
	})
}

// List retrieves experiences with pagination, newest first
func (r *experienceRepository) List(offset, limit int) ([]models.Experience, error) {
	var experiences []models.Experience
	err := r.db.Preload("Items").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&experiences).Error
	return experiences, err
}

// Count returns the total number of experiences
func (r *experienceRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Experience{}).Count(&count).Error
	return count, err
}

// GetTemplates retrieves reusable experiences not bound to any lead
func (r *experienceRepository) GetTemplates() ([]models.Experience, error) {
	var experiences []models.Experience
	err := r.db.Preload("Items").
		Where("lead_id IS NULL").
		Order("created_at DESC").Find(&experiences).Error
	return experiences, err
}

// GetByLeadID retrieves all experiences bound to a lead
func (r *experienceRepository) GetByLeadID(leadID uint) ([]models.Experience, error) {
	var experiences []models.Experience
	err := r.db.Preload("Items").
		Where("lead_id = ?", leadID).
		Order("created_at DESC").Find(&experiences).Error
	return experiences, err
}
