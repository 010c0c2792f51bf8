package repository

import (
	"time"

	"github.com/EmilyHart/StudioPilot/app/models"
	"gorm.io/gorm"
)

// sessionRepository implements the SessionRepository interface
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new studio session repository instance
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create creates a new studio session in the database
func (r *sessionRepository) Create(session *models.StudioSession) error {
	return r.db.Create(session).Error
}

// GetByID retrieves a session by its ID
func (r *sessionRepository) GetByID(id uint) (*models.StudioSession, error) {
	var session models.StudioSession
	err := r.db.Preload("Lead").First(&session, id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetByLeadID retrieves all sessions for a lead
func (r *sessionRepository) GetByLeadID(leadID uint) ([]models.StudioSession, error) {
	var sessions []models.StudioSession
	err := r.db.Where("lead_id = ?", leadID).
		Order("scheduled_at ASC").Find(&sessions).Error
	return sessions, err
}

// Update updates an existing session in the database
func (r *sessionRepository) Update(session *models.StudioSession) error {
	return r.db.Save(session).Error
}

// Delete soft deletes a session by its ID
func (r *sessionRepository) Delete(id uint) error {
	return r.db.Delete(&models.StudioSession{}, id).Error
}

// List retrieves sessions with pagination, soonest first
func (r *sessionRepository) List(offset, limit int) ([]models.StudioSession, error) {
	var sessions []models.StudioSession
	err := r.db.Preload("Lead").Order("scheduled_at ASC").
		Offset(offset).Limit(limit).Find(&sessions).Error
	return sessions, err
}

// Count returns the total number of sessions
func (r *sessionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.StudioSession{}).Count(&count).Error
	return count, err
}

// GetUpcoming retrieves scheduled sessions starting at or after the given time
func (r *sessionRepository) GetUpcoming(from time.Time, limit int) ([]models.StudioSession, error) {
	var sessions []models.StudioSession
	err := r.db.Preload("Lead").
		Where("scheduled_at >= ? AND status = ?", from, models.SESSION_STATUS_SCHEDULED).
		Order("scheduled_at ASC").Limit(limit).Find(&sessions).Error
	return sessions, err
}
