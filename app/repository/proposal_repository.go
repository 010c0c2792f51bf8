package repository

import (
	"github.com/EmilyHart/StudioPilot/app/models"
	"gorm.io/gorm"
)

// proposalRepository implements the ProposalRepository interface
type proposalRepository struct {
	db *gorm.DB
}

// NewProposalRepository creates a new proposal repository instance
func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &proposalRepository{db: db}
}

// Create creates a new proposal in the database
func (r *proposalRepository) Create(proposal *models.Proposal) error {
	return r.db.Create(proposal).Error
}

// GetByID retrieves a proposal by its ID
func (r *proposalRepository) GetByID(id uint) (*models.Proposal, error) {
	var proposal models.Proposal
	err := r.db.Preload("Lead").Preload("Experience").First(&proposal, id).Error
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// GetByUUID retrieves a proposal by its public UUID
func (r *proposalRepository) GetByUUID(uuid string) (*models.Proposal, error) {
	var proposal models.Proposal
	err := r.db.Preload("Lead").Preload("Experience").Where("uuid = ?", uuid).First(&proposal).Error
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// GetByLeadID retrieves all proposals for a lead
func (r *proposalRepository) GetByLeadID(leadID uint) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.Preload("Experience").Where("lead_id = ?", leadID).
		Order("created_at DESC").Find(&proposals).Error
	return proposals, err
}

// Update updates an existing proposal in the database
func (r *proposalRepository) Update(proposal *models.Proposal) error {
	return r.db.Save(proposal).Error
}

// Delete soft deletes a proposal by its ID
func (r *proposalRepository) Delete(id uint) error {
	return r.db.Delete(&models.Proposal{}, id).Error
}

// List retrieves proposals with pagination, newest first
func (r *proposalRepository) List(offset, limit int) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.Preload("Lead").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&proposals).Error
	return proposals, err
}

// Count returns the total number of proposals
func (r *proposalRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Proposal{}).Count(&count).Error
	return count, err
}
