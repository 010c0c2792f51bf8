package repository

import (
	"time"

	"github.com/EmilyHart/StudioPilot/app/models"
	"gorm.io/gorm"
)

// LeadRepository defines the interface for lead-related database operations
type LeadRepository interface {
	Create(lead *models.Lead) error
	GetByID(id uint) (*models.Lead, error)
	Update(lead *models.Lead) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Lead, error)
	Count() (int64, error)
	Search(query string) ([]models.Lead, error)
	GetByStatus(status string) ([]models.Lead, error)
	GetCreatedSince(since time.Time) ([]models.Lead, error)
	CountByStatus() (map[string]int64, error)
	CountCreatedSince(since time.Time) (int64, error)
}

// CatalogRepository defines the interface for catalog item database operations
type CatalogRepository interface {
	Create(item *models.CatalogItem) error
	GetByID(id uint) (*models.CatalogItem, error)
	GetByUUID(uuid string) (*models.CatalogItem, error)
	GetByIDs(ids []uint) ([]models.CatalogItem, error)
	Update(item *models.CatalogItem) error
	Delete(id uint) error
	List(offset, limit int) ([]models.CatalogItem, error)
	Count() (int64, error)
	GetActive() ([]models.CatalogItem, error)
	GetByKind(kind string) ([]models.CatalogItem, error)
	Search(query string) ([]models.CatalogItem, error)
}

// SessionRepository defines the interface for studio session database operations
type SessionRepository interface {
	Create(session *models.StudioSession) error
	GetByID(id uint) (*models.StudioSession, error)
	GetByLeadID(leadID uint) ([]models.StudioSession, error)
	Update(session *models.StudioSession) error
	Delete(id uint) error
	List(offset, limit int) ([]models.StudioSession, error)
	Count() (int64, error)
	GetUpcoming(from time.Time, limit int) ([]models.StudioSession, error)
}

// ExperienceRepository defines the interface for experience database operations.
// CreateWithItems runs in a single transaction so a failed item link rolls the
// parent record back instead of leaving an orphaned experience.
type ExperienceRepository interface {
	CreateWithItems(experience *models.Experience, items []models.ExperienceItem) error
	GetByID(id uint) (*models.Experience, error)
	GetByUUID(uuid string) (*models.Experience, error)
	Update(experience *models.Experience) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Experience, error)
	Count() (int64, error)
	GetTemplates() ([]models.Experience, error)
	GetByLeadID(leadID uint) ([]models.Experience, error)
}

// ProposalRepository defines the interface for proposal database operations
type ProposalRepository interface {
	Create(proposal *models.Proposal) error
	GetByID(id uint) (*models.Proposal, error)
	GetByUUID(uuid string) (*models.Proposal, error)
	GetByLeadID(leadID uint) ([]models.Proposal, error)
	Update(proposal *models.Proposal) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Proposal, error)
	Count() (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Lead       LeadRepository
	Catalog    CatalogRepository
	Session    SessionRepository
	Experience ExperienceRepository
	Proposal   ProposalRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Lead:       NewLeadRepository(db),
		Catalog:    NewCatalogRepository(db),
		Session:    NewSessionRepository(db),
		Experience: NewExperienceRepository(db),
		Proposal:   NewProposalRepository(db),
	}
}
