package experience

import (
	"errors"
	"fmt"

	"github.com/EmilyHart/StudioPilot/app/models"
	"github.com/EmilyHart/StudioPilot/app/repository"
	"github.com/EmilyHart/StudioPilot/internal/pkg/catalog"
	"github.com/EmilyHart/StudioPilot/internal/pkg/pricing"
)

var (
	// ErrNotTemplate is returned when a lead assignment targets an
	// experience that is already bound to a lead.
	ErrNotTemplate = errors.New("experience is not a reusable template")
)

// Service persists builder output and drives the template-to-lead flow.
type Service struct {
	experiences repository.ExperienceRepository
	leads       repository.LeadRepository
}

// NewService creates an experience service from injected repositories.
func NewService(experiences repository.ExperienceRepository, leads repository.LeadRepository) *Service {
	return &Service{experiences: experiences, leads: leads}
}

// NewServiceFromFactory creates an experience service from the global
// repository factory.
func NewServiceFromFactory(f *repository.Factory) *Service {
	return NewService(f.GetExperienceRepository(), f.GetLeadRepository())
}

// Save validates the builder, recomputes the price, snapshots every selected
// item by value and persists the experience. targetLeadID is explicit: nil
// saves a reusable template, non-nil binds the record to that lead. A store
// failure is surfaced verbatim and the builder's selections stay editable.
func (s *Service) Save(b *Builder, targetLeadID *uint) (*models.Experience, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	q := b.quote()
	record, items, err := s.buildRecord(b, q, targetLeadID)
	if err != nil {
		return nil, err
	}

	b.state = StatePersisting

	if b.existing != nil {
		// Update in place. Item links from the original save are kept as-is;
		// the refreshed snapshot blob carries the current components.
		record.ID = b.existing.ID
		record.UUID = b.existing.UUID
		record.CreatedAt = b.existing.CreatedAt
		if targetLeadID == nil {
			record.LeadID = b.existing.LeadID
			record.Status = b.existing.Status
		}
		if err := s.experiences.Update(record); err != nil {
			b.state = StateFailed
			return nil, err
		}
	} else {
		if err := s.experiences.CreateWithItems(record, items); err != nil {
			b.state = StateFailed
			return nil, err
		}
	}

	b.state = StatePersisted
	b.existing = record
	return record, nil
}

// Update persists a rebuilt selection over an existing record, updating it
// in place rather than creating a new one.
func (s *Service) Update(b *Builder, record *models.Experience) (*models.Experience, error) {
	b.existing = record
	return s.Save(b, nil)
}

// Edit rebuilds a builder from a persisted experience so the operator can
// change selections and re-save. The snapshot blob is the source of truth
// for the components.
func (s *Service) Edit(record *models.Experience) (*Builder, error) {
	snap, err := DecodeSnapshot(record.CustomMessage)
	if err != nil {
		return nil, err
	}

	b := NewBuilder()
	b.title = record.Title
	b.imageURL = record.ImageURL
	b.packages = append(b.packages, snap.PackageSnapshots.Packages...)
	for _, item := range snap.PackageSnapshots.Enhancements {
		b.enhancements = append(b.enhancements, Selected{Item: item.CatalogItem, Required: item.IsRequired})
	}
	for _, item := range snap.PackageSnapshots.Motion {
		b.motion = append(b.motion, Selected{Item: item.CatalogItem, Required: item.IsRequired})
	}
	b.discount = decodeDiscount(record, snap)
	b.existing = record
	b.refreshState()
	return b, nil
}

// AssignTemplateToLead copies a reusable template into a lead-bound
// experience, including its component links. The copy runs inside one
// repository transaction, so a failed component copy rolls back the new
// record instead of leaving it without components.
func (s *Service) AssignTemplateToLead(templateUUID string, leadID uint) (*models.Experience, error) {
	lead, err := s.leads.GetByID(leadID)
	if err != nil {
		return nil, fmt.Errorf("fetch lead %d: %w", leadID, err)
	}

	tpl, err := s.experiences.GetByUUID(templateUUID)
	if err != nil {
		return nil, fmt.Errorf("fetch template %s: %w", templateUUID, err)
	}
	if !tpl.IsTemplate() {
		return nil, ErrNotTemplate
	}

	copyRecord := &models.Experience{
		Title:              tpl.Title,
		ImageURL:           tpl.ImageURL,
		Status:             models.EXPERIENCE_STATUS_DRAFT,
		LeadID:             &lead.ID,
		Subtotal:           tpl.Subtotal,
		TotalAmount:        tpl.TotalAmount,
		DiscountAmount:     tpl.DiscountAmount,
		DiscountPercentage: tpl.DiscountPercentage,
		DiscountLabel:      tpl.DiscountLabel,
		DiscountExpiresAt:  tpl.DiscountExpiresAt,
		CustomMessage:      tpl.CustomMessage,
	}

	items := make([]models.ExperienceItem, 0, len(tpl.Items))
	for _, item := range tpl.Items {
		items = append(items, models.ExperienceItem{
			CatalogItemID: item.CatalogItemID,
			GroupKind:     item.GroupKind,
			IsRequired:    item.IsRequired,
			PriceAtSave:   item.PriceAtSave,
			TitleAtSave:   item.TitleAtSave,
		})
	}

	if err := s.experiences.CreateWithItems(copyRecord, items); err != nil {
		return nil, err
	}
	return copyRecord, nil
}

func (s *Service) buildRecord(b *Builder, q Quote, targetLeadID *uint) (*models.Experience, []models.ExperienceItem, error) {
	snap := Snapshot{
		Summary: buildSummary(b.title, b.packages, b.enhancements, b.motion, b.discount, q.Total),
		PackageSnapshots: PackageSnapshots{
			Packages:           b.packages,
			Enhancements:       snapshotItems(b.enhancements),
			Motion:             snapshotItems(b.motion),
			ExperienceImageURL: b.imageURL,
		},
	}
	if b.discount.Kind != pricing.DiscountNone {
		snap.Discount = &DiscountSnapshot{
			Kind:      string(b.discount.Kind),
			Value:     b.discount.Value,
			Label:     b.discount.Label,
			ExpiresAt: b.discount.ExpiresAt,
		}
	}

	encoded, err := EncodeSnapshot(snap)
	if err != nil {
		return nil, nil, err
	}

	status := models.EXPERIENCE_STATUS_TEMPLATE
	if targetLeadID != nil {
		status = models.EXPERIENCE_STATUS_DRAFT
	}

	record := &models.Experience{
		Title:             b.title,
		ImageURL:          b.imageURL,
		Status:            status,
		LeadID:            targetLeadID,
		Subtotal:          q.Subtotal,
		TotalAmount:       q.Total,
		DiscountAmount:    q.DiscountAmount,
		DiscountLabel:     b.discount.Label,
		DiscountExpiresAt: b.discount.ExpiresAt,
		CustomMessage:     encoded,
	}
	if b.discount.Kind == pricing.DiscountPercentage {
		record.DiscountPercentage = b.discount.Value
	}

	var items []models.ExperienceItem
	for _, p := range b.packages {
		items = append(items, models.ExperienceItem{
			CatalogItemID: p.ID,
			GroupKind:     string(catalog.KindPackage),
			IsRequired:    true,
			PriceAtSave:   p.Price,
			TitleAtSave:   p.Title,
		})
	}
	items = append(items, selectionItems(b.enhancements, catalog.KindEnhancement)...)
	items = append(items, selectionItems(b.motion, catalog.KindMotion)...)

	return record, items, nil
}

func snapshotItems(selected []Selected) []SnapshotItem {
	out := make([]SnapshotItem, 0, len(selected))
	for _, s := range selected {
		out = append(out, SnapshotItem{CatalogItem: s.Item, IsRequired: s.Required})
	}
	return out
}

func selectionItems(selected []Selected, kind catalog.Kind) []models.ExperienceItem {
	out := make([]models.ExperienceItem, 0, len(selected))
	for _, s := range selected {
		out = append(out, models.ExperienceItem{
			CatalogItemID: s.Item.ID,
			GroupKind:     string(kind),
			IsRequired:    s.Required,
			PriceAtSave:   s.Item.Price,
			TitleAtSave:   s.Item.Title,
		})
	}
	return out
}

func decodeDiscount(record *models.Experience, snap Snapshot) pricing.Discount {
	if snap.Discount != nil {
		return pricing.Discount{
			Kind:      pricing.DiscountKind(snap.Discount.Kind),
			Value:     snap.Discount.Value,
			Label:     snap.Discount.Label,
			ExpiresAt: snap.Discount.ExpiresAt,
		}
	}
	// Older records only carry the derived columns.
	if record.DiscountPercentage > 0 {
		return pricing.Discount{
			Kind:      pricing.DiscountPercentage,
			Value:     record.DiscountPercentage,
			Label:     record.DiscountLabel,
			ExpiresAt: record.DiscountExpiresAt,
		}
	}
	if record.DiscountAmount > 0 {
		return pricing.Discount{
			Kind:      pricing.DiscountFixed,
			Value:     record.DiscountAmount,
			Label:     record.DiscountLabel,
			ExpiresAt: record.DiscountExpiresAt,
		}
	}
	return pricing.Discount{Kind: pricing.DiscountNone}
}
