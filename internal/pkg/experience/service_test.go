package experience

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/EmilyHart/StudioPilot/app/models"
	"github.com/EmilyHart/StudioPilot/app/repository"
	"github.com/EmilyHart/StudioPilot/internal/pkg/pricing"
)

// fakeExperienceRepo is an in-memory ExperienceRepository. CreateWithItems
// mirrors the all-or-nothing transaction of the real implementation.
type fakeExperienceRepo struct {
	nextID      uint
	experiences map[uint]*models.Experience
	items       map[uint][]models.ExperienceItem
	failCreate  error
	failUpdate  error
}

func newFakeExperienceRepo() *fakeExperienceRepo {
	return &fakeExperienceRepo{
		nextID:      1,
		experiences: make(map[uint]*models.Experience),
		items:       make(map[uint][]models.ExperienceItem),
	}
}

func (f *fakeExperienceRepo) CreateWithItems(experience *models.Experience, items []models.ExperienceItem) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	experience.ID = f.nextID
	if experience.UUID == "" {
		experience.UUID = fmt.Sprintf("exp-%d", f.nextID)
	}
	f.nextID++
	for i := range items {
		items[i].ExperienceID = experience.ID
	}
	stored := *experience
	f.experiences[experience.ID] = &stored
	f.items[experience.ID] = items
	stored.Items = items
	return nil
}

func (f *fakeExperienceRepo) GetByID(id uint) (*models.Experience, error) {
	e, ok := f.experiences[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *e
	out.Items = f.items[id]
	return &out, nil
}

func (f *fakeExperienceRepo) GetByUUID(uuid string) (*models.Experience, error) {
	for id, e := range f.experiences {
		if e.UUID == uuid {
			return f.GetByID(id)
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeExperienceRepo) Update(experience *models.Experience) error {
	if f.failUpdate != nil {
		return f.failUpdate
	}
	stored := *experience
	f.experiences[experience.ID] = &stored
	return nil
}

func (f *fakeExperienceRepo) Delete(id uint) error {
	delete(f.experiences, id)
	delete(f.items, id)
	return nil
}

func (f *fakeExperienceRepo) List(offset, limit int) ([]models.Experience, error) { return nil, nil }
func (f *fakeExperienceRepo) Count() (int64, error)                               { return int64(len(f.experiences)), nil }

func (f *fakeExperienceRepo) GetTemplates() ([]models.Experience, error) {
	var out []models.Experience
	for id, e := range f.experiences {
		if e.LeadID == nil {
			full, _ := f.GetByID(id)
			out = append(out, *full)
		}
	}
	return out, nil
}

func (f *fakeExperienceRepo) GetByLeadID(leadID uint) ([]models.Experience, error) {
	var out []models.Experience
	for id, e := range f.experiences {
		if e.LeadID != nil && *e.LeadID == leadID {
			full, _ := f.GetByID(id)
			out = append(out, *full)
		}
	}
	return out, nil
}

// fakeLeadRepo is a minimal in-memory LeadRepository.
type fakeLeadRepo struct {
	leads map[uint]*models.Lead
}

func newFakeLeadRepo(leads ...*models.Lead) *fakeLeadRepo {
	f := &fakeLeadRepo{leads: make(map[uint]*models.Lead)}
	for _, l := range leads {
		f.leads[l.ID] = l
	}
	return f
}

func (f *fakeLeadRepo) Create(lead *models.Lead) error { f.leads[lead.ID] = lead; return nil }
func (f *fakeLeadRepo) GetByID(id uint) (*models.Lead, error) {
	l, ok := f.leads[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}
func (f *fakeLeadRepo) Update(lead *models.Lead) error                  { return nil }
func (f *fakeLeadRepo) Delete(id uint) error                            { return nil }
func (f *fakeLeadRepo) List(offset, limit int) ([]models.Lead, error)   { return nil, nil }
func (f *fakeLeadRepo) Count() (int64, error)                           { return int64(len(f.leads)), nil }
func (f *fakeLeadRepo) Search(query string) ([]models.Lead, error)      { return nil, nil }
func (f *fakeLeadRepo) GetByStatus(status string) ([]models.Lead, error) {
	return nil, nil
}
func (f *fakeLeadRepo) GetCreatedSince(since time.Time) ([]models.Lead, error) { return nil, nil }
func (f *fakeLeadRepo) CountByStatus() (map[string]int64, error)               { return nil, nil }
func (f *fakeLeadRepo) CountCreatedSince(since time.Time) (int64, error)       { return 0, nil }

var (
	_ repository.ExperienceRepository = (*fakeExperienceRepo)(nil)
	_ repository.LeadRepository       = (*fakeLeadRepo)(nil)
)

func validBuilder() *Builder {
	return NewBuilder().
		SetTitle("Bridal Editorial").
		SetImageURL("https://cdn.example.com/bridal.jpg").
		AddPackage(catalogItem(10, "Elegance", 1350)).
		AddEnhancement(catalogItem(11, "Full Gallery", 250), false).
		AddEnhancement(catalogItem(12, "Studio Vignette", 150), true)
}

func TestSaveTemplate(t *testing.T) {
	repo := newFakeExperienceRepo()
	svc := NewService(repo, newFakeLeadRepo())

	b := validBuilder()
	record, err := svc.Save(b, nil)
	require.NoError(t, err)

	assert.Equal(t, StatePersisted, b.State())
	assert.Equal(t, models.EXPERIENCE_STATUS_TEMPLATE, record.Status)
	assert.Nil(t, record.LeadID)
	assert.Equal(t, 1500.0, record.Subtotal)
	assert.Equal(t, 1500.0, record.TotalAmount)

	// Every selected item was snapshotted into normalized rows.
	stored, err := repo.GetByID(record.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 3)

	// And into the JSON blob.
	snap, err := DecodeSnapshot(record.CustomMessage)
	require.NoError(t, err)
	require.Len(t, snap.PackageSnapshots.Packages, 1)
	assert.Equal(t, "Elegance", snap.PackageSnapshots.Packages[0].Title)
	require.Len(t, snap.PackageSnapshots.Enhancements, 2)
	assert.False(t, snap.PackageSnapshots.Enhancements[0].IsRequired)
	assert.True(t, snap.PackageSnapshots.Enhancements[1].IsRequired)
	assert.Equal(t, "https://cdn.example.com/bridal.jpg", snap.PackageSnapshots.ExperienceImageURL)
}

func TestSaveForLead(t *testing.T) {
	repo := newFakeExperienceRepo()
	svc := NewService(repo, newFakeLeadRepo())

	leadID := uint(42)
	b := validBuilder().SetDiscount(pricing.Discount{Kind: pricing.DiscountPercentage, Value: 10, Label: "Early booking"})
	record, err := svc.Save(b, &leadID)
	require.NoError(t, err)

	assert.Equal(t, models.EXPERIENCE_STATUS_DRAFT, record.Status)
	require.NotNil(t, record.LeadID)
	assert.Equal(t, leadID, *record.LeadID)
	assert.Equal(t, 1500.0, record.Subtotal)
	assert.Equal(t, 1350.0, record.TotalAmount)
	assert.Equal(t, 150.0, record.DiscountAmount)
	assert.Equal(t, 10.0, record.DiscountPercentage)
	assert.Equal(t, "Early booking", record.DiscountLabel)
}

func TestSaveValidationErrors(t *testing.T) {
	svc := NewService(newFakeExperienceRepo(), newFakeLeadRepo())

	// Blank title with a package selected.
	b := NewBuilder().AddPackage(catalogItem(1, "Elegance", 1350))
	_, err := svc.Save(b, nil)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "title", vErr.Field)

	// Title set, zero packages.
	b = NewBuilder().SetTitle("Test")
	_, err = svc.Save(b, nil)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "packages", vErr.Field)
}

func TestSaveStoreFailureKeepsSelections(t *testing.T) {
	repo := newFakeExperienceRepo()
	storeErr := errors.New("connection reset by peer")
	repo.failCreate = storeErr
	svc := NewService(repo, newFakeLeadRepo())

	b := validBuilder()
	_, err := svc.Save(b, nil)
	require.ErrorIs(t, err, storeErr)
	assert.Equal(t, StateFailed, b.State())

	// Selections stay intact; a retry after the store recovers succeeds.
	repo.failCreate = nil
	record, err := svc.Save(b, nil)
	require.NoError(t, err)
	assert.Equal(t, StatePersisted, b.State())
	assert.Equal(t, 1500.0, record.Subtotal)
}

func TestEditRoundTrip(t *testing.T) {
	repo := newFakeExperienceRepo()
	svc := NewService(repo, newFakeLeadRepo())

	original := validBuilder().SetDiscount(pricing.Discount{Kind: pricing.DiscountFixed, Value: 100, Label: "Referral"})
	record, err := svc.Save(original, nil)
	require.NoError(t, err)

	// Re-enter the builder from the stored record.
	b, err := svc.Edit(record)
	require.NoError(t, err)
	assert.Equal(t, StateValid, b.State())
	assert.Equal(t, "Bridal Editorial", b.Title())
	assert.Equal(t, pricing.DiscountFixed, b.Discount().Kind)
	assert.Equal(t, 100.0, b.Discount().Value)

	q, err := b.Preview()
	require.NoError(t, err)
	assert.Equal(t, 1500.0, q.Subtotal)
	assert.Equal(t, 1400.0, q.Total)

	// Re-save updates the same record in place.
	b.SetTitle("Bridal Editorial II")
	updated, err := svc.Save(b, nil)
	require.NoError(t, err)
	assert.Equal(t, record.ID, updated.ID)
	assert.Equal(t, record.UUID, updated.UUID)
	assert.Equal(t, "Bridal Editorial II", updated.Title)
}

func TestEditSurvivesCatalogChanges(t *testing.T) {
	repo := newFakeExperienceRepo()
	svc := NewService(repo, newFakeLeadRepo())

	item := catalogItem(10, "Elegance", 1350)
	b := NewBuilder().SetTitle("Frozen Price").AddPackage(item)
	record, err := svc.Save(b, nil)
	require.NoError(t, err)

	// A later catalog edit must not change the saved experience.
	item.Price = 9999

	reloaded, err := repo.GetByID(record.ID)
	require.NoError(t, err)
	edit, err := svc.Edit(reloaded)
	require.NoError(t, err)
	q, err := edit.Preview()
	require.NoError(t, err)
	assert.Equal(t, 1350.0, q.Subtotal)
}

func TestAssignTemplateToLead(t *testing.T) {
	repo := newFakeExperienceRepo()
	lead := &models.Lead{ID: 7, Name: "Ava Moreno"}
	svc := NewService(repo, newFakeLeadRepo(lead))

	tpl, err := svc.Save(validBuilder(), nil)
	require.NoError(t, err)

	copyRecord, err := svc.AssignTemplateToLead(tpl.UUID, lead.ID)
	require.NoError(t, err)
	require.NotNil(t, copyRecord.LeadID)
	assert.Equal(t, lead.ID, *copyRecord.LeadID)
	assert.Equal(t, models.EXPERIENCE_STATUS_DRAFT, copyRecord.Status)
	assert.Equal(t, tpl.Subtotal, copyRecord.Subtotal)
	assert.NotEqual(t, tpl.ID, copyRecord.ID)

	// Component links were copied with the record.
	stored, err := repo.GetByID(copyRecord.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 3)
}

func TestAssignTemplateToLeadRollsBackOnFailure(t *testing.T) {
	repo := newFakeExperienceRepo()
	lead := &models.Lead{ID: 7, Name: "Ava Moreno"}
	svc := NewService(repo, newFakeLeadRepo(lead))

	tpl, err := svc.Save(validBuilder(), nil)
	require.NoError(t, err)

	before, _ := repo.Count()
	repo.failCreate = errors.New("deadlock found when trying to get lock")
	_, err = svc.AssignTemplateToLead(tpl.UUID, lead.ID)
	require.Error(t, err)

	// No orphaned experience without components.
	after, _ := repo.Count()
	assert.Equal(t, before, after)
}

func TestAssignRejectsNonTemplates(t *testing.T) {
	repo := newFakeExperienceRepo()
	lead := &models.Lead{ID: 7, Name: "Ava Moreno"}
	svc := NewService(repo, newFakeLeadRepo(lead))

	leadID := lead.ID
	bound, err := svc.Save(validBuilder(), &leadID)
	require.NoError(t, err)

	_, err = svc.AssignTemplateToLead(bound.UUID, lead.ID)
	require.ErrorIs(t, err, ErrNotTemplate)
}

func TestAssignUnknownLead(t *testing.T) {
	repo := newFakeExperienceRepo()
	svc := NewService(repo, newFakeLeadRepo())

	tpl, err := svc.Save(validBuilder(), nil)
	require.NoError(t, err)

	_, err = svc.AssignTemplateToLead(tpl.UUID, 999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
