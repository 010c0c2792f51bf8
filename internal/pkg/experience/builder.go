package experience

import (
	"fmt"

	"github.com/EmilyHart/StudioPilot/app/models"
	"github.com/EmilyHart/StudioPilot/internal/pkg/pricing"
)

// State tracks the builder through its linear lifecycle.
type State string

const (
	StateEmpty      State = "empty"
	StateValid      State = "valid"
	StatePersisting State = "persisting"
	StatePersisted  State = "persisted"
	StateFailed     State = "failed"
)

// ValidationError names the field that blocks a save.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("experience is missing required field: %s", e.Field)
}

// Selected pairs a catalog item with its authoring-time required flag.
type Selected struct {
	Item     models.CatalogItem
	Required bool
}

// Quote is the result of a pricing preview.
type Quote struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	Total          float64 `json:"total"`
}

// Builder accumulates an operator's selections for one experience. All
// selections stay in memory and editable until a save succeeds; a failed
// save keeps them intact for retry.
type Builder struct {
	title        string
	imageURL     string
	packages     []models.CatalogItem
	enhancements []Selected
	motion       []Selected
	discount     pricing.Discount

	state    State
	existing *models.Experience // set when editing a persisted record
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{state: StateEmpty, discount: pricing.Discount{Kind: pricing.DiscountNone}}
}

// SetTitle sets the experience title.
func (b *Builder) SetTitle(title string) *Builder {
	b.title = title
	b.refreshState()
	return b
}

// SetImageURL sets the optional cover image.
func (b *Builder) SetImageURL(url string) *Builder {
	b.imageURL = url
	return b
}

// SetDiscount sets the optional discount descriptor.
func (b *Builder) SetDiscount(d pricing.Discount) *Builder {
	if d.Kind == "" {
		d.Kind = pricing.DiscountNone
	}
	b.discount = d
	return b
}

// AddPackage adds a primary package tier. Packages are always included in
// the price once chosen.
func (b *Builder) AddPackage(item models.CatalogItem) *Builder {
	b.packages = append(b.packages, item)
	b.refreshState()
	return b
}

// AddEnhancement adds a non-video add-on with its required flag.
func (b *Builder) AddEnhancement(item models.CatalogItem, required bool) *Builder {
	b.enhancements = append(b.enhancements, Selected{Item: item, Required: required})
	return b
}

// AddMotion adds a video add-on with its required flag.
func (b *Builder) AddMotion(item models.CatalogItem, required bool) *Builder {
	b.motion = append(b.motion, Selected{Item: item, Required: required})
	return b
}

// Title returns the current title.
func (b *Builder) Title() string { return b.title }

// Discount returns the current discount descriptor.
func (b *Builder) Discount() pricing.Discount { return b.discount }

// State returns the current lifecycle state.
func (b *Builder) State() State { return b.state }

// Validate checks the save preconditions: a non-blank title and at least one
// selected package. It returns a *ValidationError naming the missing field.
func (b *Builder) Validate() error {
	if b.title == "" {
		return &ValidationError{Field: "title"}
	}
	if len(b.packages) == 0 {
		return &ValidationError{Field: "packages"}
	}
	return nil
}

// Preview recomputes the quote from the current selections without
// persisting anything. It may be called any number of times and does not
// change the builder state.
func (b *Builder) Preview() (Quote, error) {
	if err := b.Validate(); err != nil {
		return Quote{}, err
	}
	return b.quote(), nil
}

func (b *Builder) quote() Quote {
	subtotal := pricing.Subtotal(b.lineItems(), b.selections(b.enhancements), b.selections(b.motion))
	total := pricing.ApplyDiscount(subtotal, b.discount)
	return Quote{
		Subtotal:       subtotal,
		DiscountAmount: subtotal - total,
		Total:          total,
	}
}

func (b *Builder) lineItems() []pricing.LineItem {
	items := make([]pricing.LineItem, 0, len(b.packages))
	for _, p := range b.packages {
		items = append(items, pricing.LineItem{ID: p.UUID, Title: p.Title, Price: p.Price})
	}
	return items
}

func (b *Builder) selections(selected []Selected) []pricing.Selection {
	out := make([]pricing.Selection, 0, len(selected))
	for _, s := range selected {
		out = append(out, pricing.Selection{
			Item:     pricing.LineItem{ID: s.Item.UUID, Title: s.Item.Title, Price: s.Item.Price},
			Required: s.Required,
		})
	}
	return out
}

func (b *Builder) refreshState() {
	switch b.state {
	case StateEmpty, StateValid, StateFailed:
		if b.Validate() == nil {
			b.state = StateValid
		} else {
			b.state = StateEmpty
		}
	}
}
