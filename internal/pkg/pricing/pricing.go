package pricing

import "time"

// LineItem is the minimal view of a catalog item the aggregator needs.
type LineItem struct {
	ID    string
	Title string
	Price float64
}

// Selection pairs a line item with the authoring-time required flag.
// Required add-ons are bundled into the persisted subtotal; optional ones
// are priced downstream when the customer actually picks them.
type Selection struct {
	Item     LineItem
	Required bool
}

// DiscountKind enumerates the supported discount shapes.
type DiscountKind string

const (
	DiscountNone       DiscountKind = "none"
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
)

// Discount describes an optional reduction applied to a subtotal.
// ExpiresAt is advisory display metadata; it does not gate application.
type Discount struct {
	Kind      DiscountKind
	Value     float64
	Label     string
	ExpiresAt *time.Time
}

// Subtotal computes the pre-discount price of an experience. Packages are
// always included; enhancements and motion add-ons count only when flagged
// required.
func Subtotal(packages []LineItem, enhancements, motion []Selection) float64 {
	var sum float64
	for _, p := range packages {
		sum += p.Price
	}
	for _, s := range enhancements {
		if s.Required {
			sum += s.Item.Price
		}
	}
	for _, s := range motion {
		if s.Required {
			sum += s.Item.Price
		}
	}
	return sum
}

// ApplyDiscount derives the payable total from a subtotal. The result is
// never negative. Callers must always pass the original subtotal, never a
// previously discounted value.
func ApplyDiscount(subtotal float64, d Discount) float64 {
	switch d.Kind {
	case DiscountPercentage:
		if d.Value == 0 {
			return subtotal
		}
		total := subtotal * (1 - d.Value/100)
		if total < 0 {
			return 0
		}
		return total
	case DiscountFixed:
		if subtotal <= d.Value {
			return 0
		}
		return subtotal - d.Value
	default:
		return subtotal
	}
}

// DiscountAmount reports how much a discount takes off a subtotal.
func DiscountAmount(subtotal float64, d Discount) float64 {
	return subtotal - ApplyDiscount(subtotal, d)
}
