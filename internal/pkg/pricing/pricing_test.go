package pricing

import "testing"

func item(title string, price float64) LineItem {
	return LineItem{ID: title, Title: title, Price: price}
}

func TestSubtotalRequiredOnly(t *testing.T) {
	got := Subtotal(
		[]LineItem{item("base", 100)},
		[]Selection{
			{Item: item("included", 50), Required: true},
			{Item: item("optional", 30), Required: false},
		},
		nil,
	)
	if got != 150 {
		t.Fatalf("Subtotal = %v, want 150", got)
	}
}

func TestSubtotalEmptySelection(t *testing.T) {
	if got := Subtotal(nil, nil, nil); got != 0 {
		t.Fatalf("Subtotal of empty selection = %v, want 0", got)
	}
}

func TestSubtotalMultiplePackages(t *testing.T) {
	got := Subtotal(
		[]LineItem{item("opulence", 1650), item("essence", 950)},
		nil,
		[]Selection{{Item: item("highlight reel", 250), Required: true}},
	)
	if got != 2850 {
		t.Fatalf("Subtotal = %v, want 2850", got)
	}
}

func TestApplyDiscountNoneIsIdentity(t *testing.T) {
	for _, subtotal := range []float64{0, 1, 99.5, 1500, 1e6} {
		if got := ApplyDiscount(subtotal, Discount{Kind: DiscountNone}); got != subtotal {
			t.Fatalf("ApplyDiscount(%v, none) = %v", subtotal, got)
		}
		// Zero-value descriptor behaves like none.
		if got := ApplyDiscount(subtotal, Discount{}); got != subtotal {
			t.Fatalf("ApplyDiscount(%v, zero value) = %v", subtotal, got)
		}
	}
}

func TestApplyDiscountPercentage(t *testing.T) {
	if got := ApplyDiscount(200, Discount{Kind: DiscountPercentage, Value: 10}); got != 180 {
		t.Fatalf("ApplyDiscount(200, 10%%) = %v, want 180", got)
	}
	if got := ApplyDiscount(1500, Discount{Kind: DiscountPercentage, Value: 100}); got != 0 {
		t.Fatalf("ApplyDiscount(1500, 100%%) = %v, want 0", got)
	}
}

func TestApplyDiscountFixedClampsAtZero(t *testing.T) {
	if got := ApplyDiscount(50, Discount{Kind: DiscountFixed, Value: 100}); got != 0 {
		t.Fatalf("ApplyDiscount(50, fixed 100) = %v, want 0", got)
	}
	if got := ApplyDiscount(2850, Discount{Kind: DiscountFixed, Value: 100}); got != 2750 {
		t.Fatalf("ApplyDiscount(2850, fixed 100) = %v, want 2750", got)
	}
}

func TestDiscountAmount(t *testing.T) {
	tests := []struct {
		subtotal float64
		d        Discount
		want     float64
	}{
		{subtotal: 1500, d: Discount{Kind: DiscountNone}, want: 0},
		{subtotal: 1500, d: Discount{Kind: DiscountPercentage, Value: 10}, want: 150},
		{subtotal: 50, d: Discount{Kind: DiscountFixed, Value: 100}, want: 50},
	}
	for _, tt := range tests {
		if got := DiscountAmount(tt.subtotal, tt.d); got != tt.want {
			t.Fatalf("DiscountAmount(%v, %v) = %v, want %v", tt.subtotal, tt.d.Kind, got, tt.want)
		}
	}
}
