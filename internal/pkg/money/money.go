package money

import (
	"fmt"
	"math"
	"strconv"
)

// FormatUSD renders an amount the way the dashboard displays prices:
// en-US currency style with zero fraction digits ("$1,500"). Rounding here
// is presentation-only; computed totals are stored unrounded.
func FormatUSD(amount float64) string {
	negative := amount < 0
	whole := int64(math.Round(math.Abs(amount)))

	s := strconv.FormatInt(whole, 10)
	var grouped []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, c)
	}

	if negative {
		return fmt.Sprintf("-$%s", grouped)
	}
	return fmt.Sprintf("$%s", grouped)
}
