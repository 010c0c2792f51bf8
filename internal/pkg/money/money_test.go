package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$0", FormatUSD(0))
	assert.Equal(t, "$950", FormatUSD(950))
	assert.Equal(t, "$1,500", FormatUSD(1500))
	assert.Equal(t, "$2,750", FormatUSD(2750))
	assert.Equal(t, "$1,234,567", FormatUSD(1234567))
}

func TestFormatUSDRoundsToWholeDollars(t *testing.T) {
	assert.Equal(t, "$1,350", FormatUSD(1349.5))
	assert.Equal(t, "$1,349", FormatUSD(1349.4))
}

func TestFormatUSDNegative(t *testing.T) {
	assert.Equal(t, "-$100", FormatUSD(-100))
}
