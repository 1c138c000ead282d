package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexSixDigit(t *testing.T) {
	rgb, err := ParseHex("#2ecc71")
	require.NoError(t, err)
	assert.Equal(t, RGB{R: 0x2e, G: 0xcc, B: 0x71}, rgb)
}

func TestParseHexThreeDigitExpands(t *testing.T) {
	rgb, err := ParseHex("#0f0")
	require.NoError(t, err)
	assert.Equal(t, RGB{R: 0, G: 0xff, B: 0}, rgb)
}

func TestParseHexRejectsMalformed(t *testing.T) {
	_, err := ParseHex("not-a-color")
	assert.Error(t, err)

	_, err = ParseHex("#zzzzzz")
	assert.Error(t, err)

	_, err = ParseHex("#1234")
	assert.Error(t, err)
}
