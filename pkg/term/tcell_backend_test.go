package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/gdanko/squaretop/pkg/color"
	"github.com/stretchr/testify/assert"
)

func TestTcellColorTrueColorPassesThroughRGB(t *testing.T) {
	c := tcellColor(color.RGB{R: 10, G: 20, B: 30}, ColorSupportTrueColor)
	assert.Equal(t, tcell.NewRGBColor(10, 20, 30), c)
}

func TestTcellColorMonoPicksBlackOrWhite(t *testing.T) {
	assert.Equal(t, tcell.ColorBlack, tcellColor(color.RGB{R: 0, G: 0, B: 0}, ColorSupportMono))
	assert.Equal(t, tcell.ColorWhite, tcellColor(color.RGB{R: 255, G: 255, B: 255}, ColorSupportMono))
}

func TestTcellColor256QuantizesIntoPaletteRange(t *testing.T) {
	c := tcellColor(color.RGB{R: 255, G: 0, B: 0}, ColorSupport256)
	assert.Equal(t, tcell.PaletteColor(16+36*5), c)
}
