package render

import (
	"testing"

	"github.com/gdanko/squaretop/pkg/geometry"
	"github.com/stretchr/testify/assert"
)

func TestRenderDetailPanelSkipsContentWhenInvalid(t *testing.T) {
	buf := NewBuffer(30, 10)
	bounds := geometry.CellRect{W: 30, H: 10}
	RenderDetailPanel(buf, bounds, DetailInfo{Valid: false})
	assert.Equal(t, ' ', buf.Get(1, 0).Rune)
}

func TestRenderDetailPanelWritesName(t *testing.T) {
	buf := NewBuffer(30, 10)
	bounds := geometry.CellRect{W: 30, H: 10}
	RenderDetailPanel(buf, bounds, DetailInfo{Valid: true, PID: 42, Name: "sshd", User: "root", State: "Running"})

	var runes []rune
	for x := 1; x < 10; x++ {
		runes = append(runes, buf.Get(x, 0).Rune)
	}
	assert.Contains(t, string(runes), "sshd")
}
