package sparkline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMemoryEmptyHistory(t *testing.T) {
	assert.Equal(t, "", RenderMemory(nil))
}

func TestRenderMemoryFlatHistoryIsLowestBlock(t *testing.T) {
	samples := []Sample{{MemoryBytes: 100}, {MemoryBytes: 100}, {MemoryBytes: 100}}
	s := RenderMemory(samples)
	assert.Equal(t, "▁▁▁", s)
}

func TestRenderMemorySpansLowToHigh(t *testing.T) {
	samples := []Sample{{MemoryBytes: 0}, {MemoryBytes: 50}, {MemoryBytes: 100}}
	runes := []rune(RenderMemory(samples))
	assert.Len(t, runes, 3)
	assert.Equal(t, blocks[0], runes[0])
	assert.Equal(t, blocks[len(blocks)-1], runes[2])
}

func TestRenderCPUUsesPercent(t *testing.T) {
	samples := []Sample{{CPUPercent: 0}, {CPUPercent: 100}}
	runes := []rune(RenderCPU(samples))
	assert.Equal(t, blocks[0], runes[0])
	assert.Equal(t, blocks[len(blocks)-1], runes[1])
}
