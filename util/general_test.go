package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecutePipelineSingleCommand(t *testing.T) {
	code, stdout, _, err := ExecutePipeline("echo hello")
	assert.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "hello", stdout)
}

func TestExecutePipelineChainsCommands(t *testing.T) {
	code, stdout, _, err := ExecutePipeline("echo hello | tr a-z A-Z")
	assert.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "HELLO", stdout)
}

func TestExecutePipelineRejectsEmptyCommand(t *testing.T) {
	_, _, _, err := ExecutePipeline("")
	assert.Error(t, err)
}

func TestGetScreenWidth(t *testing.T) {
	// Just verify that it returns a reasonable width.
	width := GetScreenWidth()
	assert.GreaterOrEqual(t, width, 40)
}

func TestHasColorSupportReturnsNonNegativeColorCount(t *testing.T) {
	_, colors := HasColorSupport()
	assert.GreaterOrEqual(t, colors, 0)
}
