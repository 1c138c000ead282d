package perfcapture

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderWritesOneJSONObjectPerLine(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)

	done := rec.Start("layout.build")
	require.NoError(t, done(1, map[string]any{"rects": 25}))

	done2 := rec.Start("render.frame")
	require.NoError(t, done2(2, nil))

	scanner := bufio.NewScanner(&buf)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.Len(t, lines, 2)

	var first Span
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "layout.build", first.Name)
	assert.Equal(t, uint32(1), first.Iteration)
	assert.Equal(t, float64(25), first.Extra["rects"])

	var second Span
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "render.frame", second.Name)
	assert.Nil(t, second.Extra)
}

func TestRecorderStartUSAdvancesAcrossSpans(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	done1 := rec.Start("first")
	require.NoError(t, done1(0, nil))
	done2 := rec.Start("second")
	require.NoError(t, done2(0, nil))

	scanner := bufio.NewScanner(&buf)
	var spans []Span
	for scanner.Scan() {
		var s Span
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &s))
		spans = append(spans, s)
	}
	require.Len(t, spans, 2)
	assert.LessOrEqual(t, spans[0].StartUS, spans[1].StartUS)
}
