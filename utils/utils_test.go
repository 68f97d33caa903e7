package utils

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMath_MinMaxAbs(t *testing.T) {
	assert.Equal(t, 2, Min(2, 5))
	assert.Equal(t, 2, Min(5, 2))
	assert.Equal(t, 5, Max(2, 5))
	assert.Equal(t, 1.5, Max(-3.0, 1.5))
	assert.Equal(t, 3, Abs(-3))
	assert.Equal(t, 3, Abs(3))
	assert.Equal(t, 0.25, Abs(-0.25))
}

func TestFormat_DecorateText(t *testing.T) {
	assert.Equal(t, ErrorColor+"failed"+DefaultColor, DecorateText("failed", ErrorMessage))
	assert.Equal(t, SuccessColor+"done"+DefaultColor, DecorateText("done", SuccessMessage))
	assert.Equal(t, "plain", DecorateText("plain", MessageType(42)))
}

func TestFormat_FormatTime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{1500 * time.Millisecond, "1.50s"},
		{90 * time.Second, "1m 30.00s"},
		{time.Hour + time.Minute + 1500*time.Millisecond, "1h 1m 1.50s"},
		{26 * time.Hour, "1d 2h 0m 0.00s"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatTime(tc.d))
	}
}

func TestSpinner_StartStop(t *testing.T) {
	var buf bytes.Buffer

	s := NewSpinner("working", time.Millisecond, false)
	s.SetWriter(&buf)
	s.StopMsg = "finished"
	s.Start()
	time.Sleep(5 * time.Millisecond)
	s.Stop()
	s.Stop()

	out := buf.String()
	assert.Contains(t, out, "working")
	assert.True(t, strings.HasSuffix(out, "finished"))
}

func TestSpinner_StopWithoutStart(t *testing.T) {
	var buf bytes.Buffer

	s := NewSpinner("idle", time.Millisecond, false)
	s.SetWriter(&buf)
	s.StopMsg = "bye"
	s.Stop()

	assert.True(t, strings.HasSuffix(buf.String(), "bye"))
}
