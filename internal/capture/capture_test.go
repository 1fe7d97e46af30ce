package capture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/respvision_go_server/config"
)

func TestDevices_Table(t *testing.T) {
	devices := Devices()
	require.Len(t, devices, 4)

	byName := map[string]Device{}
	for _, d := range devices {
		byName[d.Name] = d
	}

	mobile, ok := byName["mobile"]
	require.True(t, ok)
	assert.Equal(t, int64(375), mobile.Width)
	assert.Equal(t, int64(667), mobile.Height)
	assert.Equal(t, float64(2), mobile.ScaleFactor)
	assert.Contains(t, mobile.UserAgent, "iPhone")

	tablet, ok := byName["tablet"]
	require.True(t, ok)
	assert.Equal(t, "768x1024", tablet.Resolution())
	assert.Contains(t, tablet.UserAgent, "iPad")

	desktop, ok := byName["desktop"]
	require.True(t, ok)
	assert.Equal(t, "1920x1080", desktop.Resolution())

	fourK, ok := byName["4k"]
	require.True(t, ok)
	assert.Equal(t, "3840x2160", fourK.Resolution())
}

func TestNew_Defaults(t *testing.T) {
	c := New(&config.CaptureConfig{}, "screenshots")

	assert.Equal(t, 30*time.Second, c.navTimeout)
	assert.Equal(t, time.Duration(0), c.settleDelay)
}

func TestNew_FromConfig(t *testing.T) {
	c := New(&config.CaptureConfig{NavTimeoutSec: 10, SettleDelaySec: 2}, "shots")

	assert.Equal(t, 10*time.Second, c.navTimeout)
	assert.Equal(t, 2*time.Second, c.settleDelay)
	assert.Equal(t, "shots", c.screenshotsDir)
}

func TestCapturer_Filenames(t *testing.T) {
	c := New(&config.CaptureConfig{}, "screenshots")
	ts := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

	filename, fullPage := c.filenames("abc-123", "mobile", ts)
	assert.Equal(t, "abc-123_mobile_20250314_150926.png", filename)
	assert.Equal(t, "abc-123_mobile_full_20250314_150926.png", fullPage)
}
