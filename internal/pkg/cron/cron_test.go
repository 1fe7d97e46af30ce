package cron

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFileWithAge(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	stamp := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, stamp, stamp))
	return path
}

func TestCleanup_RemovesExpiredArtifacts(t *testing.T) {
	shotsDir := t.TempDir()
	reportsDir := t.TempDir()

	expiredShot := writeFileWithAge(t, shotsDir, "a1_mobile_20250101_120000.png", 48*time.Hour)
	freshShot := writeFileWithAge(t, shotsDir, "a2_mobile_20250601_120000.png", time.Hour)
	expiredReport := writeFileWithAge(t, reportsDir, "report_a1_20250101_120000.html", 48*time.Hour)
	freshReport := writeFileWithAge(t, reportsDir, "report_a2_20250601_120000.html", time.Hour)

	svc := NewService(shotsDir, reportsDir, 24)
	svc.RunNow()

	assert.NoFileExists(t, expiredShot)
	assert.FileExists(t, freshShot)
	assert.NoFileExists(t, expiredReport)
	assert.FileExists(t, freshReport)
}

func TestCleanup_IgnoresOtherSuffixes(t *testing.T) {
	shotsDir := t.TempDir()

	keep := writeFileWithAge(t, shotsDir, "notes.txt", 48*time.Hour)

	svc := NewService(shotsDir, t.TempDir(), 24)
	svc.RunNow()

	assert.FileExists(t, keep)
}

func TestCleanup_MissingDirIsNoop(t *testing.T) {
	svc := NewService(filepath.Join(t.TempDir(), "missing"), "", 24)

	assert.NotPanics(t, func() { svc.RunNow() })
}

func TestCleanup_DefaultExpiry(t *testing.T) {
	shotsDir := t.TempDir()

	// expireHours 非法时回落到 24 小时
	fresh := writeFileWithAge(t, shotsDir, "a1_mobile_20250601_120000.png", 2*time.Hour)
	expired := writeFileWithAge(t, shotsDir, "a0_mobile_20250101_120000.png", 30*time.Hour)

	svc := NewService(shotsDir, "", 0)
	svc.RunNow()

	assert.FileExists(t, fresh)
	assert.NoFileExists(t, expired)
}

func TestStartStop(t *testing.T) {
	svc := NewService(t.TempDir(), t.TempDir(), 24)
	svc.Start()
	svc.Stop()
}
