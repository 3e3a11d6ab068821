package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppDataDir_ReturnsNonEmpty(t *testing.T) {
	dir := AppDataDir()
	require.NotEmpty(t, dir)
	require.NotEqual(t, ".", dir)
}

func TestAppDataDir_ContainsAppName(t *testing.T) {
	dir := AppDataDir()
	dirLower := strings.ToLower(dir)
	require.True(t, strings.Contains(dirLower, "nubia"),
		"AppDataDir should contain 'nubia' (case-insensitive): %s", dir)
}

func TestAppLocalDataDir_ReturnsNonEmpty(t *testing.T) {
	dir := AppLocalDataDir()
	require.NotEmpty(t, dir)
	require.NotEqual(t, ".", dir)
}

func TestAppLocalDataDir_ContainsAppName(t *testing.T) {
	dir := AppLocalDataDir()
	require.True(t, strings.HasSuffix(dir, "nubia"),
		"AppLocalDataDir should end with 'nubia': %s", dir)
}

func TestAppLocalDataDir_Platform(t *testing.T) {
	dir := AppLocalDataDir()

	switch runtime.GOOS {
	case "darwin":
		require.Contains(t, dir, "Library")
		require.Contains(t, dir, "Application Support")
	case "linux":
		// Could be XDG_DATA_HOME or .local/share
		require.True(t, strings.Contains(dir, ".local/share") ||
			os.Getenv("XDG_DATA_HOME") != "",
			"Linux path should use XDG_DATA_HOME or .local/share: %s", dir)
	case "windows":
		require.True(t, strings.Contains(dir, "AppData") ||
			strings.Contains(dir, "Local"),
			"Windows path should contain AppData: %s", dir)
	}
}

func TestDerivedPaths(t *testing.T) {
	require.Equal(t, filepath.Join(AppDataDir(), "config.yaml"), ConfigFilePath())
	require.Equal(t, filepath.Join(AppLocalDataDir(), "history.db"), HistoryDBPath())
	require.Equal(t, filepath.Join(AppLocalDataDir(), "sessions"), SessionDir())
	require.Equal(t, filepath.Join(AppLocalDataDir(), "nubia.log"), LogFilePath())
}
