package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "nubia"

// AppDataDir returns the application data directory for config files.
// Uses os.UserConfigDir() which returns:
//   - macOS: ~/Library/Application Support
//   - Linux: $XDG_CONFIG_HOME or ~/.config
//   - Windows: %AppData% (roaming)
func AppDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	path := filepath.Join(dir, appDirName)

	// Use restrictive permissions for application data
	_ = os.MkdirAll(path, 0700)

	return path
}

// AppLocalDataDir returns the OS-appropriate local data directory.
// This is where application-managed data (history, session transcripts)
// should live.
//   - macOS: ~/Library/Application Support/nubia
//   - Linux: $XDG_DATA_HOME/nubia or ~/.local/share/nubia
//   - Windows: %LOCALAPPDATA%\nubia
func AppLocalDataDir() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		base = filepath.Join(home, "Library", "Application Support")

	case "windows":
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, "AppData", "Local")
		}

	default:
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, ".local", "share")
		}
	}

	return filepath.Join(base, appDirName)
}

// ConfigFilePath returns the path to the shell configuration file.
func ConfigFilePath() string {
	return filepath.Join(AppDataDir(), "config.yaml")
}

// HistoryDBPath returns the path to the command history database.
func HistoryDBPath() string {
	return filepath.Join(AppLocalDataDir(), "history.db")
}

// SessionDir returns the directory where session transcripts are written.
func SessionDir() string {
	return filepath.Join(AppLocalDataDir(), "sessions")
}

// LogFilePath returns the default path of the shell's debug log.
func LogFilePath() string {
	return filepath.Join(AppLocalDataDir(), "nubia.log")
}
