// Package style provides semantic terminal styling using lipgloss.
//
// This package is the only place where lipgloss is imported. All
// styling is semantic (Error, Hint, Prompt, ...) rather than visual.
// When disabled, all helpers return the input string unchanged with no
// ANSI codes.
package style

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	mu      sync.RWMutex
	enabled bool

	errorStyle   lipgloss.Style
	hintStyle    lipgloss.Style
	promptStyle  lipgloss.Style
	headerStyle  lipgloss.Style
	successStyle lipgloss.Style
	mutedStyle   lipgloss.Style
)

// Init sets the enabled state once from main before any output. The
// standard NO_COLOR convention wins over the enable parameter.
func Init(enable bool) {
	mu.Lock()
	defer mu.Unlock()

	if os.Getenv("NO_COLOR") != "" {
		enabled = false
		return
	}
	enabled = enable

	if enabled {
		// Force ANSI256 so basic and extended colors both work.
		lipgloss.SetColorProfile(termenv.ANSI256)

		errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
		hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
		headerStyle = lipgloss.NewStyle().Bold(true)
		successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	}
}

// Enabled reports whether styling is active.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

func render(s lipgloss.Style, text string) string {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled {
		return text
	}
	return s.Render(text)
}

// Error styles a diagnostic message.
func Error(text string) string { return render(errorStyle, text) }

// Hint styles a suggestion or caret marker.
func Hint(text string) string { return render(hintStyle, text) }

// Prompt styles the interactive prompt.
func Prompt(text string) string { return render(promptStyle, text) }

// Header styles a section heading.
func Header(text string) string { return render(headerStyle, text) }

// Success styles a confirmation message.
func Success(text string) string { return render(successStyle, text) }

// Muted styles secondary text.
func Muted(text string) string { return render(mutedStyle, text) }
