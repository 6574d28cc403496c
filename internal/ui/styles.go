// Package ui provides the terminal styles used for run status output.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Status colors (Catppuccin Mocha inspired, same palette as the rest of the CLI).
var (
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"}
)

// Styles renders status text. A disabled Styles returns text unchanged,
// which is what non-terminal output (pipes, CI logs) gets.
type Styles struct {
	enabled bool

	success lipgloss.Style
	warning lipgloss.Style
	fatal   lipgloss.Style
	info    lipgloss.Style
	muted   lipgloss.Style
	title   lipgloss.Style
}

// NewStyles returns Styles; colors are applied only when enabled is true.
func NewStyles(enabled bool) Styles {
	return Styles{
		enabled: enabled,
		success: lipgloss.NewStyle().Foreground(ColorSuccess),
		warning: lipgloss.NewStyle().Foreground(ColorWarning),
		fatal:   lipgloss.NewStyle().Bold(true).Foreground(ColorError),
		info:    lipgloss.NewStyle().Foreground(ColorInfo),
		muted:   lipgloss.NewStyle().Foreground(ColorMuted),
		title:   lipgloss.NewStyle().Bold(true).Foreground(ColorInfo),
	}
}

// Enabled reports whether colors are applied.
func (s Styles) Enabled() bool {
	return s.enabled
}

// Success renders text for completed steps.
func (s Styles) Success(text string) string {
	return s.render(s.success, text)
}

// Warning renders text for warn-and-continue failures.
func (s Styles) Warning(text string) string {
	return s.render(s.warning, text)
}

// Fatal renders text for run-aborting failures.
func (s Styles) Fatal(text string) string {
	return s.render(s.fatal, text)
}

// Info renders text for step start messages.
func (s Styles) Info(text string) string {
	return s.render(s.info, text)
}

// Muted renders secondary detail.
func (s Styles) Muted(text string) string {
	return s.render(s.muted, text)
}

// Title renders section headings.
func (s Styles) Title(text string) string {
	return s.render(s.title, text)
}

func (s Styles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}
