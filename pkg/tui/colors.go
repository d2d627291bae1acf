// Package tui предоставляет color schemes и стили для TUI.
package tui

import "github.com/charmbracelet/lipgloss"

// ColorScheme определяет цвета для различных элементов TUI.
type ColorScheme struct {
	// Status Bar
	StatusBackground lipgloss.Color
	StatusForeground lipgloss.Color

	// Дерево секций
	Bucket lipgloss.Color // Имя секции
	Member lipgloss.Color // Архив
	Count  lipgloss.Color // Количество архивов

	// Лог
	LogMessage     lipgloss.Color
	WarningMessage lipgloss.Color
	ErrorMessage   lipgloss.Color
	SuccessMessage lipgloss.Color

	Border lipgloss.Color
}

// ColorSchemes предоставляет предустановленные цветовые схемы.
// "dark" и "light" переключаются клавишей t и сохраняются в ui.dark_mode.
var ColorSchemes = map[string]ColorScheme{
	"dark": {
		StatusBackground: lipgloss.Color("0"),
		StatusForeground: lipgloss.Color("15"),
		Bucket:           lipgloss.Color("14"),
		Member:           lipgloss.Color("7"),
		Count:            lipgloss.Color("11"),
		LogMessage:       lipgloss.Color("8"),
		WarningMessage:   lipgloss.Color("11"),
		ErrorMessage:     lipgloss.Color("9"),
		SuccessMessage:   lipgloss.Color("10"),
		Border:           lipgloss.Color("4"),
	},
	"light": {
		StatusBackground: lipgloss.Color("255"),
		StatusForeground: lipgloss.Color("0"),
		Bucket:           lipgloss.Color("31"),
		Member:           lipgloss.Color("0"),
		Count:            lipgloss.Color("130"),
		LogMessage:       lipgloss.Color("8"),
		WarningMessage:   lipgloss.Color("130"),
		ErrorMessage:     lipgloss.Color("1"),
		SuccessMessage:   lipgloss.Color("28"),
		Border:           lipgloss.Color("8"),
	},
}

// GetColorScheme возвращает схему для режима.
func GetColorScheme(dark bool) ColorScheme {
	if dark {
		return ColorSchemes["dark"]
	}
	return ColorSchemes["light"]
}

// styles - lipgloss стили, собранные из ColorScheme.
type styles struct {
	status  lipgloss.Style
	bucket  lipgloss.Style
	member  lipgloss.Style
	count   lipgloss.Style
	log     lipgloss.Style
	warning lipgloss.Style
	error   lipgloss.Style
	success lipgloss.Style
	border  lipgloss.Style
}

func newStyles(c ColorScheme) styles {
	return styles{
		status: lipgloss.NewStyle().
			Background(c.StatusBackground).
			Foreground(c.StatusForeground).
			Bold(true).
			Padding(0, 1),
		bucket:  lipgloss.NewStyle().Foreground(c.Bucket).Bold(true),
		member:  lipgloss.NewStyle().Foreground(c.Member),
		count:   lipgloss.NewStyle().Foreground(c.Count),
		log:     lipgloss.NewStyle().Foreground(c.LogMessage),
		warning: lipgloss.NewStyle().Foreground(c.WarningMessage),
		error:   lipgloss.NewStyle().Foreground(c.ErrorMessage).Bold(true),
		success: lipgloss.NewStyle().Foreground(c.SuccessMessage),
		border:  lipgloss.NewStyle().Foreground(c.Border),
	}
}
