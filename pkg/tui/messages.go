// Package tui предоставляет Bubble Tea message types.
package tui

import "github.com/ilkoid/customini/pkg/builder"

// scanDoneMsg - сканирование папки Data завершено.
type scanDoneMsg struct {
	report *builder.Report
	err    error
}

// generateDoneMsg - ini записан (или нет).
type generateDoneMsg struct {
	result *builder.Result
	err    error
}

// saveSuccessMsg - настройки сохранены.
type saveSuccessMsg struct {
	filename string
}

// saveErrorMsg - ошибка сохранения настроек.
type saveErrorMsg struct {
	err error
}
