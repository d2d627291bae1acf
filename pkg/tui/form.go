package tui

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ilkoid/customini/pkg/config"
)

// pathField - поле формы путей.
type pathField int

const (
	fieldDataFolder pathField = iota
	fieldIniFolder
	fieldIniFilename
	fieldImportIni
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldDataFolder:  "Data Folder",
	fieldIniFolder:   "INI Folder",
	fieldIniFilename: "INI Filename",
	fieldImportIni:   "Import INI (optional)",
}

// pathStatus - результат проверки путей.
type pathStatus struct {
	DataFolder bool // Папка Data существует
	IniFolder  bool // Папка ini существует или может быть создана
	checked    bool
}

// validatePaths проверяет пути на диске.
//
// Папку ini можно создать при записи, поэтому достаточно существующего родителя.
func validatePaths(p config.PathsConfig) pathStatus {
	st := pathStatus{checked: true}

	if info, err := os.Stat(p.DataFolder); err == nil && info.IsDir() {
		st.DataFolder = true
	}

	if p.IniFolder != "" {
		if _, err := os.Stat(p.IniFolder); err == nil {
			st.IniFolder = true
		} else if _, err := os.Stat(filepath.Dir(p.IniFolder)); err == nil {
			st.IniFolder = true
		}
	}

	return st
}

// pathForm - четыре textinput для путей из секции paths.
type pathForm struct {
	inputs [fieldCount]textinput.Model
	focus  pathField
}

func newPathForm(p config.PathsConfig, width int) pathForm {
	values := [fieldCount]string{
		fieldDataFolder:  p.DataFolder,
		fieldIniFolder:   p.IniFolder,
		fieldIniFilename: p.IniFilename,
		fieldImportIni:   p.ImportIni,
	}

	var f pathForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.SetValue(values[i])
		if width > 4 {
			ti.Width = width - 4
		}
		f.inputs[i] = ti
	}
	f.inputs[fieldImportIni].Placeholder = "path or s3://key"
	return f
}

// focusField переводит курсор на поле i (по кругу).
func (f *pathForm) focusField(i pathField) tea.Cmd {
	i = (i%fieldCount + fieldCount) % fieldCount
	f.inputs[f.focus].Blur()
	f.focus = i
	return f.inputs[i].Focus()
}

// update передаёт сообщение полю в фокусе.
func (f *pathForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// apply возвращает base с путями из формы.
func (f pathForm) apply(base config.PathsConfig) config.PathsConfig {
	base.DataFolder = strings.TrimSpace(f.inputs[fieldDataFolder].Value())
	base.IniFolder = strings.TrimSpace(f.inputs[fieldIniFolder].Value())
	base.IniFilename = strings.TrimSpace(f.inputs[fieldIniFilename].Value())
	base.ImportIni = strings.TrimSpace(f.inputs[fieldImportIni].Value())
	return base
}

func (f pathForm) view(st styles, status pathStatus) string {
	var sb strings.Builder
	for i := range f.inputs {
		label := fieldLabels[i]
		if pathField(i) == f.focus {
			label = st.bucket.Render(label)
		}
		sb.WriteString(label)
		sb.WriteString(statusMark(st, status, pathField(i)))
		sb.WriteString("\n")
		sb.WriteString(f.inputs[i].View())
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// statusMark - ✓/✗ для проверяемых папок (только после проверки).
func statusMark(st styles, status pathStatus, field pathField) string {
	if !status.checked {
		return ""
	}
	var ok bool
	switch field {
	case fieldDataFolder:
		ok = status.DataFolder
	case fieldIniFolder:
		ok = status.IniFolder
	default:
		return ""
	}
	if ok {
		return " " + st.success.Render("✓")
	}
	return " " + st.error.Render("✗")
}
