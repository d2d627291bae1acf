// Package tui - Bubble Tea интерфейс генератора Fallout76Custom.ini.
//
// Показывает дерево секций с найденными архивами и лог операций.
// Сканирование и генерация выполняются в tea.Cmd (вне UI-цикла),
// каждый прогон использует свою копию реестра.
// Пути (папка Data, папка и имя ini, импорт) редактируются в форме (клавиша e):
// после применения компоненты пересобираются через app.Initialize.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wrap"

	"github.com/ilkoid/customini/pkg/app"
	"github.com/ilkoid/customini/pkg/builder"
	"github.com/ilkoid/customini/pkg/classifier"
	"github.com/ilkoid/customini/pkg/config"
)

type logLevel int

const (
	levelInfo logLevel = iota
	levelSuccess
	levelWarning
	levelError
)

type logEntry struct {
	level logLevel
	text  string
}

// Model - состояние TUI.
type Model struct {
	ctx     context.Context
	cfg     *config.AppConfig
	cfgPath string
	comps   *app.Components

	keys     KeyMap
	formKeys FormKeyMap
	help     help.Model
	viewport viewport.Model
	styles   styles

	form    pathForm
	editing bool
	status  pathStatus

	report *builder.Report
	logs   []logEntry
	busy   bool
	ready  bool
	width  int
}

// NewModel создаёт модель и забирает владение comps (закрываются в Close).
// cfgPath - куда сохранять настройки клавишей s.
func NewModel(ctx context.Context, comps *app.Components, cfgPath string) *Model {
	cfg := comps.Config
	return &Model{
		ctx:      ctx,
		cfg:      cfg,
		cfgPath:  cfgPath,
		comps:    comps,
		keys:     DefaultKeyMap(),
		formKeys: DefaultFormKeyMap(),
		help:     help.New(),
		viewport: viewport.New(0, 0),
		styles:   newStyles(GetColorScheme(cfg.UI.DarkMode)),
		status:   validatePaths(cfg.Paths),
	}
}

// Close освобождает текущие компоненты.
func (m *Model) Close() error {
	return m.comps.Close()
}

// Init запускает первое сканирование.
func (m *Model) Init() tea.Cmd {
	m.busy = true
	return m.scanCmd()
}

// Update обрабатывает сообщения.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-2, 1) // статус-бар + help
		m.help.Width = msg.Width
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case scanDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.logError(msg.err)
		} else {
			m.report = msg.report
			m.appendLog(levelInfo, fmt.Sprintf("Mods found: %d", msg.report.Stats.Eligible))
		}
		m.refresh()
		return m, nil

	case generateDoneMsg:
		m.busy = false
		m.handleGenerated(msg)
		m.refresh()
		return m, nil

	case saveSuccessMsg:
		m.appendLog(levelSuccess, "Settings saved to "+msg.filename)
		m.refresh()
		return m, nil

	case saveErrorMsg:
		m.appendLog(levelError, "Could not save settings: "+msg.err.Error())
		m.refresh()
		return m, nil
	}

	if m.editing {
		return m, m.form.update(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Scan):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.appendLog(levelInfo, "Scanning for mods in: "+m.cfg.Paths.DataFolder)
		m.refresh()
		return m, m.scanCmd()

	case key.Matches(msg, m.keys.Generate):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.appendLog(levelInfo, "Creating ini file at: "+m.comps.Generator.OutputPath())
		m.refresh()
		return m, m.generateCmd()

	case key.Matches(msg, m.keys.SaveConfig):
		return m, m.saveCmd()

	case key.Matches(msg, m.keys.EditPaths):
		if m.busy {
			return m, nil
		}
		m.form = newPathForm(m.cfg.Paths, m.width)
		m.editing = true
		return m, m.form.focusField(fieldDataFolder)

	case key.Matches(msg, m.keys.ToggleTheme):
		m.cfg.UI.DarkMode = !m.cfg.UI.DarkMode
		m.styles = newStyles(GetColorScheme(m.cfg.UI.DarkMode))
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.formKeys.Cancel):
		m.editing = false
		m.refresh()
		return m, nil

	case key.Matches(msg, m.formKeys.Next):
		return m, m.form.focusField(m.form.focus + 1)

	case key.Matches(msg, m.formKeys.Prev):
		return m, m.form.focusField(m.form.focus - 1)

	case key.Matches(msg, m.formKeys.Commit):
		return m, m.commitPaths()
	}

	return m, m.form.update(msg)
}

// commitPaths применяет пути из формы: проверяет папки, пересобирает
// компоненты и запускает сканирование новой папки Data.
// При ошибке форма остаётся открытой, конфигурация не меняется.
func (m *Model) commitPaths() tea.Cmd {
	next := *m.cfg
	next.Paths = m.form.apply(m.cfg.Paths)
	m.status = validatePaths(next.Paths)

	if next.Paths.IniFilename == "" {
		m.appendLog(levelError, "Error: INI filename is required")
		m.refresh()
		return nil
	}

	comps, err := app.Initialize(&next)
	if err != nil {
		m.appendLog(levelError, "Error: "+err.Error())
		m.refresh()
		return nil
	}

	if err := m.comps.Close(); err != nil {
		m.appendLog(levelWarning, "Warning: "+err.Error())
	}
	*m.cfg = next
	comps.Config = m.cfg
	m.comps = comps
	m.editing = false
	m.report = nil

	m.appendLog(levelSuccess, "Paths updated")
	if !m.status.DataFolder {
		m.appendLog(levelWarning, "Warning: Data folder '"+m.cfg.Paths.DataFolder+"' does not exist")
	}
	if !m.status.IniFolder {
		m.appendLog(levelWarning, "Warning: INI folder '"+m.cfg.Paths.IniFolder+"' cannot be created")
	}

	m.busy = true
	m.appendLog(levelInfo, "Scanning for mods in: "+m.cfg.Paths.DataFolder)
	m.refresh()
	return m.scanCmd()
}

func (m *Model) handleGenerated(msg generateDoneMsg) {
	if msg.err != nil {
		m.logError(msg.err)
		return
	}

	res := msg.result
	m.report = &res.Report
	for _, line := range classifier.Lines(res.Registry) {
		b, _ := res.Registry.Bucket(line.Key)
		m.appendLog(levelInfo, fmt.Sprintf("Added %d mods to %s", b.Count(), line.Key))
	}
	for _, w := range res.Warnings {
		m.appendLog(levelWarning, "Warning: "+w.Error())
	}
	m.appendLog(levelSuccess, "Successfully created "+res.Path)
}

func (m *Model) logError(err error) {
	text := "Error: " + err.Error()
	switch {
	case errors.Is(err, builder.ErrPermissionDenied):
		text += ". Try running as administrator."
	case errors.Is(err, builder.ErrDataFolderMissing):
		text = "Error: Data folder '" + m.cfg.Paths.DataFolder + "' does not exist!"
	}
	m.appendLog(levelError, text)
}

func (m *Model) appendLog(level logLevel, text string) {
	m.logs = append(m.logs, logEntry{level: level, text: text})
}

func (m *Model) scanCmd() tea.Cmd {
	gen, ctx := m.comps.Generator, m.ctx
	return func() tea.Msg {
		report, err := gen.Scan(ctx)
		return scanDoneMsg{report: report, err: err}
	}
}

func (m *Model) generateCmd() tea.Cmd {
	gen, ctx := m.comps.Generator, m.ctx
	return func() tea.Msg {
		res, err := gen.Generate(ctx)
		return generateDoneMsg{result: res, err: err}
	}
}

func (m *Model) saveCmd() tea.Cmd {
	cfg, path := *m.cfg, m.cfgPath
	return func() tea.Msg {
		if err := cfg.Save(path); err != nil {
			return saveErrorMsg{err: err}
		}
		return saveSuccessMsg{filename: path}
	}
}

// refresh перестраивает содержимое viewport.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.tree() + "\n" + m.styles.border.Render(strings.Repeat("─", max(m.width, 1))) + "\n" + m.logView())
	m.viewport.GotoBottom()
}

// tree - секции с найденными архивами (архивы по алфавиту).
func (m *Model) tree() string {
	if m.report == nil {
		return m.styles.log.Render("No scan yet")
	}

	var sb strings.Builder
	for _, b := range m.report.Registry.Buckets() {
		if b.Count() == 0 {
			continue
		}
		sb.WriteString(m.styles.bucket.Render(b.Name))
		sb.WriteString(" ")
		sb.WriteString(m.styles.count.Render(fmt.Sprintf("(%d)", b.Count())))
		sb.WriteString("\n")
		for _, name := range b.Matched() {
			sb.WriteString("  ")
			sb.WriteString(m.styles.member.Render(name))
			sb.WriteString("\n")
		}
	}
	if sb.Len() == 0 {
		return m.styles.log.Render("No mods found")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m *Model) logView() string {
	lines := make([]string, 0, len(m.logs))
	for _, entry := range m.logs {
		text := wrap.String(entry.text, max(m.width, 10))
		switch entry.level {
		case levelSuccess:
			text = m.styles.success.Render(text)
		case levelWarning:
			text = m.styles.warning.Render(text)
		case levelError:
			text = m.styles.error.Render(text)
		default:
			text = m.styles.log.Render(text)
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n")
}

// View рендерит экран.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.editing {
		return m.statusBar() + "\n" + m.form.view(m.styles, m.status) + "\n\n" + m.logView() + "\n" + m.help.View(m.formKeys)
	}
	return m.statusBar() + "\n" + m.viewport.View() + "\n" + m.help.View(m.keys)
}

func (m *Model) statusBar() string {
	state := "idle"
	if m.busy {
		state = "working..."
	}
	total := 0
	if m.report != nil {
		total = m.report.Registry.Total()
	}
	text := fmt.Sprintf("customini | Data: %s | Mods: %d | %s", m.cfg.Paths.DataFolder, total, state)
	return m.styles.status.Width(max(m.width, 1)).Render(text)
}
