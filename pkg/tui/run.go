package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ilkoid/customini/pkg/app"
	"github.com/ilkoid/customini/pkg/utils"
)

// Run запускает TUI (блокирующий вызов).
//
// Принимает и распространяет context.Context: отмена прерывает программу.
// Run владеет comps: при выходе закрываются компоненты, актуальные
// на момент выхода (после редактирования путей это уже другие компоненты).
func Run(ctx context.Context, comps *app.Components, cfgPath string) error {
	if comps == nil {
		return fmt.Errorf("tui: components are required")
	}
	if comps.Config == nil || comps.Generator == nil {
		comps.Close()
		return fmt.Errorf("tui: config and generator are required")
	}

	m := NewModel(ctx, comps, cfgPath)
	defer func() {
		if err := m.Close(); err != nil {
			utils.Warn("Close components failed", "error", err)
		}
	}()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
