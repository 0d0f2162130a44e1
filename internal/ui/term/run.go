package term

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run drives m on the alternate screen until the user quits.
func Run(m Model) error {
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
