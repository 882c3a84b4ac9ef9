package mvc

import tea "github.com/charmbracelet/bubbletea"

type LoadingPage struct{}

func InitialLoadingModel() LoadingPage {
	return LoadingPage{}
}

func (m LoadingPage) Init() tea.Cmd {
	return nil
}

func (m LoadingPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

func (m LoadingPage) View() string {
	return "\n\tCargando...\n"
}
