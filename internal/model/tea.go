package model

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// --- Bubble Tea TUI ---

// UIModel shows a rendered conversion preview and records the user's answer.
type UIModel struct {
	title    string
	viewport viewport.Model
	Quit     bool
	Apply    bool
	Skip     bool
}

// NewModel renders markdown content into a scrollable viewport of the given
// width, with title shown above it.
func NewModel(title, content string, width, height int) (*UIModel, error) {
	vp := viewport.New(width, height)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		PaddingRight(2)

	// Leave room for the viewport frame and glamour's left gutter.
	const glamourGutter = 2
	glamourRenderWidth := width - vp.Style.GetHorizontalFrameSize() - glamourGutter

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(glamourRenderWidth),
	)
	if err != nil {
		return nil, err
	}

	str, err := renderer.Render(content)
	if err != nil {
		return nil, err
	}

	vp.SetContent(str)

	return &UIModel{
		title:    title,
		viewport: vp,
	}, nil
}

func (m UIModel) Init() tea.Cmd {
	return nil
}

func (m UIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.MouseMsg:
		// Pass mouse events to the viewport component
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "x", "ctrl+c":
			m.Quit = true
			return m, tea.Quit
		case "n", "esc":
			m.Skip = true
			return m, tea.Quit
		case "s", "a", "enter":
			m.Apply = true
			return m, tea.Quit
		default:
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m UIModel) View() string {
	header := ""
	if m.title != "" {
		header = headerStyle.Render(m.title) + "\n"
	}
	return header + m.viewport.View() + helpView.Render("\n  ↑/↓: Navigate • q/x: Quit • esc/n: Skip • s/a/enter: Write .srt\n")
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#93C5FD")).Background(lipgloss.Color("#1F2937")).Bold(true).Padding(0, 1)
	helpView    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
)
