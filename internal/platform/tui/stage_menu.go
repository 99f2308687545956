package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/echorift/internal/config"
	"github.com/vovakirdan/echorift/internal/core"
)

// StageSelectModel lets users choose the Rift stage a run starts in.
type StageSelectModel struct {
	title     string
	stages    []config.StageConfig
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	chosen    bool
	quitting  bool
	back      bool
}

// NewStageSelectModel creates a stage picker positioned on the configured start stage.
func NewStageSelectModel(title string, stages config.RiftStages, width, height int) StageSelectModel {
	cursor := 0
	if stages.Start >= 0 && stages.Start < len(stages.List) {
		cursor = stages.Start
	}
	return StageSelectModel{
		title:     title,
		stages:    stages.List,
		cursor:    cursor,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m StageSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m StageSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m StageSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.stages)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.stages) > 0 {
			m.chosen = true
			return m, tea.Quit
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the stage list, each entry tinted with its backdrop color.
func (m StageSelectModel) View() string {
	if m.quitting || m.back || m.chosen {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.title, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Enter the rift at:", m.width))
	b.WriteString("\n\n")

	for i, st := range m.stages {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%d. %-10s x%.2f", cursor, i+1, st.Name, st.SpeedMultiplier)
		style := lipgloss.NewStyle().Foreground(palette[core.ColorHUD])
		if bg, ok := parseBackground(st.Color); ok {
			style = style.Background(lipgloss.Color(bg.Hex()))
		}
		if i == m.cursor {
			style = style.Bold(true)
		}
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen stage index, or -1 if none was chosen.
func (m StageSelectModel) Selected() int {
	if !m.chosen {
		return -1
	}
	return m.cursor
}

// IsQuitting returns true if user wants to quit.
func (m StageSelectModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m StageSelectModel) WantsBack() bool {
	return m.back
}

// RunStageSelector asks for a start stage. It returns -1 when the user backs out or quits.
func RunStageSelector(title string, stages config.RiftStages, cfg core.RuntimeConfig) (int, error) {
	p := tea.NewProgram(NewStageSelectModel(title, stages, cfg.ScreenW, cfg.ScreenH), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return -1, err
	}

	m, ok := finalModel.(StageSelectModel)
	if !ok {
		return -1, nil
	}
	return m.Selected(), nil
}
