package stageselect

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/edubridge/edubridge/internal/catalog"
	"github.com/edubridge/edubridge/internal/router"
	"github.com/edubridge/edubridge/internal/screen"
	chatscreen "github.com/edubridge/edubridge/internal/screens/chat"
	"github.com/edubridge/edubridge/internal/screens/home"
	"github.com/edubridge/edubridge/internal/session"
	"github.com/edubridge/edubridge/internal/ui/components"
	"github.com/edubridge/edubridge/internal/ui/layout"
	"github.com/edubridge/edubridge/internal/ui/theme"
)

// StageScreen is the school-stage picker shown at startup. It is the
// root of the screen stack; every reset lands back here.
type StageScreen struct {
	deps   chatscreen.Deps
	stages []catalog.Stage
	menu   components.Menu
}

var _ screen.Screen = (*StageScreen)(nil)
var _ screen.KeyHintProvider = (*StageScreen)(nil)

// New creates the stage picker.
func New(deps chatscreen.Deps) *StageScreen {
	s := &StageScreen{
		deps:   deps,
		stages: deps.Catalog.Stages(),
	}

	items := make([]components.MenuItem, 0, len(s.stages))
	for i, st := range s.stages {
		num := i + 1
		items = append(items, components.MenuItem{
			Label: fmt.Sprintf("%d. %s %s", num, st.Icon, st.Title),
			Action: func() tea.Cmd {
				return s.selectStage(num)
			},
		})
	}
	s.menu = components.NewMenu(items)
	return s
}

// selectStage runs the digit through the interpreter and opens the
// subject grid.
func (s *StageScreen) selectStage(num int) tea.Cmd {
	session.Interpret(s.deps.State, fmt.Sprintf("%d", num), s.deps.Catalog)
	if s.deps.State.View != session.ViewHome {
		return nil
	}
	deps := s.deps
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: home.New(deps)}
	}
}

func (s *StageScreen) Init() tea.Cmd {
	s.deps.State.View = session.ViewStageSelect
	return nil
}

func (s *StageScreen) Title() string {
	return "Welcome"
}

func (s *StageScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "1-5", Description: "Pick stage"},
		{Key: "↑/↓", Description: "Move"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *StageScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	key := kmsg.String()
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		num := int(key[0] - '0')
		if num <= len(s.stages) {
			return s, s.selectStage(num)
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *StageScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("📚 Welcome to EduBridge"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Education for every network. Pick your school stage."))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())

	return b.String()
}
