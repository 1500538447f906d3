package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/edubridge/edubridge/internal/catalog"
	"github.com/edubridge/edubridge/internal/chat"
	"github.com/edubridge/edubridge/internal/router"
	"github.com/edubridge/edubridge/internal/screen"
	chatscreen "github.com/edubridge/edubridge/internal/screens/chat"
	"github.com/edubridge/edubridge/internal/screens/stageselect"
	"github.com/edubridge/edubridge/internal/session"
	"github.com/edubridge/edubridge/internal/store"
	"github.com/edubridge/edubridge/internal/tutor"
	"github.com/edubridge/edubridge/internal/ui/layout"
)

// Options carries the services the TUI runs on.
type Options struct {
	Catalog   *catalog.Catalog
	Favorites store.FavoriteRepo
	Tutor     *tutor.Service
	Logger    *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel rooted at the stage picker.
func newAppModel(opts Options) AppModel {
	deps := chatscreen.Deps{
		State:      session.NewState(),
		Transcript: chat.NewTranscript(),
		Catalog:    opts.Catalog,
		Favorites:  opts.Favorites,
		Tutor:      opts.Tutor,
		Logger:     opts.Logger,
	}
	return AppModel{
		router: router.New(stageselect.New(deps)),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	var status layout.Status
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
