package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/edubridge/edubridge/internal/catalog"
	"github.com/edubridge/edubridge/internal/router"
	"github.com/edubridge/edubridge/internal/screen"
	chatscreen "github.com/edubridge/edubridge/internal/screens/chat"
	"github.com/edubridge/edubridge/internal/session"
	"github.com/edubridge/edubridge/internal/ui/components"
	"github.com/edubridge/edubridge/internal/ui/layout"
	"github.com/edubridge/edubridge/internal/ui/theme"
)

// HomeScreen is the subject grid for the selected school stage.
type HomeScreen struct {
	deps     chatscreen.Deps
	subjects []catalog.Subject
	menu     components.Menu
	starred  map[string]bool
	flash    string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen for the session's active stage. Subjects
// keep catalog order so the on-screen numbers match USSD selection.
func New(deps chatscreen.Deps) *HomeScreen {
	h := &HomeScreen{
		deps:    deps,
		starred: make(map[string]bool),
	}
	if deps.State.Stage != nil {
		h.subjects = deps.Catalog.SubjectsForStage(deps.State.Stage.ID)
	}
	if deps.Favorites != nil {
		if ids, err := deps.Favorites.List(context.Background()); err == nil {
			for _, id := range ids {
				h.starred[id] = true
			}
		} else if deps.Logger != nil {
			deps.Logger.Warn("loading favorites failed", zap.Error(err))
		}
	}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	items := make([]components.MenuItem, 0, len(h.subjects))
	for i, sub := range h.subjects {
		num := i + 1
		badge := ""
		if h.starred[sub.ID] {
			badge = "★"
		}
		items = append(items, components.MenuItem{
			Label: fmt.Sprintf("%d. %s %s", num, sub.Icon, sub.Title),
			Badge: badge,
			Action: func() tea.Cmd {
				return h.selectSubject(num)
			},
		})
	}
	return items
}

// selectSubject hands the selection digit to a fresh chat screen so the
// lesson delivery flows through the interpreter.
func (h *HomeScreen) selectSubject(num int) tea.Cmd {
	deps := h.deps
	return func() tea.Msg {
		return router.PushScreenMsg{
			Screen: chatscreen.New(deps, fmt.Sprintf("%d", num)),
		}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	// Coming back from chat: refresh the selection state.
	h.deps.State.View = session.ViewHome
	return nil
}

func (h *HomeScreen) Title() string {
	if st := h.deps.State.Stage; st != nil {
		return st.Icon + " " + st.Title
	}
	return "Subjects"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "1-9", Description: "Pick subject"},
		{Key: "F", Description: "Favorite"},
		{Key: "0/Esc", Description: "Change stage"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch key := kmsg.String(); key {
	case "0", "esc":
		res := session.Interpret(h.deps.State, "0", h.deps.Catalog)
		if res.Outcome == session.OutcomeNavigation {
			return h, func() tea.Msg { return router.PopToRootMsg{} }
		}
		return h, nil
	case "f":
		return h, h.toggleFavorite()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		num := int(key[0] - '0')
		if num >= 1 && num <= len(h.subjects) {
			return h, h.selectSubject(num)
		}
		h.flash = "Invalid option. Reply with a listed number."
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) toggleFavorite() tea.Cmd {
	if h.deps.Favorites == nil {
		return nil
	}
	sel := h.menu.Selected
	if sel < 0 || sel >= len(h.subjects) {
		return nil
	}
	sub := h.subjects[sel]
	on, err := h.deps.Favorites.Toggle(context.Background(), sub.ID)
	if err != nil {
		if h.deps.Logger != nil {
			h.deps.Logger.Warn("toggling favorite failed", zap.Error(err))
		}
		h.flash = "Could not save favorite."
		return nil
	}
	h.starred[sub.ID] = on
	selected := h.menu.Selected
	h.menu = components.NewMenu(h.menuItems())
	h.menu.Selected = selected
	return nil
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Choose a Subject"))
	b.WriteString("\n\n")
	b.WriteString(h.menu.View())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("  Dial *123# in chat for the USSD menu at any time."))
	if h.flash != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  " + h.flash))
	}

	return b.String()
}
