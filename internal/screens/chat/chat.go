package chat

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/edubridge/edubridge/internal/catalog"
	"github.com/edubridge/edubridge/internal/chat"
	"github.com/edubridge/edubridge/internal/router"
	"github.com/edubridge/edubridge/internal/screen"
	"github.com/edubridge/edubridge/internal/session"
	"github.com/edubridge/edubridge/internal/store"
	"github.com/edubridge/edubridge/internal/tutor"
	"github.com/edubridge/edubridge/internal/ui/components"
	"github.com/edubridge/edubridge/internal/ui/layout"
)

const flashDuration = 1200 * time.Millisecond

// Deps bundles the shared services every screen needs. One instance is
// built at startup and handed down the screen stack.
type Deps struct {
	State      *session.State
	Transcript *chat.Transcript
	Catalog    *catalog.Catalog
	Favorites  store.FavoriteRepo
	Tutor      *tutor.Service
	Logger     *zap.Logger
}

// ChatScreen is the conversation view: transcript, composer, quiz
// prompts, and the attachment dialog.
type ChatScreen struct {
	deps     Deps
	composer components.Composer

	// initial, when non-empty, is dispatched on Init. The home screen
	// uses it to hand over the subject selection digit.
	initial string

	quiz       components.MultiChoice
	quizActive bool

	flash       string
	flashSignal session.Signal
	confetti    bool
	scrollUp    int
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)
var _ screen.StatusProvider = (*ChatScreen)(nil)

// New creates the chat screen. initial is dispatched through the
// interpreter on Init, so subject selection and the first lesson flow
// through the same path as typed input.
func New(deps Deps, initial string) *ChatScreen {
	return &ChatScreen{
		deps:     deps,
		composer: components.NewComposer("Message or USSD code…", 280),
		initial:  initial,
	}
}

func (c *ChatScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{c.composer.Init()}
	if c.initial != "" {
		cmds = append(cmds, c.dispatch(c.initial))
		c.initial = ""
	}
	return tea.Batch(cmds...)
}

func (c *ChatScreen) Title() string {
	if sub := c.deps.State.Subject; sub != nil {
		return sub.Icon + " " + sub.Title
	}
	return "EduBridge AI"
}

func (c *ChatScreen) Status() layout.Status {
	st := layout.Status{Signal: "2G"}
	if c.deps.State.Subject != nil {
		st.Lesson = c.deps.State.LessonIndex
		st.Lessons = catalog.TotalLessons
	}
	return st
}

func (c *ChatScreen) KeyHints() []layout.KeyHint {
	if c.deps.State.Attachment != session.AttachmentClosed {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Enter", Description: "Confirm"},
		}
	}
	if c.quizActive {
		return []layout.KeyHint{
			{Key: "↑/↓", Description: "Choose"},
			{Key: "Enter", Description: "Answer"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "←/→", Description: "Prev/Next lesson"},
		{Key: "Ctrl+S", Description: "Simplify"},
		{Key: "Ctrl+E", Description: "Share"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case scheduledMsg:
		return c.handleScheduled(msg)

	case replyMsg:
		return c.handleReply(msg)

	case summaryMsg:
		return c.handleSummary(msg)

	case illustrationMsg:
		if msg.Err == nil && len(msg.Data) > 0 {
			if path, err := saveGraphic(msg.Data); err != nil {
				c.deps.Logger.Warn("saving generated graphic failed", zap.Error(err))
			} else {
				c.deps.Logger.Debug("generated graphic saved", zap.String("path", path))
			}
		}
		res := session.FinishGenerate(c.deps.State, msg.Prompt, msg.Data, msg.Err)
		return c, c.apply(res)

	case confettiDoneMsg:
		c.confetti = false
		return c, nil

	case flashClearMsg:
		c.flash = ""
		return c, nil

	case tea.KeyMsg:
		return c.handleKey(msg)
	}

	var cmd tea.Cmd
	c.composer, cmd = c.composer.Update(msg)
	return c, cmd
}

func (c *ChatScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if c.deps.State.Attachment != session.AttachmentClosed {
		return c.handleAttachmentKey(msg)
	}

	switch key {
	case "esc":
		// Same as typing "menu": back to the subject grid.
		res := session.Interpret(c.deps.State, "menu", c.deps.Catalog)
		return c, c.apply(res)
	case "ctrl+s":
		return c, c.summarizeCmd()
	case "ctrl+e":
		return c, c.shareSnippet()
	case "left":
		return c, c.dispatch("previous")
	case "right":
		return c, c.dispatch("next")
	case "pgup":
		c.scrollUp++
		return c, nil
	case "pgdown":
		if c.scrollUp > 0 {
			c.scrollUp--
		}
		return c, nil
	}

	if c.quizActive {
		switch key {
		case "up", "down", "k", "j", "enter":
			var cmd tea.Cmd
			c.quiz, cmd = c.quiz.Update(msg)
			if c.quiz.Submitted {
				res := session.SubmitAnswer(c.deps.State, c.deps.Transcript, c.quiz.ChosenIndex)
				return c, tea.Batch(cmd, c.apply(res))
			}
			return c, cmd
		}
	}

	if key == "enter" {
		raw := c.composer.Value()
		c.composer.Reset()
		return c, c.dispatch(raw)
	}

	var cmd tea.Cmd
	c.composer, cmd = c.composer.Update(msg)
	return c, cmd
}

func (c *ChatScreen) handleAttachmentKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	state := c.deps.State

	if key == "esc" {
		if state.Attachment == session.AttachmentMenu {
			return c, c.apply(session.CloseAttachment(state))
		}
		return c, c.apply(session.AttachmentBack(state))
	}

	switch state.Attachment {
	case session.AttachmentMenu:
		if key >= "1" && key <= "5" {
			return c, c.apply(session.Interpret(state, key, c.deps.Catalog))
		}
		return c, nil

	case session.AttachmentNote:
		if key == "enter" {
			res := session.SaveNote(state, c.composer.Value())
			if res.Outcome != session.OutcomeError {
				c.composer.Reset()
			}
			return c, c.apply(res)
		}

	case session.AttachmentLink:
		if key == "enter" {
			res := session.ShareLink(state, c.composer.Value())
			if res.Outcome != session.OutcomeError {
				c.composer.Reset()
			}
			return c, c.apply(res)
		}

	case session.AttachmentAudio:
		if key == "enter" {
			data, err := readAttachment(c.composer.Value())
			if err != nil {
				return c, c.apply(session.Result{Outcome: session.OutcomeError, Signal: session.SignalError})
			}
			c.composer.Reset()
			seconds := len(data)/audioBytesPerSecond + 1
			return c, c.apply(session.AttachAudio(state, data, seconds))
		}

	case session.AttachmentImage:
		if key == "enter" {
			data, err := readAttachment(c.composer.Value())
			if err != nil {
				return c, c.apply(session.Result{Outcome: session.OutcomeError, Signal: session.SignalError})
			}
			c.composer.Reset()
			// Small files go out as-is; big ones count as High Quality.
			highQuality := len(data) >= highQualityThreshold
			return c, c.apply(session.AttachImage(state, data, highQuality))
		}

	case session.AttachmentGenerate:
		if key == "enter" {
			prompt := strings.TrimSpace(c.composer.Value())
			res := session.BeginGenerate(state, prompt)
			if res.Outcome == session.OutcomeError {
				return c, c.apply(res)
			}
			c.composer.Reset()
			return c, tea.Batch(c.apply(res), c.illustrateCmd(prompt))
		}
	}

	var cmd tea.Cmd
	c.composer, cmd = c.composer.Update(msg)
	return c, cmd
}

// dispatch runs one line of input through the interpreter and applies
// the result.
func (c *ChatScreen) dispatch(raw string) tea.Cmd {
	res := session.Interpret(c.deps.State, raw, c.deps.Catalog)
	return c.apply(res)
}

// apply folds a dispatch result into the transcript and turns its
// side effects into commands.
func (c *ChatScreen) apply(res session.Result) tea.Cmd {
	state := c.deps.State
	var cmds []tea.Cmd

	// replyCmd snapshots the history, so build it before the user echo
	// in res.Events lands or the forwarded text would be sent twice.
	if res.Forward != "" {
		state.Thinking = true
		c.composer.SetDisabled(true)
		cmds = append(cmds, c.replyCmd(res.Forward))
	}

	c.deps.Transcript.Append(res.Events...)
	c.scrollUp = 0

	for _, s := range res.Scheduled {
		cmds = append(cmds, scheduleCmd(s))
	}

	if res.Confetti > 0 {
		c.confetti = true
		cmds = append(cmds, tea.Tick(res.Confetti, func(time.Time) tea.Msg {
			return confettiDoneMsg{}
		}))
	}

	switch state.View {
	case session.ViewHome:
		c.quizActive = false
		cmds = append(cmds, func() tea.Msg { return router.PopScreenMsg{} })
	case session.ViewStageSelect:
		c.quizActive = false
		cmds = append(cmds, func() tea.Msg { return router.PopToRootMsg{} })
	}

	if res.Signal != session.SignalNone {
		c.flash = flashText(res)
		c.flashSignal = res.Signal
		cmds = append(cmds, tea.Tick(flashDuration, func(time.Time) tea.Msg {
			return flashClearMsg{}
		}))
	}

	return tea.Batch(cmds...)
}

func (c *ChatScreen) handleScheduled(msg scheduledMsg) (screen.Screen, tea.Cmd) {
	if msg.Epoch != c.deps.State.Epoch {
		return c, nil
	}
	c.deps.Transcript.Append(msg.Message)

	switch msg.Message.Kind {
	case chat.KindTest:
		if meta := msg.Message.Test; meta != nil {
			c.quiz = components.NewMultiChoice(meta.Question, meta.Options, meta.CorrectIndex)
			c.quizActive = true
		}
	case chat.KindBot:
		// Feedback bubble landed: reveal the quiz verdict.
		if c.quiz.Submitted && !c.quiz.Revealed {
			c.quiz.Reveal()
			c.quizActive = false
		}
	}
	return c, nil
}

func (c *ChatScreen) handleReply(msg replyMsg) (screen.Screen, tea.Cmd) {
	c.deps.State.Thinking = false
	c.composer.SetDisabled(false)
	if msg.Epoch != c.deps.State.Epoch {
		return c, nil
	}
	if msg.Err != nil {
		c.flash = "✗ " + msg.Err.Error()
		c.flashSignal = session.SignalError
		return c, tea.Tick(flashDuration, func(time.Time) tea.Msg {
			return flashClearMsg{}
		})
	}
	c.deps.Transcript.Append(chat.New(chat.KindBot, msg.Text))
	return c, nil
}

func (c *ChatScreen) replyCmd(text string) tea.Cmd {
	epoch := c.deps.State.Epoch
	history := c.deps.Transcript.History(20)
	subject := ""
	if c.deps.State.Subject != nil {
		subject = c.deps.State.Subject.Title
	}
	return func() tea.Msg {
		reply, err := c.deps.Tutor.Reply(context.Background(), text, history, subject)
		return replyMsg{Epoch: epoch, Text: reply, Err: err}
	}
}

// summarizeCmd asks the tutor to recap the current lesson's theory.
// The thinking flag blocks a second request until this one resolves.
func (c *ChatScreen) summarizeCmd() tea.Cmd {
	state := c.deps.State
	if state.Subject == nil || state.Thinking {
		return nil
	}
	lesson, ok := c.deps.Catalog.Lookup(state.Subject.ID, state.LessonIndex)
	if !ok {
		return nil
	}
	state.Thinking = true
	c.composer.SetDisabled(true)
	epoch := state.Epoch
	num := state.LessonIndex
	theory := lesson.Theory
	return func() tea.Msg {
		text, err := c.deps.Tutor.Summarize(context.Background(), theory)
		return summaryMsg{Epoch: epoch, Lesson: num, Text: text, Err: err}
	}
}

func (c *ChatScreen) handleSummary(msg summaryMsg) (screen.Screen, tea.Cmd) {
	c.deps.State.Thinking = false
	c.composer.SetDisabled(false)
	if msg.Epoch != c.deps.State.Epoch {
		return c, nil
	}
	if msg.Err != nil {
		c.flash = "✗ " + msg.Err.Error()
		c.flashSignal = session.SignalError
		return c, tea.Tick(flashDuration, func(time.Time) tea.Msg {
			return flashClearMsg{}
		})
	}
	c.deps.Transcript.Append(
		chat.New(chat.KindUser, fmt.Sprintf("Summarize Lesson %d", msg.Lesson)),
		chat.New(chat.KindBot, "📝 *Recap:* "+msg.Text),
	)
	return c, nil
}

func (c *ChatScreen) illustrateCmd(prompt string) tea.Cmd {
	subject := ""
	if c.deps.State.Subject != nil {
		subject = c.deps.State.Subject.Title
	}
	return func() tea.Msg {
		data, err := c.deps.Tutor.Illustrate(context.Background(), prompt, subject)
		return illustrationMsg{Prompt: prompt, Data: data, Err: err}
	}
}

// shareSnippet copies the latest bot bubble into the transcript as an
// SMS-formatted share, the low-bandwidth stand-in for a share sheet.
func (c *ChatScreen) shareSnippet() tea.Cmd {
	var content string
	for _, m := range c.deps.Transcript.Messages() {
		if m.Kind == chat.KindBot && !m.USSDStyle {
			content = m.Content
		}
	}
	if content == "" {
		return nil
	}
	if len(content) > smsSnippetLimit {
		content = content[:smsSnippetLimit] + "…"
	}
	c.deps.Transcript.Append(chat.New(chat.KindSystem,
		fmt.Sprintf("📤 Shared via SMS:\n%q\n— sent from EduBridge", content)))
	return nil
}

func scheduleCmd(s session.Scheduled) tea.Cmd {
	return tea.Tick(s.After, func(time.Time) tea.Msg {
		return scheduledMsg{Epoch: s.Epoch, Message: s.Message}
	})
}

func flashText(res session.Result) string {
	switch res.Signal {
	case session.SignalSuccess:
		return "✓"
	case session.SignalError:
		return "✗ Invalid input"
	case session.SignalNavigation:
		return "↩"
	default:
		return ""
	}
}

const (
	// audioBytesPerSecond approximates a 32 kbps voice note.
	audioBytesPerSecond = 4000

	// highQualityThreshold is the size class cutoff for images: anything
	// this large is labeled High Quality instead of Data-Saver.
	highQualityThreshold = 200 << 10

	smsSnippetLimit = 300
)

// readAttachment loads an attachment payload from a local file path.
func readAttachment(path string) ([]byte, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("attachment: empty path")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ReadFile(path)
}

// saveGraphic writes a generated image under the data directory and
// returns its path.
func saveGraphic(data []byte) (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	dir := filepath.Join(base, "edubridge", "graphics")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("graphic-%d.png", time.Now().UnixNano()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
