package chat

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/edubridge/edubridge/internal/catalog"
	"github.com/edubridge/edubridge/internal/chat"
	"github.com/edubridge/edubridge/internal/llm"
	"github.com/edubridge/edubridge/internal/session"
	"github.com/edubridge/edubridge/internal/tutor"
)

func testDeps(t *testing.T) Deps {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	state := session.NewState()
	stages := cat.Stages()
	state.Stage = &stages[0]
	state.View = session.ViewHome

	mock := llm.NewMockProvider(llm.MockResponse{Text: "Red is a warm color."})
	return Deps{
		State:      state,
		Transcript: chat.NewTranscript(),
		Catalog:    cat,
		Tutor:      tutor.New(mock, nil, zap.NewNop()),
		Logger:     zap.NewNop(),
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestInit_DeliversFirstLesson(t *testing.T) {
	deps := testDeps(t)
	scr := New(deps, "1")
	scr.Init()

	if deps.State.View != session.ViewChat {
		t.Fatalf("expected chat view, got %v", deps.State.View)
	}
	if deps.State.Subject == nil || deps.State.Subject.ID != "ps-colors" {
		t.Fatalf("expected ps-colors selected, got %+v", deps.State.Subject)
	}

	msgs := deps.Transcript.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 transcript message, got %d", len(msgs))
	}
	if msgs[0].Lesson == nil || msgs[0].Lesson.LessonNum != 1 {
		t.Errorf("expected lesson 1 metadata, got %+v", msgs[0].Lesson)
	}
}

func TestScheduled_StaleEpochDropped(t *testing.T) {
	deps := testDeps(t)
	scr := New(deps, "1")
	scr.Init()

	before := deps.Transcript.Len()
	scr.Update(scheduledMsg{
		Epoch:   deps.State.Epoch - 1,
		Message: chat.New(chat.KindBot, "stale"),
	})
	if deps.Transcript.Len() != before {
		t.Error("expected stale scheduled emission to be dropped")
	}
}

func TestScheduled_QuizActivates(t *testing.T) {
	deps := testDeps(t)
	scr := New(deps, "1")
	scr.Init()

	quiz := chat.NewTest("Which of these is red?", chat.TestMeta{
		Question:     "Which of these is red?",
		Options:      []string{"Banana", "Apple", "Leaf", "Sky"},
		CorrectIndex: 1,
	})
	scr.Update(scheduledMsg{Epoch: deps.State.Epoch, Message: quiz})

	if !scr.quizActive {
		t.Fatal("expected quiz to activate on test message")
	}

	// Answer the first option.
	scr.Update(specialKey(tea.KeyEnter))
	if !scr.quiz.Submitted {
		t.Fatal("expected quiz submitted after enter")
	}

	last, ok := deps.Transcript.Last()
	if !ok || last.Kind != chat.KindUser || last.Content != "Banana" {
		t.Errorf("expected chosen option echoed as user message, got %+v", last)
	}
}

func TestQuizReveal_OnFeedback(t *testing.T) {
	deps := testDeps(t)
	scr := New(deps, "1")
	scr.Init()

	quiz := chat.NewTest("Which of these is red?", chat.TestMeta{
		Question:     "Which of these is red?",
		Options:      []string{"Banana", "Apple"},
		CorrectIndex: 1,
	})
	scr.Update(scheduledMsg{Epoch: deps.State.Epoch, Message: quiz})
	scr.Update(specialKey(tea.KeyEnter))

	scr.Update(scheduledMsg{Epoch: deps.State.Epoch, Message: chat.New(chat.KindBot, "❌ Not quite.")})

	if !scr.quiz.Revealed {
		t.Error("expected quiz revealed once feedback landed")
	}
	if scr.quizActive {
		t.Error("expected quiz deactivated after reveal")
	}
}

func TestReply_AppendsAndClearsThinking(t *testing.T) {
	deps := testDeps(t)
	scr := New(deps, "1")
	scr.Init()

	cmd := scr.dispatch("why is the sky blue?")
	if cmd == nil {
		t.Fatal("expected a command for the forwarded question")
	}
	if !deps.State.Thinking {
		t.Fatal("expected thinking set while reply is in flight")
	}

	scr.Update(replyMsg{Epoch: deps.State.Epoch, Text: "Light scatters."})

	if deps.State.Thinking {
		t.Error("expected thinking cleared")
	}
	last, _ := deps.Transcript.Last()
	if last.Kind != chat.KindBot || last.Content != "Light scatters." {
		t.Errorf("expected bot reply appended, got %+v", last)
	}
}

func TestReply_StaleEpochDropped(t *testing.T) {
	deps := testDeps(t)
	scr := New(deps, "1")
	scr.Init()

	scr.dispatch("first question")
	before := deps.Transcript.Len()

	// Navigation bumps the epoch before the reply lands.
	scr.dispatch("menu")
	scr.Update(replyMsg{Epoch: deps.State.Epoch - 1, Text: "too late"})

	if deps.Transcript.Len() != before {
		t.Error("expected stale reply to be dropped")
	}
	if deps.State.Thinking {
		t.Error("expected thinking cleared even for stale reply")
	}
}

func TestDispatch_MenuReturnsHome(t *testing.T) {
	deps := testDeps(t)
	scr := New(deps, "1")
	scr.Init()

	scr.dispatch("menu")

	if deps.State.View != session.ViewHome {
		t.Errorf("expected home view after menu, got %v", deps.State.View)
	}
}

func TestAttachmentMenu_DigitPicksMode(t *testing.T) {
	deps := testDeps(t)
	scr := New(deps, "1")
	scr.Init()

	scr.dispatch("*5#")
	if deps.State.Attachment != session.AttachmentMenu {
		t.Fatalf("expected attachment menu open, got %v", deps.State.Attachment)
	}

	scr.Update(keyPress('1'))
	if deps.State.Attachment != session.AttachmentNote {
		t.Errorf("expected note mode, got %v", deps.State.Attachment)
	}

	scr.Update(specialKey(tea.KeyEscape))
	if deps.State.Attachment != session.AttachmentMenu {
		t.Errorf("expected escape to return to picker, got %v", deps.State.Attachment)
	}
}

func TestReply_QuestionSentOnce(t *testing.T) {
	deps := testDeps(t)
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Red is a warm color."})
	deps.Tutor = tutor.New(mock, nil, zap.NewNop())
	scr := New(deps, "1")
	scr.Init()

	cmd := scr.dispatch("what is red?")
	if cmd == nil {
		t.Fatal("expected a command for the forwarded question")
	}
	runCmd(cmd)

	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 provider call, got %d", len(mock.Calls))
	}
	var n int
	for _, m := range mock.Calls[0].Messages {
		if m.Role == llm.RoleUser && m.Content == "what is red?" {
			n++
		}
	}
	if n != 1 {
		t.Errorf("expected the question once in the request, got %d", n)
	}
}

func TestSummarize_SetsThinkingAndBlocksRepeat(t *testing.T) {
	deps := testDeps(t)
	scr := New(deps, "1")
	scr.Init()

	cmd := scr.summarizeCmd()
	if cmd == nil {
		t.Fatal("expected a summarize command")
	}
	if !deps.State.Thinking {
		t.Fatal("expected thinking set while the recap is in flight")
	}
	if !scr.composer.Disabled() {
		t.Error("expected composer disabled while the recap is in flight")
	}
	if again := scr.summarizeCmd(); again != nil {
		t.Error("expected a repeat summarize to be refused")
	}

	scr.Update(summaryMsg{Epoch: deps.State.Epoch, Lesson: 1, Text: "Red is everywhere."})

	if deps.State.Thinking {
		t.Error("expected thinking cleared after the recap landed")
	}
	if scr.composer.Disabled() {
		t.Error("expected composer re-enabled after the recap landed")
	}

	msgs := deps.Transcript.Messages()
	if len(msgs) < 2 {
		t.Fatalf("expected echo and recap appended, got %d messages", len(msgs))
	}
	echo, recap := msgs[len(msgs)-2], msgs[len(msgs)-1]
	if echo.Kind != chat.KindUser || echo.Content != "Summarize Lesson 1" {
		t.Errorf("expected user echo, got %+v", echo)
	}
	if recap.Kind != chat.KindBot || recap.Content != "📝 *Recap:* Red is everywhere." {
		t.Errorf("expected recap bubble, got %+v", recap)
	}
}

func TestSummarize_SendsTheoryOnly(t *testing.T) {
	deps := testDeps(t)
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Red is everywhere."})
	deps.Tutor = tutor.New(mock, nil, zap.NewNop())
	scr := New(deps, "1")
	scr.Init()

	lesson, ok := deps.Catalog.Lookup("ps-colors", 1)
	if !ok {
		t.Fatal("expected lesson 1 of ps-colors in the catalog")
	}

	runCmd(scr.summarizeCmd())

	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 provider call, got %d", len(mock.Calls))
	}
	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, lesson.Theory) {
		t.Errorf("expected the lesson theory in the request, got %q", prompt)
	}
	if strings.Contains(prompt, lesson.Title) || strings.Contains(prompt, "Question:") {
		t.Errorf("expected the theory alone, got %q", prompt)
	}
}

func TestSummarize_StaleEpochDropped(t *testing.T) {
	deps := testDeps(t)
	scr := New(deps, "1")
	scr.Init()

	scr.summarizeCmd()
	before := deps.Transcript.Len()

	// Navigation bumps the epoch before the recap lands.
	scr.dispatch("menu")
	scr.Update(summaryMsg{Epoch: deps.State.Epoch - 1, Lesson: 1, Text: "too late"})

	if deps.Transcript.Len() != before {
		t.Error("expected stale recap to be dropped")
	}
	if deps.State.Thinking {
		t.Error("expected thinking cleared even for a stale recap")
	}
}

// runCmd executes a command tree synchronously, flattening batches.
func runCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			runCmd(c)
		}
	}
}
