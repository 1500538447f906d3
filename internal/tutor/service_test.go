package tutor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/edubridge/edubridge/internal/chat"
	"github.com/edubridge/edubridge/internal/llm"
)

func TestReply_ForwardsHistoryAndSubject(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "Red is a primary color. 🎨"},
	)
	svc := New(mock, nil, zap.NewNop())

	history := []chat.Message{
		chat.New(chat.KindBot, "The Color Red"),
		chat.New(chat.KindUser, "Why is red bright?"),
	}
	reply, err := svc.Reply(context.Background(), "Tell me more", history, "Colors")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Red is a primary color. 🎨" {
		t.Errorf("reply = %q", reply)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if !strings.Contains(req.System, "Currently teaching: Colors") {
		t.Errorf("system prompt missing subject: %q", req.System)
	}
	if len(req.Messages) != 3 {
		t.Fatalf("messages length = %d, want 3", len(req.Messages))
	}
	if req.Messages[0].Role != llm.RoleAssistant {
		t.Errorf("history bot role = %v, want assistant", req.Messages[0].Role)
	}
	if req.Messages[2].Content != "Tell me more" {
		t.Errorf("last message = %q", req.Messages[2].Content)
	}
}

func TestReply_DegradesOnFailure(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	svc := New(llm.WithRetry(mock, llm.RetryConfig{MaxAttempts: 1}), nil, zap.NewNop())

	reply, err := svc.Reply(context.Background(), "hello", nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != replyFailure {
		t.Errorf("reply = %q, want fixed degrade string", reply)
	}
}

func TestReply_DegradesOnEmptyText(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "   "})
	svc := New(mock, nil, zap.NewNop())

	reply, err := svc.Reply(context.Background(), "hello", nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != replyEmpty {
		t.Errorf("reply = %q, want empty-reply degrade string", reply)
	}
}

func TestReply_RejectsReentrantCall(t *testing.T) {
	block := make(chan struct{})
	slow := &blockingProvider{release: block, started: make(chan struct{})}
	svc := New(slow, nil, zap.NewNop())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = svc.Reply(context.Background(), "first", nil, "")
	}()

	<-slow.started
	_, err := svc.Reply(context.Background(), "second", nil, "")
	if !errors.Is(err, ErrBusy) {
		t.Errorf("second call error = %v, want ErrBusy", err)
	}

	close(block)
	wg.Wait()
}

func TestSummarize(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "Plants make food from sunlight."},
	)
	svc := New(mock, nil, zap.NewNop())

	summary, err := svc.Summarize(context.Background(), "Plants use sunlight to make food. This is called photosynthesis.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != "Plants make food from sunlight." {
		t.Errorf("summary = %q", summary)
	}
	req := mock.Calls[0]
	if req.System != summarizerInstruction {
		t.Errorf("system = %q", req.System)
	}
	if !strings.Contains(req.Messages[0].Content, "Max 25 words") {
		t.Errorf("prompt = %q", req.Messages[0].Content)
	}
}

func TestSummarize_DegradeStrings(t *testing.T) {
	svc := New(llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}}), nil, zap.NewNop())
	summary, _ := svc.Summarize(context.Background(), "theory")
	if summary != summarizeFailure {
		t.Errorf("summary = %q, want failure degrade string", summary)
	}

	svc = New(llm.NewMockProvider(llm.MockResponse{Text: ""}), nil, zap.NewNop())
	summary, _ = svc.Summarize(context.Background(), "theory")
	if summary != summarizeEmpty {
		t.Errorf("summary = %q, want empty degrade string", summary)
	}
}

func TestIllustrate(t *testing.T) {
	images := llm.NewMockImageProvider(llm.MockImage{Data: []byte{1, 2, 3}})
	svc := New(llm.NewMockProvider(), images, zap.NewNop())

	data, err := svc.Illustrate(context.Background(), "the water cycle", "Science")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) != 3 {
		t.Errorf("data length = %d, want 3", len(data))
	}
	if !strings.Contains(images.Prompts[0], "a student learning Science") {
		t.Errorf("prompt = %q", images.Prompts[0])
	}
	if !strings.Contains(images.Prompts[0], "Topic: the water cycle") {
		t.Errorf("prompt = %q", images.Prompts[0])
	}
}

func TestIllustrate_NoImageSupport(t *testing.T) {
	svc := New(llm.NewMockProvider(), nil, zap.NewNop())

	_, err := svc.Illustrate(context.Background(), "anything", "")
	if !errors.Is(err, ErrNoImageSupport) {
		t.Errorf("error = %v, want ErrNoImageSupport", err)
	}
}

func TestIllustrate_DefaultsSubject(t *testing.T) {
	images := llm.NewMockImageProvider(llm.MockImage{Data: []byte{1}})
	svc := New(llm.NewMockProvider(), images, zap.NewNop())

	_, err := svc.Illustrate(context.Background(), "fractions", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(images.Prompts[0], "general knowledge") {
		t.Errorf("prompt = %q", images.Prompts[0])
	}
}

// blockingProvider parks Generate until released, to exercise the
// in-flight guard.
type blockingProvider struct {
	release <-chan struct{}
	started chan struct{}
}

func (b *blockingProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	b.started <- struct{}{}
	select {
	case <-b.release:
	case <-ctx.Done():
	}
	return &llm.Response{Text: "done"}, nil
}

func (b *blockingProvider) ModelID() string { return "blocking" }
