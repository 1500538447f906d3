// Package tutor is the remote tutoring collaborator: free-form chat
// replies, one-line theory recaps, and educational graphic generation,
// all degrading to fixed user-visible strings on failure.
package tutor

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/edubridge/edubridge/internal/chat"
	"github.com/edubridge/edubridge/internal/llm"
)

// ErrBusy is returned when an operation of the same kind is already in
// flight. At most one outstanding remote call per operation.
var ErrBusy = errors.New("tutor: request already in flight")

// ErrNoImageSupport is returned when the configured backend cannot
// generate graphics.
var ErrNoImageSupport = errors.New("tutor: configured provider has no image support")

// Service answers learner questions against the lesson context.
type Service struct {
	provider llm.Provider
	images   llm.ImageProvider
	logger   *zap.Logger

	replyBusy      atomic.Bool
	summarizeBusy  atomic.Bool
	illustrateBusy atomic.Bool
}

// New creates a Service. images may be nil when the backend cannot
// generate graphics; Illustrate then fails cleanly.
func New(provider llm.Provider, images llm.ImageProvider, logger *zap.Logger) *Service {
	return &Service{provider: provider, images: images, logger: logger}
}

// Reply answers free-form chat against the transcript history. Remote
// failures degrade to a fixed error string; the only error returned is
// ErrBusy for a re-entrant call.
func (s *Service) Reply(ctx context.Context, userText string, history []chat.Message, subject string) (string, error) {
	if !s.replyBusy.CompareAndSwap(false, true) {
		return "", ErrBusy
	}
	defer s.replyBusy.Store(false)

	msgs := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		role := llm.RoleAssistant
		if m.Kind == chat.KindUser {
			role = llm.RoleUser
		}
		msgs = append(msgs, llm.Message{Role: role, Content: m.Content})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: userText})

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "chat-reply"), llm.Request{
		System:      chatSystemPrompt(subject),
		Messages:    msgs,
		MaxTokens:   1024,
		Temperature: 0.7,
	})
	if err != nil {
		s.logger.Warn("chat reply degraded", zap.Error(err))
		return replyFailure, nil
	}
	if strings.TrimSpace(resp.Text) == "" {
		return replyEmpty, nil
	}
	return resp.Text, nil
}

// Summarize condenses lesson theory to one short sentence.
func (s *Service) Summarize(ctx context.Context, theory string) (string, error) {
	if !s.summarizeBusy.CompareAndSwap(false, true) {
		return "", ErrBusy
	}
	defer s.summarizeBusy.Store(false)

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "summarize"), llm.Request{
		System:      summarizerInstruction,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: summarizePrompt(theory)}},
		MaxTokens:   256,
		Temperature: 0.3,
	})
	if err != nil {
		s.logger.Warn("summarize degraded", zap.Error(err))
		return summarizeFailure, nil
	}
	if strings.TrimSpace(resp.Text) == "" {
		return summarizeEmpty, nil
	}
	return resp.Text, nil
}

// Illustrate renders an educational graphic for the prompt. Unlike the
// text operations, failure is reported to the caller so the attachment
// dialog can stay open for a retry.
func (s *Service) Illustrate(ctx context.Context, prompt, subject string) ([]byte, error) {
	if s.images == nil {
		return nil, ErrNoImageSupport
	}
	if !s.illustrateBusy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.illustrateBusy.Store(false)

	resp, err := s.images.GenerateImage(llm.WithPurpose(ctx, "illustrate"), llm.ImageRequest{
		Prompt:      illustrationPrompt(prompt, subject),
		AspectRatio: "1:1",
	})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}
