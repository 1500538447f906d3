package chat

import (
	"github.com/edubridge/edubridge/internal/chat"
)

// scheduledMsg delivers a delayed transcript emission. Epoch is the
// session epoch it was created under; stale emissions are dropped.
type scheduledMsg struct {
	Epoch   int
	Message chat.Message
}

// replyMsg is sent when a tutor reply resolves.
type replyMsg struct {
	Epoch int
	Text  string
	Err   error
}

// summaryMsg is sent when a lesson summary resolves.
type summaryMsg struct {
	Epoch  int
	Lesson int
	Text   string
	Err    error
}

// illustrationMsg is sent when an image generation resolves.
type illustrationMsg struct {
	Prompt string
	Data   []byte
	Err    error
}

// confettiDoneMsg ends the course-completion celebration.
type confettiDoneMsg struct{}

// flashClearMsg clears the transient status flash.
type flashClearMsg struct{}
