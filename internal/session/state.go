// Package session holds the interpreter state machine for the chat
// client: which view is active, which subject and lesson the learner
// is on, and the pure command dispatcher that turns raw input into
// transcript events.
package session

import (
	"github.com/edubridge/edubridge/internal/catalog"
)

// View identifies the top-level screen the session is showing.
type View int

const (
	ViewStageSelect View = iota
	ViewHome
	ViewChat
)

func (v View) String() string {
	switch v {
	case ViewStageSelect:
		return "stage-select"
	case ViewHome:
		return "home"
	case ViewChat:
		return "chat"
	default:
		return "unknown"
	}
}

// AttachmentMode tracks the attachment dialog state. Closed means no
// dialog; Menu is the numbered picker; the rest are the per-type
// input forms.
type AttachmentMode int

const (
	AttachmentClosed AttachmentMode = iota
	AttachmentMenu
	AttachmentNote
	AttachmentLink
	AttachmentAudio
	AttachmentImage
	AttachmentGenerate
)

// State is the full session state. It is mutated only by the
// interpreter and the attachment/quiz actions in this package, so the
// UI layer can treat it as read-only between dispatches.
type State struct {
	View    View
	Stage   *catalog.Stage
	Subject *catalog.Subject

	// LessonIndex is 1-based. It is meaningful only while Subject is
	// set; selecting a subject resets it to 1.
	LessonIndex     int
	CourseCompleted bool

	Attachment AttachmentMode

	// Thinking is set while a tutor reply is in flight; Generating
	// while an image generation is in flight.
	Thinking   bool
	Generating bool

	// Epoch is bumped on navigation and lesson changes. Scheduled
	// emissions carry the epoch they were created under and are
	// dropped if it no longer matches.
	Epoch int

	answeredTests map[string]bool
}

// NewState returns a fresh session at the stage picker.
func NewState() *State {
	return &State{
		View:          ViewStageSelect,
		LessonIndex:   1,
		answeredTests: make(map[string]bool),
	}
}

func (s *State) bumpEpoch() int {
	s.Epoch++
	return s.Epoch
}

func (s *State) markAnswered(id string) {
	if s.answeredTests == nil {
		s.answeredTests = make(map[string]bool)
	}
	s.answeredTests[id] = true
}

// Answered reports whether the quiz message with the given id has
// already been answered. A quiz accepts exactly one answer.
func (s *State) Answered(id string) bool {
	return s.answeredTests[id]
}
