package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/edubridge/edubridge/internal/catalog"
	"github.com/edubridge/edubridge/internal/chat"
)

const (
	// QuizRevealDelay paces the quiz behind the lesson theory so the
	// learner reads before answering.
	QuizRevealDelay = 1500 * time.Millisecond

	// FeedbackDelay separates the echoed answer from its verdict.
	FeedbackDelay = 800 * time.Millisecond

	// ConfettiDuration is how long the completion celebration stays up.
	ConfettiDuration = 5 * time.Second
)

// Outcome classifies what a dispatch did, for the UI layer.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeNavigation
	OutcomeSelection
	OutcomeForward
	OutcomeError
)

// Signal is the feedback tone to play for a dispatch.
type Signal int

const (
	SignalNone Signal = iota
	SignalSuccess
	SignalError
	SignalNavigation
)

// Scheduled is a delayed transcript emission. It carries the epoch it
// was created under; the emitter drops it if the session has since
// navigated or changed lesson.
type Scheduled struct {
	After   time.Duration
	Message chat.Message
	Epoch   int
}

// Result is everything a dispatch produced: immediate transcript
// events, delayed emissions, and an optional forward to the tutor.
type Result struct {
	Outcome   Outcome
	Signal    Signal
	Events    []chat.Message
	Scheduled []Scheduled

	// Forward, when non-empty, is free text to send to the tutor.
	Forward string

	// Confetti, when non-zero, asks the UI to celebrate for that long.
	Confetti time.Duration
}

// Interpret dispatches one line of raw input against the session. It
// mutates s and returns what happened; it never touches the transcript
// or the network itself.
func Interpret(s *State, raw string, cat *catalog.Catalog) Result {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Result{}
	}
	command := strings.ToLower(trimmed)

	if trimmed == "*5#" {
		s.Attachment = AttachmentMenu
		return Result{Outcome: OutcomeSelection, Signal: SignalSuccess}
	}

	if trimmed == "*123#" {
		return Result{
			Outcome: OutcomeSelection,
			Signal:  SignalSuccess,
			Events: []chat.Message{
				chat.NewUSSD(chat.KindUser, trimmed),
				chat.NewUSSD(chat.KindBot, ussdMenu(cat, s.Stage)),
			},
		}
	}

	if strings.Contains(command, "next") {
		if s.CourseCompleted {
			return Result{}
		}
		if s.Subject != nil {
			if next := s.LessonIndex + 1; next <= catalog.TotalLessons {
				res := Result{Outcome: OutcomeSelection, Signal: SignalSuccess}
				res.Events = append(res.Events, chat.New(chat.KindUser, "Next Lesson"))
				s.LessonIndex = next
				deliverLesson(s, cat, &res)
				return res
			}
			s.CourseCompleted = true
			done := chat.NewLesson(
				fmt.Sprintf("🎓 Course Complete! Great job with %s.", s.Subject.Title),
				chat.LessonMeta{
					LessonNum:    catalog.TotalLessons,
					TotalLessons: catalog.TotalLessons,
					IsComplete:   true,
				},
			)
			return Result{
				Outcome:  OutcomeSelection,
				Signal:   SignalSuccess,
				Events:   []chat.Message{done},
				Confetti: ConfettiDuration,
			}
		}
	}

	if command == "previous" || command == "back" || trimmed == "*99#" || trimmed == "*2#" {
		if s.Subject == nil || s.LessonIndex <= 1 {
			return Result{}
		}
		s.LessonIndex--
		res := Result{Outcome: OutcomeNavigation, Signal: SignalNavigation}
		deliverLesson(s, cat, &res)
		return res
	}

	if command == "menu" {
		s.View = ViewHome
		s.Attachment = AttachmentClosed
		s.bumpEpoch()
		return Result{Outcome: OutcomeNavigation, Signal: SignalNavigation}
	}

	if trimmed == "0" || trimmed == "*0#" {
		if s.View == ViewHome {
			s.View = ViewStageSelect
			s.bumpEpoch()
			return Result{Outcome: OutcomeNavigation, Signal: SignalNavigation}
		}
		return Result{
			Outcome: OutcomeSelection,
			Signal:  SignalSuccess,
			Events: []chat.Message{
				chat.NewUSSD(chat.KindUser, trimmed),
				chat.NewUSSD(chat.KindBot, helpMessage),
			},
		}
	}

	if num, ok := parseLeadingInt(trimmed); ok {
		switch {
		case s.View == ViewStageSelect:
			stages := cat.Stages()
			if num >= 1 && num <= len(stages) {
				st := stages[num-1]
				s.Stage = &st
				s.View = ViewHome
				s.bumpEpoch()
				return Result{Outcome: OutcomeSelection, Signal: SignalSuccess}
			}
		case s.View == ViewHome && s.Stage != nil:
			subjects := cat.SubjectsForStage(s.Stage.ID)
			if num >= 1 && num <= len(subjects) {
				sub := subjects[num-1]
				s.Subject = &sub
				s.LessonIndex = 1
				s.CourseCompleted = false
				s.View = ViewChat
				res := Result{Outcome: OutcomeSelection, Signal: SignalSuccess}
				deliverLesson(s, cat, &res)
				return res
			}
		}
	}

	if s.View == ViewChat && s.Attachment == AttachmentClosed {
		if s.Thinking {
			return Result{Outcome: OutcomeError, Signal: SignalError}
		}
		return Result{
			Outcome: OutcomeForward,
			Events:  []chat.Message{chat.New(chat.KindUser, trimmed)},
			Forward: trimmed,
		}
	}

	if s.Attachment == AttachmentMenu {
		if mode, ok := attachmentPick[trimmed]; ok {
			s.Attachment = mode
			return Result{Outcome: OutcomeSelection, Signal: SignalSuccess}
		}
		return Result{Outcome: OutcomeError, Signal: SignalError}
	}

	return Result{Outcome: OutcomeError, Signal: SignalError}
}

var attachmentPick = map[string]AttachmentMode{
	"1": AttachmentNote,
	"2": AttachmentLink,
	"3": AttachmentAudio,
	"4": AttachmentImage,
	"5": AttachmentGenerate,
}

// deliverLesson appends the current lesson's content to res and, when
// the lesson carries a quiz, schedules its reveal. A missing catalog
// entry is a silent no-op.
func deliverLesson(s *State, cat *catalog.Catalog, res *Result) {
	epoch := s.bumpEpoch()
	lesson, ok := cat.Lookup(s.Subject.ID, s.LessonIndex)
	if !ok {
		return
	}
	content := lesson.Title + "\n\n" + lesson.Theory + "\n\nQuestion: " + lesson.Question
	res.Events = append(res.Events, chat.NewLesson(content, chat.LessonMeta{
		LessonNum:    s.LessonIndex,
		TotalLessons: catalog.TotalLessons,
	}))
	if q := lesson.Quiz; q != nil {
		res.Scheduled = append(res.Scheduled, Scheduled{
			After: QuizRevealDelay,
			Message: chat.NewTest(q.Question, chat.TestMeta{
				Question:     q.Question,
				Options:      q.Options,
				CorrectIndex: q.Answer,
			}),
			Epoch: epoch,
		})
	}
}

// parseLeadingInt reads a leading optionally-signed integer, so "3abc"
// still selects option 3 the way a phone keypad entry would.
func parseLeadingInt(s string) (int, bool) {
	i := 0
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	start := i
	n := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	if i == start {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
