package session

import (
	"github.com/edubridge/edubridge/internal/chat"
)

// SubmitAnswer records a quiz answer. It is valid only while the most
// recent transcript message is a quiz that has not been answered yet;
// anything else is rejected with an error tone. A quiz accepts exactly
// one answer.
func SubmitAnswer(s *State, tr *chat.Transcript, selected int) Result {
	last, ok := tr.Last()
	if !ok || last.Kind != chat.KindTest || last.Test == nil {
		return Result{Outcome: OutcomeError, Signal: SignalError}
	}
	if s.Answered(last.ID) {
		return Result{Outcome: OutcomeError, Signal: SignalError}
	}
	if selected < 0 || selected >= len(last.Test.Options) {
		return Result{Outcome: OutcomeError, Signal: SignalError}
	}
	s.markAnswered(last.ID)

	feedback := quizCorrectFeedback()
	signal := SignalSuccess
	if selected != last.Test.CorrectIndex {
		feedback = quizIncorrectFeedback(last.Test.Options[last.Test.CorrectIndex])
		signal = SignalError
	}
	return Result{
		Outcome: OutcomeSelection,
		Signal:  signal,
		Events:  []chat.Message{chat.New(chat.KindUser, last.Test.Options[selected])},
		Scheduled: []Scheduled{{
			After:   FeedbackDelay,
			Message: chat.New(chat.KindBot, feedback),
			Epoch:   s.Epoch,
		}},
	}
}
