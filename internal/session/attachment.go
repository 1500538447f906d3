package session

import (
	"fmt"
	"strings"

	"github.com/edubridge/edubridge/internal/chat"
)

// CloseAttachment dismisses the attachment dialog without a tone.
func CloseAttachment(s *State) Result {
	s.Attachment = AttachmentClosed
	return Result{}
}

// AttachmentBack returns from a per-type form to the numbered picker.
func AttachmentBack(s *State) Result {
	if s.Attachment == AttachmentClosed {
		return Result{}
	}
	s.Attachment = AttachmentMenu
	return Result{Outcome: OutcomeNavigation, Signal: SignalNavigation}
}

// SaveNote pins a text note to the transcript and closes the dialog.
func SaveNote(s *State, text string) Result {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{Outcome: OutcomeError, Signal: SignalError}
	}
	s.Attachment = AttachmentClosed
	return Result{
		Outcome: OutcomeSelection,
		Signal:  SignalSuccess,
		Events:  []chat.Message{chat.New(chat.KindNote, text)},
	}
}

// ShareLink posts a resource link and closes the dialog.
func ShareLink(s *State, url string) Result {
	url = strings.TrimSpace(url)
	if url == "" {
		return Result{Outcome: OutcomeError, Signal: SignalError}
	}
	s.Attachment = AttachmentClosed
	return Result{
		Outcome: OutcomeSelection,
		Signal:  SignalSuccess,
		Events:  []chat.Message{chat.NewLink("Educational Resource", url)},
	}
}

// AttachAudio posts a recorded voice note and closes the dialog.
func AttachAudio(s *State, data []byte, durationSeconds int) Result {
	s.Attachment = AttachmentClosed
	return Result{
		Outcome: OutcomeSelection,
		Signal:  SignalSuccess,
		Events: []chat.Message{
			chat.NewAudio("Voice Note", data, durationSeconds),
			chat.New(chat.KindBot, "Voice note received. 🎙️"),
		},
	}
}

// AttachImage posts a picked image at the chosen quality and closes
// the dialog.
func AttachImage(s *State, data []byte, highQuality bool) Result {
	s.Attachment = AttachmentClosed
	mode := "Data-Saver"
	if highQuality {
		mode = "High Quality"
	}
	return Result{
		Outcome: OutcomeSelection,
		Signal:  SignalSuccess,
		Events: []chat.Message{
			chat.NewImage("Image Attachment", data, highQuality),
			chat.New(chat.KindBot, fmt.Sprintf("Shared image in %s mode.", mode)),
		},
	}
}

// BeginGenerate marks an image generation in flight. Rejected while
// one is already running or the prompt is blank.
func BeginGenerate(s *State, prompt string) Result {
	if strings.TrimSpace(prompt) == "" || s.Generating {
		return Result{Outcome: OutcomeError, Signal: SignalError}
	}
	s.Generating = true
	return Result{}
}

// FinishGenerate resolves an in-flight image generation. On success
// the graphic lands in the transcript and the dialog closes; on
// failure the dialog stays open so the learner can retry.
func FinishGenerate(s *State, prompt string, data []byte, err error) Result {
	s.Generating = false
	if err != nil || len(data) == 0 {
		return Result{
			Outcome: OutcomeError,
			Signal:  SignalError,
			Events: []chat.Message{
				chat.New(chat.KindBot, "Sorry, I couldn't generate that image. Please try a different description."),
			},
		}
	}
	s.Attachment = AttachmentClosed
	return Result{
		Outcome: OutcomeSelection,
		Signal:  SignalSuccess,
		Events: []chat.Message{
			chat.NewImage(fmt.Sprintf("Educational Graphic: %s", prompt), data, false),
			chat.New(chat.KindBot, fmt.Sprintf("AI generated a low-bandwidth graphic for %q 🎨", prompt)),
		},
	}
}
