package chat

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a transcript message for rendering and validation.
type Kind string

const (
	KindUser   Kind = "user"
	KindBot    Kind = "bot"
	KindSystem Kind = "system"
	KindNote   Kind = "note"
	KindLink   Kind = "link"
	KindAudio  Kind = "audio"
	KindImage  Kind = "image"
	KindTest   Kind = "test"
)

// LessonMeta marks a message as lesson content or a course-completion notice.
type LessonMeta struct {
	LessonNum    int
	TotalLessons int
	IsComplete   bool
}

// LinkMeta carries a shared resource URL.
type LinkMeta struct {
	URL string
}

// AudioMeta carries an attached voice note.
type AudioMeta struct {
	Data            []byte
	DurationSeconds int
}

// ImageMeta carries an attached or generated image.
type ImageMeta struct {
	Data          []byte
	IsHighQuality bool
}

// TestMeta carries a multiple-choice quiz.
type TestMeta struct {
	Question     string
	Options      []string
	CorrectIndex int
}

// Message is a single transcript entry. Messages are immutable once created.
// At most one metadata variant is populated, and it must match Kind.
type Message struct {
	ID        string
	Kind      Kind
	Content   string
	Timestamp time.Time
	USSDStyle bool

	Lesson *LessonMeta
	Link   *LinkMeta
	Audio  *AudioMeta
	Image  *ImageMeta
	Test   *TestMeta
}

// New creates a plain message of the given kind.
func New(kind Kind, content string) Message {
	return Message{
		ID:        uuid.New().String(),
		Kind:      kind,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUSSD creates a message rendered in the monospace USSD style.
func NewUSSD(kind Kind, content string) Message {
	m := New(kind, content)
	m.USSDStyle = true
	return m
}

// NewLesson creates a Bot message carrying lesson progress metadata.
func NewLesson(content string, meta LessonMeta) Message {
	m := New(KindBot, content)
	m.Lesson = &meta
	return m
}

// NewLink creates a Link message for a shared resource URL.
func NewLink(content, url string) Message {
	m := New(KindLink, content)
	m.Link = &LinkMeta{URL: url}
	return m
}

// NewAudio creates an Audio message for a voice note.
func NewAudio(content string, data []byte, durationSeconds int) Message {
	m := New(KindAudio, content)
	m.Audio = &AudioMeta{Data: data, DurationSeconds: durationSeconds}
	return m
}

// NewImage creates an Image message for an attached or generated picture.
func NewImage(content string, data []byte, highQuality bool) Message {
	m := New(KindImage, content)
	m.Image = &ImageMeta{Data: data, IsHighQuality: highQuality}
	return m
}

// NewTest creates a Test message carrying a quiz payload.
func NewTest(content string, meta TestMeta) Message {
	m := New(KindTest, content)
	m.Test = &meta
	return m
}

// Validate checks that the populated metadata variant matches Kind.
func (m Message) Validate() error {
	variants := 0
	if m.Lesson != nil {
		variants++
		if m.Kind != KindBot {
			return fmt.Errorf("message %s: lesson metadata on kind %q", m.ID, m.Kind)
		}
	}
	if m.Link != nil {
		variants++
		if m.Kind != KindLink {
			return fmt.Errorf("message %s: link metadata on kind %q", m.ID, m.Kind)
		}
	}
	if m.Audio != nil {
		variants++
		if m.Kind != KindAudio {
			return fmt.Errorf("message %s: audio metadata on kind %q", m.ID, m.Kind)
		}
	}
	if m.Image != nil {
		variants++
		if m.Kind != KindImage {
			return fmt.Errorf("message %s: image metadata on kind %q", m.ID, m.Kind)
		}
	}
	if m.Test != nil {
		variants++
		if m.Kind != KindTest {
			return fmt.Errorf("message %s: test metadata on kind %q", m.ID, m.Kind)
		}
	}
	if variants > 1 {
		return fmt.Errorf("message %s: %d metadata variants populated", m.ID, variants)
	}
	if m.Kind == KindTest && m.Test == nil {
		return fmt.Errorf("message %s: test message without quiz payload", m.ID)
	}
	if t := m.Test; t != nil {
		if len(t.Options) == 0 {
			return fmt.Errorf("message %s: test without options", m.ID)
		}
		if t.CorrectIndex < 0 || t.CorrectIndex >= len(t.Options) {
			return fmt.Errorf("message %s: correct index %d out of range", m.ID, t.CorrectIndex)
		}
	}
	return nil
}
