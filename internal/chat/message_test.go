package chat

import (
	"testing"
)

func TestConstructors_Validate(t *testing.T) {
	msgs := []Message{
		New(KindUser, "hello"),
		New(KindBot, "hi"),
		NewUSSD(KindBot, "WELCOME"),
		NewLesson("lesson body", LessonMeta{LessonNum: 1, TotalLessons: 5}),
		NewLink("Educational Resource", "https://example.org"),
		NewAudio("Voice Note", []byte("pcm"), 4),
		NewImage("Image Attachment", []byte("png"), true),
		NewTest("Which of these is red?", TestMeta{
			Question:     "Which of these is red?",
			Options:      []string{"Banana", "Apple"},
			CorrectIndex: 1,
		}),
	}
	for _, m := range msgs {
		if err := m.Validate(); err != nil {
			t.Errorf("Validate(%s): %v", m.Kind, err)
		}
		if m.ID == "" {
			t.Errorf("message kind %s has empty ID", m.Kind)
		}
		if m.Timestamp.IsZero() {
			t.Errorf("message kind %s has zero timestamp", m.Kind)
		}
	}
}

func TestValidate_MismatchedMetadata(t *testing.T) {
	m := New(KindUser, "hello")
	m.Lesson = &LessonMeta{LessonNum: 1, TotalLessons: 5}
	if err := m.Validate(); err == nil {
		t.Error("expected error for lesson metadata on user message")
	}

	m = New(KindTest, "quiz")
	if err := m.Validate(); err == nil {
		t.Error("expected error for test message without test metadata")
	}
}

func TestUSSDStyle(t *testing.T) {
	m := NewUSSD(KindBot, "menu")
	if !m.USSDStyle {
		t.Error("expected USSDStyle to be set")
	}
	if New(KindBot, "plain").USSDStyle {
		t.Error("expected USSDStyle unset on plain message")
	}
}

func TestTranscript_AppendAndLast(t *testing.T) {
	tr := NewTranscript()

	if _, ok := tr.Last(); ok {
		t.Error("expected no last message on empty transcript")
	}

	tr.Append(New(KindUser, "one"), New(KindBot, "two"))
	if tr.Len() != 2 {
		t.Fatalf("expected 2 messages, got %d", tr.Len())
	}
	last, ok := tr.Last()
	if !ok || last.Content != "two" {
		t.Errorf("expected last message 'two', got %q (ok=%v)", last.Content, ok)
	}
}

func TestTranscript_History(t *testing.T) {
	tr := NewTranscript()
	for _, content := range []string{"a", "b", "c", "d"} {
		tr.Append(New(KindUser, content))
	}

	h := tr.History(2)
	if len(h) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(h))
	}
	if h[0].Content != "c" || h[1].Content != "d" {
		t.Errorf("expected newest two in order, got %q %q", h[0].Content, h[1].Content)
	}

	if got := len(tr.History(10)); got != 4 {
		t.Errorf("expected full history of 4, got %d", got)
	}
}

func TestTranscript_MessagesIsCopy(t *testing.T) {
	tr := NewTranscript()
	tr.Append(New(KindUser, "original"))

	msgs := tr.Messages()
	msgs[0].Content = "mutated"

	fresh := tr.Messages()
	if fresh[0].Content != "original" {
		t.Error("expected Messages() to return a copy")
	}
}
