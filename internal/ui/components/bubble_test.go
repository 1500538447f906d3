package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"

	"github.com/edubridge/edubridge/internal/chat"
)

func TestRenderBubble_LessonShowsTracker(t *testing.T) {
	msg := chat.NewLesson("The Color Red\n\nRed is everywhere.", chat.LessonMeta{
		LessonNum:    2,
		TotalLessons: 5,
	})
	out := RenderBubble(msg, 80)

	lines := strings.Split(out, "\n")
	if len(lines) < 4 {
		t.Fatalf("expected tag, tracker, body and stamp lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "Lesson 2 of 5") {
		t.Errorf("expected the lesson tag first, got %q", lines[0])
	}
	if w := lipgloss.Width(lines[1]); w != 24 {
		t.Errorf("expected a 24-cell tracker bar, got width %d", w)
	}
}

func TestProgressBar_WidthClamped(t *testing.T) {
	over := NewProgressBar("", 1.5, false, 20)
	if w := lipgloss.Width(over.View()); w != 20 {
		t.Errorf("expected bar width 20 at overfull percent, got %d", w)
	}
	under := NewProgressBar("", -0.2, false, 20)
	if w := lipgloss.Width(under.View()); w != 20 {
		t.Errorf("expected bar width 20 at negative percent, got %d", w)
	}
}
