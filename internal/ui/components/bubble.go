package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/edubridge/edubridge/internal/chat"
	"github.com/edubridge/edubridge/internal/ui/theme"
)

const bubbleMaxShare = 0.72 // bubbles take at most ~72% of the row, like a phone chat

// RenderBubble renders a single chat message as a WhatsApp-style bubble
// row sized to the given width. Test messages are rendered by the chat
// screen with a MultiChoice component and only fall through here once
// answered.
func RenderBubble(msg chat.Message, width int) string {
	maxBubble := int(float64(width) * bubbleMaxShare)
	if maxBubble < 20 {
		maxBubble = 20
	}

	switch msg.Kind {
	case chat.KindSystem:
		return lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Width(width).
			Align(lipgloss.Center).
			Render(msg.Content)
	case chat.KindUser:
		return alignRow(userBody(msg, maxBubble), width, lipgloss.Right)
	default:
		return alignRow(botBody(msg, maxBubble), width, lipgloss.Left)
	}
}

func userBody(msg chat.Message, maxWidth int) string {
	content := msg.Content
	if msg.Kind == chat.KindAudio && msg.Audio != nil {
		content = audioLine(msg.Audio.DurationSeconds)
	}
	body := theme.UserBubble.MaxWidth(maxWidth).Render(content)
	return body + "\n" + stamp(msg, lipgloss.Right, lipgloss.Width(body))
}

func botBody(msg chat.Message, maxWidth int) string {
	var body string
	switch msg.Kind {
	case chat.KindNote:
		body = theme.Card.
			BorderForeground(theme.Accent).
			MaxWidth(maxWidth).
			Render(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("📝 Saved Note") +
				"\n" + msg.Content)
	case chat.KindLink:
		url := ""
		if msg.Link != nil {
			url = msg.Link.URL
		}
		body = theme.BotBubble.MaxWidth(maxWidth).Render(
			msg.Content + "\n" +
				lipgloss.NewStyle().Foreground(theme.Secondary).Underline(true).Render(url))
	case chat.KindAudio:
		dur := 0
		if msg.Audio != nil {
			dur = msg.Audio.DurationSeconds
		}
		body = theme.BotBubble.MaxWidth(maxWidth).Render(audioLine(dur))
	case chat.KindImage:
		label := "🖼  " + msg.Content
		if msg.Image != nil && !msg.Image.IsHighQuality {
			label += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render("Data-Saver")
		}
		body = theme.Card.MaxWidth(maxWidth).Render(label)
	case chat.KindTest:
		question := msg.Content
		if msg.Test != nil {
			question = msg.Test.Question
		}
		body = theme.BotBubble.MaxWidth(maxWidth).Render("❓ " + question)
	default:
		if msg.USSDStyle {
			body = theme.USSDBlock.MaxWidth(maxWidth).Render(msg.Content)
		} else {
			body = theme.BotBubble.MaxWidth(maxWidth).Render(msg.Content)
		}
	}

	out := body
	if msg.Lesson != nil {
		out = lessonTag(*msg.Lesson) + "\n" + courseProgress(*msg.Lesson) + "\n" + out
	}
	return out + "\n" + stamp(msg, lipgloss.Left, lipgloss.Width(body))
}

func lessonTag(meta chat.LessonMeta) string {
	tag := fmt.Sprintf("Lesson %d of %d", meta.LessonNum, meta.TotalLessons)
	if meta.IsComplete {
		tag += "  ★ Complete"
	}
	return lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(tag)
}

// courseProgress renders the lesson tracker bar under the lesson tag.
func courseProgress(meta chat.LessonMeta) string {
	percent := 1.0
	if !meta.IsComplete && meta.TotalLessons > 0 {
		percent = float64(meta.LessonNum) / float64(meta.TotalLessons)
	}
	return NewProgressBar("", percent, false, 24).View()
}

func audioLine(seconds int) string {
	return fmt.Sprintf("🎙 %s  0:%02d", strings.Repeat("▁▃▅▂▆", 4), seconds)
}

func stamp(msg chat.Message, align lipgloss.Position, width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(width).
		Align(align).
		Render(msg.Timestamp.Format("3:04 PM"))
}

func alignRow(body string, width int, align lipgloss.Position) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(align).
		Render(body)
}
