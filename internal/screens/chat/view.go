package chat

import (
	"strings"

	"charm.land/lipgloss/v2"

	chatmsg "github.com/edubridge/edubridge/internal/chat"
	"github.com/edubridge/edubridge/internal/session"
	"github.com/edubridge/edubridge/internal/ui/components"
	"github.com/edubridge/edubridge/internal/ui/theme"
)

func (c *ChatScreen) View(width, height int) string {
	var b strings.Builder

	transcriptHeight := height - 3
	if c.confetti {
		transcriptHeight -= 2
	}
	if transcriptHeight < 1 {
		transcriptHeight = 1
	}

	if c.confetti {
		b.WriteString(renderConfetti(width))
		b.WriteString("\n\n")
	}

	b.WriteString(c.renderTranscript(width, transcriptHeight))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 1))))
	b.WriteString("\n")
	b.WriteString(c.renderInputLine(width))

	return b.String()
}

// renderTranscript renders the newest messages that fit the viewport,
// shifted up by the scroll offset.
func (c *ChatScreen) renderTranscript(width, height int) string {
	msgs := c.deps.Transcript.Messages()

	lastTest := -1
	for i, m := range msgs {
		if m.Kind == chatmsg.KindTest {
			lastTest = i
		}
	}

	var rows []string
	for i, m := range msgs {
		// The most recent quiz renders as the interactive selector.
		if i == lastTest && (c.quizActive || c.quiz.Submitted) {
			rows = append(rows, c.quiz.View())
			continue
		}
		rows = append(rows, components.RenderBubble(m, width-2))
	}
	if c.deps.State.Thinking {
		rows = append(rows, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("  EduBridge AI is typing…"))
	}

	joined := strings.Join(rows, "\n")
	lines := strings.Split(joined, "\n")

	end := len(lines) - c.scrollUp*3
	if end > len(lines) {
		end = len(lines)
	}
	start := end - height
	if start < 0 {
		start = 0
		end = min(height, len(lines))
	}
	if end < start {
		end = start
	}
	return strings.Join(lines[start:end], "\n")
}

func (c *ChatScreen) renderInputLine(width int) string {
	if c.deps.State.Attachment != session.AttachmentClosed {
		return c.renderAttachmentDialog(width)
	}

	line := "  " + c.composer.View()
	if c.flash != "" {
		style := theme.Hint
		switch c.flashSignal {
		case session.SignalSuccess:
			style = lipgloss.NewStyle().Foreground(theme.Success)
		case session.SignalError:
			style = lipgloss.NewStyle().Foreground(theme.Error)
		}
		line += "  " + style.Render(c.flash)
	}
	return line
}

func (c *ChatScreen) renderAttachmentDialog(width int) string {
	state := c.deps.State

	var body string
	switch state.Attachment {
	case session.AttachmentMenu:
		body = "Attach & Tools\n" +
			"1) 📝 Note   2) 🔗 Link   3) 🎙 Audio   4) 🖼 Image   5) ✨ AI Graphic"
	case session.AttachmentNote:
		body = "Save a note\n" + c.composer.View()
	case session.AttachmentLink:
		body = "Share a resource link\n" + c.composer.View()
	case session.AttachmentAudio:
		body = "Attach a voice note\nPath to audio file: " + c.composer.View()
	case session.AttachmentImage:
		body = "Attach an image (small files send in Data-Saver mode)\nPath to image file: " + c.composer.View()
	case session.AttachmentGenerate:
		if state.Generating {
			body = "✨ Generating graphic…"
		} else {
			body = "Describe the graphic to generate\n" + c.composer.View()
		}
	}

	return theme.Card.MaxWidth(max(width-4, 20)).Render(body)
}

func renderConfetti(width int) string {
	burst := "🎉 ✨ 🎊 ✨ 🎉"
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Bold(true).
		Render(burst + "  COURSE COMPLETE  " + burst)
}
