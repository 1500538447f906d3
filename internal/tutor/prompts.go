package tutor

import "fmt"

const systemInstruction = `
You are EduBridge AI, a friendly and highly concise educational tutor designed for low-bandwidth environments (like WhatsApp and USSD).
Guidelines:
1. Keep responses very short and bite-sized (max 150 words).
2. Use simple language suitable for students with limited resources.
3. Structure content with bullet points or numbered lists.
4. When starting a lesson, present a tiny "Theory" chunk, followed by a "Quick Question".
5. Use emojis sparingly but effectively.
6. If the user replies with a number, interpret it based on the previous context (like a USSD menu).
7. Encourage the student to continue by saying "Reply 'Next' for more or 'Menu' to change subjects."
8. Focus on practical, life-applicable knowledge.
`

const summarizerInstruction = "You are a hyper-concise educational summarizer for low-bandwidth users."

// Degrade strings. Remote failures surface as these fixed messages,
// never as raw errors.
const (
	replyFailure     = "Connection error. Please check your data signal and try again."
	replyEmpty       = "I'm sorry, I couldn't process that. Please try again."
	summarizeFailure = "Could not summarize at this time."
	summarizeEmpty   = "Summary unavailable."
)

func chatSystemPrompt(subject string) string {
	if subject == "" {
		return systemInstruction
	}
	return systemInstruction + fmt.Sprintf("\nCurrently teaching: %s", subject)
}

func summarizePrompt(theory string) string {
	return fmt.Sprintf("Please summarize the following educational theory for a student in a very concise, easy-to-understand way. Use exactly one short sentence. Max 25 words: %q", theory)
}

func illustrationPrompt(prompt, subject string) string {
	if subject == "" {
		subject = "general knowledge"
	}
	return fmt.Sprintf("A simple, clear educational diagram or icon for a student learning %s. Topic: %s. Style: Clean, high-contrast, educational graphic, white background, minimalist, easy to understand.", subject, prompt)
}
