package chat

// Transcript is the append-only ordered log of chat messages.
// Messages are never edited or removed after append.
type Transcript struct {
	messages []Message
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append adds messages to the end of the transcript in order.
func (t *Transcript) Append(msgs ...Message) {
	t.messages = append(t.messages, msgs...)
}

// Messages returns a copy of the transcript contents in append order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages appended so far.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Last returns the most recent message, or false if the transcript is empty.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// History returns up to limit most recent User and Bot messages, oldest
// first, for use as remote-tutor conversation context. Attachment and
// USSD-styled messages are skipped.
func (t *Transcript) History(limit int) []Message {
	var out []Message
	for _, m := range t.messages {
		if m.USSDStyle {
			continue
		}
		if m.Kind == KindUser || m.Kind == KindBot {
			out = append(out, m)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}
