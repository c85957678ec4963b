// Package notify is the non-blocking notification capability the storefront
// core calls instead of blocking dialogs. Implementations decide how messages
// reach the user (flash banners, htmx events); the core only emits.
package notify

// Level classifies a message's tone.
type Level string

const (
	Info    Level = "info"
	Success Level = "success"
	Error   Level = "error"
)

// Message is one user-facing notification.
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Notifier receives user-facing notifications. Implementations must not
// block.
type Notifier interface {
	Notify(level Level, text string)
}

// Queue collects messages in order. It backs the session-flash notifier and
// doubles as a test double.
type Queue struct {
	msgs []Message
}

func (q *Queue) Notify(level Level, text string) {
	q.msgs = append(q.msgs, Message{Level: level, Text: text})
}

// Drain returns queued messages and empties the queue.
func (q *Queue) Drain() []Message {
	out := q.msgs
	q.msgs = nil
	return out
}

// Func adapts a function to the Notifier interface.
type Func func(level Level, text string)

func (f Func) Notify(level Level, text string) { f(level, text) }

// Discard drops every message.
var Discard Notifier = Func(func(Level, string) {})
