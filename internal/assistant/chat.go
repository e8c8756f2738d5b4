package assistant

import (
	"strings"
	"sync"
	"time"
)

// DefaultDelay is how long the assistant "types" before a reply appears.
const DefaultDelay = 800 * time.Millisecond

// Chat is one visitor's widget: the transcript plus the delayed replies in
// flight. Submissions never cancel each other and closing the widget does not
// cancel a pending reply; open/closed is display state only.
type Chat struct {
	engine     *Engine
	transcript *Transcript
	delay      time.Duration
	afterFunc  func(time.Duration, func())
	now        func() time.Time
	onReply    func(Reply)

	mu      sync.Mutex
	open    bool
	pending int
}

type ChatOption func(*Chat)

func WithDelay(d time.Duration) ChatOption {
	return func(c *Chat) { c.delay = d }
}

// WithAfterFunc replaces the timer used to defer replies. Tests use it to
// fire replies by hand.
func WithAfterFunc(f func(time.Duration, func())) ChatOption {
	return func(c *Chat) { c.afterFunc = f }
}

func WithClock(now func() time.Time) ChatOption {
	return func(c *Chat) { c.now = now }
}

// WithReplyHook registers a callback run after each reply is appended and
// before Typing reports it done.
func WithReplyHook(f func(Reply)) ChatOption {
	return func(c *Chat) { c.onReply = f }
}

// NewChat starts a transcript holding only the greeting.
func NewChat(engine *Engine, opts ...ChatOption) *Chat {
	c := &Chat{
		engine:     engine,
		transcript: NewTranscript(),
		delay:      DefaultDelay,
		afterFunc:  func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.transcript.Append(Message{Role: RoleAssistant, Text: engine.Greeting(), At: c.now()})
	return c
}

// Submit appends the user's message and schedules the assistant's reply.
// Blank input is ignored and reported as false.
func (c *Chat) Submit(input string) bool {
	text := strings.TrimSpace(input)
	if text == "" {
		return false
	}

	reply := c.engine.Reply(text)
	c.transcript.Append(Message{Role: RoleUser, Text: text, At: c.now()})

	c.mu.Lock()
	c.pending++
	c.mu.Unlock()

	c.afterFunc(c.delay, func() {
		c.transcript.Append(Message{Role: RoleAssistant, Text: reply.Text, At: c.now()})
		if c.onReply != nil {
			c.onReply(reply)
		}
		// Typing ends only once the hook has run.
		c.mu.Lock()
		c.pending--
		c.mu.Unlock()
	})
	return true
}

// Typing reports whether any reply is still pending.
func (c *Chat) Typing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending > 0
}

func (c *Chat) Open() {
	c.mu.Lock()
	c.open = true
	c.mu.Unlock()
}

func (c *Chat) Close() {
	c.mu.Lock()
	c.open = false
	c.mu.Unlock()
}

// Toggle flips the widget and returns the new state.
func (c *Chat) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = !c.open
	return c.open
}

func (c *Chat) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

func (c *Chat) Messages() []Message {
	return c.transcript.Messages()
}
