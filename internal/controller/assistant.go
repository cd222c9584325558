package controller

import (
	"context"
	"iter"
	"slices"
	"strings"

	"tuninggarage/internal/assistant"
)

// AssistantMessage is one bubble in the assistant conversation.
type AssistantMessage struct {
	Text     string
	FromUser bool
	Image    []byte
	IsError  bool
	Pending  bool
}

// Streamer is the assistant backend as the controller sees it.
type Streamer interface {
	SendMessage(ctx context.Context, text string, history []assistant.Exchange, image []byte) iter.Seq[string]
}

// AssistantController owns the conversation with the tuning assistant. The
// history lives only in memory; failed exchanges are displayed but never
// replayed as context.
type AssistantController struct {
	base
	ai       Streamer
	messages []AssistantMessage
	history  []assistant.Exchange
	// convGen invalidates in-flight streams when Clear replaces the
	// conversation, so late increments never index a reset slice.
	convGen uint64
}

func NewAssistant(ai Streamer) *AssistantController {
	return &AssistantController{
		base:     newBase(),
		ai:       ai,
		messages: []AssistantMessage{{Text: assistant.Greeting}},
	}
}

// Messages returns a snapshot of the conversation.
func (c *AssistantController) Messages() []AssistantMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.messages)
}

// Send appends the user's message plus a pending assistant bubble, then fills
// the bubble in as increments stream in. The caller sees partial text grow.
func (c *AssistantController) Send(text string, image []byte) {
	if strings.TrimSpace(text) == "" && len(image) == 0 {
		return
	}

	c.mu.Lock()
	history := slices.Clone(c.history)
	c.messages = append(c.messages,
		AssistantMessage{Text: text, FromUser: true, Image: image},
		AssistantMessage{Pending: true},
	)
	idx := len(c.messages) - 1
	gen := c.convGen
	ctx := c.ctx
	c.mu.Unlock()

	var full strings.Builder
	failed := false
	for chunk := range c.ai.SendMessage(ctx, text, history, image) {
		if assistant.IsErrorIncrement(chunk) {
			failed = true
		}
		full.WriteString(chunk)

		c.mu.Lock()
		if c.convGen != gen {
			c.mu.Unlock()
			return
		}
		c.messages[idx].Text = full.String()
		c.messages[idx].IsError = failed
		c.mu.Unlock()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.convGen != gen {
		return
	}
	c.messages[idx].Pending = false
	if !failed {
		c.history = append(c.history, assistant.Exchange{Prompt: text, Reply: full.String()})
	}
}

// Clear resets the conversation and its replayed context. An exchange still
// streaming is abandoned.
func (c *AssistantController) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.convGen++
	c.messages = []AssistantMessage{{Text: assistant.ClearedGreeting}}
	c.history = nil
}
