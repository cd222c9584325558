package controller

import (
	"strings"

	"tuninggarage/internal/api"
	"tuninggarage/internal/domain"
)

// ChatController drives one buyer/seller conversation attached to a listing.
// The chat is created lazily on first contact.
type ChatController struct {
	base
	api    *api.Client
	chatID int
	state  State[domain.Chat]
}

func NewChat(client *api.Client) *ChatController {
	return &ChatController{base: newBase(), api: client}
}

func (c *ChatController) State() State[domain.Chat] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Open resolves (or creates) the chat for the listing, then loads it.
func (c *ChatController) Open(listingID int) {
	c.mu.Lock()
	c.state = Loading[domain.Chat]()
	c.mu.Unlock()

	chatID, err := c.api.Marketplace().InitiateChat(c.ctx, listingID)
	if err != nil {
		c.mu.Lock()
		c.state = Errored[domain.Chat](failureMessage(err))
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	c.chatID = chatID
	c.mu.Unlock()
	c.Load()
}

func (c *ChatController) Load() {
	c.mu.Lock()
	chatID := c.chatID
	seq := c.begin()
	c.state = beginLoad(c.state)
	c.mu.Unlock()

	chat, err := c.api.Marketplace().ChatMessages(c.ctx, chatID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(seq) {
		return
	}
	c.state = finishLoad(c.state, chat, false, "", err)
}

// Send posts the message and refetches the thread so ordering and ownership
// flags stay server-computed.
func (c *ChatController) Send(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	c.mu.Lock()
	chatID := c.chatID
	c.mu.Unlock()

	if _, err := c.api.Marketplace().SendChatMessage(c.ctx, chatID, text); err != nil {
		c.mu.Lock()
		c.setAction(failureMessage(err))
		c.mu.Unlock()
		return
	}
	c.Load()
}
