// Package assistant wraps the Gemini text-generation backend behind a
// streaming, always-displayable conversation contract: errors never escape as
// errors, they become a final synthetic increment.
package assistant

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// Exchange is one completed (prompt, reply) pair. The whole history is
// replayed on every call; no server-side session exists.
type Exchange struct {
	Prompt string
	Reply  string
}

type streamFunc func(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]

// Client talks to the generative backend.
type Client struct {
	model   string
	limiter *rate.Limiter
	stream  streamFunc
}

// New dials the Gemini API with the given key.
func New(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("assistant API key is required")
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	c := newWithStream(nil)
	c.stream = func(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
		return gc.Models.GenerateContentStream(ctx, c.model, contents, cfg)
	}
	return c, nil
}

func newWithStream(stream streamFunc) *Client {
	return &Client{
		model: defaultModel,
		// Free-tier quota headroom; requests beyond the burst wait.
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 3),
		stream:  stream,
	}
}

// SendMessage streams the assistant's reply as cleaned text increments.
// The sequence is finite and in generation order; the caller accumulates.
// Transport or model failures terminate the sequence with one synthetic
// error increment instead of an error value.
func (c *Client) SendMessage(ctx context.Context, text string, history []Exchange, image []byte) iter.Seq[string] {
	return func(yield func(string) bool) {
		if err := c.limiter.Wait(ctx); err != nil {
			yield(errorIncrement(err))
			return
		}

		contents := buildContents(text, history, image)
		cfg := &genai.GenerateContentConfig{
			Temperature: genai.Ptr[float32](0.7),
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: systemPrompt}},
			},
		}

		for resp, err := range c.stream(ctx, contents, cfg) {
			if err != nil {
				yield(errorIncrement(err))
				return
			}
			chunk := stripMarkdown(responseText(resp))
			if chunk == "" {
				continue
			}
			if !yield(chunk) {
				return
			}
		}
	}
}

// buildContents replays the history as alternating user/model turns and
// appends the new user turn, with the image (when present) ahead of the text.
func buildContents(text string, history []Exchange, image []byte) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)*2+1)
	for _, ex := range history {
		contents = append(contents,
			&genai.Content{Role: genai.RoleUser, Parts: []*genai.Part{{Text: ex.Prompt}}},
			&genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{Text: ex.Reply}}},
		)
	}

	var parts []*genai.Part
	if len(image) > 0 {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: image},
		})
	}
	parts = append(parts, &genai.Part{Text: text})
	contents = append(contents, &genai.Content{Role: genai.RoleUser, Parts: parts})
	return contents
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

func errorIncrement(err error) string {
	msg := "No se pudo conectar con el asistente"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return errorPrefix + msg
}

const errorPrefix = "❌ Error: "

// IsErrorIncrement reports whether a streamed increment is the synthetic
// terminal error message rather than model output.
func IsErrorIncrement(s string) bool {
	return strings.HasPrefix(s, errorPrefix)
}
