package controller

import (
	"context"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuninggarage/internal/assistant"
)

// fakeStreamer replays canned increments and records the history it was
// handed on each call.
type fakeStreamer struct {
	chunks    []string
	histories [][]assistant.Exchange
}

func (f *fakeStreamer) SendMessage(ctx context.Context, text string, history []assistant.Exchange, image []byte) iter.Seq[string] {
	f.histories = append(f.histories, history)
	return func(yield func(string) bool) {
		for _, chunk := range f.chunks {
			if !yield(chunk) {
				return
			}
		}
	}
}

func TestSendAccumulatesIncrements(t *testing.T) {
	ai := &fakeStreamer{chunks: []string{"Hola ", "mundo", "!"}}
	c := NewAssistant(ai)
	defer c.Close()

	c.Send("hola", nil)

	messages := c.Messages()
	require.Len(t, messages, 3) // greeting, user, reply
	reply := messages[2]
	assert.Equal(t, "Hola mundo!", reply.Text)
	assert.False(t, reply.Pending)
	assert.False(t, reply.IsError)
	assert.True(t, messages[1].FromUser)
}

func TestFailedExchangeIsShownButNotReplayed(t *testing.T) {
	ai := &fakeStreamer{chunks: []string{"parte ", "❌ Error: quota exceeded"}}
	c := NewAssistant(ai)
	defer c.Close()

	c.Send("hola", nil)

	messages := c.Messages()
	reply := messages[len(messages)-1]
	assert.True(t, reply.IsError)
	assert.Contains(t, reply.Text, "❌ Error:")

	// The failed turn must not become context for the next one.
	ai.chunks = []string{"ok"}
	c.Send("otra vez", nil)
	require.Len(t, ai.histories, 2)
	assert.Empty(t, ai.histories[1])
}

func TestSuccessfulExchangesBuildHistory(t *testing.T) {
	ai := &fakeStreamer{chunks: []string{"respuesta uno"}}
	c := NewAssistant(ai)
	defer c.Close()

	c.Send("pregunta uno", nil)
	ai.chunks = []string{"respuesta dos"}
	c.Send("pregunta dos", nil)

	require.Len(t, ai.histories, 2)
	require.Len(t, ai.histories[1], 1)
	assert.Equal(t, "pregunta uno", ai.histories[1][0].Prompt)
	assert.Equal(t, "respuesta uno", ai.histories[1][0].Reply)
}

func TestBlankMessageIsIgnored(t *testing.T) {
	ai := &fakeStreamer{chunks: []string{"nunca"}}
	c := NewAssistant(ai)
	defer c.Close()

	c.Send("   ", nil)
	assert.Len(t, c.Messages(), 1)
	assert.Empty(t, ai.histories)
}

// gatedStreamer blocks between its two increments so the test can interleave
// other controller calls with an in-flight stream.
type gatedStreamer struct {
	firstChunk chan struct{}
	release    chan struct{}
	calls      int
	histories  [][]assistant.Exchange
}

func (g *gatedStreamer) SendMessage(ctx context.Context, text string, history []assistant.Exchange, image []byte) iter.Seq[string] {
	g.calls++
	g.histories = append(g.histories, history)
	first := g.calls == 1
	return func(yield func(string) bool) {
		if !first {
			yield("ok")
			return
		}
		if !yield("primera ") {
			return
		}
		close(g.firstChunk)
		<-g.release
		yield("segunda")
	}
}

func TestClearDuringStreamAbandonsReply(t *testing.T) {
	ai := &gatedStreamer{
		firstChunk: make(chan struct{}),
		release:    make(chan struct{}),
	}
	c := NewAssistant(ai)
	defer c.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Send("pregunta", nil)
	}()

	<-ai.firstChunk
	c.Clear()
	close(ai.release)
	<-done

	// The abandoned exchange leaves no trace: not in the conversation,
	// not in the replayed history.
	messages := c.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, assistant.ClearedGreeting, messages[0].Text)

	c.Send("otra pregunta", nil)
	require.Len(t, ai.histories, 2)
	assert.Empty(t, ai.histories[1])
}

func TestClearResetsConversationAndContext(t *testing.T) {
	ai := &fakeStreamer{chunks: []string{"respuesta"}}
	c := NewAssistant(ai)
	defer c.Close()

	c.Send("pregunta", nil)
	require.Len(t, c.Messages(), 3)

	c.Clear()
	messages := c.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, assistant.ClearedGreeting, messages[0].Text)

	c.Send("nueva pregunta", nil)
	require.Len(t, ai.histories, 2)
	assert.Empty(t, ai.histories[1])
}
