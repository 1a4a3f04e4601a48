package client

import (
	"context"
	"sync"
)

type ChatSender string

const (
	ChatSenderUser ChatSender = "user"
	ChatSenderAI   ChatSender = "ai"
)

type ChatMessage struct {
	Sender          ChatSender
	Text            string
	Recommendations []Recommendation
}

// Transcript is the client-held planner conversation. It is not persisted;
// a restart starts a fresh conversation.
type Transcript struct {
	api *Client

	mu       sync.Mutex
	messages []ChatMessage
}

func NewTranscript(api *Client) *Transcript {
	return &Transcript{api: api}
}

func (t *Transcript) Messages() []ChatMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]ChatMessage, len(t.messages))
	copy(out, t.messages)
	return out
}

// Ask appends the user's message and the assistant's reply. A transport
// failure still yields a well-formed transcript: the assistant side gets an
// apology line instead of the conversation erroring out.
func (t *Transcript) Ask(ctx context.Context, message string) ChatMessage {
	t.append(ChatMessage{Sender: ChatSenderUser, Text: message})

	answer, err := t.api.Ask(ctx, message)
	var reply ChatMessage
	if err != nil {
		reply = ChatMessage{
			Sender: ChatSenderAI,
			Text:   "Sorry, I could not reach the planner. Please try again.",
		}
	} else {
		reply = ChatMessage{
			Sender:          ChatSenderAI,
			Text:            answer.Reply,
			Recommendations: answer.Recommendations,
		}
	}
	t.append(reply)
	return reply
}

func (t *Transcript) append(msg ChatMessage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, msg)
}
