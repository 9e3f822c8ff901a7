package completion

import (
	"context"
	"errors"
	"strings"

	"github.com/yanqian/smart-faq/internal/domain/faq"
	"github.com/yanqian/smart-faq/internal/infra/llm/chatgpt"
)

// ChatGPTCompleter adapts the ChatGPT client to the FAQ domain.
type ChatGPTCompleter struct {
	client      *chatgpt.Client
	model       string
	temperature float32
}

// NewChatGPTCompleter constructs the adapter.
func NewChatGPTCompleter(client *chatgpt.Client, model string, temperature float32) *ChatGPTCompleter {
	return &ChatGPTCompleter{client: client, model: model, temperature: temperature}
}

// Complete sends the prompt as a single user message.
func (c *ChatGPTCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages:    []chatgpt.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", errors.New("chat completion returned empty content")
	}
	return answer, nil
}

var _ faq.Completer = (*ChatGPTCompleter)(nil)

// EchoCompleter returns a lightweight fallback without external calls.
type EchoCompleter struct{}

// Complete echoes the question from the User: turn of the prompt. Prompts
// without that turn echo their last non-empty line.
func (EchoCompleter) Complete(_ context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("empty prompt")
	}
	if question := userTurn(prompt); question != "" {
		return "Answer: " + question, nil
	}
	lines := strings.Split(prompt, "\n")
	return "Answer: " + strings.TrimSpace(lines[len(lines)-1]), nil
}

func userTurn(prompt string) string {
	start := strings.LastIndex(prompt, userMarker)
	if start < 0 {
		return ""
	}
	turn := prompt[start+len(userMarker):]
	if end := strings.LastIndex(turn, assistantMarker); end >= 0 {
		turn = turn[:end]
	}
	return strings.Join(strings.Fields(turn), " ")
}

const (
	userMarker      = "User:"
	assistantMarker = "Assistant:"
)

var _ faq.Completer = EchoCompleter{}
