package provider

import (
	"context"
	"errors"

	"github.com/codebypatrickleung/azure-playground/internal/metrics"
)

const RoleUser = "user"

// ErrNoChoices is returned when the upstream reply carries no choices.
var ErrNoChoices = errors.New("no choices returned")

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest mirrors the OpenAI chat completion request.
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// Completion is the first choice of a chat completion plus its usage.
type Completion struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// Provider handles LLM operations.
type Provider interface {
	Chat(ctx context.Context, req *ChatRequest) (*Completion, error)
	Name() string
}

// Completer issues single-turn completions against a Provider.
type Completer struct {
	p     Provider
	model string
	usage *metrics.Usage
}

type Option func(*Completer)

// WithUsage records token usage of successful calls into u.
func WithUsage(u *metrics.Usage) Option {
	return func(c *Completer) { c.usage = u }
}

func NewCompleter(p Provider, model string, opts ...Option) *Completer {
	c := &Completer{p: p, model: model}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Complete sends text as the only user message and blocks until the
// provider answers or fails.
func (c *Completer) Complete(ctx context.Context, text string) Result {
	req := &ChatRequest{
		Model:    c.model,
		Messages: []Message{{Role: RoleUser, Content: text}},
	}
	comp, err := c.p.Chat(ctx, req)
	if err != nil {
		return Failed(err)
	}
	if comp == nil {
		return Failed(ErrNoChoices)
	}
	if c.usage != nil {
		c.usage.Add(comp.PromptTokens, comp.CompletionTokens)
	}
	return OK(comp.Content)
}

func (c *Completer) Provider() string { return c.p.Name() }
