package echo

import (
	"context"

	"github.com/codebypatrickleung/azure-playground/internal/provider"
)

// Provider responds by echoing the last user message. It lets the form run
// without Azure access.
type Provider struct{}

func New() *Provider { return &Provider{} }

func (p *Provider) Name() string { return "echo" }

func (p *Provider) Chat(ctx context.Context, req *provider.ChatRequest) (*provider.Completion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(req.Messages) == 0 {
		return nil, provider.ErrNoChoices
	}
	last := req.Messages[len(req.Messages)-1]
	return &provider.Completion{
		Content: "Echo: " + last.Content,
		Model:   req.Model,
	}, nil
}
