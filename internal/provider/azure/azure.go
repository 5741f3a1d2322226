// Package azure talks to an Azure OpenAI deployment using Microsoft Entra
// bearer tokens instead of a static API key.
package azure

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/openai/openai-go"
	oaiazure "github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"

	"github.com/codebypatrickleung/azure-playground/internal/config"
	"github.com/codebypatrickleung/azure-playground/internal/observability"
	"github.com/codebypatrickleung/azure-playground/internal/provider"
)

var errNoCredential = errors.New("azure: token credential is nil")

// Provider issues chat completions against one Azure OpenAI endpoint. It is
// safe for concurrent use.
type Provider struct {
	client openai.Client
	model  string
}

// NewDefault resolves the ambient identity through DefaultAzureCredential
// (environment, workload identity, managed identity, Azure CLI, azd).
func NewDefault(cfg config.AzureConfig) (*Provider, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("azure: default credential: %w", err)
	}
	return New(cfg, cred)
}

// New builds a client for cfg.Endpoint authenticated with tokens from cred.
// Extra request options are applied last.
func New(cfg config.AzureConfig, cred azcore.TokenCredential, opts ...option.RequestOption) (*Provider, error) {
	if cfg.Endpoint == "" {
		return nil, config.ErrMissingEndpoint
	}
	if cred == nil {
		return nil, errNoCredential
	}

	base := []option.RequestOption{
		oaiazure.WithEndpoint(cfg.Endpoint, cfg.APIVersion),
		bearerAuth(cred, cfg.Scope),
		option.WithMaxRetries(0),
	}

	return &Provider{
		client: openai.NewClient(append(base, opts...)...),
		model:  cfg.Model,
	}, nil
}

func (p *Provider) Name() string { return config.ProviderAzure }

func (p *Provider) Chat(ctx context.Context, req *provider.ChatRequest) (comp *provider.Completion, err error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	ctx, span := observability.StartChatSpan(ctx, p.Name(), model)
	defer func() {
		if comp != nil {
			observability.EndChatSpan(span, comp.PromptTokens, comp.CompletionTokens, nil)
			return
		}
		observability.EndChatSpan(span, 0, 0, err)
	}()

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: toParams(req.Messages),
	}
	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, provider.ErrNoChoices
	}

	return &provider.Completion{
		Content:          resp.Choices[0].Message.Content,
		Model:            resp.Model,
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
	}, nil
}

func toParams(msgs []provider.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case "system":
			out = append(out, openai.SystemMessage(m.Content))
		case "assistant":
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
