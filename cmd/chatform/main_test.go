package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codebypatrickleung/azure-playground/internal/config"
	"github.com/codebypatrickleung/azure-playground/internal/provider"
)

func TestProvidersEcho(t *testing.T) {
	cfg := &config.Config{Provider: config.ProviderEcho}

	p, err := providers(cfg).Build(cfg.Provider)
	require.NoError(t, err)
	assert.Equal(t, "echo", p.Name())

	res := provider.NewCompleter(p, "gpt-4.1").Complete(context.Background(), "Hello")
	assert.Equal(t, "Echo: Hello", res.Text())
}

func TestProvidersUnknown(t *testing.T) {
	_, err := providers(&config.Config{}).Build("bedrock")
	assert.Error(t, err)
}

func TestSetupLoggingLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	setupLogging(config.LogConfig{Level: "warn", Format: "json"})
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelWarn))

	setupLogging(config.LogConfig{Level: "bogus", Format: "text"})
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelInfo))
}

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()
	f := cmd.Flags().Lookup("config")
	require.NotNil(t, f)
	assert.Equal(t, "", f.DefValue)
}

func TestReadyAttrs(t *testing.T) {
	azureCfg := &config.Config{
		Provider: config.ProviderAzure,
		Azure:    config.AzureConfig{Endpoint: "https://x.openai.azure.com/", Model: "gpt-4.1"},
	}
	assert.Equal(t,
		[]any{"provider", "azure", "model", "gpt-4.1", "endpoint", "https://x.openai.azure.com/"},
		readyAttrs(azureCfg, "azure"))

	echoCfg := &config.Config{Provider: config.ProviderEcho, Azure: config.AzureConfig{Model: "gpt-4.1"}}
	assert.Equal(t, []any{"provider", "echo", "model", "gpt-4.1"}, readyAttrs(echoCfg, "echo"))
}
