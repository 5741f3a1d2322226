package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/codebypatrickleung/azure-playground/internal/config"
	"github.com/codebypatrickleung/azure-playground/internal/metrics"
	"github.com/codebypatrickleung/azure-playground/internal/observability"
	"github.com/codebypatrickleung/azure-playground/internal/provider"
	"github.com/codebypatrickleung/azure-playground/internal/provider/azure"
	"github.com/codebypatrickleung/azure-playground/internal/provider/echo"
	"github.com/codebypatrickleung/azure-playground/internal/routing"
	"github.com/codebypatrickleung/azure-playground/internal/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:           "chatform",
		Short:         "Web form that sends a message to Azure OpenAI and shows the reply",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := run(ctx, configPath); err != nil {
				slog.Error("chatform failed", "error", err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a config file (default: ./config.yaml if present)")
	return cmd
}

func run(ctx context.Context, configPath string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	setupLogging(cfg.Log)

	tp, err := observability.Setup(ctx, cfg.TelemetryURL)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	if tp != nil {
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(flushCtx); err != nil {
				slog.Warn("tracer shutdown", "error", err)
			}
		}()
	}

	p, err := providers(cfg).Build(cfg.Provider)
	if err != nil {
		return err
	}
	usage := &metrics.Usage{}
	completer := provider.NewCompleter(p, cfg.Azure.Model, provider.WithUsage(usage))

	slog.Info("provider ready", readyAttrs(cfg, completer.Provider())...)

	err = server.New(cfg.Address, completer).Start(ctx)
	snap := usage.Snapshot()
	slog.Info("shutting down",
		"requests", snap.Requests,
		"prompt_tokens", snap.PromptTokens,
		"completion_tokens", snap.CompletionTokens,
		"total_tokens", snap.TotalTokens(),
	)
	return err
}

// readyAttrs describes the selected backend. The endpoint only means
// something for azure.
func readyAttrs(cfg *config.Config, name string) []any {
	attrs := []any{"provider", name, "model", cfg.Azure.Model}
	if cfg.Provider == config.ProviderAzure {
		attrs = append(attrs, "endpoint", cfg.Azure.Endpoint)
	}
	return attrs
}

func providers(cfg *config.Config) *routing.Router {
	r := routing.New()
	r.Register(config.ProviderAzure, func() (provider.Provider, error) {
		return azure.NewDefault(cfg.Azure)
	})
	r.Register(config.ProviderEcho, func() (provider.Provider, error) {
		return echo.New(), nil
	})
	return r
}

func setupLogging(lc config.LogConfig) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if strings.EqualFold(lc.Format, "json") {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))

	if level > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
}
