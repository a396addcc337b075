// Command azure-pricing-mcp serves Azure retail pricing query tools
// over the Model Context Protocol on stdio.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/costquery/azure-pricing-mcp/internal/catalog"
	"github.com/costquery/azure-pricing-mcp/internal/pricing"
	"github.com/costquery/azure-pricing-mcp/internal/tools"
)

const (
	serverName    = "azure-pricing"
	serverVersion = "1.0.0"
)

func main() {
	// stdout carries the MCP wire protocol; all logging goes to stderr.
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("server", serverName).Logger()

	cfg, err := loadConfig(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.Debug {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := catalog.NewClient(catalog.Config{
		BaseURL:     cfg.BaseURL,
		APIVersion:  cfg.APIVersion,
		HTTPTimeout: cfg.HTTPTimeout,
		MaxRetries:  cfg.MaxRetries,
	}, logger)
	searcher := pricing.NewSearcher(client, logger)
	discovery := pricing.NewDiscovery()
	handler := tools.New(searcher, discovery, cfg.DefaultCurrency, logger)

	s := server.NewMCPServer(serverName, serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	handler.Register(s)

	logger.Info().
		Str("version", serverVersion).
		Str("base_url", cfg.BaseURL).
		Str("currency", cfg.DefaultCurrency).
		Msg("serving MCP on stdio")

	stdio := server.NewStdioServer(s)
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("server exited")
	}

	logger.Info().Msg("shutdown complete")
}
