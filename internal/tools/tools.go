// Package tools exposes the pricing operations as MCP tools: argument
// parsing, tool schemas, and result formatting.
package tools

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/costquery/azure-pricing-mcp/internal/catalog"
	"github.com/costquery/azure-pricing-mcp/internal/pricing"
)

// Handler owns the tool implementations. All state is read-only after
// construction; every invocation is independent.
type Handler struct {
	searcher        *pricing.Searcher
	discovery       *pricing.Discovery
	defaultCurrency string
	logger          zerolog.Logger
}

// New creates a Handler. defaultCurrency applies when a tool call
// omits currency_code.
func New(searcher *pricing.Searcher, discovery *pricing.Discovery, defaultCurrency string, logger zerolog.Logger) *Handler {
	if defaultCurrency == "" {
		defaultCurrency = "USD"
	}
	return &Handler{
		searcher:        searcher,
		discovery:       discovery,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

// Register adds every tool to the server.
func (h *Handler) Register(s *server.MCPServer) {
	s.AddTool(priceSearchTool(), h.PriceSearch)
	s.AddTool(priceCompareTool(), h.PriceCompare)
	s.AddTool(costEstimateTool(), h.CostEstimate)
	s.AddTool(discoverSKUsTool(), h.DiscoverSKUs)
	s.AddTool(skuDiscoveryTool(), h.SKUDiscovery)
}

// traceID returns a fresh correlation ID for one tool invocation.
func traceID() string {
	return uuid.New().String()
}

// userError renders a domain error for the tool caller, keeping the
// distinction between an invalid query and a catalog-side failure.
// Returns an empty string for errors that should not reach the caller
// verbatim.
func userError(err error) string {
	var unknownField *catalog.UnknownFieldError
	var badFilter *catalog.BadFilterError
	var parseErr *catalog.ParseError
	var transient *catalog.TransientError
	var usage *pricing.UsageError

	switch {
	case errors.Is(err, catalog.ErrEmptyCriteria):
		return "at least one filter (service_name, service_family, region, sku_name, or price_type) is required"
	case errors.As(err, &unknownField):
		return fmt.Sprintf("unknown filter field %q", unknownField.Field)
	case errors.As(err, &badFilter):
		return fmt.Sprintf("the pricing catalog rejected the query (status %d); check field values for exact casing", badFilter.StatusCode)
	case errors.As(err, &parseErr):
		return "the pricing catalog returned a malformed response; try again later"
	case errors.As(err, &transient):
		return fmt.Sprintf("the pricing catalog is unreachable (%d attempts); try again later", transient.Attempts)
	case errors.As(err, &usage):
		return usage.Error()
	case errors.Is(err, pricing.ErrNoPricingData):
		return "the matched record has no usable price"
	}
	return ""
}

// logCall records one completed invocation.
func (h *Handler) logCall(id, operation string, durationMs int64, resultCount int) {
	h.logger.Info().
		Str("trace_id", id).
		Str("operation", operation).
		Int64("duration_ms", durationMs).
		Int("results", resultCount).
		Msg("tool call complete")
}

// logError records a failed invocation.
func (h *Handler) logError(id, operation string, err error) {
	h.logger.Error().
		Str("trace_id", id).
		Str("operation", operation).
		Err(err).
		Msg("tool call failed")
}
