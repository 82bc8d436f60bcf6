package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mvp-joe/cortex-outline/internal/extraction"
)

// marshalToolResponse marshals a response object to JSON and returns it as an MCP tool result.
func marshalToolResponse(response interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// normalizeFormat validates the optional format argument. Empty means text.
func normalizeFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("format must be %q or %q, got %q", FormatText, FormatJSON, format)
	}
}

// requestLogger tags every record of one tool call with a fresh request id.
func requestLogger(logger *slog.Logger, tool string) *slog.Logger {
	return logger.With(
		slog.String("tool", tool),
		slog.String("request_id", uuid.NewString()),
	)
}

// isUserError reports whether err describes a problem with the request
// (bad path, unsupported file, oversized or unparsable content) rather
// than an internal failure.
func isUserError(err error) bool {
	return errors.Is(err, extraction.ErrInvalidArgument) ||
		errors.Is(err, extraction.ErrNotFound) ||
		errors.Is(err, extraction.ErrUnsupportedKind) ||
		errors.Is(err, extraction.ErrTooLarge) ||
		errors.Is(err, extraction.ErrParseFailure)
}

// toolError converts an analysis failure into a tool error result. Both
// kinds are reported to the client with their message; they differ only in
// log level.
func toolError(logger *slog.Logger, err error) *mcp.CallToolResult {
	if isUserError(err) {
		logger.Info("request rejected", slog.Any("error", err))
	} else {
		logger.Error("request failed", slog.Any("error", err))
	}
	return mcp.NewToolResultError(err.Error())
}
