package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/cortex-outline/internal/extraction"
	mcputils "github.com/mvp-joe/cortex-outline/internal/mcp-utils"
)

const (
	fileStructureToolName = "get_file_structure"
	analyzeCodeToolName   = "analyze_code"
	clearCacheToolName    = "clear_structure_cache"
)

var supportedList = fmt.Sprint(extraction.SupportedExtensions())

// AddFileStructureTool registers the get_file_structure tool with an MCP server.
// This function is composable - it can be combined with other tool registrations.
func AddFileStructureTool(s *server.MCPServer, analyzer StructureAnalyzer, logger *slog.Logger) {
	tool := mcp.NewTool(
		fileStructureToolName,
		mcp.WithDescription("Outline the structure of a source file: functions, classes, variables, imports, exports and type declarations, plus template bindings and component options for Vue single-file components. Supported extensions: "+supportedList),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File path, absolute or relative to the working directory or a configured root")),
		mcp.WithString("format",
			mcp.Description("Output format: 'text' (default, readable outline) or 'json' (full fact record)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createFileStructureHandler(analyzer, logger))
}

// createFileStructureHandler creates the handler function for get_file_structure tool.
func createFileStructureHandler(analyzer StructureAnalyzer, logger *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := requestLogger(logger, fileStructureToolName)

		if _, ok := request.GetRawArguments().(map[string]interface{}); !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		var req FileStructureRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if req.Path == "" {
			return mcp.NewToolResultError("path parameter is required"), nil
		}
		format, err := normalizeFormat(req.Format)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		start := time.Now()
		defer func() {
			log.Debug("tool call finished", slog.String("path", req.Path), slog.Duration("duration", time.Since(start)))
		}()

		if format == FormatText {
			text, err := analyzer.Summary(ctx, req.Path)
			if err != nil {
				return toolError(log, err), nil
			}
			return mcp.NewToolResultText(text), nil
		}

		result, err := analyzer.AnalyzeFile(ctx, req.Path)
		if err != nil {
			return toolError(log, err), nil
		}
		return marshalToolResponse(&StructureResponse{Path: req.Path, Result: result})
	}
}

// AddAnalyzeCodeTool registers the analyze_code tool with an MCP server.
func AddAnalyzeCodeTool(s *server.MCPServer, analyzer StructureAnalyzer, logger *slog.Logger) {
	tool := mcp.NewTool(
		analyzeCodeToolName,
		mcp.WithDescription("Outline the structure of a code snippet that is not on disk. The filename only selects the language by its extension. Supported extensions: "+supportedList),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("Source code to analyze")),
		mcp.WithString("filename",
			mcp.Required(),
			mcp.Description("Name used to pick the language, e.g. 'component.vue' or 'util.ts'")),
		mcp.WithString("format",
			mcp.Description("Output format: 'text' (default) or 'json'")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createAnalyzeCodeHandler(analyzer, logger))
}

// createAnalyzeCodeHandler creates the handler function for analyze_code tool.
func createAnalyzeCodeHandler(analyzer StructureAnalyzer, logger *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := requestLogger(logger, analyzeCodeToolName)

		if _, ok := request.GetRawArguments().(map[string]interface{}); !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		var req AnalyzeCodeRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if req.Filename == "" {
			return mcp.NewToolResultError("filename parameter is required"), nil
		}
		format, err := normalizeFormat(req.Format)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if format == FormatText {
			text, err := analyzer.SummarizeContent(ctx, []byte(req.Code), req.Filename)
			if err != nil {
				return toolError(log, err), nil
			}
			return mcp.NewToolResultText(text), nil
		}

		result, err := analyzer.AnalyzeContent(ctx, []byte(req.Code), req.Filename)
		if err != nil {
			return toolError(log, err), nil
		}
		return marshalToolResponse(&StructureResponse{Path: req.Filename, Result: result})
	}
}

// AddClearCacheTool registers the clear_structure_cache tool with an MCP server.
func AddClearCacheTool(s *server.MCPServer, analyzer StructureAnalyzer, logger *slog.Logger) {
	tool := mcp.NewTool(
		clearCacheToolName,
		mcp.WithDescription("Drop every cached structure result so the next request re-parses from disk."),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := requestLogger(logger, clearCacheToolName)
		stats := analyzer.Stats()
		analyzer.ClearCache()
		log.Debug("cache cleared", slog.Int("entries", stats.Entries))
		return marshalToolResponse(&ClearCacheResponse{Cleared: true, Stats: stats})
	})
}
