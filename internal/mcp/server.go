package mcp

// Implementation Plan:
// 1. MCPServer struct with the structure analyzer
// 2. NewMCPServer - creates server and registers the structure tools
// 3. Serve - starts MCP server on stdio with graceful shutdown
// 4. Graceful shutdown on SIGTERM/SIGINT
// 5. Close - clears analyzer state

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
)

// MCPServer manages the MCP server lifecycle.
type MCPServer struct {
	config   *MCPServerConfig
	analyzer StructureAnalyzer
	mcp      *server.MCPServer
	logger   *slog.Logger
}

// NewMCPServer creates a new MCP server exposing the structure tools backed
// by analyzer.
func NewMCPServer(config *MCPServerConfig, analyzer StructureAnalyzer, logger *slog.Logger) (*MCPServer, error) {
	if config == nil {
		config = DefaultMCPServerConfig()
	}
	if analyzer == nil {
		return nil, fmt.Errorf("structure analyzer is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	mcpServer := server.NewMCPServer(
		config.Name,
		config.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	AddFileStructureTool(mcpServer, analyzer, logger)
	AddAnalyzeCodeTool(mcpServer, analyzer, logger)
	AddClearCacheTool(mcpServer, analyzer, logger)

	return &MCPServer{
		config:   config,
		analyzer: analyzer,
		mcp:      mcpServer,
		logger:   logger,
	}, nil
}

// Serve starts the MCP server and blocks until shutdown.
func (s *MCPServer) Serve(ctx context.Context) error {
	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// Start MCP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting MCP server on stdio", slog.String("name", s.config.Name), slog.String("version", s.config.Version))
		errCh <- s.serveStdio(ctx, os.Stdin, os.Stdout)
	}()

	// Wait for shutdown signal or error
	select {
	case <-sigCh:
		s.logger.Info("received shutdown signal, stopping gracefully")
		cancel()
		return nil
	case err := <-errCh:
		cancel()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *MCPServer) serveStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}

// Close releases all resources.
func (s *MCPServer) Close() error {
	if s.analyzer != nil {
		s.analyzer.ClearCache()
	}
	return nil
}
