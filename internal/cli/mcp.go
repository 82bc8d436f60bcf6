package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/cortex-outline/internal/mcp"
	"github.com/mvp-joe/cortex-outline/internal/outline"
)

var metricsAddr string

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for file structure outlines",
	Long: `Start the Model Context Protocol (MCP) server that lets LLM-powered coding
assistants inspect the structure of TypeScript, JavaScript and Vue files.

The MCP server:
- Provides get_file_structure, analyze_code and clear_structure_cache tools
- Caches parse results per file path and modification time
- Communicates via stdio (standard MCP transport); logs go to stderr

Example:
  cortex-outline mcp
  cortex-outline mcp --metrics-addr localhost:9464`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve /metrics and /health on this address (disabled when empty)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := newLogger(cfg.Logging, verbose, os.Stderr)

	registry := prometheus.NewRegistry()
	service, err := outline.NewService(cfg.ToOutlineConfig(),
		outline.WithLogger(logger),
		outline.WithRegisterer(registry),
	)
	if err != nil {
		return fmt.Errorf("failed to create outline service: %w", err)
	}
	defer service.Close()

	if metricsAddr != "" {
		obs := NewObservabilityServer(metricsAddr, registry, service.Stats, logger)
		obs.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = obs.Stop(shutdownCtx)
		}()
	}

	server, err := mcp.NewMCPServer(&mcp.MCPServerConfig{Name: "cortex-outline", Version: Version}, service, logger)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	// Serve (blocks until shutdown)
	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}
