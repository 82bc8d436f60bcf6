package mcp

// Implementation Plan:
// 1. StructureAnalyzer - what the tools need from the outline service
// 2. Request types bound from MCP arguments via json tags
// 3. Response types marshalled as JSON text (mcp-go convention)
// 4. MCPServerConfig - server identity

import (
	"context"

	"github.com/mvp-joe/cortex-outline/internal/cache"
	"github.com/mvp-joe/cortex-outline/internal/extraction"
)

// Output formats accepted by the structure tools.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// StructureAnalyzer analyzes files and code snippets. outline.Service
// implements it.
type StructureAnalyzer interface {
	AnalyzeFile(ctx context.Context, path string) (*extraction.ParseResult, error)
	AnalyzeContent(ctx context.Context, code []byte, filename string) (*extraction.ParseResult, error)
	Summary(ctx context.Context, path string) (string, error)
	SummarizeContent(ctx context.Context, code []byte, filename string) (string, error)
	ClearCache()
	Stats() cache.Stats
}

// FileStructureRequest is the get_file_structure tool input.
type FileStructureRequest struct {
	Path   string `json:"path"`
	Format string `json:"format,omitempty"`
}

// AnalyzeCodeRequest is the analyze_code tool input.
type AnalyzeCodeRequest struct {
	Code     string `json:"code"`
	Filename string `json:"filename"`
	Format   string `json:"format,omitempty"`
}

// StructureResponse is the JSON-format output of the structure tools.
type StructureResponse struct {
	Path   string                  `json:"path"`
	Result *extraction.ParseResult `json:"result"`
}

// ClearCacheResponse is the clear_structure_cache tool output. Stats are
// taken just before the cache is cleared.
type ClearCacheResponse struct {
	Cleared bool        `json:"cleared"`
	Stats   cache.Stats `json:"stats"`
}

// MCPServerConfig identifies the server to MCP clients.
type MCPServerConfig struct {
	Name    string
	Version string
}

// DefaultMCPServerConfig returns the default server identity.
func DefaultMCPServerConfig() *MCPServerConfig {
	return &MCPServerConfig{
		Name:    "cortex-outline",
		Version: "1.0.0",
	}
}
