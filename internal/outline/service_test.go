package outline

// Test Plan for Service:
// - AnalyzeFile rejects empty paths with ErrInvalidArgument
// - AnalyzeFile reports ErrNotFound for missing and ignored files
// - AnalyzeFile reports ErrUnsupportedKind before reading the file
// - AnalyzeFile reports ErrTooLarge above the ceiling, and the ceiling cannot be raised
// - AnalyzeFile resolves relative paths against configured roots
// - Repeated AnalyzeFile calls for an unchanged file parse once
// - Modifying a file (new mtime) produces a new cache key and a fresh parse
// - Concurrent AnalyzeFile calls share one parse
// - Parse failures are returned and not cached
// - AnalyzeContent keys by content hash and language
// - Summary renders and memoizes; ClearCache forces a re-parse
// - A canceled context fails before any parse
// - Resolve tries configured roots and honours ignore patterns
// - Close leaves a parser supplied through WithParser open
// - End-to-end with the tree-sitter parser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/cortex-outline/internal/extraction"
	"github.com/mvp-joe/cortex-outline/internal/syntax"
)

// fakeParser returns a fixed single-function tree and counts invocations.
type fakeParser struct {
	calls atomic.Int32
	err   error
	block chan struct{}
}

func (p *fakeParser) Parse(ctx context.Context, code []byte, filename string) (*syntax.Tree, error) {
	p.calls.Add(1)
	if p.block != nil {
		<-p.block
	}
	if p.err != nil {
		return nil, p.err
	}
	pt := syntax.Point{}
	fn := syntax.NewNode("function_declaration", string(code), pt, syntax.Point{Row: 0, Column: uint(len(code))},
		syntax.NewNode("function", "function", pt, pt),
		syntax.NewNode("identifier", "f", pt, pt),
		syntax.NewNode("formal_parameters", "()", pt, pt),
	)
	return &syntax.Tree{Root: syntax.NewNode("program", string(code), pt, fn.EndPosition(), fn)}, nil
}

func newTestService(t *testing.T, config *Config, parser extraction.SourceParser) *Service {
	t.Helper()
	svc, err := NewService(config, WithParser(parser), WithRegisterer(prometheus.NewRegistry()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestService_AnalyzeFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "hello")
	writeFile(t, dir, "node_modules/lib/index.ts", "function f() {}")

	config := DefaultConfig()
	config.Ignore = []string{"**/node_modules/**"}
	svc := newTestService(t, config, &fakeParser{})
	ctx := context.Background()

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "empty path", path: "", wantErr: extraction.ErrInvalidArgument},
		{name: "whitespace path", path: "   ", wantErr: extraction.ErrInvalidArgument},
		{name: "missing file", path: filepath.Join(dir, "missing.ts"), wantErr: extraction.ErrNotFound},
		{name: "directory", path: dir, wantErr: extraction.ErrNotFound},
		{name: "ignored file", path: filepath.Join(dir, "node_modules/lib/index.ts"), wantErr: extraction.ErrNotFound},
		{name: "unsupported kind", path: filepath.Join(dir, "notes.txt"), wantErr: extraction.ErrUnsupportedKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AnalyzeFile(ctx, tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Equal(t, 0, svc.Stats().Entries, "failed requests never populate the cache")
}

func TestService_TooLarge(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "big.ts", "const x = 1234567890")

	config := DefaultConfig()
	config.MaxFileSize = 10
	svc := newTestService(t, config, &fakeParser{})

	_, err := svc.AnalyzeFile(context.Background(), path)
	assert.ErrorIs(t, err, extraction.ErrTooLarge)

	_, err = svc.AnalyzeContent(context.Background(), []byte("const x = 1234567890"), "big.ts")
	assert.ErrorIs(t, err, extraction.ErrTooLarge)
}

func TestService_MaxFileSizeCannotExceedCeiling(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	config.MaxFileSize = 100 * 1024 * 1024
	svc := newTestService(t, config, &fakeParser{})

	assert.Equal(t, DefaultMaxFileSize, svc.maxFileSize())

	big := make([]byte, DefaultMaxFileSize+1)
	_, err := svc.AnalyzeContent(context.Background(), big, "big.js")
	assert.ErrorIs(t, err, extraction.ErrTooLarge)
}

func TestService_ResolvesAgainstRoots(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "src/app.ts", "function f() {}")

	config := DefaultConfig()
	config.Roots = []string{root}
	parser := &fakeParser{}
	svc := newTestService(t, config, parser)

	result, err := svc.AnalyzeFile(context.Background(), "src/app.ts")
	require.NoError(t, err)
	require.Len(t, result.Functions, 1)
	assert.Equal(t, "f", result.Functions[0].Name)
	assert.Equal(t, extraction.LanguageTypeScript, result.Language)
}

func TestService_CachesUnchangedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.ts", "function f() {}")

	parser := &fakeParser{}
	svc := newTestService(t, DefaultConfig(), parser)
	ctx := context.Background()

	first, err := svc.AnalyzeFile(ctx, path)
	require.NoError(t, err)
	second, err := svc.AnalyzeFile(ctx, path)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), parser.calls.Load())

	// A new modification time is a new key.
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))
	_, err = svc.AnalyzeFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, int32(2), parser.calls.Load())
}

func TestService_ConcurrentRequestsShareParse(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.js", "function f() {}")

	parser := &fakeParser{block: make(chan struct{})}
	svc := newTestService(t, DefaultConfig(), parser)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]*extraction.ParseResult, callers)
	for i := range callers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := svc.AnalyzeFile(context.Background(), path)
			assert.NoError(t, err)
			results[i] = r
		}(i)
	}

	require.Eventually(t, func() bool { return parser.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(parser.block)
	wg.Wait()

	assert.Equal(t, int32(1), parser.calls.Load())
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

func TestService_ParseFailureNotCached(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.ts", "function f() {}")

	parser := &fakeParser{err: errors.New("grammar exploded")}
	svc := newTestService(t, DefaultConfig(), parser)

	_, err := svc.AnalyzeFile(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, extraction.ErrParseFailure)

	_, err = svc.AnalyzeFile(context.Background(), path)
	require.Error(t, err)
	assert.Equal(t, int32(2), parser.calls.Load(), "a failed parse must not poison the key")
	assert.Equal(t, 0, svc.Stats().Entries)
}

func TestService_AnalyzeContent(t *testing.T) {
	t.Parallel()

	parser := &fakeParser{}
	svc := newTestService(t, DefaultConfig(), parser)
	ctx := context.Background()

	_, err := svc.AnalyzeContent(ctx, []byte("x"), "")
	assert.ErrorIs(t, err, extraction.ErrInvalidArgument)

	_, err = svc.AnalyzeContent(ctx, []byte("x"), "a.py")
	assert.ErrorIs(t, err, extraction.ErrUnsupportedKind)

	_, err = svc.AnalyzeContent(ctx, []byte("function f() {}"), "a.ts")
	require.NoError(t, err)
	_, err = svc.AnalyzeContent(ctx, []byte("function f() {}"), "b.mts")
	require.NoError(t, err)
	assert.Equal(t, int32(1), parser.calls.Load(), "same content and language share a key")

	_, err = svc.AnalyzeContent(ctx, []byte("function f() {}"), "a.js")
	require.NoError(t, err)
	assert.Equal(t, int32(2), parser.calls.Load(), "language is part of the key")
}

func TestService_SummaryAndClear(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.ts", "function f() {}")

	parser := &fakeParser{}
	svc := newTestService(t, DefaultConfig(), parser)
	ctx := context.Background()

	text, err := svc.Summary(ctx, path)
	require.NoError(t, err)
	assert.Contains(t, text, "File: "+path+" (typescript)")
	assert.Contains(t, text, "Functions (1):")

	again, err := svc.Summary(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, text, again)
	assert.Equal(t, int32(1), parser.calls.Load())

	svc.ClearCache()
	assert.Equal(t, 0, svc.Stats().Entries)

	_, err = svc.Summary(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, int32(2), parser.calls.Load())
}

func TestService_TreeSitterEndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "math.ts", `import { a, b as c } from "x"

export function add(a: number, b: number): number {
  return a + b
}
`)

	svc, err := NewService(nil)
	require.NoError(t, err)
	defer svc.Close()

	result, err := svc.AnalyzeFile(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, result.Imports, 1)
	assert.Equal(t, "x", result.Imports[0].Source)
	assert.Equal(t, []string{"a", "c"}, result.Imports[0].Names)

	require.Len(t, result.Functions, 1)
	fn := result.Functions[0]
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, []string{"a", "b"}, fn.Parameters)
	assert.Equal(t, "number", fn.ReturnType)
	assert.Equal(t, uint(2), fn.Start.Row, "rows are reported as the parser emits them")

	require.Len(t, result.Exports, 1)
	assert.Equal(t, extraction.ExportInfo{
		Name:     "add",
		Kind:     extraction.ExportFunction,
		Location: result.Exports[0].Location,
	}, result.Exports[0])

	text, err := svc.Summary(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, text, "add(a, b): number <function_declaration> [2:7-4:1]")
}

func TestService_CanceledContextSkipsParse(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.ts", "function f() {}")
	parser := &fakeParser{}
	svc := newTestService(t, nil, parser)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.AnalyzeFile(ctx, path)
	require.ErrorIs(t, err, context.Canceled)
	_, err = svc.AnalyzeContent(ctx, []byte("function f() {}"), "a.ts")
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, parser.calls.Load())
}

func TestService_ResolveUsesRoots(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	want := writeFile(t, root, "pkg/only-under-root.ts", "export const a = 1\n")
	writeFile(t, root, "node_modules/dep/index.ts", "export const b = 2\n")

	config := DefaultConfig()
	config.Roots = []string{root}
	config.Ignore = []string{"**/node_modules/**"}
	svc := newTestService(t, config, &fakeParser{})

	got, err := svc.Resolve(filepath.Join("pkg", "only-under-root.ts"))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = svc.Resolve(filepath.Join("node_modules", "dep", "index.ts"))
	require.ErrorIs(t, err, extraction.ErrNotFound)

	_, err = svc.Resolve("")
	require.ErrorIs(t, err, extraction.ErrInvalidArgument)
}

// closingParser records whether the service closed it.
type closingParser struct {
	fakeParser
	closed atomic.Bool
}

func (p *closingParser) Close() error {
	p.closed.Store(true)
	return nil
}

func TestService_CloseLeavesInjectedParserOpen(t *testing.T) {
	t.Parallel()

	parser := &closingParser{}
	svc, err := NewService(nil, WithParser(parser), WithRegisterer(prometheus.NewRegistry()))
	require.NoError(t, err)
	require.NoError(t, svc.Close())
	assert.False(t, parser.closed.Load())
}
