package outline

// Implementation Plan:
// 1. Service owns one cache manager, one parser and one extraction pipeline
// 2. AnalyzeFile - resolve path, check ignore/kind/size, key by {abs}:{mtimeMillis}
// 3. AnalyzeContent - ad-hoc code keyed by hash(code):language
// 4. Summary/SummarizeContent - render the result, memoized per cache key
// 5. ClearCache/Close - drop cached and in-flight state

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/maypok86/otter"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mvp-joe/cortex-outline/internal/cache"
	"github.com/mvp-joe/cortex-outline/internal/extraction"
	"github.com/mvp-joe/cortex-outline/internal/parsers"
)

// DefaultMaxFileSize is the content ceiling. Larger inputs are rejected
// before they reach the parser.
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

// Config holds the tunables of a Service.
type Config struct {
	MaxEntries      int
	TTL             time.Duration
	MaxFileSize     int64
	Roots           []string
	Ignore          []string
	RenderCacheSize int
	RenderTTL       time.Duration
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() *Config {
	return &Config{
		MaxEntries:      cache.DefaultCapacity,
		TTL:             cache.DefaultTTL,
		MaxFileSize:     DefaultMaxFileSize,
		RenderCacheSize: 256,
		RenderTTL:       5 * time.Minute,
	}
}

type serviceOptions struct {
	logger     *slog.Logger
	parser     extraction.SourceParser
	registerer prometheus.Registerer
	clock      func() time.Time
}

// Option configures a Service.
type Option func(*serviceOptions)

// WithLogger sets the logger shared by the service, its cache and pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// WithParser replaces the tree-sitter parser.
func WithParser(parser extraction.SourceParser) Option {
	return func(o *serviceOptions) {
		o.parser = parser
	}
}

// WithRegisterer registers cache metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *serviceOptions) {
		o.registerer = reg
	}
}

// WithClock replaces time.Now for cache expiry.
func WithClock(now func() time.Time) Option {
	return func(o *serviceOptions) {
		o.clock = now
	}
}

// Service is the file-facing entry point. It is constructed once per
// process and shared by every request path.
type Service struct {
	config   *Config
	parser   extraction.SourceParser
	pipeline *extraction.Pipeline
	cache    *cache.Cache[*extraction.ParseResult]
	rendered otter.Cache[string, string]
	resolver *resolver
	logger   *slog.Logger

	// closer releases the parser when the service created it.
	closer io.Closer
}

// NewService creates a Service. A nil config uses DefaultConfig.
func NewService(config *Config, opts ...Option) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}

	o := serviceOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	var closer io.Closer
	if o.parser == nil {
		p := parsers.NewParser(parsers.WithLogger(o.logger))
		o.parser, closer = p, p
	}

	res, err := newResolver(config.Roots, config.Ignore)
	if err != nil {
		return nil, err
	}

	cacheOpts := []cache.Option{
		cache.WithCapacity(config.MaxEntries),
		cache.WithTTL(config.TTL),
		cache.WithLogger(o.logger),
		cache.WithClock(o.clock),
	}
	if o.registerer != nil {
		cacheOpts = append(cacheOpts, cache.WithMetrics(cache.NewMetrics(o.registerer)))
	}

	renderSize := config.RenderCacheSize
	if renderSize <= 0 {
		renderSize = DefaultConfig().RenderCacheSize
	}
	renderTTL := config.RenderTTL
	if renderTTL <= 0 {
		renderTTL = DefaultConfig().RenderTTL
	}
	rendered, err := otter.MustBuilder[string, string](renderSize).
		WithTTL(renderTTL).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create render cache: %w", err)
	}

	return &Service{
		config:   config,
		parser:   o.parser,
		pipeline: extraction.NewPipeline(o.logger),
		cache:    cache.New[*extraction.ParseResult](cacheOpts...),
		rendered: rendered,
		resolver: res,
		logger:   o.logger,
		closer:   closer,
	}, nil
}

// AnalyzeFile returns the facts of the file at path. Repeated calls for an
// unchanged file are served from the cache; concurrent calls share one
// parse.
func (s *Service) AnalyzeFile(ctx context.Context, path string) (*extraction.ParseResult, error) {
	_, _, result, err := s.analyzeFile(ctx, path)
	return result, err
}

// Resolve returns the absolute path AnalyzeFile would read for path, trying
// the same candidates and applying the same ignore patterns.
func (s *Service) Resolve(path string) (string, error) {
	f, err := s.resolver.resolve(path)
	if err != nil {
		return "", err
	}
	return f.path, nil
}

// AnalyzeContent returns the facts of code, whose kind is taken from
// filename. The file need not exist.
func (s *Service) AnalyzeContent(ctx context.Context, code []byte, filename string) (*extraction.ParseResult, error) {
	_, result, err := s.analyzeContent(ctx, code, filename)
	return result, err
}

// Summary returns the rendered outline of the file at path.
func (s *Service) Summary(ctx context.Context, path string) (string, error) {
	key, abs, result, err := s.analyzeFile(ctx, path)
	if err != nil {
		return "", err
	}
	return s.render(key, abs, result), nil
}

// SummarizeContent returns the rendered outline of ad-hoc code.
func (s *Service) SummarizeContent(ctx context.Context, code []byte, filename string) (string, error) {
	key, result, err := s.analyzeContent(ctx, code, filename)
	if err != nil {
		return "", err
	}
	return s.render(key+"|"+filename, filename, result), nil
}

// ClearCache drops every cached result and rendered summary.
func (s *Service) ClearCache() {
	s.cache.Clear()
	s.rendered.Clear()
	s.logger.Info("structure cache cleared")
}

// Stats returns the cache counters.
func (s *Service) Stats() cache.Stats {
	return s.cache.Stats()
}

// Close clears all state and releases the render memo and the parser the
// service created. A parser supplied through WithParser stays open.
func (s *Service) Close() error {
	s.cache.Clear()
	s.rendered.Close()
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

func (s *Service) analyzeFile(ctx context.Context, path string) (key, abs string, result *extraction.ParseResult, err error) {
	if err := ctx.Err(); err != nil {
		return "", "", nil, err
	}
	f, err := s.resolver.resolve(path)
	if err != nil {
		return "", "", nil, err
	}
	if _, err := extraction.DetectKind(f.path); err != nil {
		return "", "", nil, err
	}
	if err := s.checkSize(f.path, f.info.Size()); err != nil {
		return "", "", nil, err
	}

	key = cache.FileKey(f.path, f.info.ModTime().UnixMilli())
	result, err = s.cache.GetOrCompute(key, func() (*extraction.ParseResult, error) {
		start := time.Now()
		code, err := os.ReadFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", extraction.ErrNotFound, path, err)
		}
		if err := s.checkSize(f.path, int64(len(code))); err != nil {
			return nil, err
		}
		// The computation is shared by every waiter on key and runs to
		// completion even if this caller goes away.
		result, err := s.pipeline.Analyze(context.WithoutCancel(ctx), s.parser, code, f.path)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("analyzed file",
			slog.String("path", f.path),
			slog.String("language", result.Language),
			slog.Duration("duration", time.Since(start)))
		return result, nil
	})
	if err != nil {
		return "", "", nil, err
	}
	return key, f.path, result, nil
}

func (s *Service) analyzeContent(ctx context.Context, code []byte, filename string) (string, *extraction.ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	kind, err := extraction.DetectKind(filename)
	if err != nil {
		return "", nil, err
	}
	if err := s.checkSize(filename, int64(len(code))); err != nil {
		return "", nil, err
	}

	key := cache.Hash(code) + ":" + kind.Language
	result, err := s.cache.GetOrCompute(key, func() (*extraction.ParseResult, error) {
		return s.pipeline.Analyze(context.WithoutCancel(ctx), s.parser, code, filename)
	})
	if err != nil {
		return "", nil, err
	}
	return key, result, nil
}

func (s *Service) render(key, name string, result *extraction.ParseResult) string {
	if text, ok := s.rendered.Get(key); ok {
		return text
	}
	text := Render(name, result)
	s.rendered.Set(key, text)
	return text
}

func (s *Service) checkSize(name string, size int64) error {
	if size > s.maxFileSize() {
		return fmt.Errorf("%w: %s is %d bytes (limit %d)", extraction.ErrTooLarge, name, size, s.maxFileSize())
	}
	return nil
}

// maxFileSize returns the configured ceiling, which may only lower the
// default.
func (s *Service) maxFileSize() int64 {
	if s.config.MaxFileSize <= 0 || s.config.MaxFileSize > DefaultMaxFileSize {
		return DefaultMaxFileSize
	}
	return s.config.MaxFileSize
}
