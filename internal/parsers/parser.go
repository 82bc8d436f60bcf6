package parsers

import (
	"context"
	"fmt"
	"log/slog"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tshtml "github.com/tree-sitter/tree-sitter-html/bindings/go"
	tsjavascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/mvp-joe/cortex-outline/internal/extraction"
	"github.com/mvp-joe/cortex-outline/internal/syntax"
)

// Grammar names.
const (
	grammarTypeScript = "typescript"
	grammarTSX        = "tsx"
	grammarJavaScript = "javascript"
	grammarHTML       = "html"
)

// grammarFor maps a language tag to the grammar that parses it.
var grammarFor = map[string]string{
	extraction.LanguageTypeScript: grammarTypeScript,
	extraction.LanguageTSX:        grammarTSX,
	extraction.LanguageJavaScript: grammarJavaScript,
	extraction.LanguageJSX:        grammarJavaScript,
	extraction.LanguageVue:        grammarHTML,
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for parse diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Parser is the tree-sitter backed source parser for the supported
// JavaScript, TypeScript and Vue file kinds. It implements
// extraction.SourceParser and is safe for concurrent use.
type Parser struct {
	pools  map[string]*parserPool
	logger *slog.Logger
}

// NewParser creates a parser with one parser pool per grammar.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		pools: map[string]*parserPool{
			grammarTypeScript: newParserPool(sitter.NewLanguage(typescript.LanguageTypescript()), 0),
			grammarTSX:        newParserPool(sitter.NewLanguage(typescript.LanguageTSX()), 0),
			grammarJavaScript: newParserPool(sitter.NewLanguage(tsjavascript.Language()), 0),
			grammarHTML:       newParserPool(sitter.NewLanguage(tshtml.Language()), 0),
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Close releases the pooled parsers. Parses still running finish normally
// and their parsers are closed on return.
func (p *Parser) Close() error {
	for _, pool := range p.pools {
		pool.close()
	}
	return nil
}

// Parse parses code according to the kind of filename. Vue single-file
// components are split into their script and template blocks; the script
// becomes the tree root and template occurrences are reported alongside.
func (p *Parser) Parse(ctx context.Context, code []byte, filename string) (*syntax.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled before start: %w", err)
	}

	kind, err := extraction.DetectKind(filename)
	if err != nil {
		return nil, err
	}

	if kind.Component {
		return p.parseComponent(code, filename)
	}

	root, err := p.parseScript(grammarFor[kind.Language], code, offset{})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", extraction.ErrParseFailure, filename, err)
	}
	return &syntax.Tree{Root: root, Language: kind.Language}, nil
}

// parseScript parses a JavaScript/TypeScript source buffer and converts it.
func (p *Parser) parseScript(grammar string, code []byte, at offset) (*syntax.Node, error) {
	pool, ok := p.pools[grammar]
	if !ok {
		return nil, fmt.Errorf("no grammar %q", grammar)
	}
	tree, err := pool.parse(code)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, fmt.Errorf("%s grammar produced no tree", grammar)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		p.logger.Debug("syntax errors in source", slog.String("grammar", grammar))
	}
	return convert(root, string(code), at), nil
}
