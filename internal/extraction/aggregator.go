package extraction

import (
	"context"
	"errors"
	"fmt"

	"github.com/mvp-joe/cortex-outline/internal/syntax"
)

// SourceParser turns raw source into a syntax tree. It is the grammar-level
// collaborator of the pipeline; failures should wrap ErrParseFailure.
type SourceParser interface {
	Parse(ctx context.Context, code []byte, filename string) (*syntax.Tree, error)
}

// Analyze resolves the file kind, parses the code and runs every extractor
// applicable to that kind. The kind check happens before any parsing.
func (p *Pipeline) Analyze(ctx context.Context, parser SourceParser, code []byte, filename string) (*ParseResult, error) {
	kind, err := DetectKind(filename)
	if err != nil {
		return nil, err
	}

	tree, err := parser.Parse(ctx, code, filename)
	if err != nil {
		if errors.Is(err, ErrParseFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrParseFailure, filename, err)
	}
	if tree == nil || tree.Root == nil {
		return nil, fmt.Errorf("%w: %s: parser returned no tree", ErrParseFailure, filename)
	}

	return p.Extract(kind, tree), nil
}

// Extract assembles one ParseResult from an already parsed tree.
func (p *Pipeline) Extract(kind FileKind, tree *syntax.Tree) *ParseResult {
	language := tree.Language
	if language == "" {
		language = kind.Language
	}

	root := tree.Root
	result := &ParseResult{
		Language:  language,
		Functions: p.Functions(root),
		Classes:   p.Classes(root),
		Variables: p.Variables(root),
		Imports:   p.Imports(root),
		Exports:   p.Exports(root),
		Types:     p.Types(root),
	}
	if kind.Component {
		result.Template = p.Template(tree.Template)
		result.Options = p.Options(root)
	}
	return result
}
