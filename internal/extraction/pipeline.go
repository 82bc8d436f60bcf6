package extraction

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mvp-joe/cortex-outline/internal/syntax"
)

// Pipeline runs the per-category extractors. Extractors are independent:
// each walks the whole tree on its own and never reads another's output.
// A Pipeline holds no mutable state and is safe for concurrent use.
type Pipeline struct {
	logger *slog.Logger
}

// NewPipeline creates a pipeline that reports extraction failures to logger.
// A nil logger falls back to slog.Default().
func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{logger: logger}
}

// collect walks root in the given order and applies step to every node
// whose kind is in kinds. A step that fails is logged and its node skipped.
func collect[T any](p *Pipeline, extractor string, root *syntax.Node, order syntax.Order, kinds syntax.KindSet, step func(*syntax.Node) []T) []T {
	out := make([]T, 0)
	syntax.Walk(root, order, func(n *syntax.Node) bool {
		if !kinds.Has(n.Kind()) {
			return true
		}
		p.guard(extractor, n, func() {
			out = append(out, step(n)...)
		})
		return true
	})
	return out
}

// optional adapts a single-fact step to the collect signature.
func optional[T any](parse func(*syntax.Node) (T, bool)) func(*syntax.Node) []T {
	return func(n *syntax.Node) []T {
		if fact, ok := parse(n); ok {
			return []T{fact}
		}
		return nil
	}
}

// guard runs fn and turns a panic into a logged ExtractionFailure.
func (p *Pipeline) guard(extractor string, n *syntax.Node, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: %v", ErrExtractionFailure, r)
			pos := n.StartPosition()
			p.logger.Warn("skipping node",
				slog.String("extractor", extractor),
				slog.String("kind", n.Kind()),
				slog.Uint64("row", uint64(pos.Row)),
				slog.Uint64("column", uint64(pos.Column)),
				slog.Any("error", err))
		}
	}()
	fn()
}

// annotationText returns the text of a type annotation without its leading
// ':' separator.
func annotationText(n *syntax.Node) string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(n.Text()), ":"))
}

// unquote strips surrounding quote characters from a string literal.
func unquote(s string) string {
	return strings.Trim(s, "\"'`")
}

// memberName returns the name of a method, field or object key node.
func memberName(n *syntax.Node) (string, bool) {
	key := n.FirstChildIn(memberNameKinds)
	if key == nil {
		return "", false
	}
	if key.Kind() == "string" {
		return unquote(key.Text()), true
	}
	return key.Text(), true
}
