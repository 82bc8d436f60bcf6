package extraction

// Test Plan for Pipeline:
// - Analyze rejects unsupported kinds before invoking the parser
// - Parser errors surface as ErrParseFailure, including a nil tree
// - Script files get no template or options; components get both
// - The parser's language tag wins over the extension
// - A panicking step is logged, skipped, and the walk continues
// - Extraction of the same tree is deterministic

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/cortex-outline/internal/syntax"
)

type stubParser struct {
	tree  *syntax.Tree
	err   error
	calls int
}

func (s *stubParser) Parse(ctx context.Context, code []byte, filename string) (*syntax.Tree, error) {
	s.calls++
	return s.tree, s.err
}

func sampleModule() *syntax.Node {
	return program(
		node("import_statement", kw("import"),
			node("import_clause", ident("Vue")), kw("from"), tok("string", `"vue"`)),
		node("export_statement", kw("export"), kw("default"),
			node("call_expression", ident("defineComponent"), node("arguments", kw("("), object(
				pair("methods", object(method("save"))),
			), kw(")")))),
		node("function_declaration", kw("function"), ident("helper"), params("x"), node("statement_block")),
	)
}

func TestAnalyze_UnsupportedKindSkipsParser(t *testing.T) {
	t.Parallel()

	parser := &stubParser{}
	_, err := NewPipeline(nil).Analyze(context.Background(), parser, []byte("x"), "notes.md")
	require.ErrorIs(t, err, ErrUnsupportedKind)
	assert.Zero(t, parser.calls)
}

func TestAnalyze_ParseFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		parser *stubParser
	}{
		{name: "plain error", parser: &stubParser{err: errors.New("grammar exploded")}},
		{name: "wrapped sentinel", parser: &stubParser{err: ErrParseFailure}},
		{name: "nil tree", parser: &stubParser{}},
		{name: "nil root", parser: &stubParser{tree: &syntax.Tree{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := NewPipeline(nil).Analyze(context.Background(), tt.parser, []byte("x"), "a.ts")
			require.ErrorIs(t, err, ErrParseFailure)
			assert.Nil(t, result)
		})
	}
}

func TestAnalyze_ScriptHasNoComponentFacts(t *testing.T) {
	t.Parallel()

	parser := &stubParser{tree: &syntax.Tree{Root: sampleModule()}}
	result, err := NewPipeline(nil).Analyze(context.Background(), parser, []byte("x"), "a.ts")
	require.NoError(t, err)

	assert.Equal(t, LanguageTypeScript, result.Language)
	assert.Len(t, result.Imports, 1)
	assert.Len(t, result.Exports, 0, "an exported call expression is not a recognized export shape")
	assert.Nil(t, result.Template)
	assert.Nil(t, result.Options)
	assert.NotNil(t, result.Classes)
	assert.NotNil(t, result.Types)
	assert.NotNil(t, result.Variables)
}

func TestAnalyze_ComponentFacts(t *testing.T) {
	t.Parallel()

	parser := &stubParser{tree: &syntax.Tree{
		Root:     sampleModule(),
		Language: LanguageTypeScript,
		Template: []syntax.TemplateOccurrence{{Kind: syntax.OccurrenceEvent, Name: "click", Value: "save", HasValue: true, Element: "button"}},
	}}
	result, err := NewPipeline(nil).Analyze(context.Background(), parser, []byte("x"), "Form.vue")
	require.NoError(t, err)

	assert.Equal(t, LanguageTypeScript, result.Language)
	require.NotNil(t, result.Options)
	assert.Equal(t, []string{"save"}, result.Options.Methods)
	require.NotNil(t, result.Template)
	require.Len(t, result.Template.Events, 1)
	assert.Equal(t, "save", result.Template.Events[0].Handler)
}

func TestCollect_RecoversFromPanics(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewPipeline(slog.New(slog.NewTextHandler(&buf, nil)))

	root := program(at("identifier", 2, 4, 2, 7), ident("ok"), ident("boom"), ident("after"))
	got := collect(p, "test", root, syntax.DepthFirst, syntax.NewKindSet("identifier"), func(n *syntax.Node) []string {
		if n.Text() == "boom" {
			panic("bad node")
		}
		return []string{n.Text()}
	})

	assert.Equal(t, []string{"", "ok", "after"}, got)
	assert.Contains(t, buf.String(), "skipping node")
	assert.Contains(t, buf.String(), "extractor=test")
	assert.Contains(t, buf.String(), ErrExtractionFailure.Error())
}

func TestExtract_Deterministic(t *testing.T) {
	t.Parallel()

	p := NewPipeline(nil)
	tree := &syntax.Tree{Root: sampleModule()}
	kind, err := DetectKind("Form.vue")
	require.NoError(t, err)

	first := p.Extract(kind, tree)
	second := p.Extract(kind, tree)
	assert.Equal(t, first, second)
	assert.Equal(t, LanguageVue, first.Language)
}
