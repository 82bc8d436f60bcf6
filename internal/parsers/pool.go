package parsers

import (
	"runtime"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// parserPool keeps up to a fixed number of idle tree-sitter parsers for one
// grammar. Parsers hold C memory and have no finalizer, so every parser the
// pool lets go is closed explicitly: on overflow in put and in close.
// Safe for concurrent use.
type parserPool struct {
	lang *sitter.Language
	idle chan *sitter.Parser

	mu     sync.Mutex
	closed bool

	newParser   func() *sitter.Parser
	closeParser func(*sitter.Parser)
}

func newParserPool(lang *sitter.Language, size int) *parserPool {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	return &parserPool{
		lang:        lang,
		idle:        make(chan *sitter.Parser, size),
		newParser:   sitter.NewParser,
		closeParser: (*sitter.Parser).Close,
	}
}

// get returns an idle parser or creates one configured for the grammar.
func (p *parserPool) get() (*sitter.Parser, error) {
	select {
	case sp := <-p.idle:
		return sp, nil
	default:
	}
	sp := p.newParser()
	if err := sp.SetLanguage(p.lang); err != nil {
		p.closeParser(sp)
		return nil, err
	}
	return sp, nil
}

// put resets sp and keeps it for reuse, or closes it when the pool is full
// or closed. sp must not be used afterwards.
func (p *parserPool) put(sp *sitter.Parser) {
	if sp == nil {
		return
	}
	sp.Reset()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		p.closeParser(sp)
		return
	}
	select {
	case p.idle <- sp:
	default:
		p.closeParser(sp)
	}
}

// close releases every idle parser. Parsers checked out at the time are
// closed when they are returned.
func (p *parserPool) close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	for {
		select {
		case sp := <-p.idle:
			p.closeParser(sp)
		default:
			return
		}
	}
}

// parse runs one parse with a pooled parser. The caller owns the tree.
func (p *parserPool) parse(source []byte) (*sitter.Tree, error) {
	sp, err := p.get()
	if err != nil {
		return nil, err
	}
	defer p.put(sp)
	return sp.Parse(source, nil), nil
}
