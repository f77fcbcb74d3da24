// Package parser implements the recursive-descent, precedence-climbing
// XPath parser (spec.md §4.4): one grammar, version-gated by Features, with
// four constructors (NewV1/NewV2/NewV3/NewV31) composing the same
// productions over different flag sets rather than four separate grammars.
package parser

import (
	"github.com/oxhq/xpathlang/internal/ast"
	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/lexer"
	"github.com/oxhq/xpathlang/internal/warn"
	"github.com/oxhq/xpathlang/internal/xerrors"
)

// Parser parses XPath source text for one fixed language version.
type Parser struct {
	version    lexer.Version
	features   Features
	namespaces map[string]string
	warnings   warn.Collector
	static     *evalctx.Static
	opts       Options

	toks []lexer.Token
	pos  int
}

func newParser(version lexer.Version, features Features, opts Options) *Parser {
	features.EnableNamespaceAxis = opts.EnableNamespaceAxis
	return &Parser{
		version:    version,
		features:   features,
		namespaces: opts.namespaces(),
		warnings:   opts.warnings(),
		static:     opts.Static,
		opts:       opts,
	}
}

// NewV1 builds a Parser restricted to XPath 1.0 syntax.
func NewV1(opts Options) *Parser { return newParser(lexer.V1_0, featuresForVersion(lexer.V1_0), opts) }

// NewV2 builds a Parser for XPath 2.0 syntax (adds for/let/some/every,
// `to`, cast/castable/treat/instance of).
func NewV2(opts Options) *Parser { return newParser(lexer.V2_0, featuresForVersion(lexer.V2_0), opts) }

// NewV3 builds a Parser for XPath 3.0 syntax (adds `||`, `!`, `=>`, string
// templates, inline functions, named function references, switch).
func NewV3(opts Options) *Parser { return newParser(lexer.V3_0, featuresForVersion(lexer.V3_0), opts) }

// NewV31 builds a Parser for XPath 3.1 syntax (adds maps, arrays, lookup).
func NewV31(opts Options) *Parser {
	return newParser(lexer.V3_1, featuresForVersion(lexer.V3_1), opts)
}

// New builds a Parser for an explicit version, for callers that select the
// version dynamically (e.g. from a CLI flag) rather than at compile time.
func New(version lexer.Version, opts Options) *Parser {
	return newParser(version, featuresForVersion(version), opts)
}

// Parse lexes and parses src as a complete XPath expression, returning its
// AST root. A trailing, unconsumed token is a syntax error (XPST0003).
func (p *Parser) Parse(src string) (ast.Node, error) {
	toks, err := lexer.Lex(src, p.version, p.opts.lexerOptions())
	if err != nil {
		return nil, err
	}
	p.toks = toks
	p.pos = 0

	expr, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.EOF) {
		return nil, p.errorf("unexpected token %s after expression", p.cur().String())
	}
	return expr, nil
}

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.toks) {
		return lexer.Token{Kind: lexer.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(offset int) lexer.Token {
	i := p.pos + offset
	if i >= len(p.toks) || i < 0 {
		return lexer.Token{Kind: lexer.EOF}
	}
	return p.toks[i]
}

func (p *Parser) at(k lexer.Kind) bool { return p.cur().Kind == k }

func (p *Parser) atKeyword(word string) bool {
	return p.cur().Kind == lexer.Identifier && p.cur().Lexeme == word
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

// accept consumes and returns true if the current token has kind k.
func (p *Parser) accept(k lexer.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// acceptKeyword consumes an Identifier token whose lexeme is word (the
// lexer never emits keyword-kind tokens itself, per spec.md §4.2 — keyword
// status is entirely the parser's call, made here by checking both the
// lexeme and grammar position).
func (p *Parser) acceptKeyword(word string) bool {
	if p.atKeyword(word) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(k lexer.Kind) (lexer.Token, error) {
	if !p.at(k) {
		return lexer.Token{}, p.errorf("expected %s, got %s", k.String(), p.cur().String())
	}
	return p.advance(), nil
}

func (p *Parser) expectKeyword(word string) error {
	if !p.acceptKeyword(word) {
		return p.errorf("expected keyword %q, got %s", word, p.cur().String())
	}
	return nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return xerrors.New(xerrors.XPST0003, format, args...)
}
