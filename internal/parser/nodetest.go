package parser

import (
	"github.com/oxhq/xpathlang/internal/ast"
	"github.com/oxhq/xpathlang/internal/lexer"
)

// kindTestKeywords are the NCNames that introduce a kind test when
// immediately followed by `(` (spec.md §3, "NodeTest: kind tests").
var kindTestKeywords = map[string]ast.TestKind{
	"node":                   ast.TestNodeKind,
	"text":                   ast.TestText,
	"comment":                ast.TestComment,
	"processing-instruction": ast.TestPI,
	"element":                ast.TestElement,
	"attribute":              ast.TestAttribute,
	"document-node":          ast.TestDocument,
}

// parseNodeTest parses the NodeTest following an (already-consumed) axis
// specifier: a kind test, a wildcard, or a (possibly wildcarded) name test.
func (p *Parser) parseNodeTest(axis ast.Axis) (ast.NodeTest, error) {
	if p.cur().Kind == lexer.Identifier && p.peekAt(1).Kind == lexer.LParen {
		if kind, ok := kindTestKeywords[p.cur().Lexeme]; ok {
			return p.parseKindTest(kind)
		}
	}

	nsPrefix, wildcardNS, local, wildcardLocal, err := p.parseNameOrWildcardPair()
	if err != nil {
		return ast.NodeTest{}, err
	}
	if wildcardNS && wildcardLocal {
		return ast.NodeTest{Kind: ast.TestWildcard}, nil
	}
	return ast.NodeTest{
		Kind:              ast.TestName,
		Namespace:         p.namespaces[nsPrefix],
		Local:             local,
		WildcardNamespace: wildcardNS,
		WildcardLocal:     wildcardLocal,
	}, nil
}

func (p *Parser) parseKindTest(kind ast.TestKind) (ast.NodeTest, error) {
	p.advance() // keyword
	if _, err := p.expect(lexer.LParen); err != nil {
		return ast.NodeTest{}, err
	}
	test := ast.NodeTest{Kind: kind}

	switch kind {
	case ast.TestPI:
		if p.at(lexer.Identifier) || p.at(lexer.String) {
			test.PITarget = p.advance().Lexeme
		}
	case ast.TestElement, ast.TestAttribute:
		if !p.at(lexer.RParen) {
			if p.accept(lexer.Star) {
				test.WildcardLocal = true
			} else {
				name, err := p.parseQName()
				if err != nil {
					return ast.NodeTest{}, err
				}
				test.Local = name.Local
			}
			if p.accept(lexer.Comma) {
				typeName, err := p.parseQName()
				if err != nil {
					return ast.NodeTest{}, err
				}
				test.TypeName = typeName.Local
			}
		}
	case ast.TestDocument:
		// document-node(element(...)?) — the optional inner element test is
		// accepted but not separately modeled; document-node() alone already
		// restricts matches to document nodes.
		if !p.at(lexer.RParen) {
			if err := p.skipBalancedParens(); err != nil {
				return ast.NodeTest{}, err
			}
		}
	}

	if _, err := p.expect(lexer.RParen); err != nil {
		return ast.NodeTest{}, err
	}
	return test, nil
}

// skipBalancedParens consumes tokens up to (but not including) the RParen
// that closes the already-open paren group the caller is inside of.
func (p *Parser) skipBalancedParens() error {
	depth := 0
	for {
		switch p.cur().Kind {
		case lexer.EOF:
			return p.errorf("unexpected end of input inside parenthesized group")
		case lexer.LParen:
			depth++
			p.advance()
		case lexer.RParen:
			if depth == 0 {
				return nil
			}
			depth--
			p.advance()
		default:
			p.advance()
		}
	}
}
