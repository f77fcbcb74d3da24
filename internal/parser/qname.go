package parser

import (
	"github.com/oxhq/xpathlang/internal/lexer"
	"github.com/oxhq/xpathlang/internal/xstypes"
)

// parseQName parses `local` or `prefix:local`, resolving prefix against the
// parser's in-scope namespace bindings (spec.md §4.4: QNames resolve at
// parse time against the static namespace context).
func (p *Parser) parseQName() (xstypes.QName, error) {
	first, err := p.expect(lexer.Identifier)
	if err != nil {
		return xstypes.QName{}, err
	}
	if !p.accept(lexer.Colon) {
		return xstypes.QName{Local: first.Lexeme}, nil
	}
	local, err := p.expect(lexer.Identifier)
	if err != nil {
		return xstypes.QName{}, err
	}
	return xstypes.QName{
		Prefix:    first.Lexeme,
		Local:     local.Lexeme,
		Namespace: p.namespaces[first.Lexeme],
	}, nil
}

// parseNameOrWildcardPair parses the (namespace-test, local-test) pair used
// by NodeTest name tests: `prefix:local`, `*:local`, `prefix:*`, or a bare
// `local` / `*`. Returns (namespacePrefix, wildcardNamespace, local,
// wildcardLocal).
func (p *Parser) parseNameOrWildcardPair() (nsPrefix string, wildcardNS bool, local string, wildcardLocal bool, err error) {
	if p.accept(lexer.Star) {
		wildcardNS = true
		if p.accept(lexer.Colon) {
			if p.accept(lexer.Star) {
				return "", true, "", true, nil
			}
			tok, e := p.expect(lexer.Identifier)
			if e != nil {
				return "", false, "", false, e
			}
			return "", true, tok.Lexeme, false, nil
		}
		// bare `*`: matches any name in any namespace.
		return "", true, "", true, nil
	}

	first, e := p.expect(lexer.Identifier)
	if e != nil {
		return "", false, "", false, e
	}
	if !p.accept(lexer.Colon) {
		return "", false, first.Lexeme, false, nil
	}
	if p.accept(lexer.Star) {
		return first.Lexeme, false, "", true, nil
	}
	tok, e := p.expect(lexer.Identifier)
	if e != nil {
		return "", false, "", false, e
	}
	return first.Lexeme, false, tok.Lexeme, false, nil
}
