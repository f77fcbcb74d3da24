package parser

import (
	"github.com/oxhq/xpathlang/internal/ast"
	"github.com/oxhq/xpathlang/internal/lexer"
)

// parseSingleType parses the SingleType production used by cast/castable:
// an AtomicType name with an optional trailing `?`.
func (p *Parser) parseSingleType() (name string, optional bool, err error) {
	q, err := p.parseQName()
	if err != nil {
		return "", false, err
	}
	if p.accept(lexer.Question) {
		optional = true
	}
	return q.Local, optional, nil
}

// parseSequenceType parses the SequenceType production used by instance
// of/treat as: `empty-sequence()` or an ItemType with an optional
// occurrence indicator.
func (p *Parser) parseSequenceType() (ast.SequenceType, error) {
	if p.atKeyword("empty-sequence") && p.peekAt(1).Kind == lexer.LParen {
		p.advance()
		p.advance()
		if _, err := p.expect(lexer.RParen); err != nil {
			return ast.SequenceType{}, err
		}
		return ast.SequenceType{EmptySequence: true}, nil
	}

	item, err := p.parseItemType()
	if err != nil {
		return ast.SequenceType{}, err
	}
	occ := ast.OccOne
	switch {
	case p.accept(lexer.Question):
		occ = ast.OccOptional
	case p.accept(lexer.Star):
		occ = ast.OccZeroOrMore
	case p.accept(lexer.Plus):
		occ = ast.OccOneOrMore
	}
	return ast.SequenceType{Item: item, Occurrence: occ}, nil
}

// parseItemType parses a single ItemType: a kind test, `item()`, a
// function/map/array test, a parenthesized union, or an atomic type name.
func (p *Parser) parseItemType() (ast.ItemType, error) {
	if p.accept(lexer.LParen) {
		first, err := p.parseItemType()
		if err != nil {
			return ast.ItemType{}, err
		}
		members := []ast.ItemType{first}
		for p.at(lexer.Pipe) {
			p.advance()
			m, err := p.parseItemType()
			if err != nil {
				return ast.ItemType{}, err
			}
			members = append(members, m)
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return ast.ItemType{}, err
		}
		if len(members) == 1 {
			return members[0], nil
		}
		return ast.NewUnionItemType(members...), nil
	}

	if p.cur().Kind == lexer.Identifier && p.peekAt(1).Kind == lexer.LParen {
		word := p.cur().Lexeme
		if word == "item" {
			p.advance()
			p.advance()
			if _, err := p.expect(lexer.RParen); err != nil {
				return ast.ItemType{}, err
			}
			return ast.ItemType{Kind: ast.ItemAny}, nil
		}
		if kind, ok := kindTestKeywords[word]; ok {
			test, err := p.parseKindTest(kind)
			if err != nil {
				return ast.ItemType{}, err
			}
			return ast.ItemType{Kind: ast.ItemKindTest, Test: test}, nil
		}
		if word == "function" {
			return p.parseFunctionTest()
		}
		if word == "map" {
			return p.parseMapTest()
		}
		if word == "array" {
			return p.parseArrayTest()
		}
	}

	name, err := p.parseQName()
	if err != nil {
		return ast.ItemType{}, err
	}
	return ast.ItemType{Kind: ast.ItemAtomic, AtomicName: name.Local}, nil
}

func (p *Parser) parseFunctionTest() (ast.ItemType, error) {
	p.advance() // "function"
	if _, err := p.expect(lexer.LParen); err != nil {
		return ast.ItemType{}, err
	}
	if p.accept(lexer.Star) {
		if _, err := p.expect(lexer.RParen); err != nil {
			return ast.ItemType{}, err
		}
		return ast.ItemType{Kind: ast.ItemFunctionTest}, nil
	}
	for !p.at(lexer.RParen) {
		if _, err := p.parseSequenceType(); err != nil {
			return ast.ItemType{}, err
		}
		if !p.accept(lexer.Comma) {
			break
		}
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return ast.ItemType{}, err
	}
	if p.acceptKeyword("as") {
		if _, err := p.parseSequenceType(); err != nil {
			return ast.ItemType{}, err
		}
	}
	return ast.ItemType{Kind: ast.ItemFunctionTest}, nil
}

func (p *Parser) parseMapTest() (ast.ItemType, error) {
	p.advance() // "map"
	if _, err := p.expect(lexer.LParen); err != nil {
		return ast.ItemType{}, err
	}
	if !p.accept(lexer.Star) {
		if _, err := p.parseQName(); err != nil {
			return ast.ItemType{}, err
		}
		if _, err := p.expect(lexer.Comma); err != nil {
			return ast.ItemType{}, err
		}
		if _, err := p.parseSequenceType(); err != nil {
			return ast.ItemType{}, err
		}
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return ast.ItemType{}, err
	}
	return ast.ItemType{Kind: ast.ItemMapTest}, nil
}

func (p *Parser) parseArrayTest() (ast.ItemType, error) {
	p.advance() // "array"
	if _, err := p.expect(lexer.LParen); err != nil {
		return ast.ItemType{}, err
	}
	if !p.accept(lexer.Star) {
		if _, err := p.parseSequenceType(); err != nil {
			return ast.ItemType{}, err
		}
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return ast.ItemType{}, err
	}
	return ast.ItemType{Kind: ast.ItemArrayTest}, nil
}
