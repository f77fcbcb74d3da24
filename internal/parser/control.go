package parser

import (
	"github.com/oxhq/xpathlang/internal/ast"
	"github.com/oxhq/xpathlang/internal/lexer"
)

// expectAssign consumes the `:=` used by let-bindings. The lexer has no
// dedicated token for it (the lexer's Colon/ColonColon disambiguation only
// looks one character ahead), so it lexes as adjacent Colon, Eq tokens.
func (p *Parser) expectAssign() error {
	if _, err := p.expect(lexer.Colon); err != nil {
		return err
	}
	if _, err := p.expect(lexer.Eq); err != nil {
		return err
	}
	return nil
}

func (p *Parser) parseBindingVar() (ast.Binding, error) {
	if _, err := p.expect(lexer.Dollar); err != nil {
		return ast.Binding{}, err
	}
	name, err := p.parseQName()
	if err != nil {
		return ast.Binding{}, err
	}
	return ast.Binding{Name: name}, nil
}

// parseFor parses `for $x in e (, $y in e)* return e`.
func (p *Parser) parseFor() (ast.Node, error) {
	p.advance() // "for"
	var bindings []ast.Binding
	for {
		b, err := p.parseBindingVar()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("in"); err != nil {
			return nil, err
		}
		expr, err := p.parseExprSingle()
		if err != nil {
			return nil, err
		}
		b.Expr = expr
		bindings = append(bindings, b)
		if !p.accept(lexer.Comma) {
			break
		}
	}
	if err := p.expectKeyword("return"); err != nil {
		return nil, err
	}
	ret, err := p.parseExprSingle()
	if err != nil {
		return nil, err
	}
	return &ast.For{Bindings: bindings, Return: ret}, nil
}

// parseLet parses `let $x := e (, $y := e)* return e`.
func (p *Parser) parseLet() (ast.Node, error) {
	p.advance() // "let"
	var bindings []ast.Binding
	for {
		b, err := p.parseBindingVar()
		if err != nil {
			return nil, err
		}
		if err := p.expectAssign(); err != nil {
			return nil, err
		}
		expr, err := p.parseExprSingle()
		if err != nil {
			return nil, err
		}
		b.Expr = expr
		bindings = append(bindings, b)
		if !p.accept(lexer.Comma) {
			break
		}
	}
	if err := p.expectKeyword("return"); err != nil {
		return nil, err
	}
	ret, err := p.parseExprSingle()
	if err != nil {
		return nil, err
	}
	return &ast.Let{Bindings: bindings, Return: ret}, nil
}

// parseQuantified parses `some|every $x in e (, $y in e)* satisfies e`.
func (p *Parser) parseQuantified() (ast.Node, error) {
	kind := ast.QuantifierSome
	if p.atKeyword("every") {
		kind = ast.QuantifierEvery
	}
	p.advance() // "some"/"every"
	var bindings []ast.Binding
	for {
		b, err := p.parseBindingVar()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("in"); err != nil {
			return nil, err
		}
		expr, err := p.parseExprSingle()
		if err != nil {
			return nil, err
		}
		b.Expr = expr
		bindings = append(bindings, b)
		if !p.accept(lexer.Comma) {
			break
		}
	}
	if err := p.expectKeyword("satisfies"); err != nil {
		return nil, err
	}
	satisfies, err := p.parseExprSingle()
	if err != nil {
		return nil, err
	}
	return &ast.Quantified{Kind: kind, Bindings: bindings, Satisfies: satisfies}, nil
}

// parseIf parses `if (e) then e else e`.
func (p *Parser) parseIf() (ast.Node, error) {
	p.advance() // "if"
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("then"); err != nil {
		return nil, err
	}
	then, err := p.parseExprSingle()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("else"); err != nil {
		return nil, err
	}
	els, err := p.parseExprSingle()
	if err != nil {
		return nil, err
	}
	return &ast.If{Cond: cond, Then: then, Else: els}, nil
}

// parseSwitch parses `switch (e) case c1 return r1 ... default return rd`,
// desugaring to a chain of value-compared If expressions (no dedicated
// switch AST node exists; the spec treats switch as cascaded equality
// dispatch over the same operand).
func (p *Parser) parseSwitch() (ast.Node, error) {
	p.advance() // "switch"
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	operand, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}

	type clause struct {
		tests []ast.Node
		ret   ast.Node
	}
	var clauses []clause
	for p.acceptKeyword("case") {
		var tests []ast.Node
		for {
			t, err := p.parseExprSingle()
			if err != nil {
				return nil, err
			}
			tests = append(tests, t)
			if !p.acceptKeyword("case") {
				break
			}
		}
		if err := p.expectKeyword("return"); err != nil {
			return nil, err
		}
		ret, err := p.parseExprSingle()
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause{tests: tests, ret: ret})
	}
	if err := p.expectKeyword("default"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("return"); err != nil {
		return nil, err
	}
	defaultRet, err := p.parseExprSingle()
	if err != nil {
		return nil, err
	}

	result := defaultRet
	for i := len(clauses) - 1; i >= 0; i-- {
		cl := clauses[i]
		var cond ast.Node = &ast.Comparison{Kind: ast.CompareValue, Op: ast.OpEq, Left: operand, Right: cl.tests[0]}
		for _, t := range cl.tests[1:] {
			eq := &ast.Comparison{Kind: ast.CompareValue, Op: ast.OpEq, Left: operand, Right: t}
			cond = &ast.Logical{Op: ast.OpOr, Left: cond, Right: eq}
		}
		result = &ast.If{Cond: cond, Then: cl.ret, Else: result}
	}
	return result, nil
}
