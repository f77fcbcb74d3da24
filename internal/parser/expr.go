package parser

import (
	"github.com/oxhq/xpathlang/internal/ast"
	"github.com/oxhq/xpathlang/internal/lexer"
)

// parseSequence parses the lowest-precedence `,` operator (spec.md §4.4:
// "`,` sequence" is the loosest-binding construct in the grammar).
func (p *Parser) parseSequence() (ast.Node, error) {
	first, err := p.parseExprSingle()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.Comma) {
		return first, nil
	}
	items := []ast.Node{first}
	for p.accept(lexer.Comma) {
		item, err := p.parseExprSingle()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return &ast.SequenceExpr{Items: items}, nil
}

// parseExprSingle dispatches to the keyword-introduced constructs (for,
// let, some/every, if, switch) or falls through to the operator
// precedence chain starting at `or`.
func (p *Parser) parseExprSingle() (ast.Node, error) {
	switch {
	case p.features.AllowForLetQuantified && p.atKeyword("for"):
		return p.parseFor()
	case p.features.AllowForLetQuantified && p.atKeyword("let"):
		return p.parseLet()
	case p.features.AllowForLetQuantified && (p.atKeyword("some") || p.atKeyword("every")):
		return p.parseQuantified()
	case p.atKeyword("if") && p.peekAt(1).Kind == lexer.LParen:
		return p.parseIf()
	case p.features.AllowSwitch && p.atKeyword("switch") && p.peekAt(1).Kind == lexer.LParen:
		return p.parseSwitch()
	default:
		return p.parseOr()
	}
}

func (p *Parser) parseOr() (ast.Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.acceptKeyword("or") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Logical{Op: ast.OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Node, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.acceptKeyword("and") {
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.Logical{Op: ast.OpAnd, Left: left, Right: right}
	}
	return left, nil
}

var generalCompareOps = map[lexer.Kind]ast.CompareOp{
	lexer.Eq: ast.OpEq, lexer.Ne: ast.OpNe,
	lexer.Lt: ast.OpLt, lexer.Le: ast.OpLe,
	lexer.Gt: ast.OpGt, lexer.Ge: ast.OpGe,
}

var valueCompareKeywords = map[string]ast.CompareOp{
	"eq": ast.OpEq, "ne": ast.OpNe, "lt": ast.OpLt, "le": ast.OpLe, "gt": ast.OpGt, "ge": ast.OpGe,
}

// parseComparison parses a single (non-chaining) comparison, per the
// XPath grammar's ComparisonExpr: StringConcatExpr (Comp StringConcatExpr)?
func (p *Parser) parseComparison() (ast.Node, error) {
	left, err := p.parseStringConcat()
	if err != nil {
		return nil, err
	}
	if op, ok := generalCompareOps[p.cur().Kind]; ok {
		p.advance()
		right, err := p.parseStringConcat()
		if err != nil {
			return nil, err
		}
		return &ast.Comparison{Kind: ast.CompareGeneral, Op: op, Left: left, Right: right}, nil
	}
	if p.cur().Kind == lexer.Identifier {
		if op, ok := valueCompareKeywords[p.cur().Lexeme]; ok {
			p.advance()
			right, err := p.parseStringConcat()
			if err != nil {
				return nil, err
			}
			return &ast.Comparison{Kind: ast.CompareValue, Op: op, Left: left, Right: right}, nil
		}
		if p.atKeyword("is") {
			p.advance()
			right, err := p.parseStringConcat()
			if err != nil {
				return nil, err
			}
			return &ast.Comparison{Kind: ast.CompareNode, Op: ast.OpIs, Left: left, Right: right}, nil
		}
	}
	return left, nil
}

func (p *Parser) parseStringConcat() (ast.Node, error) {
	left, err := p.parseRange()
	if err != nil {
		return nil, err
	}
	if !p.features.AllowStringConcat {
		return left, nil
	}
	for p.accept(lexer.DblPipe) {
		right, err := p.parseRange()
		if err != nil {
			return nil, err
		}
		left = &ast.StringConcat{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseRange() (ast.Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if p.features.AllowRange && p.acceptKeyword("to") {
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return &ast.Range{From: left, To: right}, nil
	}
	return left, nil
}

func (p *Parser) parseAdditive() (ast.Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.Plus) || p.at(lexer.Minus) {
		op := ast.OpAdd
		if p.cur().Kind == lexer.Minus {
			op = ast.OpSub
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.Arithmetic{Op: op, Left: left, Right: right}
	}
	return left, nil
}

var multiplicativeKeywords = map[string]ast.ArithOp{"div": ast.OpDiv, "idiv": ast.OpIdiv, "mod": ast.OpMod}

func (p *Parser) parseMultiplicative() (ast.Node, error) {
	left, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	for {
		if p.accept(lexer.Star) {
			right, err := p.parseUnion()
			if err != nil {
				return nil, err
			}
			left = &ast.Arithmetic{Op: ast.OpMul, Left: left, Right: right}
			continue
		}
		if p.cur().Kind == lexer.Identifier {
			if op, ok := multiplicativeKeywords[p.cur().Lexeme]; ok {
				p.advance()
				right, err := p.parseUnion()
				if err != nil {
					return nil, err
				}
				left = &ast.Arithmetic{Op: op, Left: left, Right: right}
				continue
			}
		}
		break
	}
	return left, nil
}

func (p *Parser) parseUnion() (ast.Node, error) {
	left, err := p.parseIntersectExcept()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.Pipe) || p.atKeyword("union") {
		p.advance()
		right, err := p.parseIntersectExcept()
		if err != nil {
			return nil, err
		}
		left = &ast.SetExpr{Op: ast.SetUnion, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseIntersectExcept() (ast.Node, error) {
	left, err := p.parseInstanceOf()
	if err != nil {
		return nil, err
	}
	for {
		if p.atKeyword("intersect") {
			p.advance()
			right, err := p.parseInstanceOf()
			if err != nil {
				return nil, err
			}
			left = &ast.SetExpr{Op: ast.SetIntersect, Left: left, Right: right}
			continue
		}
		if p.atKeyword("except") {
			p.advance()
			right, err := p.parseInstanceOf()
			if err != nil {
				return nil, err
			}
			left = &ast.SetExpr{Op: ast.SetExcept, Left: left, Right: right}
			continue
		}
		break
	}
	return left, nil
}

func (p *Parser) parseInstanceOf() (ast.Node, error) {
	left, err := p.parseTreat()
	if err != nil {
		return nil, err
	}
	if p.features.AllowCastFamily && p.atKeyword("instance") {
		p.advance()
		if err := p.expectKeyword("of"); err != nil {
			return nil, err
		}
		st, err := p.parseSequenceType()
		if err != nil {
			return nil, err
		}
		return &ast.InstanceOf{Operand: left, Type: st}, nil
	}
	return left, nil
}

func (p *Parser) parseTreat() (ast.Node, error) {
	left, err := p.parseCastable()
	if err != nil {
		return nil, err
	}
	if p.features.AllowCastFamily && p.atKeyword("treat") {
		p.advance()
		if err := p.expectKeyword("as"); err != nil {
			return nil, err
		}
		st, err := p.parseSequenceType()
		if err != nil {
			return nil, err
		}
		return &ast.TreatAs{Operand: left, Type: st}, nil
	}
	return left, nil
}

func (p *Parser) parseCastable() (ast.Node, error) {
	left, err := p.parseCast()
	if err != nil {
		return nil, err
	}
	if p.features.AllowCastFamily && p.atKeyword("castable") {
		p.advance()
		if err := p.expectKeyword("as"); err != nil {
			return nil, err
		}
		name, optional, err := p.parseSingleType()
		if err != nil {
			return nil, err
		}
		return &ast.CastableAs{Operand: left, TargetType: name, Optional: optional}, nil
	}
	return left, nil
}

func (p *Parser) parseCast() (ast.Node, error) {
	left, err := p.parseArrow()
	if err != nil {
		return nil, err
	}
	if p.features.AllowCastFamily && p.atKeyword("cast") {
		p.advance()
		if err := p.expectKeyword("as"); err != nil {
			return nil, err
		}
		name, optional, err := p.parseSingleType()
		if err != nil {
			return nil, err
		}
		return &ast.CastAs{Operand: left, TargetType: name, Optional: optional}, nil
	}
	return left, nil
}

func (p *Parser) parseArrow() (ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if !p.features.AllowArrow {
		return left, nil
	}
	for p.accept(lexer.Arrow) {
		name, err := p.parseQName()
		if err != nil {
			return nil, err
		}
		var args []ast.Node
		if _, err := p.expect(lexer.LParen); err != nil {
			return nil, err
		}
		if !p.at(lexer.RParen) {
			args, err = p.parseArgumentList()
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		left = &ast.Arrow{Source: left, Call: &ast.FunctionCall{Namespace: name.Namespace, Local: name.Local, Args: args}}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Node, error) {
	if p.at(lexer.Minus) || p.at(lexer.Plus) {
		negative := p.cur().Kind == lexer.Minus
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Negative: negative, Operand: operand}, nil
	}
	return p.parseSimpleMap()
}

func (p *Parser) parseSimpleMap() (ast.Node, error) {
	left, err := p.parsePath()
	if err != nil {
		return nil, err
	}
	if !p.features.AllowSimpleMap {
		return left, nil
	}
	for p.accept(lexer.Bang) {
		right, err := p.parsePath()
		if err != nil {
			return nil, err
		}
		left = &ast.SimpleMap{Left: left, Right: right}
	}
	return left, nil
}

// parseArgumentList parses a comma-separated ExprSingle list (used by
// function calls and arrow targets).
func (p *Parser) parseArgumentList() ([]ast.Node, error) {
	var args []ast.Node
	for {
		arg, err := p.parseExprSingle()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.accept(lexer.Comma) {
			break
		}
	}
	return args, nil
}
