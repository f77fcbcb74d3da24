package parser

import (
	"github.com/oxhq/xpathlang/internal/ast"
	"github.com/oxhq/xpathlang/internal/lexer"
)

// parsePostfix parses a PrimaryExpr followed by zero or more predicates,
// lookups, and (for 3.0+ function-item values) dynamic call argument
// lists (spec.md §3/§4.5, "PostfixExpr").
func (p *Parser) parsePostfix() (ast.Node, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.at(lexer.LBracket):
			p.advance()
			pred, err := p.parseSequence()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RBracket); err != nil {
				return nil, err
			}
			if f, ok := expr.(*ast.Filter); ok {
				f.Predicates = append(f.Predicates, pred)
			} else {
				expr = &ast.Filter{Primary: expr, Predicates: []ast.Node{pred}}
			}
		case p.features.AllowLookup && (p.at(lexer.Question) || p.at(lexer.QuestionStar)):
			keySpec, err := p.parseLookupKey()
			if err != nil {
				return nil, err
			}
			expr = &ast.Lookup{Base: expr, KeySpec: keySpec}
		case p.at(lexer.LParen):
			p.advance()
			var args []ast.Node
			if !p.at(lexer.RParen) {
				args, err = p.parseArgumentList()
				if err != nil {
					return nil, err
				}
			}
			if _, err := p.expect(lexer.RParen); err != nil {
				return nil, err
			}
			expr = &ast.DynamicCall{Target: expr, Args: args}
		default:
			return expr, nil
		}
	}
}

// parseLookupKey parses the KeySpecifier following a (already-positioned-at)
// `?`/`?*` token: `?*` is the wildcard, `?NCName`/`?IntegerLiteral` a plain
// key, `?(expr)` a computed key.
func (p *Parser) parseLookupKey() (ast.Node, error) {
	if p.accept(lexer.QuestionStar) {
		return nil, nil
	}
	p.advance() // `?`
	switch {
	case p.at(lexer.Identifier):
		tok := p.advance()
		return &ast.Literal{IsString: true, Raw: tok.Lexeme}, nil
	case p.at(lexer.Number):
		tok := p.advance()
		return &ast.Literal{Raw: tok.Lexeme}, nil
	case p.accept(lexer.LParen):
		expr, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.errorf("expected lookup key after '?', got %s", p.cur().String())
	}
}

// parsePrimary parses a PrimaryExpr: literal, variable reference,
// parenthesized/empty sequence, context item, function call, inline
// function, named function reference, string template, or (3.1+) map/array
// constructor or unary lookup.
func (p *Parser) parsePrimary() (ast.Node, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.String:
		p.advance()
		return &ast.Literal{IsString: true, Raw: tok.Lexeme}, nil
	case lexer.Number:
		p.advance()
		return &ast.Literal{Raw: tok.Lexeme}, nil
	case lexer.Dollar:
		p.advance()
		name, err := p.parseQName()
		if err != nil {
			return nil, err
		}
		return &ast.VariableRef{Name: name}, nil
	case lexer.Dot:
		p.advance()
		return &ast.ContextItem{}, nil
	case lexer.LParen:
		return p.parseParenthesized()
	case lexer.Backtick:
		if p.features.AllowStringTemplate {
			return p.parseStringTemplate()
		}
	case lexer.LBracket:
		if p.features.AllowArrayConstructor {
			return p.parseSquareArray()
		}
	case lexer.Question, lexer.QuestionStar:
		if p.features.AllowLookup {
			keySpec, err := p.parseLookupKey()
			if err != nil {
				return nil, err
			}
			return &ast.Lookup{Base: nil, KeySpec: keySpec}, nil
		}
	case lexer.Identifier:
		switch tok.Lexeme {
		case "function":
			if p.features.AllowInlineFunction && p.peekAt(1).Kind == lexer.LParen {
				return p.parseInlineFunction()
			}
		case "map":
			if p.features.AllowMapConstructor && p.peekAt(1).Kind == lexer.LBrace {
				return p.parseMapConstructor()
			}
		case "array":
			if p.features.AllowArrayConstructor && p.peekAt(1).Kind == lexer.LBrace {
				return p.parseCurlyArray()
			}
		}
		return p.parseFunctionCallOrNamedRef()
	}
	return nil, p.errorf("unexpected token %s", tok.String())
}

// parseParenthesized parses `()` (empty sequence) or `( Expr )`.
func (p *Parser) parseParenthesized() (ast.Node, error) {
	p.advance() // `(`
	if p.accept(lexer.RParen) {
		return &ast.SequenceExpr{}, nil
	}
	expr, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseFunctionCallOrNamedRef parses an EQName that is either a FunctionCall
// (`name(args)`), a NamedFunctionRef (`name#arity`), or — with no following
// `(` or `#` — invalid in primary position (a bare name can only reach here
// when atStepStart/atKeyword dispatch has already ruled out every other
// interpretation, so this is always one of the two call forms).
func (p *Parser) parseFunctionCallOrNamedRef() (ast.Node, error) {
	name, err := p.parseQName()
	if err != nil {
		return nil, err
	}
	if p.features.AllowNamedFunctionRef && p.accept(lexer.Hash) {
		arityTok, err := p.expect(lexer.Number)
		if err != nil {
			return nil, err
		}
		arity := 0
		for _, c := range arityTok.Lexeme {
			arity = arity*10 + int(c-'0')
		}
		return &ast.NamedFunctionRef{Namespace: name.Namespace, Local: name.Local, Arity: arity}, nil
	}
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	var args []ast.Node
	if !p.at(lexer.RParen) {
		args, err = p.parseArgumentList()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	return &ast.FunctionCall{Namespace: name.Namespace, Local: name.Local, Args: args}, nil
}

// parseInlineFunction parses `function (Param,*) (as SequenceType)? { Expr }`.
func (p *Parser) parseInlineFunction() (ast.Node, error) {
	p.advance() // "function"
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	var params []ast.Param
	for !p.at(lexer.RParen) {
		if _, err := p.expect(lexer.Dollar); err != nil {
			return nil, err
		}
		name, err := p.parseQName()
		if err != nil {
			return nil, err
		}
		param := ast.Param{Name: name}
		if p.atKeyword("as") {
			p.advance()
			st, err := p.parseSequenceType()
			if err != nil {
				return nil, err
			}
			param.Type = &st
		}
		params = append(params, param)
		if !p.accept(lexer.Comma) {
			break
		}
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	if p.atKeyword("as") {
		p.advance()
		if _, err := p.parseSequenceType(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.LBrace); err != nil {
		return nil, err
	}
	body, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RBrace); err != nil {
		return nil, err
	}
	return &ast.InlineFunction{Params: params, Body: body}, nil
}

// parseMapConstructor parses `map { Key ":" Value ("," Key ":" Value)* }`.
func (p *Parser) parseMapConstructor() (ast.Node, error) {
	p.advance() // "map"
	p.advance() // "{"
	var entries []ast.MapEntryExpr
	for !p.at(lexer.RBrace) {
		key, err := p.parseExprSingle()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Colon); err != nil {
			return nil, err
		}
		val, err := p.parseExprSingle()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.MapEntryExpr{Key: key, Value: val})
		if !p.accept(lexer.Comma) {
			break
		}
	}
	if _, err := p.expect(lexer.RBrace); err != nil {
		return nil, err
	}
	return &ast.MapConstructor{Entries: entries}, nil
}

// parseCurlyArray parses `array { Expr }`.
func (p *Parser) parseCurlyArray() (ast.Node, error) {
	p.advance() // "array"
	p.advance() // "{"
	var members []ast.Node
	if !p.at(lexer.RBrace) {
		expr, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		members = append(members, expr)
	}
	if _, err := p.expect(lexer.RBrace); err != nil {
		return nil, err
	}
	return &ast.ArrayConstructor{Members: members, Curly: true}, nil
}

// parseSquareArray parses `[ ExprSingle ("," ExprSingle)* ]`.
func (p *Parser) parseSquareArray() (ast.Node, error) {
	p.advance() // "["
	var members []ast.Node
	for !p.at(lexer.RBracket) {
		m, err := p.parseExprSingle()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
		if !p.accept(lexer.Comma) {
			break
		}
	}
	if _, err := p.expect(lexer.RBracket); err != nil {
		return nil, err
	}
	return &ast.ArrayConstructor{Members: members, Curly: false}, nil
}

// parseStringTemplate parses a backtick string template, re-lexed by the
// lexer into TemplateText/TemplateExprStart/.../TemplateExprEnd tokens
// already spliced with ordinary expression tokens (lexer.go's lexTemplate).
func (p *Parser) parseStringTemplate() (ast.Node, error) {
	p.advance() // opening backtick
	var segments []string
	var exprs []ast.Node
	cur := ""
	for {
		switch p.cur().Kind {
		case lexer.TemplateText:
			cur += p.advance().Lexeme
		case lexer.TemplateExprStart:
			p.advance()
			segments = append(segments, cur)
			cur = ""
			expr, err := p.parseSequence()
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, expr)
			if _, err := p.expect(lexer.TemplateExprEnd); err != nil {
				return nil, err
			}
		case lexer.Backtick:
			p.advance()
			segments = append(segments, cur)
			return &ast.StringTemplate{Segments: segments, Exprs: exprs}, nil
		default:
			return nil, p.errorf("unterminated string template, got %s", p.cur().String())
		}
	}
}
