package parser

import (
	"github.com/oxhq/xpathlang/internal/ast"
	"github.com/oxhq/xpathlang/internal/lexer"
	"github.com/oxhq/xpathlang/internal/xerrors"
)

// parsePath parses a path expression: an optional leading `/` or `//`
// followed by zero or more `/`-separated steps, or a PathCombine/Filter
// rooted at an arbitrary primary expression (spec.md §4.4, "Path
// expression"). This is the XPath grammar's PathExpr/RelativePathExpr.
func (p *Parser) parsePath() (ast.Node, error) {
	if p.at(lexer.Slash) || p.at(lexer.SlashSlash) {
		leadingDescendant := p.at(lexer.SlashSlash)
		p.advance()
		if leadingDescendant {
			// `//step...` abbreviates `/descendant-or-self::node()/step...`.
			first, err := p.parseStep()
			if err != nil {
				return nil, err
			}
			steps := []*ast.Step{descendantOrSelfStep(), first}
			rest, err := p.parseRemainingSteps()
			if err != nil {
				return nil, err
			}
			steps = append(steps, rest...)
			return &ast.LocationPath{Absolute: true, Steps: steps}, nil
		}
		if p.atStepStart() {
			first, err := p.parseStep()
			if err != nil {
				return nil, err
			}
			rest, err := p.parseRemainingSteps()
			if err != nil {
				return nil, err
			}
			return &ast.LocationPath{Absolute: true, Steps: append([]*ast.Step{first}, rest...)}, nil
		}
		// A bare `/` selecting the document root.
		return &ast.LocationPath{Absolute: true, Steps: nil}, nil
	}

	if p.atStepStart() {
		first, err := p.parseStep()
		if err != nil {
			return nil, err
		}
		rest, err := p.parseRemainingSteps()
		if err != nil {
			return nil, err
		}
		if len(rest) == 0 {
			// A single step is still a relative LocationPath, not a bare
			// Step, so predicates/axes evaluate against the context node.
			return &ast.LocationPath{Steps: []*ast.Step{first}}, nil
		}
		return &ast.LocationPath{Steps: append([]*ast.Step{first}, rest...)}, nil
	}

	// Otherwise: a primary expression, optionally followed by predicates
	// and/or `/`-separated steps (Filter / PathCombine).
	primary, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if p.at(lexer.Slash) || p.at(lexer.SlashSlash) {
		var steps []*ast.Step
		for p.at(lexer.Slash) || p.at(lexer.SlashSlash) {
			leadingDescendant := p.at(lexer.SlashSlash)
			p.advance()
			if leadingDescendant {
				steps = append(steps, descendantOrSelfStep())
			}
			step, err := p.parseStep()
			if err != nil {
				return nil, err
			}
			steps = append(steps, step)
		}
		return &ast.PathCombine{Base: primary, Steps: steps}, nil
	}
	return primary, nil
}

// parseRemainingSteps parses the `/step` / `//step` tail of a path already
// positioned after its first step.
func (p *Parser) parseRemainingSteps() ([]*ast.Step, error) {
	var steps []*ast.Step
	for p.at(lexer.Slash) || p.at(lexer.SlashSlash) {
		leadingDescendant := p.at(lexer.SlashSlash)
		p.advance()
		if leadingDescendant {
			steps = append(steps, descendantOrSelfStep())
		}
		step, err := p.parseStep()
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func descendantOrSelfStep() *ast.Step {
	return &ast.Step{Axis: ast.AxisDescendantOrSelf, Test: ast.NodeTest{Kind: ast.TestNodeKind}}
}

// atStepStart reports whether the current token can begin a Step (an axis
// step or one of the abbreviated forms `@`, `.`, `..`, a name, or `*`). An
// Identifier immediately followed by `(` is a step start only when it is a
// kind-test keyword (`node(`, `text(`, ...); any other `name(` is a
// FunctionCall primary expression, not a name test (a NameTest can never be
// followed directly by `(`). The same holds for a prefixed `p:name(`, and a
// name followed by `#` or `{` (a named function reference or a map/array
// constructor) is never a step start.
func (p *Parser) atStepStart() bool {
	switch p.cur().Kind {
	case lexer.At, lexer.Dot, lexer.DotDot, lexer.Star:
		return true
	case lexer.Identifier:
		next := p.peekAt(1).Kind
		prefixed := next == lexer.Colon && p.peekAt(2).Kind == lexer.Identifier
		if prefixed {
			next = p.peekAt(3).Kind
		}
		switch next {
		case lexer.LParen:
			_, ok := kindTestKeywords[p.cur().Lexeme]
			return ok && !prefixed
		case lexer.Hash, lexer.LBrace:
			return false
		}
		return true
	}
	return false
}

// parseStep parses one axis step with its node test and predicates,
// including the `@name`, `.`, `..` abbreviations (spec.md §3, "Step").
func (p *Parser) parseStep() (*ast.Step, error) {
	var axis ast.Axis

	switch {
	case p.accept(lexer.DotDot):
		return &ast.Step{Axis: ast.AxisParent, Test: ast.NodeTest{Kind: ast.TestNodeKind}}, nil
	case p.accept(lexer.Dot):
		return &ast.Step{Axis: ast.AxisSelf, Test: ast.NodeTest{Kind: ast.TestNodeKind}}, nil
	case p.accept(lexer.At):
		axis = ast.AxisAttribute
	default:
		a, ok, err := p.tryParseAxisKeyword()
		if err != nil {
			return nil, err
		}
		if ok {
			axis = a
		} else {
			axis = ast.AxisChild
		}
	}

	if axis == ast.AxisNamespace {
		if !p.features.EnableNamespaceAxis {
			return nil, xerrors.New(xerrors.XPST0010, "the namespace axis is not enabled")
		}
		p.warnings.Emit("XPWD0001", map[string]any{"axis": "namespace"})
	}

	test, err := p.parseNodeTest(axis)
	if err != nil {
		return nil, err
	}
	preds, err := p.parsePredicates()
	if err != nil {
		return nil, err
	}
	return &ast.Step{Axis: axis, Test: test, Predicates: preds}, nil
}

var axisKeywords = map[string]ast.Axis{
	"child":               ast.AxisChild,
	"descendant":          ast.AxisDescendant,
	"descendant-or-self":  ast.AxisDescendantOrSelf,
	"parent":              ast.AxisParent,
	"ancestor":            ast.AxisAncestor,
	"ancestor-or-self":    ast.AxisAncestorOrSelf,
	"following-sibling":   ast.AxisFollowingSibling,
	"preceding-sibling":   ast.AxisPrecedingSibling,
	"following":           ast.AxisFollowing,
	"preceding":           ast.AxisPreceding,
	"attribute":           ast.AxisAttribute,
	"namespace":           ast.AxisNamespace,
	"self":                ast.AxisSelf,
}

// tryParseAxisKeyword looks ahead for `name ::`, consuming both tokens on
// match. A name not followed by `::` is left untouched for the node-test
// parse that follows (the default axis is child, or attribute if handled
// by the `@` abbreviation above).
func (p *Parser) tryParseAxisKeyword() (ast.Axis, bool, error) {
	if p.cur().Kind != lexer.Identifier {
		return "", false, nil
	}
	if p.peekAt(1).Kind != lexer.ColonColon {
		return "", false, nil
	}
	name := p.cur().Lexeme
	axis, ok := axisKeywords[name]
	if !ok {
		return "", false, p.errorf("unknown axis %q", name)
	}
	p.advance()
	p.advance()
	return axis, true, nil
}

// parsePredicates parses zero or more `[expr]` predicates.
func (p *Parser) parsePredicates() ([]ast.Node, error) {
	var preds []ast.Node
	for p.accept(lexer.LBracket) {
		expr, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBracket); err != nil {
			return nil, err
		}
		preds = append(preds, expr)
	}
	return preds, nil
}
