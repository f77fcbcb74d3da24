package lexer_test

import (
	"testing"

	"github.com/oxhq/xpathlang/internal/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []lexer.Token) []lexer.Kind {
	out := make([]lexer.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func TestLexSimplePathExpression(t *testing.T) {
	toks, err := lexer.Lex("child::div/child::p[1]", lexer.V1_0, lexer.Options{})
	require.NoError(t, err)
	assert.Equal(t, []lexer.Kind{
		lexer.Identifier, lexer.ColonColon, lexer.Identifier, lexer.Slash,
		lexer.Identifier, lexer.ColonColon, lexer.Identifier, lexer.LBracket,
		lexer.Number, lexer.RBracket, lexer.EOF,
	}, kinds(toks))
}

func TestLexStringWithDoubledQuoteEscape(t *testing.T) {
	toks, err := lexer.Lex(`'it''s'`, lexer.V1_0, lexer.Options{})
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, lexer.String, toks[0].Kind)
	assert.Equal(t, "it's", toks[0].Lexeme)
}

func TestLexUnterminatedStringErrors(t *testing.T) {
	_, err := lexer.Lex(`"abc`, lexer.V1_0, lexer.Options{})
	require.Error(t, err)
}

func TestLexScientificNotationGatedByVersion(t *testing.T) {
	toks, err := lexer.Lex("1.5e10", lexer.V2_0, lexer.Options{})
	require.NoError(t, err)
	assert.Equal(t, "1.5e10", toks[0].Lexeme)

	toks, err = lexer.Lex("1.5e10", lexer.V1_0, lexer.Options{})
	require.NoError(t, err)
	// 1.0 lexer treats 'e10' as a separate name since scientific notation
	// is 2.0+ only.
	assert.Equal(t, "1.5", toks[0].Lexeme)
	assert.Equal(t, lexer.Identifier, toks[1].Kind)
}

func TestLexOperators(t *testing.T) {
	toks, err := lexer.Lex(`!= <= >= || => ?* :: .. //`, lexer.V3_1, lexer.Options{})
	require.NoError(t, err)
	assert.Equal(t, []lexer.Kind{
		lexer.Ne, lexer.Le, lexer.Ge, lexer.DblPipe, lexer.Arrow, lexer.QuestionStar,
		lexer.ColonColon, lexer.DotDot, lexer.SlashSlash, lexer.EOF,
	}, kinds(toks))
}

func TestLexStringTemplate(t *testing.T) {
	toks, err := lexer.Lex("`Hello {$name}!`", lexer.V3_0, lexer.Options{})
	require.NoError(t, err)

	var gotText, gotExpr bool
	for _, tok := range toks {
		if tok.Kind == lexer.TemplateText && tok.Lexeme == "Hello " {
			gotText = true
		}
		if tok.Kind == lexer.Dollar {
			gotExpr = true
		}
	}
	assert.True(t, gotText)
	assert.True(t, gotExpr)
}

func TestLexStringTemplateEscapes(t *testing.T) {
	toks, err := lexer.Lex("`a\\{b\\}c\\`d`", lexer.V3_0, lexer.Options{})
	require.NoError(t, err)
	require.Len(t, toks, 4) // Backtick, TemplateText, Backtick, EOF
	assert.Equal(t, "a{b}c`d", toks[1].Lexeme)
}

func TestLexUnexpectedCharacter(t *testing.T) {
	_, err := lexer.Lex("$x # $y", lexer.V1_0, lexer.Options{})
	require.Error(t, err)
}
