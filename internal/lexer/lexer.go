package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/oxhq/xpathlang/internal/xerrors"
)

// Options configures a lex pass.
type Options struct {
	// ExtensionNames lists host-registered extension function local names
	// (may be hyphenated). XPath's NCName grammar already permits internal
	// hyphens, so registering a name does not change how it scans — it
	// documents the host's intent and lets callers validate a parsed
	// FunctionCall's name against the registered set.
	ExtensionNames []string
}

type lexer struct {
	src     string
	version Version
	opts    Options
	pos     int
	line    int
	col     int
	toks    []Token
}

// Lex tokenizes src for the given version, returning the finite vector of
// tokens spec.md §4.2 specifies, or a *xerrors.Error with code XPST0003 on
// an unterminated string/template or stray character.
func Lex(src string, version Version, opts Options) ([]Token, error) {
	l := &lexer{src: src, version: version, opts: opts, line: 1, col: 1}
	if err := l.run(); err != nil {
		return nil, err
	}
	l.emit(EOF, "")
	return l.toks, nil
}

func (l *lexer) run() error {
	for {
		l.skipSpace()
		if l.atEnd() {
			return nil
		}
		if err := l.next(); err != nil {
			return err
		}
	}
}

func (l *lexer) atEnd() bool { return l.pos >= len(l.src) }

func (l *lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *lexer) skipSpace() {
	for !l.atEnd() {
		switch l.src[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

func (l *lexer) emit(k Kind, lexeme string) {
	l.toks = append(l.toks, Token{Kind: k, Lexeme: lexeme, Pos: l.pos - len(lexeme), Line: l.line, Col: l.col})
}

func (l *lexer) emitAt(k Kind, lexeme string, pos, line, col int) {
	l.toks = append(l.toks, Token{Kind: k, Lexeme: lexeme, Pos: pos, Line: line, Col: col})
}

func syntaxErr(format string, args ...any) error {
	return xerrors.New(xerrors.XPST0003, format, args...)
}

func (l *lexer) next() error {
	startPos, startLine, startCol := l.pos, l.line, l.col
	c := l.peek()

	switch {
	case c == '\'' || c == '"':
		return l.lexString()
	case c >= '0' && c <= '9':
		return l.lexNumber()
	case c == '.' && l.peekAt(1) >= '0' && l.peekAt(1) <= '9':
		return l.lexNumber()
	case isNameStart(rune(c)) || c >= utf8.RuneSelf:
		return l.lexName()
	case c == '`':
		return l.lexTemplate()
	}

	two := func(a, b byte) bool { return c == a && l.peekAt(1) == b }

	switch {
	case two(':', ':'):
		l.advance()
		l.advance()
		l.emitAt(ColonColon, "::", startPos, startLine, startCol)
	case two('.', '.'):
		l.advance()
		l.advance()
		l.emitAt(DotDot, "..", startPos, startLine, startCol)
	case two('/', '/'):
		l.advance()
		l.advance()
		l.emitAt(SlashSlash, "//", startPos, startLine, startCol)
	case two('!', '='):
		l.advance()
		l.advance()
		l.emitAt(Ne, "!=", startPos, startLine, startCol)
	case two('<', '='):
		l.advance()
		l.advance()
		l.emitAt(Le, "<=", startPos, startLine, startCol)
	case two('>', '='):
		l.advance()
		l.advance()
		l.emitAt(Ge, ">=", startPos, startLine, startCol)
	case two('|', '|'):
		l.advance()
		l.advance()
		l.emitAt(DblPipe, "||", startPos, startLine, startCol)
	case two('=', '>'):
		l.advance()
		l.advance()
		l.emitAt(Arrow, "=>", startPos, startLine, startCol)
	case two('?', '*'):
		l.advance()
		l.advance()
		l.emitAt(QuestionStar, "?*", startPos, startLine, startCol)
	default:
		l.advance()
		switch c {
		case '(':
			l.emitAt(LParen, "(", startPos, startLine, startCol)
		case ')':
			l.emitAt(RParen, ")", startPos, startLine, startCol)
		case '[':
			l.emitAt(LBracket, "[", startPos, startLine, startCol)
		case ']':
			l.emitAt(RBracket, "]", startPos, startLine, startCol)
		case '{':
			l.emitAt(LBrace, "{", startPos, startLine, startCol)
		case '}':
			l.emitAt(RBrace, "}", startPos, startLine, startCol)
		case ',':
			l.emitAt(Comma, ",", startPos, startLine, startCol)
		case '.':
			l.emitAt(Dot, ".", startPos, startLine, startCol)
		case '/':
			l.emitAt(Slash, "/", startPos, startLine, startCol)
		case '@':
			l.emitAt(At, "@", startPos, startLine, startCol)
		case ':':
			l.emitAt(Colon, ":", startPos, startLine, startCol)
		case '|':
			l.emitAt(Pipe, "|", startPos, startLine, startCol)
		case '+':
			l.emitAt(Plus, "+", startPos, startLine, startCol)
		case '-':
			l.emitAt(Minus, "-", startPos, startLine, startCol)
		case '*':
			l.emitAt(Star, "*", startPos, startLine, startCol)
		case '=':
			l.emitAt(Eq, "=", startPos, startLine, startCol)
		case '<':
			l.emitAt(Lt, "<", startPos, startLine, startCol)
		case '>':
			l.emitAt(Gt, ">", startPos, startLine, startCol)
		case '$':
			l.emitAt(Dollar, "$", startPos, startLine, startCol)
		case '!':
			l.emitAt(Bang, "!", startPos, startLine, startCol)
		case '?':
			l.emitAt(Question, "?", startPos, startLine, startCol)
		case '#':
			if !l.version.AtLeast(V3_0) {
				return syntaxErr("named function references require XPath 3.0 or later, got %q at position %d", c, startPos)
			}
			l.emitAt(Hash, "#", startPos, startLine, startCol)
		default:
			return syntaxErr("unexpected character %q at position %d", c, startPos)
		}
	}
	return nil
}

func (l *lexer) lexString() error {
	startPos, startLine, startCol := l.pos, l.line, l.col
	quote := l.advance()
	var b strings.Builder
	for {
		if l.atEnd() {
			return syntaxErr("unterminated string literal starting at position %d", startPos)
		}
		c := l.advance()
		if c == quote {
			// doubled-quote escape: '' or "" inside the literal means a
			// literal quote character, per spec.md §4.2.
			if l.peek() == quote {
				l.advance()
				b.WriteByte(quote)
				continue
			}
			break
		}
		b.WriteByte(c)
	}
	l.emitAt(String, b.String(), startPos, startLine, startCol)
	return nil
}

func (l *lexer) lexNumber() error {
	startPos, startLine, startCol := l.pos, l.line, l.col
	var b strings.Builder
	for !l.atEnd() && isDigit(l.peek()) {
		b.WriteByte(l.advance())
	}
	if l.peek() == '.' {
		b.WriteByte(l.advance())
		for !l.atEnd() && isDigit(l.peek()) {
			b.WriteByte(l.advance())
		}
	}
	if l.version.AtLeast(V2_0) && (l.peek() == 'e' || l.peek() == 'E') {
		// scientific notation, 2.0+ only
		save := l.pos
		exp := string(l.peek())
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			exp += string(l.peek())
			l.advance()
		}
		if isDigit(l.peek()) {
			for !l.atEnd() && isDigit(l.peek()) {
				exp += string(l.peek())
				l.advance()
			}
			b.WriteString(exp)
		} else {
			l.pos = save
		}
	}
	l.emitAt(Number, b.String(), startPos, startLine, startCol)
	return nil
}

func (l *lexer) lexName() error {
	startPos, startLine, startCol := l.pos, l.line, l.col
	var b strings.Builder
	for !l.atEnd() {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if b.Len() == 0 {
			if !isNameStart(r) {
				break
			}
		} else if !isNameChar(r) {
			break
		}
		for i := 0; i < size; i++ {
			l.advance()
		}
		b.WriteRune(r)
	}
	l.emitAt(Identifier, b.String(), startPos, startLine, startCol)
	return nil
}

// lexTemplate scans a backtick-delimited string template (3.0+): the body
// is split into literal text segments and `{expr}` segments, with
// `` \` ``, `\{`, `\}`, `\\` decoding to their literal characters.
func (l *lexer) lexTemplate() error {
	startPos, startLine, startCol := l.pos, l.line, l.col
	l.advance() // opening backtick
	l.emitAt(Backtick, "`", startPos, startLine, startCol)

	var text strings.Builder
	flushText := func() {
		if text.Len() > 0 {
			l.emit(TemplateText, text.String())
			text.Reset()
		}
	}

	for {
		if l.atEnd() {
			return syntaxErr("unterminated string template starting at position %d", startPos)
		}
		c := l.peek()
		switch {
		case c == '\\':
			l.advance()
			if l.atEnd() {
				return syntaxErr("unterminated escape in string template at position %d", l.pos)
			}
			esc := l.advance()
			switch esc {
			case '`', '{', '}', '\\':
				text.WriteByte(esc)
			default:
				return syntaxErr("invalid escape %q in string template", esc)
			}
		case c == '`':
			l.advance()
			flushText()
			l.emit(Backtick, "`")
			return nil
		case c == '{':
			flushText()
			exprStartPos, exprStartLine, exprStartCol := l.pos, l.line, l.col
			l.advance()
			l.emitAt(TemplateExprStart, "{", exprStartPos, exprStartLine, exprStartCol)
			depth := 1
			exprStart := l.pos
			for depth > 0 {
				if l.atEnd() {
					return syntaxErr("unterminated expression segment in string template at position %d", exprStartPos)
				}
				switch l.peek() {
				case '{':
					depth++
					l.advance()
				case '}':
					depth--
					if depth > 0 {
						l.advance()
					}
				case '\'', '"':
					if err := l.skipNestedStringLiteral(); err != nil {
						return err
					}
				default:
					l.advance()
				}
			}
			inner := l.src[exprStart:l.pos]
			innerToks, err := Lex(inner, l.version, l.opts)
			if err != nil {
				return err
			}
			for _, t := range innerToks {
				if t.Kind == EOF {
					continue
				}
				t.Pos += exprStart
				l.toks = append(l.toks, t)
			}
			closePos, closeLine, closeCol := l.pos, l.line, l.col
			l.advance() // closing brace
			l.emitAt(TemplateExprEnd, "}", closePos, closeLine, closeCol)
		default:
			text.WriteByte(l.advance())
		}
	}
}

// skipNestedStringLiteral advances past a quoted string inside a template
// expression segment so that `{`/`}` inside string literals do not confuse
// the brace-depth scan.
func (l *lexer) skipNestedStringLiteral() error {
	start := l.pos
	quote := l.advance()
	for {
		if l.atEnd() {
			return syntaxErr("unterminated string literal inside string template starting at position %d", start)
		}
		c := l.advance()
		if c == quote {
			if l.peek() == quote {
				l.advance()
				continue
			}
			return nil
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
