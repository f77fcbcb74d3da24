package builtins

import (
	"strings"

	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// registerStrings wires the XPath 1.0 string functions plus their 2.0
// additions (spec.md §4.4's built-ins list).
func registerStrings(r *Registry) {
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "string", MinArgs: 0, MaxArgs: 1, Call: fnString}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "concat", MinArgs: 2, MaxArgs: -1, Call: fnConcat}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "contains", MinArgs: 2, MaxArgs: 2, Call: fnContains}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "starts-with", MinArgs: 2, MaxArgs: 2, Call: fnStartsWith}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "ends-with", MinArgs: 2, MaxArgs: 2, Call: fnEndsWith}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "substring", MinArgs: 2, MaxArgs: 3, Call: fnSubstring}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "substring-before", MinArgs: 2, MaxArgs: 2, Call: fnSubstringBefore}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "substring-after", MinArgs: 2, MaxArgs: 2, Call: fnSubstringAfter}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "string-length", MinArgs: 0, MaxArgs: 1, Call: fnStringLength}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "normalize-space", MinArgs: 0, MaxArgs: 1, Call: fnNormalizeSpace}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "translate", MinArgs: 3, MaxArgs: 3, Call: fnTranslate}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "upper-case", MinArgs: 1, MaxArgs: 1, Call: fnUpperCase}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "lower-case", MinArgs: 1, MaxArgs: 1, Call: fnLowerCase}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "string-join", MinArgs: 1, MaxArgs: 2, Call: fnStringJoin}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "tokenize", MinArgs: 1, MaxArgs: 2, Call: fnTokenize}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "matches", MinArgs: 2, MaxArgs: 2, Call: fnMatches}))
	must(r.Register(evalctx.Function{Namespace: FnNamespace, Local: "replace", MinArgs: 3, MaxArgs: 3, Call: fnReplace}))
}

func fnString(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	var v xvalue.Value
	if len(args) == 1 {
		v = args[0]
	} else {
		v = ctx.ContextItem
	}
	s, err := stringValue(ctx, v)
	if err != nil {
		return nil, err
	}
	return newString(ctx, s), nil
}

func fnConcat(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	var b strings.Builder
	for i := range args {
		s, err := argString(ctx, args, i)
		if err != nil {
			return nil, err
		}
		b.WriteString(s)
	}
	return newString(ctx, b.String()), nil
}

func fnContains(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	a, err := argString(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	b, err := argString(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	return newBoolean(ctx, strings.Contains(a, b)), nil
}

func fnStartsWith(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	a, err := argString(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	b, err := argString(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	return newBoolean(ctx, strings.HasPrefix(a, b)), nil
}

func fnEndsWith(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	a, err := argString(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	b, err := argString(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	return newBoolean(ctx, strings.HasSuffix(a, b)), nil
}

// fnSubstring implements fn:substring's 1-based, fractional-position
// semantics: characters whose 1-based position rounds into
// [start, start+len) are kept, with no error for out-of-range arguments
// (spec.md's "operand string coercion" applies to all three arguments).
func fnSubstring(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	s, err := argString(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	startF, err := argNumber(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	start := roundHalfAwayFromZero(startF)
	end := float64(len(runes)) + 1
	if len(args) == 3 {
		lenF, err := argNumber(ctx, args, 2)
		if err != nil {
			return nil, err
		}
		end = start + roundHalfAwayFromZero(lenF)
	}
	lo := start
	if lo < 1 {
		lo = 1
	}
	hi := end
	if hi > float64(len(runes))+1 {
		hi = float64(len(runes)) + 1
	}
	if hi <= lo || lo > float64(len(runes)) {
		return newString(ctx, ""), nil
	}
	return newString(ctx, string(runes[int(lo)-1:int(hi)-1])), nil
}

func fnSubstringBefore(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	a, err := argString(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	b, err := argString(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	if b == "" {
		return newString(ctx, ""), nil
	}
	idx := strings.Index(a, b)
	if idx < 0 {
		return newString(ctx, ""), nil
	}
	return newString(ctx, a[:idx]), nil
}

func fnSubstringAfter(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	a, err := argString(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	b, err := argString(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	if b == "" {
		return newString(ctx, a), nil
	}
	idx := strings.Index(a, b)
	if idx < 0 {
		return newString(ctx, ""), nil
	}
	return newString(ctx, a[idx+len(b):]), nil
}

func fnStringLength(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	var v xvalue.Value
	if len(args) == 1 {
		v = args[0]
	} else {
		v = ctx.ContextItem
	}
	s, err := stringValue(ctx, v)
	if err != nil {
		return nil, err
	}
	return newInteger(ctx, len([]rune(s))), nil
}

func fnNormalizeSpace(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	var v xvalue.Value
	if len(args) == 1 {
		v = args[0]
	} else {
		v = ctx.ContextItem
	}
	s, err := stringValue(ctx, v)
	if err != nil {
		return nil, err
	}
	return newString(ctx, strings.Join(strings.Fields(s), " ")), nil
}

func fnTranslate(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	s, err := argString(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	from, err := argString(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	to, err := argString(ctx, args, 2)
	if err != nil {
		return nil, err
	}
	fromRunes := []rune(from)
	toRunes := []rune(to)
	var b strings.Builder
	for _, c := range s {
		idx := -1
		for i, f := range fromRunes {
			if f == c {
				idx = i
				break
			}
		}
		switch {
		case idx < 0:
			b.WriteRune(c)
		case idx < len(toRunes):
			b.WriteRune(toRunes[idx])
		default:
			// mapped to nothing: drop the character
		}
	}
	return newString(ctx, b.String()), nil
}

func fnUpperCase(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	s, err := argString(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	return newString(ctx, strings.ToUpper(s)), nil
}

func fnLowerCase(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	s, err := argString(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	return newString(ctx, strings.ToLower(s)), nil
}

func fnStringJoin(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	items, err := atomizeItems(ctx, args[0])
	if err != nil {
		return nil, err
	}
	sep := ""
	if len(args) == 2 {
		sep, err = argString(ctx, args, 1)
		if err != nil {
			return nil, err
		}
	}
	parts := make([]string, len(items))
	for i, item := range items {
		s, err := stringValue(ctx, item)
		if err != nil {
			return nil, err
		}
		parts[i] = s
	}
	return newString(ctx, strings.Join(parts, sep)), nil
}

func fnTokenize(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	s, err := argString(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	pattern := `\s+`
	if len(args) == 2 {
		pattern, err = argString(ctx, args, 1)
		if err != nil {
			return nil, err
		}
	}
	re, err := compileXPathRegex(pattern)
	if err != nil {
		return nil, err
	}
	trimmed := s
	if len(args) == 1 {
		trimmed = strings.TrimSpace(s)
	}
	if trimmed == "" {
		return xvalue.Empty, nil
	}
	parts := re.Split(trimmed, -1)
	out := make(xvalue.Sequence, len(parts))
	for i, p := range parts {
		out[i] = newString(ctx, p)
	}
	return out, nil
}

func fnMatches(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	s, err := argString(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	pattern, err := argString(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	re, err := compileXPathRegex(pattern)
	if err != nil {
		return nil, err
	}
	return newBoolean(ctx, re.MatchString(s)), nil
}

func fnReplace(ctx *evalctx.Dynamic, args []xvalue.Value) (xvalue.Value, error) {
	s, err := argString(ctx, args, 0)
	if err != nil {
		return nil, err
	}
	pattern, err := argString(ctx, args, 1)
	if err != nil {
		return nil, err
	}
	replacement, err := argString(ctx, args, 2)
	if err != nil {
		return nil, err
	}
	re, err := compileXPathRegex(pattern)
	if err != nil {
		return nil, err
	}
	// XPath's $N backreferences map directly onto Go's $N (regexp.Regexp
	// uses ${name}/$N already), so no translation is needed beyond this.
	return newString(ctx, re.ReplaceAllString(s, replacement)), nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
