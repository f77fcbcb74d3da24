package ast

import (
	"strconv"
	"strings"

	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xerrors"
	"github.com/oxhq/xpathlang/internal/xstypes"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// Literal is a string or numeric literal (spec.md §3, "Literal").
type Literal struct {
	IsString bool
	Raw      string // lexical form as it appeared in source
}

func (n *Literal) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	if n.IsString {
		return xvalue.NewAtomic(ctx.Registry.MustLookup("string"), n.Raw), nil
	}
	f, err := strconv.ParseFloat(n.Raw, 64)
	if err != nil {
		return nil, xerrors.New(xerrors.XPST0003, "invalid numeric literal %q", n.Raw)
	}
	typeName := "decimal"
	if strings.ContainsAny(n.Raw, "eE") {
		typeName = "double"
	} else if !strings.Contains(n.Raw, ".") {
		typeName = "integer"
	}
	return xvalue.NewAtomic(ctx.Registry.MustLookup(typeName), f), nil
}

func (n *Literal) String() string {
	if n.IsString {
		return "\"" + strings.ReplaceAll(n.Raw, "\"", "\"\"") + "\""
	}
	return n.Raw
}

// VariableRef looks up a bound variable by QName (spec.md §3, "VariableRef").
type VariableRef struct {
	Name xstypes.QName
}

func (n *VariableRef) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	if v, ok := ctx.Variables[n.Name]; ok {
		return v, nil
	}
	return nil, xerrors.New(xerrors.XPST0003, "undeclared variable $%s", qnameString(n.Name))
}

func (n *VariableRef) String() string {
	return "$" + qnameString(n.Name)
}

func qnameString(q xstypes.QName) string {
	if q.Prefix != "" {
		return q.Prefix + ":" + q.Local
	}
	return q.Local
}
