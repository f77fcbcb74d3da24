package ast

import (
	"github.com/oxhq/xpathlang/internal/evalctx"
	"github.com/oxhq/xpathlang/internal/xerrors"
	"github.com/oxhq/xpathlang/internal/xvalue"
)

// ContextItem is the bare `.` primary expression (spec.md §3: the context
// item, distinct from `self::node()` in that it yields an atomic value too
// when the context item is not a node).
type ContextItem struct{}

func (ContextItem) String() string { return "." }

func (ContextItem) Evaluate(ctx *evalctx.Dynamic) (xvalue.Value, error) {
	if ctx.ContextItem == nil {
		return nil, xerrors.New(xerrors.XPDY0002, "no context item is bound")
	}
	return ctx.ContextItem, nil
}
