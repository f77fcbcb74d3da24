package ast

import "github.com/oxhq/xpathlang/internal/xerrors"

func ebvError(format string, args ...any) error {
	return xerrors.New(xerrors.FORG0006, format, args...)
}

func typeErr(format string, args ...any) error {
	return xerrors.New(xerrors.XPTY0004, format, args...)
}

func dynErr(format string, args ...any) error {
	return xerrors.New(xerrors.XPDY0002, format, args...)
}
