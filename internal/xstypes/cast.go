package xstypes

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/oxhq/xpathlang/internal/xerrors"
)

// --- string ---

func validateString(v any) bool {
	_, ok := v.(string)
	return ok
}

func castToString(v any) (any, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case bool:
		if t {
			return "true", nil
		}
		return "false", nil
	case float64:
		return formatDouble(t), nil
	case nil:
		return nil, xerrors.New(xerrors.FORG0001, "cannot cast empty value to string")
	default:
		return fmt.Sprintf("%v", t), nil
	}
}

func formatDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

// --- boolean ---

func validateBoolean(v any) bool {
	_, ok := v.(bool)
	return ok
}

func castToBoolean(v any) (any, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case float64:
		return t != 0 && !math.IsNaN(t), nil
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		switch s {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		default:
			return nil, xerrors.New(xerrors.FORG0001, "invalid lexical value %q for xs:boolean", t)
		}
	default:
		return nil, xerrors.New(xerrors.FORG0001, "cannot cast %T to xs:boolean", v)
	}
}

// --- decimal / float / double ---

func validateDecimal(v any) bool {
	f, ok := v.(float64)
	return ok && !math.IsInf(f, 0) && !math.IsNaN(f)
}

func validateFloat(v any) bool {
	_, ok := v.(float64)
	return ok
}

func castToDecimal(v any) (any, error) {
	f, err := toFloat(v, false)
	if err != nil {
		return nil, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, xerrors.New(xerrors.FORG0001, "xs:decimal cannot represent INF/-INF/NaN")
	}
	return f, nil
}

func castToFloat(v any) (any, error) {
	return toFloat(v, true)
}

func castToDouble(v any) (any, error) {
	return toFloat(v, true)
}

func toFloat(v any, allowSpecial bool) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	case string:
		s := strings.TrimSpace(t)
		if allowSpecial {
			switch s {
			case "INF", "+INF":
				return math.Inf(1), nil
			case "-INF":
				return math.Inf(-1), nil
			case "NaN":
				return math.NaN(), nil
			}
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, xerrors.New(xerrors.FORG0001, "invalid numeric lexical value %q", t)
		}
		return f, nil
	default:
		return 0, xerrors.New(xerrors.FORG0001, "cannot cast %T to a numeric type", v)
	}
}

// --- integer family ---

func validateInteger(v any) bool {
	f, ok := v.(float64)
	if !ok {
		return false
	}
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f)
}

// castToIntegerRanged builds a cast function that truncates toward zero and
// range-checks against [min, max] (nil = unbounded on that side).
func castToIntegerRanged(name string, min, max *int64) func(any) (any, error) {
	return func(v any) (any, error) {
		f, err := toFloat(v, false)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, xerrors.New(xerrors.FORG0001, "cannot cast NaN/INF to %s", name)
		}
		truncated := math.Trunc(f)
		if min != nil && truncated < float64(*min) {
			return nil, xerrors.New(xerrors.FORG0001, "%v out of range for xs:%s (min %d)", truncated, name, *min)
		}
		if max != nil && truncated > float64(*max) {
			return nil, xerrors.New(xerrors.FORG0001, "%v out of range for xs:%s (max %d)", truncated, name, *max)
		}
		return truncated, nil
	}
}
