package xstypes

import (
	"encoding/base64"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"

	"github.com/oxhq/xpathlang/internal/xerrors"
)

// Duration is the parsed xs:duration value: [-]PnYnMnDTnHnMnS. Negative
// applies to every component uniformly, per spec.md §4.1.
type Duration struct {
	Negative                  bool
	Years, Months             int
	Days                      int
	Hours, Minutes            int
	Seconds                   float64
}

// DateTime is a parsed xs:dateTime/xs:date/xs:time value. Fields that do not
// apply to the narrower types (e.g. Year for xs:time) are left zero.
type DateTime struct {
	Year                        int
	Month, Day                  int
	Hour, Minute                int
	Second                      float64
	HasTimezone                 bool
	TZOffsetMinutes             int // minutes east of UTC
}

// GDate is a parsed truncated Gregorian date value (gYearMonth, gYear,
// gMonthDay, gDay, gMonth). Only the relevant fields are populated; Kind
// records which subtype produced the value.
type GDate struct {
	Kind  string // "gYearMonth" | "gYear" | "gMonthDay" | "gDay" | "gMonth"
	Year  int
	Month int
	Day   int
}

var durationRe = regexp.MustCompile(`^(-)?P(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

func validateDuration(v any) bool {
	_, ok := v.(Duration)
	return ok
}

func castToDuration(v any) (any, error) {
	switch t := v.(type) {
	case Duration:
		return t, nil
	case string:
		return parseDuration(t)
	default:
		return nil, xerrors.New(xerrors.FORG0001, "cannot cast %T to xs:duration", v)
	}
}

func parseDuration(s string) (Duration, error) {
	m := durationRe.FindStringSubmatch(s)
	if m == nil || m[0] == "P" || (m[0] == "-P") {
		return Duration{}, xerrors.New(xerrors.FORG0001, "invalid lexical value %q for xs:duration", s)
	}
	var d Duration
	d.Negative = m[1] == "-"
	d.Years = atoiOr0(m[2])
	d.Months = atoiOr0(m[3])
	d.Days = atoiOr0(m[4])
	d.Hours = atoiOr0(m[5])
	d.Minutes = atoiOr0(m[6])
	if m[7] != "" {
		sec, err := strconv.ParseFloat(m[7], 64)
		if err != nil {
			return Duration{}, xerrors.New(xerrors.FORG0001, "invalid seconds component in %q", s)
		}
		d.Seconds = sec
	}
	return d, nil
}

func atoiOr0(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}

var dateTimeRe = regexp.MustCompile(`^(-?\d{4,})-(\d{2})-(\d{2})T(\d{2}):(\d{2}):(\d{2}(?:\.\d+)?)(Z|[+-]\d{2}:\d{2})?$`)
var dateRe = regexp.MustCompile(`^(-?\d{4,})-(\d{2})-(\d{2})(Z|[+-]\d{2}:\d{2})?$`)
var timeRe = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2}(?:\.\d+)?)(Z|[+-]\d{2}:\d{2})?$`)

func validateDateTime(v any) bool { _, ok := v.(DateTime); return ok }
func validateDate(v any) bool     { _, ok := v.(DateTime); return ok }
func validateTime(v any) bool     { _, ok := v.(DateTime); return ok }

func castToDateTime(v any) (any, error) {
	switch t := v.(type) {
	case DateTime:
		return t, nil
	case string:
		m := dateTimeRe.FindStringSubmatch(t)
		if m == nil {
			return nil, xerrors.New(xerrors.FORG0001, "invalid lexical value %q for xs:dateTime", t)
		}
		dt := DateTime{}
		dt.Year = atoiSigned(m[1])
		dt.Month = atoiOr0(m[2])
		dt.Day = atoiOr0(m[3])
		dt.Hour = atoiOr0(m[4])
		dt.Minute = atoiOr0(m[5])
		sec, _ := strconv.ParseFloat(m[6], 64)
		dt.Second = sec
		if err := validateGregorianRanges(dt.Month, dt.Day, dt.Hour); err != nil {
			return nil, err
		}
		applyTZ(&dt, m[7])
		return dt, nil
	default:
		return nil, xerrors.New(xerrors.FORG0001, "cannot cast %T to xs:dateTime", v)
	}
}

func castToDate(v any) (any, error) {
	switch t := v.(type) {
	case DateTime:
		return DateTime{Year: t.Year, Month: t.Month, Day: t.Day, HasTimezone: t.HasTimezone, TZOffsetMinutes: t.TZOffsetMinutes}, nil
	case string:
		m := dateRe.FindStringSubmatch(t)
		if m == nil {
			return nil, xerrors.New(xerrors.FORG0001, "invalid lexical value %q for xs:date", t)
		}
		dt := DateTime{Year: atoiSigned(m[1]), Month: atoiOr0(m[2]), Day: atoiOr0(m[3])}
		if err := validateGregorianRanges(dt.Month, dt.Day, 0); err != nil {
			return nil, err
		}
		applyTZ(&dt, m[4])
		return dt, nil
	default:
		return nil, xerrors.New(xerrors.FORG0001, "cannot cast %T to xs:date", v)
	}
}

func castToTime(v any) (any, error) {
	switch t := v.(type) {
	case DateTime:
		return DateTime{Hour: t.Hour, Minute: t.Minute, Second: t.Second, HasTimezone: t.HasTimezone, TZOffsetMinutes: t.TZOffsetMinutes}, nil
	case string:
		m := timeRe.FindStringSubmatch(t)
		if m == nil {
			return nil, xerrors.New(xerrors.FORG0001, "invalid lexical value %q for xs:time", t)
		}
		dt := DateTime{Hour: atoiOr0(m[1]), Minute: atoiOr0(m[2])}
		sec, _ := strconv.ParseFloat(m[3], 64)
		dt.Second = sec
		if dt.Hour > 24 || dt.Minute > 59 || sec >= 61 {
			return nil, xerrors.New(xerrors.FORG0001, "time-of-day out of range in %q", t)
		}
		applyTZ(&dt, m[4])
		return dt, nil
	default:
		return nil, xerrors.New(xerrors.FORG0001, "cannot cast %T to xs:time", v)
	}
}

func validateGregorianRanges(month, day, hour int) error {
	if month != 0 && (month < 1 || month > 12) {
		return xerrors.New(xerrors.FORG0001, "month %d out of range 1..12", month)
	}
	if day != 0 && (day < 1 || day > 31) {
		return xerrors.New(xerrors.FORG0001, "day %d out of range 1..31", day)
	}
	if hour > 24 {
		return xerrors.New(xerrors.FORG0001, "hour %d out of range 0..24", hour)
	}
	return nil
}

func atoiSigned(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func applyTZ(dt *DateTime, tz string) {
	if tz == "" {
		return
	}
	dt.HasTimezone = true
	if tz == "Z" {
		dt.TZOffsetMinutes = 0
		return
	}
	sign := 1
	if tz[0] == '-' {
		sign = -1
	}
	hh, _ := strconv.Atoi(tz[1:3])
	mm, _ := strconv.Atoi(tz[4:6])
	dt.TZOffsetMinutes = sign * (hh*60 + mm)
}

var (
	gYearMonthRe = regexp.MustCompile(`^(-?\d{4,})-(\d{2})$`)
	gYearRe      = regexp.MustCompile(`^(-?\d{4,})$`)
	gMonthDayRe  = regexp.MustCompile(`^--(\d{2})-(\d{2})$`)
	gDayRe       = regexp.MustCompile(`^---(\d{2})$`)
	gMonthRe     = regexp.MustCompile(`^--(\d{2})$`)
)

func validateGYearMonth(v any) bool { _, ok := v.(GDate); return ok }
func validateGYear(v any) bool      { _, ok := v.(GDate); return ok }
func validateGMonthDay(v any) bool  { _, ok := v.(GDate); return ok }
func validateGDay(v any) bool       { _, ok := v.(GDate); return ok }
func validateGMonth(v any) bool     { _, ok := v.(GDate); return ok }

func castToGYearMonth(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		if g, ok := v.(GDate); ok {
			return g, nil
		}
		return nil, xerrors.New(xerrors.FORG0001, "cannot cast %T to xs:gYearMonth", v)
	}
	m := gYearMonthRe.FindStringSubmatch(s)
	if m == nil {
		return nil, xerrors.New(xerrors.FORG0001, "invalid lexical value %q for xs:gYearMonth", s)
	}
	month := atoiOr0(m[2])
	if month < 1 || month > 12 {
		return nil, xerrors.New(xerrors.FORG0001, "month %d out of range in %q", month, s)
	}
	return GDate{Kind: "gYearMonth", Year: atoiSigned(m[1]), Month: month}, nil
}

func castToGYear(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		if g, ok := v.(GDate); ok {
			return g, nil
		}
		return nil, xerrors.New(xerrors.FORG0001, "cannot cast %T to xs:gYear", v)
	}
	m := gYearRe.FindStringSubmatch(s)
	if m == nil {
		return nil, xerrors.New(xerrors.FORG0001, "invalid lexical value %q for xs:gYear", s)
	}
	return GDate{Kind: "gYear", Year: atoiSigned(m[1])}, nil
}

func castToGMonthDay(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		if g, ok := v.(GDate); ok {
			return g, nil
		}
		return nil, xerrors.New(xerrors.FORG0001, "cannot cast %T to xs:gMonthDay", v)
	}
	m := gMonthDayRe.FindStringSubmatch(s)
	if m == nil {
		return nil, xerrors.New(xerrors.FORG0001, "invalid lexical value %q for xs:gMonthDay", s)
	}
	month, day := atoiOr0(m[1]), atoiOr0(m[2])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil, xerrors.New(xerrors.FORG0001, "month/day out of range in %q", s)
	}
	return GDate{Kind: "gMonthDay", Month: month, Day: day}, nil
}

func castToGDay(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		if g, ok := v.(GDate); ok {
			return g, nil
		}
		return nil, xerrors.New(xerrors.FORG0001, "cannot cast %T to xs:gDay", v)
	}
	m := gDayRe.FindStringSubmatch(s)
	if m == nil {
		return nil, xerrors.New(xerrors.FORG0001, "invalid lexical value %q for xs:gDay", s)
	}
	day := atoiOr0(m[1])
	if day < 1 || day > 31 {
		return nil, xerrors.New(xerrors.FORG0001, "day %d out of range in %q", day, s)
	}
	return GDate{Kind: "gDay", Day: day}, nil
}

func castToGMonth(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		if g, ok := v.(GDate); ok {
			return g, nil
		}
		return nil, xerrors.New(xerrors.FORG0001, "cannot cast %T to xs:gMonth", v)
	}
	m := gMonthRe.FindStringSubmatch(s)
	if m == nil {
		return nil, xerrors.New(xerrors.FORG0001, "invalid lexical value %q for xs:gMonth", s)
	}
	month := atoiOr0(m[1])
	if month < 1 || month > 12 {
		return nil, xerrors.New(xerrors.FORG0001, "month %d out of range in %q", month, s)
	}
	return GDate{Kind: "gMonth", Month: month}, nil
}

// --- binary types ---

func validateHexBinary(v any) bool {
	_, ok := v.([]byte)
	return ok
}

func castToHexBinary(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		if b, ok := v.([]byte); ok {
			return b, nil
		}
		return nil, xerrors.New(xerrors.FORG0001, "cannot cast %T to xs:hexBinary", v)
	}
	if len(s)%2 != 0 {
		return nil, xerrors.New(xerrors.FORG0001, "xs:hexBinary lexical value %q has odd length", s)
	}
	b, err := hex.DecodeString(strings.ToLower(s))
	if err != nil {
		return nil, xerrors.New(xerrors.FORG0001, "invalid xs:hexBinary lexical value %q", s)
	}
	return b, nil
}

// HexBinaryString renders b in the normalized (upper-case) lexical form.
func HexBinaryString(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

func validateBase64Binary(v any) bool {
	_, ok := v.([]byte)
	return ok
}

var base64Alphabet = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)

func castToBase64Binary(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		if b, ok := v.([]byte); ok {
			return b, nil
		}
		return nil, xerrors.New(xerrors.FORG0001, "cannot cast %T to xs:base64Binary", v)
	}
	compact := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, s)
	if len(compact)%4 != 0 || !base64Alphabet.MatchString(compact) {
		return nil, xerrors.New(xerrors.FORG0001, "invalid xs:base64Binary lexical value %q", s)
	}
	decoded, err := base64DecodeStd(compact)
	if err != nil {
		return nil, xerrors.New(xerrors.FORG0001, "invalid xs:base64Binary lexical value %q", s)
	}
	return decoded, nil
}

// --- anyURI / QName / untypedAtomic ---

func castToAnyURI(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, xerrors.New(xerrors.FORG0001, "cannot cast %T to xs:anyURI", v)
	}
	return s, nil
}

// QName is the parsed value of an xs:QName: a resolved namespace URI plus
// the local name, with the lexical prefix retained for round-tripping.
type QName struct {
	Prefix    string
	Local     string
	Namespace string
}

var qnameRe = regexp.MustCompile(`^(?:([A-Za-z_][\w.\-]*):)?([A-Za-z_][\w.\-]*)$`)

func validateQName(v any) bool {
	_, ok := v.(QName)
	return ok
}

func castToQName(v any) (any, error) {
	switch t := v.(type) {
	case QName:
		return t, nil
	case string:
		m := qnameRe.FindStringSubmatch(t)
		if m == nil {
			return nil, xerrors.New(xerrors.FORG0001, "invalid lexical value %q for xs:QName", t)
		}
		return QName{Prefix: m[1], Local: m[2]}, nil
	default:
		return nil, xerrors.New(xerrors.FORG0001, "cannot cast %T to xs:QName", v)
	}
}

func castToUntypedAtomic(v any) (any, error) {
	return castToString(v)
}

func base64DecodeStd(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
