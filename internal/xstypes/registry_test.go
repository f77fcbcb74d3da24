package xstypes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()

	integer, ok := reg.Lookup("integer")
	require.True(t, ok)
	assert.Equal(t, "decimal", integer.Base.Name)
	assert.True(t, integer.IsDerivedFrom(reg.MustLookup("anyAtomicType")))

	_, ok = reg.Lookup("not-a-type")
	assert.False(t, ok)
}

func TestCastStringRoundTrip(t *testing.T) {
	reg := NewRegistry()
	str := reg.MustLookup("string")

	for _, v := range []any{"hello", true, false, 3.5} {
		s, err := str.Cast(v)
		require.NoError(t, err)
		assert.IsType(t, "", s)
	}
}

func TestCastBoolean(t *testing.T) {
	reg := NewRegistry()
	boolean := reg.MustLookup("boolean")

	v, err := boolean.Cast(float64(0))
	require.NoError(t, err)
	assert.Equal(t, false, v)

	v, err = boolean.Cast(float64(3.14))
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = boolean.Cast(math.NaN())
	require.NoError(t, err)
	assert.Equal(t, false, v)

	v, err = boolean.Cast("True")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	_, err = boolean.Cast("maybe")
	assert.Error(t, err)
}

func TestCastIntegerDerivedRanges(t *testing.T) {
	reg := NewRegistry()
	byteT := reg.MustLookup("byte")

	v, err := byteT.Cast(float64(127))
	require.NoError(t, err)
	assert.Equal(t, 127.0, v)

	_, err = byteT.Cast(float64(128))
	assert.Error(t, err)

	_, err = byteT.Cast(float64(-129))
	assert.Error(t, err)
}

func TestValidateIntegerRejectsFractional(t *testing.T) {
	reg := NewRegistry()
	integer := reg.MustLookup("integer")
	assert.True(t, integer.Validate(float64(3)))
	assert.False(t, integer.Validate(float64(3.5)))
}

func TestCastDuration(t *testing.T) {
	reg := NewRegistry()
	duration := reg.MustLookup("duration")

	v, err := duration.Cast("P1Y2M3DT4H5M6S")
	require.NoError(t, err)
	d := v.(Duration)
	assert.Equal(t, 1, d.Years)
	assert.Equal(t, 2, d.Months)
	assert.False(t, d.Negative)

	v, err = duration.Cast("-P1Y")
	require.NoError(t, err)
	d = v.(Duration)
	assert.Equal(t, 1, d.Years)
	assert.True(t, d.Negative)
}

func TestCastHexBinaryNormalizesUppercase(t *testing.T) {
	reg := NewRegistry()
	hexT := reg.MustLookup("hexBinary")

	v, err := hexT.Cast("0fb7")
	require.NoError(t, err)
	b := v.([]byte)
	assert.Equal(t, "0FB7", HexBinaryString(b))

	_, err = hexT.Cast("abc")
	assert.Error(t, err, "odd length must be rejected")
}

func TestCastBase64Binary(t *testing.T) {
	reg := NewRegistry()
	b64 := reg.MustLookup("base64Binary")

	_, err := b64.Cast("aGVsbG8=")
	require.NoError(t, err)

	_, err = b64.Cast("not-valid-base64!!")
	assert.Error(t, err)
}

func TestCastGregorianRejectsInvalidMonthDay(t *testing.T) {
	reg := NewRegistry()
	gMonthDay := reg.MustLookup("gMonthDay")

	_, err := gMonthDay.Cast("--13-01")
	assert.Error(t, err)

	_, err = gMonthDay.Cast("--01-32")
	assert.Error(t, err)

	v, err := gMonthDay.Cast("--02-29")
	require.NoError(t, err)
	g := v.(GDate)
	assert.Equal(t, 2, g.Month)
	assert.Equal(t, 29, g.Day)
}

func TestNumericPromotion(t *testing.T) {
	assert.Equal(t, RankDecimal, PromoteRank(NumericRank("integer"), NumericRank("decimal")))
	assert.Equal(t, RankDouble, PromoteRank(NumericRank("float"), NumericRank("double")))
	assert.Equal(t, "double", RankTypeName(PromoteRank(NumericRank("integer"), NumericRank("double"))))
}

func TestXSType(t *testing.T) {
	assert.Equal(t, "{http://www.w3.org/2001/XMLSchema}string", XSType("string"))
}
