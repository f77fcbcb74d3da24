package stream_test

import (
	"testing"

	"github.com/oxhq/xpathlang/internal/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostureOrdering(t *testing.T) {
	assert.Equal(t, "motionless", stream.Motionless.String())
	assert.Equal(t, "grounded", stream.Grounded.String())
	assert.Equal(t, "consuming", stream.Consuming.String())
	assert.Equal(t, "roaming", stream.Roaming.String())
	assert.True(t, stream.Grounded > stream.Motionless)
	assert.True(t, stream.Roaming > stream.Consuming)
}

func TestSweepString(t *testing.T) {
	assert.Equal(t, "none", stream.SweepNone.String())
	assert.Equal(t, "downward", stream.SweepDownward.String())
	assert.Equal(t, "upward", stream.SweepUpward.String())
	assert.Equal(t, "free", stream.SweepFree.String())
}

func TestCombineWorstPostureDominates(t *testing.T) {
	motionless := stream.Classification{Posture: stream.Motionless, Streamable: true}
	grounded := stream.Classification{Posture: stream.Grounded, Streamable: true, MemoryFootprint: 0.2}
	consuming := stream.Classification{Posture: stream.Consuming, Streamable: true, MemoryFootprint: 0.6}
	roaming := stream.Classification{Posture: stream.Roaming, Streamable: false, MemoryFootprint: 1.0, Reason: "unbounded"}

	combined := stream.CombineForTest(motionless, grounded)
	assert.Equal(t, stream.Grounded, combined.Posture)

	combined = stream.CombineForTest(grounded, consuming)
	assert.Equal(t, stream.Consuming, combined.Posture)
	assert.InDelta(t, 0.6, combined.MemoryFootprint, 1e-9)

	combined = stream.CombineForTest(consuming, roaming)
	assert.Equal(t, stream.Roaming, combined.Posture)
	assert.False(t, combined.Streamable)
	require.NotEmpty(t, combined.Reason)
}

func TestCombineAllEmptyIsMotionless(t *testing.T) {
	out := stream.CombineAllForTest(nil)
	assert.Equal(t, stream.Motionless, out.Posture)
	assert.True(t, out.Streamable)
	assert.Equal(t, 0.0, out.MemoryFootprint)
}

func TestCombineNonStreamableIsContagious(t *testing.T) {
	ok := stream.Classification{Posture: stream.Grounded, Streamable: true}
	bad := stream.Classification{Posture: stream.Grounded, Streamable: false, Reason: "custom reason"}
	combined := stream.CombineForTest(ok, bad)
	assert.False(t, combined.Streamable)
	assert.Equal(t, "custom reason", combined.Reason)
	assert.True(t, combined.RequiresBuffering)
}
