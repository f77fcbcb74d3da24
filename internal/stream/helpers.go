package stream

import "github.com/oxhq/xpathlang/internal/ast"

// IsMotionless reports whether node touches no node at all.
func IsMotionless(node ast.Node) bool {
	return Analyze(node).Posture == Motionless
}

// IsGrounded reports whether node's posture is motionless or grounded —
// i.e. it can stream downward without buffering its whole input.
func IsGrounded(node ast.Node) bool {
	p := Analyze(node).Posture
	return p == Motionless || p == Grounded
}

// IsStreamable reports whether node can be evaluated without buffering the
// entire input tree in memory.
func IsStreamable(node ast.Node) bool {
	return Analyze(node).Streamable
}

// GetMemoryFootprint returns node's estimated memory footprint in [0,1].
func GetMemoryFootprint(node ast.Node) float64 {
	return Analyze(node).MemoryFootprint
}
