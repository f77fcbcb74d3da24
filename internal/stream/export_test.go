package stream

// CombineForTest exposes combine to external tests.
func CombineForTest(a, b Classification) Classification { return combine(a, b) }

// CombineAllForTest exposes combineAll to external tests.
func CombineAllForTest(cs []Classification) Classification { return combineAll(cs) }
