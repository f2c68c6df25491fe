package model

// PairKey is the canonical key of an unordered user pair. It only backs
// uniqueness constraints; lookups still match both orderings.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}
