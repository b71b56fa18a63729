package pkg

// GroupBy folds items into a single aggregate per key.
// The zero value of V is the initial accumulator for every key.
func GroupBy[T any, K comparable, V any](items []T, key func(T) K, fold func(acc V, item T) V) map[K]V {
	groups := make(map[K]V)
	for _, item := range items {
		k := key(item)
		groups[k] = fold(groups[k], item)
	}
	return groups
}

// LeftJoin produces exactly one output per left item, in the order of left.
// join receives ok == false (and the zero R) when the key has no right side match.
func LeftJoin[L any, K comparable, R any, O any](
	left []L,
	right map[K]R,
	key func(L) K,
	join func(l L, r R, ok bool) O,
) []O {
	out := make([]O, 0, len(left))
	for _, l := range left {
		r, ok := right[key(l)]
		out = append(out, join(l, r, ok))
	}
	return out
}
