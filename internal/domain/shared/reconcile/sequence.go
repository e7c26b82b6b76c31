package reconcile

// Integer is the set of key types a Sequence can generate.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Sequence assigns surrogate keys counting up from one past the largest taken key.
type Sequence[T any, K Integer] struct {
	SetKey func(child *T, key K)
}

// AssignKeys implements KeyAssigner.
func (s Sequence[T, K]) AssignKeys(taken []K, pending []T) []T {
	next := NextKey(taken)
	out := make([]T, len(pending))
	for i, child := range pending {
		s.SetKey(&child, next)
		out[i] = child
		next++
	}
	return out
}

// NextKey returns 1 + max(keys), or 1 for an empty set.
func NextKey[K Integer](keys []K) K {
	var max K
	for _, k := range keys {
		if k > max {
			max = k
		}
	}
	return max + 1
}
