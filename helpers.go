package dynamix

import "sort"

// A builds a Pair. It keeps construction sites short:
//
//	person := cls.New(
//	    dynamix.A("name", "Alice"),
//	    dynamix.A("age", 30),
//	)
func A(name string, value any) Pair {
	return Pair{Name: name, Value: value}
}

// PairsOf converts a plain map to pairs. Go maps have no order, so the
// pairs are sorted by name to keep the resulting insertion order
// deterministic. Use explicit Pair slices when a specific order matters.
func PairsOf(m map[string]any) []Pair {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]Pair, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, Pair{Name: name, Value: m[name]})
	}
	return pairs
}

// Apply writes pairs onto an object through the intrinsic Put, in argument
// order.
func Apply(o *Object, pairs ...Pair) {
	for _, p := range pairs {
		o.Put(p.Name, p.Value)
	}
}

// Get reads an attribute through the intrinsic Lookup and asserts its type.
// The second result is false when the attribute is absent or holds a
// different type.
//
//	age, ok := dynamix.Get[int](person, "age")
//
// Generated accessors are built on Get.
func Get[T any](o *Object, name string) (T, bool) {
	v, ok := o.Lookup(name)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
