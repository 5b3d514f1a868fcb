package dynamix

// Test helpers for consumers asserting on objects and pair sequences.
// They are plain functions rather than a harness: fixtures are cheap to
// build and the interesting assertions are on ordinary values.

// Fixture composes a throwaway class and returns a bound instance with the
// given attributes. It panics on an invalid name, which in a test is the
// right kind of loud:
//
//	obj := dynamix.Fixture("Widget", dynamix.AllFlags(),
//	    dynamix.A("size", 4),
//	)
//
// Fixture classes are standalone; they are not added to any registry, so two
// tests may reuse a name freely.
func Fixture(name string, flags Flags, pairs ...Pair) *Object {
	return MustDefine(name, flags).New(pairs...)
}

// CollectPairs drains a pair sequence into a slice, preserving order. Handy
// for asserting on iteration results:
//
//	seq, _ := obj.Pairs()
//	got := dynamix.CollectPairs(seq)
func CollectPairs(seq PairSeq) []Pair {
	var pairs []Pair
	for name, value := range seq {
		pairs = append(pairs, Pair{Name: name, Value: value})
	}
	return pairs
}

// CollectNames drains a pair sequence into its names, preserving order.
func CollectNames(seq PairSeq) []string {
	var names []string
	for name := range seq {
		names = append(names, name)
	}
	return names
}

// AttrMap snapshots an object's visible attributes into a plain map for
// order-insensitive assertions.
func AttrMap(o *Object) map[string]any {
	m := make(map[string]any, o.Len())
	for name, value := range o.visiblePairs() {
		m[name] = value
	}
	return m
}
