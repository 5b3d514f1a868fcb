package dynamix

import "iter"

// PairSeq is a lazy sequence of (name, value) pairs, usable directly in a
// range statement:
//
//	seq, err := obj.Pairs()
//	for name, value := range seq {
//	    ...
//	}
//
// Sequences returned by this package are restartable - ranging a second time
// replays the pairs - and produce pairs during the range, not when the
// sequence is created.
type PairSeq = iter.Seq2[string, any]

// ItemAccess is the view returned by Object.Items for classes composed with
// the item trait. It provides dictionary-style access to the attribute set.
//
// Get on an absent key fails with ErrNotFound, unless the class also carries
// the attr trait, in which case the tolerant (nil, nil) outcome bleeds
// through for non-reserved keys. Delete on an absent key always fails with
// ErrNotFound.
//
// Keys, Values and Items enumerate visible attributes in insertion order and
// return snapshots, not live views.
type ItemAccess interface {
	Get(key string) (any, error)
	Set(key string, value any) error
	Delete(key string) error
	Keys() []string
	Values() []any
	Items() []Pair
}

// AttrAccess is the view returned by Object.Attrs for classes composed with
// the attr trait.
//
// Get returns the stored value for a present name. For an absent non-reserved
// name it returns (nil, nil) - the tolerant "absent" outcome that replaces a
// hard failure. The tolerant path never masks a present value: successful
// reads are returned as-is, including stored nils.
type AttrAccess interface {
	Get(name string) (any, error)
}
