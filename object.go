package dynamix

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/pthm/dynamix/lib/ordmap"
)

// reservedPrefix marks attribute names owned by machinery, never by user
// data. Reserved names stay reachable through the intrinsic operations but
// are excluded from enumeration, repr, snapshots and the attr fallback.
const reservedPrefix = "__"

// Reserved checks if name belongs to the machinery namespace.
func Reserved(name string) bool {
	return strings.HasPrefix(name, reservedPrefix)
}

// Pair is one named attribute. Sequences of pairs preserve insertion order.
type Pair struct {
	Name  string
	Value any
}

// Object is an instance of a Class: a class pointer plus an
// insertion-ordered attribute store.
//
// The zero Object is unbound - it has no class. Intrinsic operations work on
// it; capability accessors fail with ErrNotComposed until the object is bound
// through Class.New or Init.
//
// Object is not safe for concurrent mutation. Callers that share an object
// across goroutines must synchronize, or use SetOnceMap for shared
// write-once state.
type Object struct {
	class *Class
	attrs ordmap.Map[string, any]
}

// Class returns the object's class, or nil when unbound.
func (o *Object) Class() *Class {
	return o.class
}

// Can checks if the object's class carries the trait. Always false for an
// unbound object.
func (o *Object) Can(t Trait) bool {
	return o.class != nil && o.class.flags.Has(t)
}

// Lookup reads an attribute directly, bypassing every trait. Reserved names
// are readable.
func (o *Object) Lookup(name string) (any, bool) {
	return o.attrs.Get(name)
}

// Put writes an attribute directly, bypassing every trait. A new name is
// appended to the insertion order; an existing name keeps its position.
func (o *Object) Put(name string, value any) {
	o.attrs.Set(name, value)
}

// Remove deletes an attribute directly, bypassing every trait. Reports
// whether the attribute was present.
func (o *Object) Remove(name string) bool {
	return o.attrs.Delete(name)
}

// Len returns the number of visible attributes. Reserved names are not
// counted.
func (o *Object) Len() int {
	n := 0
	for _, k := range o.attrs.Keys() {
		if !Reserved(k) {
			n++
		}
	}
	return n
}

// Names returns the visible attribute names in insertion order.
func (o *Object) Names() []string {
	keys := o.attrs.Keys()
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		if !Reserved(k) {
			names = append(names, k)
		}
	}
	return names
}

// Items returns the item-trait view of the object.
func (o *Object) Items() (ItemAccess, error) {
	if err := o.require(TraitItem); err != nil {
		return nil, err
	}
	return itemView{o}, nil
}

// Attrs returns the attr-trait view of the object.
func (o *Object) Attrs() (AttrAccess, error) {
	if err := o.require(TraitAttr); err != nil {
		return nil, err
	}
	return attrView{o}, nil
}

// Pairs returns a lazy sequence over the visible attributes in insertion
// order. Requires the iter trait.
//
// The name set is fixed when a range starts; values are read at yield time,
// so an attribute updated mid-range yields its new value. Ranging again
// restarts from the current attribute set.
func (o *Object) Pairs() (PairSeq, error) {
	if err := o.require(TraitIter); err != nil {
		return nil, err
	}
	if fn := o.class.ovr.pairs; fn != nil {
		return fn(o), nil
	}
	return o.visiblePairs(), nil
}

// Repr renders the canonical "ClassName(name=value, ...)" form. Requires the
// repr trait. Visible attributes appear in insertion order; a class with no
// visible attributes renders as "ClassName()".
func (o *Object) Repr() (string, error) {
	if err := o.require(TraitRepr); err != nil {
		return "", err
	}
	if fn := o.class.ovr.repr; fn != nil {
		return fn(o), nil
	}
	return renderRepr(o), nil
}

// String implements fmt.Stringer. It returns Repr when the repr trait is
// composed and otherwise a "<ClassName>" placeholder, so printing an object
// never fails.
func (o *Object) String() string {
	if s, err := o.Repr(); err == nil {
		return s
	}
	if o.class != nil {
		return "<" + o.class.name + ">"
	}
	return "<object>"
}

// require gates a capability accessor on the trait being composed.
func (o *Object) require(t Trait) error {
	if o.class == nil {
		return errors.Wrapf(ErrNotComposed, "%s on unbound object", t)
	}
	if !o.class.flags.Has(t) {
		return errors.Wrapf(ErrNotComposed, "%s on class %s", t, o.class.name)
	}
	return nil
}

// visiblePairs is the default iteration source: attribute-store order with
// reserved names filtered out.
func (o *Object) visiblePairs() PairSeq {
	return func(yield func(string, any) bool) {
		for k, v := range o.attrs.All() {
			if Reserved(k) {
				continue
			}
			if !yield(k, v) {
				return
			}
		}
	}
}
