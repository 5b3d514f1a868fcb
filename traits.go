package dynamix

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// itemView implements ItemAccess over an object's attribute store.
type itemView struct {
	o *Object
}

var _ ItemAccess = itemView{}

// Get returns the value stored under key.
//
// A present key always wins, including one storing nil. An absent key fails
// with ErrNotFound, unless the class also carries the attr trait: then the
// tolerant (nil, nil) outcome applies, matching a plain attr read of the same
// name. Reserved keys never take the tolerant path.
func (v itemView) Get(key string) (any, error) {
	o := v.o
	if fn := o.class.ovr.getItem; fn != nil {
		return fn(o, key)
	}
	if val, ok := o.attrs.Get(key); ok {
		return val, nil
	}
	if o.class.flags.Attr && !Reserved(key) {
		return nil, nil
	}
	return nil, errors.Wrapf(ErrNotFound, "item %q", key)
}

// Set stores value under key, replacing any previous value. An existing key
// keeps its insertion position.
func (v itemView) Set(key string, value any) error {
	o := v.o
	if fn := o.class.ovr.setItem; fn != nil {
		return fn(o, key, value)
	}
	o.attrs.Set(key, value)
	return nil
}

// Delete removes the binding for key. Deleting an absent key fails with
// ErrNotFound: a delete must delete something.
func (v itemView) Delete(key string) error {
	o := v.o
	if fn := o.class.ovr.delItem; fn != nil {
		return fn(o, key)
	}
	if !o.attrs.Delete(key) {
		return errors.Wrapf(ErrNotFound, "item %q", key)
	}
	return nil
}

// Keys returns the visible keys in insertion order.
func (v itemView) Keys() []string {
	return v.o.Names()
}

// Values returns the visible values in insertion order.
func (v itemView) Values() []any {
	vals := make([]any, 0, v.o.attrs.Len())
	for k, val := range v.o.attrs.All() {
		if Reserved(k) {
			continue
		}
		vals = append(vals, val)
	}
	return vals
}

// Items returns the visible (key, value) pairs in insertion order.
func (v itemView) Items() []Pair {
	pairs := make([]Pair, 0, v.o.attrs.Len())
	for k, val := range v.o.attrs.All() {
		if Reserved(k) {
			continue
		}
		pairs = append(pairs, Pair{Name: k, Value: val})
	}
	return pairs
}

// attrView implements AttrAccess over an object's attribute store.
type attrView struct {
	o *Object
}

var _ AttrAccess = attrView{}

// Get returns the value stored under name, or the tolerant (nil, nil)
// outcome when name is absent. Reading an absent reserved name is a hard
// ErrNotFound; machinery names never fall back silently.
func (v attrView) Get(name string) (any, error) {
	o := v.o
	if fn := o.class.ovr.attr; fn != nil {
		return fn(o, name)
	}
	if val, ok := o.attrs.Get(name); ok {
		return val, nil
	}
	if Reserved(name) {
		return nil, errors.Wrapf(ErrNotFound, "attribute %q", name)
	}
	return nil, nil
}

// unrenderable replaces a field whose value cannot render itself. One bad
// field never aborts the repr of the whole object.
const unrenderable = "<unrenderable>"

// renderRepr renders the default "ClassName(name=value, ...)" form over the
// visible attributes in insertion order.
func renderRepr(o *Object) string {
	var b strings.Builder
	b.WriteString(o.class.name)
	b.WriteByte('(')
	first := true
	for k, v := range o.visiblePairs() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(renderValue(v))
	}
	b.WriteByte(')')
	return b.String()
}

// renderValue renders one attribute value: quoted for strings, "%v" for
// everything else. Values whose own String or Error method panics render as
// the unrenderable placeholder.
func renderValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return strconv.Quote(t)
	case error:
		return guarded(t.Error)
	case fmt.Stringer:
		return guarded(t.String)
	default:
		return fmt.Sprint(v)
	}
}

// guarded calls fn, substituting the placeholder if fn panics.
func guarded(fn func() string) (s string) {
	defer func() {
		if recover() != nil {
			s = unrenderable
		}
	}()
	return fn()
}
