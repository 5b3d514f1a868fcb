package dynamix

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Op names one overridable operation. Each op belongs to a single trait; an
// override can only be installed when its trait is enabled.
type Op string

const (
	OpGetItem Op = "getitem"
	OpSetItem Op = "setitem"
	OpDelItem Op = "delitem"
	OpAttr    Op = "attr"
	OpPairs   Op = "pairs"
	OpRepr    Op = "repr"
)

// opTraits maps each op to the trait that owns it.
var opTraits = map[Op]Trait{
	OpGetItem: TraitItem,
	OpSetItem: TraitItem,
	OpDelItem: TraitItem,
	OpAttr:    TraitAttr,
	OpPairs:   TraitIter,
	OpRepr:    TraitRepr,
}

// Trait returns the trait that owns this op, or "" for an unknown op.
func (op Op) Trait() Trait {
	return opTraits[op]
}

// Override function signatures, one per op. Builder.Override validates the
// supplied function against these at build time.
//
// An installed override fully replaces the default behavior for its op and
// receives the live object; it may use the object's intrinsic operations.
type (
	GetItemFunc func(o *Object, key string) (any, error)
	SetItemFunc func(o *Object, key string, value any) error
	DelItemFunc func(o *Object, key string) error
	AttrFunc    func(o *Object, name string) (any, error)
	PairsFunc   func(o *Object) PairSeq
	ReprFunc    func(o *Object) string
)

// overrides is the resolved override table of a composed class.
type overrides struct {
	getItem GetItemFunc
	setItem SetItemFunc
	delItem DelItemFunc
	attr    AttrFunc
	pairs   PairsFunc
	repr    ReprFunc
}

// Class is the immutable product of composition: a name, the trait set, and
// the override table. Classes are created through the Builder (or the Define
// helpers) and are safe for concurrent use once built.
type Class struct {
	name  string
	flags Flags
	ovr   overrides
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.name
}

// Has checks if the class carries the trait.
func (c *Class) Has(t Trait) bool {
	return c.flags.Has(t)
}

// Traits returns the class's traits in composition order.
func (c *Class) Traits() []Trait {
	return c.flags.Enabled()
}

// New creates an instance of the class with the given initial attributes.
//
// Initial attributes are written directly to the attribute store, in argument
// order; the item trait's Set override is not consulted. Later pairs win over
// earlier pairs with the same name, but the name keeps its first position.
func (c *Class) New(pairs ...Pair) *Object {
	o := &Object{class: c}
	for _, p := range pairs {
		o.attrs.Set(p.Name, p.Value)
	}
	return o
}

// opEntry records one Override call in registration order.
type opEntry struct {
	op Op
	fn any
}

// Builder assembles a class definition. All validation happens in Build, so
// a Builder itself never fails and calls chain fluently:
//
//	cls, err := dynamix.NewClass("Person").
//	    Enable(dynamix.TraitItem, dynamix.TraitRepr).
//	    Override(dynamix.OpRepr, func(o *dynamix.Object) string { ... }).
//	    Build()
type Builder struct {
	name  string
	flags Flags
	ops   []opEntry
	err   error
}

// NewClass starts a class definition with the given name.
func NewClass(name string) *Builder {
	return &Builder{name: name}
}

// Enable turns on the given traits.
func (b *Builder) Enable(traits ...Trait) *Builder {
	for _, t := range traits {
		if !t.Valid() {
			if b.err == nil {
				b.err = errors.Wrapf(ErrUnknownTrait, "trait %q", string(t))
			}
			continue
		}
		b.flags.set(t)
	}
	return b
}

// WithFlags enables every trait enabled in f, in addition to any traits
// already enabled on the builder.
func (b *Builder) WithFlags(f Flags) *Builder {
	b.flags = b.flags.Union(f)
	return b
}

// Override installs a replacement function for one op. The function must
// match the op's signature exactly; validation is deferred to Build.
func (b *Builder) Override(op Op, fn any) *Builder {
	b.ops = append(b.ops, opEntry{op: op, fn: fn})
	return b
}

// Build validates the definition and returns the composed class.
//
// Every failure is a *CompositionError wrapping one of the sentinel causes:
// ErrClassName for a bad name, ErrUnknownOp for an unrecognized op,
// ErrOverrideOrphan for an override whose trait is not enabled,
// ErrOverrideConflict for two overrides of the same op, and
// ErrOverrideMismatch for a nil or wrongly-typed function.
func (b *Builder) Build() (*Class, error) {
	if b.err != nil {
		return nil, composeErr(b.name, "", b.err)
	}
	if err := validateClassName(b.name); err != nil {
		return nil, composeErr(b.name, "", err)
	}

	c := &Class{name: b.name, flags: b.flags}
	seen := make(map[Op]bool, len(b.ops))
	for _, entry := range b.ops {
		trait := entry.op.Trait()
		if trait == "" {
			return nil, composeErr(b.name, entry.op, errors.Wrapf(ErrUnknownOp, "op %q", string(entry.op)))
		}
		if !b.flags.Has(trait) {
			return nil, composeErr(b.name, entry.op, errors.Wrapf(ErrOverrideOrphan, "trait %s is not enabled", trait))
		}
		if seen[entry.op] {
			return nil, composeErr(b.name, entry.op, errors.Wrapf(ErrOverrideConflict, "op %s overridden twice", entry.op))
		}
		seen[entry.op] = true
		if entry.fn == nil {
			return nil, composeErr(b.name, entry.op, errors.Wrap(ErrOverrideMismatch, "nil function"))
		}
		if err := c.ovr.install(entry.op, entry.fn); err != nil {
			return nil, composeErr(b.name, entry.op, err)
		}
	}
	return c, nil
}

// install type-checks fn against the op's expected signature and stores it.
func (ovr *overrides) install(op Op, fn any) error {
	switch op {
	case OpGetItem:
		if f, ok := fn.(GetItemFunc); ok {
			ovr.getItem = f
			return nil
		}
		if f, ok := fn.(func(*Object, string) (any, error)); ok {
			ovr.getItem = f
			return nil
		}
		return errors.Wrapf(ErrOverrideMismatch, "got %T, want func(*Object, string) (any, error)", fn)
	case OpSetItem:
		if f, ok := fn.(SetItemFunc); ok {
			ovr.setItem = f
			return nil
		}
		if f, ok := fn.(func(*Object, string, any) error); ok {
			ovr.setItem = f
			return nil
		}
		return errors.Wrapf(ErrOverrideMismatch, "got %T, want func(*Object, string, any) error", fn)
	case OpDelItem:
		if f, ok := fn.(DelItemFunc); ok {
			ovr.delItem = f
			return nil
		}
		if f, ok := fn.(func(*Object, string) error); ok {
			ovr.delItem = f
			return nil
		}
		return errors.Wrapf(ErrOverrideMismatch, "got %T, want func(*Object, string) error", fn)
	case OpAttr:
		if f, ok := fn.(AttrFunc); ok {
			ovr.attr = f
			return nil
		}
		if f, ok := fn.(func(*Object, string) (any, error)); ok {
			ovr.attr = f
			return nil
		}
		return errors.Wrapf(ErrOverrideMismatch, "got %T, want func(*Object, string) (any, error)", fn)
	case OpPairs:
		if f, ok := fn.(PairsFunc); ok {
			ovr.pairs = f
			return nil
		}
		if f, ok := fn.(func(*Object) PairSeq); ok {
			ovr.pairs = f
			return nil
		}
		return errors.Wrapf(ErrOverrideMismatch, "got %T, want func(*Object) PairSeq", fn)
	case OpRepr:
		if f, ok := fn.(ReprFunc); ok {
			ovr.repr = f
			return nil
		}
		if f, ok := fn.(func(*Object) string); ok {
			ovr.repr = f
			return nil
		}
		return errors.Wrapf(ErrOverrideMismatch, "got %T, want func(*Object) string", fn)
	}
	return errors.Wrapf(ErrUnknownOp, "op %q", string(op))
}

// validateClassName rejects names that would corrupt repr output or be
// unusable as registry keys.
func validateClassName(name string) error {
	if name == "" {
		return errors.Wrap(ErrClassName, "empty name")
	}
	if strings.ContainsAny(name, " \t\n()") {
		return errors.Wrapf(ErrClassName, "name %q contains whitespace or parentheses", name)
	}
	return nil
}

// Define composes a class from a name and flags, with no overrides.
func Define(name string, f Flags) (*Class, error) {
	return NewClass(name).WithFlags(f).Build()
}

// MustDefine is Define that panics on failure. Intended for package-level
// class variables where the definition is known to be valid.
func MustDefine(name string, f Flags) *Class {
	c, err := Define(name, f)
	if err != nil {
		panic(err)
	}
	return c
}

// DefineBase composes a class with all four traits enabled. Panics if the
// name is invalid.
func DefineBase(name string) *Class {
	return MustDefine(name, AllFlags())
}
