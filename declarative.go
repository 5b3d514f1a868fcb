package dynamix

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// TagKey is the struct tag read from the embedded Declarative field to
// select traits at definition time.
const TagKey = "dynamix"

// Declarative is embedded by user structs to opt into trait composition.
// The traits are declared on the embedded field's tag:
//
//	type Person struct {
//	    dynamix.Declarative `dynamix:"item,attr,iter,repr"`
//	}
//
// An untagged embed composes a class with no traits; unrecognized tag tokens
// are silently ignored so tags written against newer versions still load.
//
// Flag locality is strict: only the tag written on the type's own embedded
// field counts. A struct embedding another declarative struct inherits its
// storage and methods, but is not itself declarative until it directly
// embeds Declarative or Base.
//
// Embedding promotes the whole Object API onto the user type; Init binds the
// composed class and a fresh attribute store.
type Declarative struct {
	Object
}

// Base is Declarative with all four traits, no tag needed:
//
//	type Person struct {
//	    dynamix.Base
//	}
//
// A Base-composed class behaves exactly like one composed with the four
// flags individually.
type Base struct {
	Object
}

var (
	declarativeType = reflect.TypeOf(Declarative{})
	baseType        = reflect.TypeOf(Base{})
)

// Register composes (once) and registers the class for struct type T in the
// default registry. The class name is T's type name and its flags come from
// the embedded field's tag.
//
// Composition runs exactly once per type: repeat calls return the cached
// class, and later tag edits (impossible at run time anyway) would have no
// effect. A different type whose name is already taken fails with a
// *CompositionError wrapping ErrAlreadyDefined.
func Register[T any]() (*Class, error) {
	return Default().classForType(reflect.TypeFor[T]())
}

// MustRegister is Register that panics on failure. Intended for package-level
// registration of types known to be valid.
func MustRegister[T any]() *Class {
	c, err := Register[T]()
	if err != nil {
		panic(err)
	}
	return c
}

// Init binds a fresh instance of v's composed class to the Object embedded
// in v. v must be a non-nil pointer to a struct that directly embeds
// Declarative or Base.
//
// Init defines and registers the class on first use, then reuses the cached
// class on every later call, so it doubles as the constructor:
//
//	p := &Person{}
//	if err := dynamix.Init(p); err != nil { ... }
//	p.Put("name", "Alice")
//
// Re-initializing an already-bound value resets it to an empty attribute set.
func Init(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return errors.Wrapf(ErrNotDeclarative, "Init wants a non-nil struct pointer, got %T", v)
	}
	elem := rv.Elem()
	cls, err := Default().classForType(elem.Type())
	if err != nil {
		return err
	}
	obj := embeddedObject(elem)
	if obj == nil {
		return composeErr(elem.Type().Name(), "", errors.Wrapf(ErrNotDeclarative, "%s does not embed dynamix.Declarative or dynamix.Base", elem.Type()))
	}
	*obj = Object{class: cls}
	return nil
}

// classForType resolves the cached class for a declarative type, composing
// and registering it on first use.
func (r *Registry) classForType(t reflect.Type) (*Class, error) {
	r.mu.RLock()
	c, ok := r.types[t]
	r.mu.RUnlock()
	if ok {
		return c, nil
	}

	flags, err := declaredFlags(t)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.types[t]; ok {
		return c, nil
	}
	c, err = Define(t.Name(), flags)
	if err != nil {
		return nil, err
	}
	if _, taken := r.classes[c.name]; taken {
		return nil, composeErr(c.name, "", errors.Wrapf(ErrAlreadyDefined, "type %s collides with an existing class", t))
	}
	r.classes[c.name] = c
	r.types[t] = c
	r.log.Debug("declarative class registered",
		zap.String("class", c.name),
		zap.Strings("traits", traitStrings(c.Traits())))
	return c, nil
}

// declaredFlags reads the trait flags declared on t's own struct body.
// Only direct embeds count; flags are never inherited through intermediate
// types.
func declaredFlags(t reflect.Type) (Flags, error) {
	if t.Kind() != reflect.Struct {
		return Flags{}, composeErr(t.Name(), "", errors.Wrapf(ErrNotDeclarative, "%s is not a struct", t))
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		switch f.Type {
		case baseType:
			return AllFlags(), nil
		case declarativeType:
			return ParseFlagList(strings.Split(f.Tag.Get(TagKey), ",")), nil
		}
	}
	return Flags{}, composeErr(t.Name(), "", errors.Wrapf(ErrNotDeclarative, "%s does not embed dynamix.Declarative or dynamix.Base", t))
}

// embeddedObject returns the Object inside the directly-embedded Declarative
// or Base field, or nil when the struct has neither.
func embeddedObject(elem reflect.Value) *Object {
	t := elem.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		switch f.Type {
		case declarativeType:
			return &elem.Field(i).Addr().Interface().(*Declarative).Object
		case baseType:
			return &elem.Field(i).Addr().Interface().(*Base).Object
		}
	}
	return nil
}
