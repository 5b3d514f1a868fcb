// Package dynamix composes optional capabilities onto types whose state is a
// dynamic, insertion-ordered set of named attributes.
//
// Four traits exist, selected per class at definition time: item
// (dictionary-style get/set/delete access), attr (tolerant reads of absent
// attributes), iter (lazy ordered iteration) and repr (canonical
// "ClassName(name=value, ...)" rendering). A class either carries a trait or
// it does not; nothing changes after definition.
//
// # Core Concepts
//
// A Class is the immutable product of composition: a name, a trait set, and
// an optional override table. An Object is an instance: a class pointer plus
// an ordered attribute store. Intrinsic operations (Lookup, Put, Remove,
// Names, Len) always work; capability accessors (Items, Attrs, Pairs, Repr)
// fail with ErrNotComposed when their trait is absent.
//
//	cls := dynamix.DefineBase("Person")
//	p := cls.New(
//	    dynamix.A("name", "Alice"),
//	    dynamix.A("age", 30),
//	)
//	items, _ := p.Items()
//	name, _ := items.Get("name") // "Alice"
//
// Attribute names beginning with "__" are reserved for machinery. They stay
// reachable through the intrinsics but never appear in iteration, repr,
// enumeration or snapshots, and the attr trait's tolerant fallback does not
// apply to them.
//
// # Declarative Types
//
// Go structs opt into composition by embedding Declarative with a trait tag,
// or Base for all four traits:
//
//	type Person struct {
//	    dynamix.Declarative `dynamix:"item,attr,iter,repr"`
//	}
//
//	p := &Person{}
//	if err := dynamix.Init(p); err != nil { ... }
//	p.Put("name", "Alice")
//
// The class is composed once per Go type, on first Register or Init, and
// named after the type. Flags are local: only the tag on the type's own
// embedded field counts, never tags on types it embeds. Unrecognized tag
// tokens are ignored so tags written for newer versions still load.
//
// Classes can equally come from YAML via Config, or from the explicit
// Builder when overrides are needed.
//
// # Composition Failures
//
// Everything that can go wrong with a definition goes wrong at definition
// time: Build (and Register, Init, Config.Define) return a
// *CompositionError wrapping a sentinel cause - ErrClassName,
// ErrOverrideMismatch, ErrOverrideConflict, ErrOverrideOrphan, ErrUnknownOp,
// ErrUnknownTrait, ErrAlreadyDefined or ErrNotDeclarative. Instance
// operations never surface composition problems.
//
// # Lookup Layering
//
// A successful read is never intercepted: present attributes win everywhere.
// The traits only decide what happens on a miss. An item get of an absent
// key fails with ErrNotFound - unless the class also carries the attr trait,
// in which case the attr trait's tolerant (nil, nil) outcome applies to
// non-reserved keys, keeping the two access styles consistent on the same
// class. An attr read of an absent reserved name fails hard with
// ErrNotFound.
//
// # Write-Once Maps
//
// SetOnceMap is a concurrency-safe map where the first write to a key binds
// it permanently; later writes are silent no-ops and reads of never-written
// keys fail with ErrNotFound. Rebinding is decided by whether the key was
// ever written, never by the stored value, so a stored nil is as permanent
// as any other value.
//
// # Registry and Snapshots
//
// A Registry maps class names to classes. Marshal serializes an object's
// visible attributes to msgpack inside an envelope naming its class;
// Class.Unmarshal decodes bytes for a known class, and Registry.Decode
// resolves the class from the envelope for polymorphic decoding. Insertion
// order round-trips.
//
// The Default registry backs the declarative API. Registration is explicit
// or tied to first use of a type; there are no init() side effects. A
// registry accepts a zap logger via WithLogger and is silent by default.
//
// # Code Generation
//
// Run 'dynamix generate' against a YAML schema to produce declarative
// structs with typed accessors:
//
//	classes:
//	  - name: Person
//	    flags: [item, attr, iter, repr]
//	    attrs:
//	      - {name: name, type: string}
//	      - {name: age, type: int64}
//
// The generated file declares the struct, a NewPerson constructor wired
// through Init, and Name/SetName style accessors over Lookup and Put.
//
// # Design Rationale
//
// The system favors definition-time failure over instance-time surprise:
//   - Composition is validated when a class is built, not when it is used
//   - Registration is explicit (no init() side effects)
//   - Capability absence is an error value, not a nil method or a panic
//   - Unknown flags and config keys are ignored, so data outlives versions
//
// The result is a dynamic attribute model with static failure points: once a
// class builds, its instances cannot hit a composition problem.
package dynamix
