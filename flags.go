package dynamix

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Trait identifies one optional capability a class can carry.
// Traits are selected at definition time and never change afterward.
type Trait string

const (
	// TraitItem enables dictionary-style access: get, set and delete
	// attributes by key, plus keys/values/items enumeration.
	TraitItem Trait = "item"

	// TraitAttr enables tolerant attribute reads: reading an absent
	// attribute yields (nil, nil) instead of an error.
	TraitAttr Trait = "attr"

	// TraitIter enables lazy iteration over (name, value) pairs in
	// insertion order.
	TraitIter Trait = "iter"

	// TraitRepr enables the canonical "ClassName(name=value, ...)"
	// rendering.
	TraitRepr Trait = "repr"
)

// allTraits lists every trait in composition order. Enumerations of traits
// always use this order.
var allTraits = [...]Trait{TraitItem, TraitAttr, TraitIter, TraitRepr}

// Valid checks if t is a known trait.
func (t Trait) Valid() bool {
	switch t {
	case TraitItem, TraitAttr, TraitIter, TraitRepr:
		return true
	}
	return false
}

// String returns the string representation of the trait.
func (t Trait) String() string {
	return string(t)
}

// ParseTrait converts a string token to a Trait. Matching is case-insensitive
// and ignores surrounding whitespace.
func ParseTrait(s string) (Trait, bool) {
	t := Trait(strings.ToLower(strings.TrimSpace(s)))
	if t.Valid() {
		return t, true
	}
	return "", false
}

// Flags selects the traits attached to a class at definition time.
//
// In YAML, flags decode from either a mapping or a list of trait names:
//
//	flags: {item: true, attr: true}
//	flags: [item, attr]
//
// Unknown trait names are ignored in the list form, and unknown mapping keys
// are ignored by the YAML decoder, so configs written against newer versions
// of the library still load.
type Flags struct {
	Item bool `yaml:"item" json:"item"`
	Attr bool `yaml:"attr" json:"attr"`
	Iter bool `yaml:"iter" json:"iter"`
	Repr bool `yaml:"repr" json:"repr"`
}

// AllFlags returns flags with every trait enabled.
func AllFlags() Flags {
	return Flags{Item: true, Attr: true, Iter: true, Repr: true}
}

// FlagsOf returns flags with the given traits enabled. Invalid traits are
// ignored.
func FlagsOf(traits ...Trait) Flags {
	var f Flags
	for _, t := range traits {
		f.set(t)
	}
	return f
}

// ParseFlagList builds flags from string tokens, as found in struct tags and
// list-form configs. Unrecognized tokens are silently ignored.
func ParseFlagList(tokens []string) Flags {
	var f Flags
	for _, tok := range tokens {
		if t, ok := ParseTrait(tok); ok {
			f.set(t)
		}
	}
	return f
}

func (f *Flags) set(t Trait) {
	switch t {
	case TraitItem:
		f.Item = true
	case TraitAttr:
		f.Attr = true
	case TraitIter:
		f.Iter = true
	case TraitRepr:
		f.Repr = true
	}
}

// Has checks if the trait is enabled.
func (f Flags) Has(t Trait) bool {
	switch t {
	case TraitItem:
		return f.Item
	case TraitAttr:
		return f.Attr
	case TraitIter:
		return f.Iter
	case TraitRepr:
		return f.Repr
	}
	return false
}

// Enabled returns the enabled traits in composition order.
func (f Flags) Enabled() []Trait {
	traits := make([]Trait, 0, len(allTraits))
	for _, t := range allTraits {
		if f.Has(t) {
			traits = append(traits, t)
		}
	}
	return traits
}

// IsZero checks if no trait is enabled.
func (f Flags) IsZero() bool {
	return f == Flags{}
}

// Union returns flags with every trait enabled in either operand.
func (f Flags) Union(other Flags) Flags {
	return Flags{
		Item: f.Item || other.Item,
		Attr: f.Attr || other.Attr,
		Iter: f.Iter || other.Iter,
		Repr: f.Repr || other.Repr,
	}
}

// UnmarshalYAML accepts both the mapping and the list form.
func (f *Flags) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var tokens []string
		if err := value.Decode(&tokens); err != nil {
			return err
		}
		*f = ParseFlagList(tokens)
		return nil
	default:
		// Mapping form; an alias for the plain struct decode so the
		// custom unmarshaller does not recurse.
		type plain Flags
		var p plain
		if err := value.Decode(&p); err != nil {
			return err
		}
		*f = Flags(p)
		return nil
	}
}

// traitStrings converts traits to plain strings, for logging and tags.
func traitStrings(traits []Trait) []string {
	out := make([]string, len(traits))
	for i, t := range traits {
		out[i] = string(t)
	}
	return out
}
