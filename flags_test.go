package dynamix

import (
	"slices"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseTrait(t *testing.T) {
	tests := []struct {
		in     string
		want   Trait
		wantOK bool
	}{
		{"item", TraitItem, true},
		{"attr", TraitAttr, true},
		{"iter", TraitIter, true},
		{"repr", TraitRepr, true},
		{"ITEM", TraitItem, true},
		{"  repr\t", TraitRepr, true},
		{"", "", false},
		{"items", "", false},
		{"bogus", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseTrait(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseTrait(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestTraitValid(t *testing.T) {
	for _, tr := range []Trait{TraitItem, TraitAttr, TraitIter, TraitRepr} {
		if !tr.Valid() {
			t.Errorf("%s.Valid() = false, want true", tr)
		}
	}
	if Trait("bogus").Valid() {
		t.Error(`Trait("bogus").Valid() = true, want false`)
	}
}

func TestFlagsOf(t *testing.T) {
	f := FlagsOf(TraitItem, TraitRepr)

	if !f.Has(TraitItem) || !f.Has(TraitRepr) {
		t.Errorf("FlagsOf(item, repr) = %+v, missing a requested trait", f)
	}
	if f.Has(TraitAttr) || f.Has(TraitIter) {
		t.Errorf("FlagsOf(item, repr) = %+v, has an unrequested trait", f)
	}

	// Invalid traits are dropped, not stored.
	if got := FlagsOf(Trait("bogus")); !got.IsZero() {
		t.Errorf("FlagsOf(bogus) = %+v, want zero", got)
	}
}

func TestEnabledOrder(t *testing.T) {
	want := []Trait{TraitItem, TraitAttr, TraitIter, TraitRepr}
	if got := AllFlags().Enabled(); !slices.Equal(got, want) {
		t.Errorf("AllFlags().Enabled() = %v, want %v", got, want)
	}

	// Order is positional, not call-order.
	f := FlagsOf(TraitRepr, TraitItem)
	if got := f.Enabled(); !slices.Equal(got, []Trait{TraitItem, TraitRepr}) {
		t.Errorf("Enabled() = %v, want [item repr]", got)
	}
}

func TestParseFlagList(t *testing.T) {
	f := ParseFlagList([]string{"item", "REPR", " iter ", "bogus", ""})

	want := FlagsOf(TraitItem, TraitIter, TraitRepr)
	if f != want {
		t.Errorf("ParseFlagList() = %+v, want %+v", f, want)
	}
}

func TestFlagsUnion(t *testing.T) {
	a := FlagsOf(TraitItem)
	b := FlagsOf(TraitItem, TraitRepr)

	got := a.Union(b)
	if want := FlagsOf(TraitItem, TraitRepr); got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
}

func TestFlagsIsZero(t *testing.T) {
	if !(Flags{}).IsZero() {
		t.Error("zero Flags reported non-zero")
	}
	if FlagsOf(TraitItem).IsZero() {
		t.Error("non-zero Flags reported zero")
	}
}

func TestFlagsUnmarshalYAML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Flags
	}{
		{
			name: "mapping form",
			in:   "flags: {item: true, repr: true}",
			want: FlagsOf(TraitItem, TraitRepr),
		},
		{
			name: "list form",
			in:   "flags: [item, attr]",
			want: FlagsOf(TraitItem, TraitAttr),
		},
		{
			name: "list form ignores unknown names",
			in:   "flags: [item, holographic]",
			want: FlagsOf(TraitItem),
		},
		{
			name: "mapping form ignores unknown keys",
			in:   "flags: {iter: true, holographic: true}",
			want: FlagsOf(TraitIter),
		},
		{
			name: "empty",
			in:   "flags: {}",
			want: Flags{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc struct {
				Flags Flags `yaml:"flags"`
			}
			if err := yaml.Unmarshal([]byte(tt.in), &doc); err != nil {
				t.Fatalf("yaml.Unmarshal() error = %v", err)
			}
			if doc.Flags != tt.want {
				t.Errorf("decoded flags = %+v, want %+v", doc.Flags, tt.want)
			}
		})
	}
}
