// Package generator produces declarative dynamix types from a YAML schema.
//
// A schema names a package and a set of classes, each with trait flags and
// typed attributes. For every class the generator emits a <name>_dynamix.go
// file containing the struct declaration, a constructor wired through
// dynamix.Init, and typed accessors over the attribute store.
package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/pthm/dynamix"
)

// Schema is the YAML description of the classes to generate.
type Schema struct {
	Package string     `yaml:"package"`
	Classes []ClassDef `yaml:"classes"`
}

// ClassDef declares one generated class.
type ClassDef struct {
	Name  string        `yaml:"name"`
	Flags dynamix.Flags `yaml:"flags"`
	Attrs []AttrDef     `yaml:"attrs"`
}

// AttrDef declares one typed attribute of a generated class.
type AttrDef struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// attrTypes maps schema attribute types to Go types.
var attrTypes = map[string]string{
	"string":  "string",
	"int":     "int",
	"int64":   "int64",
	"float64": "float64",
	"bool":    "bool",
	"time":    "time.Time",
	"any":     "any",
}

// reservedAccessors are methods promoted from the embedded Declarative.
// A generated accessor must not shadow them.
var reservedAccessors = map[string]bool{
	"Class":  true,
	"Can":    true,
	"Lookup": true,
	"Put":    true,
	"Remove": true,
	"Len":    true,
	"Names":  true,
	"Items":  true,
	"Attrs":  true,
	"Pairs":  true,
	"Repr":   true,
	"String": true,
}

// Options configures the generator.
type Options struct {
	// OutDir is the directory generated files are written to.
	// Defaults to ".".
	OutDir string

	// Package overrides the schema's package name when non-empty.
	Package string

	// DryRun prints what would be generated without writing files.
	DryRun bool
}

// Generator generates dynamix code.
type Generator struct {
	opts Options
}

// New creates a new generator.
func New(opts Options) *Generator {
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	return &Generator{opts: opts}
}

// LoadSchema reads and decodes a schema file.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load schema %s", path)
	}
	var schema Schema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, errors.Wrapf(err, "parse schema %s", path)
	}
	return &schema, nil
}

// Validate checks the schema before any file is written. Generation is
// all-or-nothing: a schema with one bad class generates no files at all.
func (s *Schema) Validate() error {
	if !isIdentifier(s.Package) || strings.ToLower(s.Package) != s.Package {
		return errors.Newf("package %q is not a valid package name", s.Package)
	}

	seenFiles := make(map[string]string, len(s.Classes))
	for _, cls := range s.Classes {
		if err := cls.validate(); err != nil {
			return err
		}
		// Output files are lowercased, so Person and PERSON would
		// silently overwrite each other.
		file := strings.ToLower(cls.Name)
		if prev, ok := seenFiles[file]; ok {
			return errors.Newf("class %q collides with class %q in output file name", cls.Name, prev)
		}
		seenFiles[file] = cls.Name
	}
	return nil
}

func (cls ClassDef) validate() error {
	if !isIdentifier(cls.Name) || !unicode.IsUpper(firstRune(cls.Name)) {
		return errors.Newf("class %q is not an exported Go identifier", cls.Name)
	}

	seen := make(map[string]bool, len(cls.Attrs))
	for _, attr := range cls.Attrs {
		if !isIdentifier(attr.Name) {
			return errors.Newf("class %q: attr %q is not a valid identifier", cls.Name, attr.Name)
		}
		if seen[attr.Name] {
			return errors.Newf("class %q: duplicate attr %q", cls.Name, attr.Name)
		}
		seen[attr.Name] = true
		if _, ok := attrTypes[attr.Type]; !ok {
			return errors.Newf("class %q: attr %q has unknown type %q", cls.Name, attr.Name, attr.Type)
		}
		if acc := exportName(attr.Name); reservedAccessors[acc] {
			return errors.Newf("class %q: attr %q would shadow the promoted %s method", cls.Name, attr.Name, acc)
		}
	}
	return nil
}

// Generate loads, validates and renders a schema, writing one file per
// class into the output directory.
func (g *Generator) Generate(schemaPath string) error {
	schema, err := LoadSchema(schemaPath)
	if err != nil {
		return err
	}
	if g.opts.Package != "" {
		schema.Package = g.opts.Package
	}
	if err := schema.Validate(); err != nil {
		return errors.Wrapf(err, "schema %s", schemaPath)
	}

	for _, cls := range schema.Classes {
		if err := g.generateClass(schemaPath, schema.Package, cls); err != nil {
			return errors.Wrapf(err, "class %s", cls.Name)
		}
	}
	return nil
}

// Clean removes generated files (*_dynamix.go) from a directory.
func (g *Generator) Clean(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), "_dynamix.go") {
			path := filepath.Join(dir, entry.Name())
			fmt.Printf("removing %s\n", path)
			if !g.opts.DryRun {
				if err := os.Remove(path); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// isIdentifier checks for a plain Go identifier.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if unicode.IsLetter(r) || r == '_' {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// exportName uppercases the first rune: "name" becomes "Name".
func exportName(s string) string {
	if s == "" {
		return s
	}
	return string(unicode.ToUpper(firstRune(s))) + s[len(string(firstRune(s))):]
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
