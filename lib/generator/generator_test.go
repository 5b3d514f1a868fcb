package generator

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm/dynamix"
)

func TestSchemaValidate(t *testing.T) {
	tests := []struct {
		name    string
		schema  Schema
		wantErr bool
	}{
		{
			name: "valid schema",
			schema: Schema{
				Package: "people",
				Classes: []ClassDef{
					{Name: "Person", Attrs: []AttrDef{{Name: "name", Type: "string"}}},
				},
			},
		},
		{
			name:    "invalid package name",
			schema:  Schema{Package: "my-pkg"},
			wantErr: true,
		},
		{
			name:    "uppercase package name",
			schema:  Schema{Package: "People"},
			wantErr: true,
		},
		{
			name: "unexported class name",
			schema: Schema{
				Package: "people",
				Classes: []ClassDef{{Name: "person"}},
			},
			wantErr: true,
		},
		{
			name: "invalid attr name",
			schema: Schema{
				Package: "people",
				Classes: []ClassDef{
					{Name: "Person", Attrs: []AttrDef{{Name: "first name", Type: "string"}}},
				},
			},
			wantErr: true,
		},
		{
			name: "duplicate attr",
			schema: Schema{
				Package: "people",
				Classes: []ClassDef{
					{Name: "Person", Attrs: []AttrDef{
						{Name: "name", Type: "string"},
						{Name: "name", Type: "int"},
					}},
				},
			},
			wantErr: true,
		},
		{
			name: "unknown attr type",
			schema: Schema{
				Package: "people",
				Classes: []ClassDef{
					{Name: "Person", Attrs: []AttrDef{{Name: "rate", Type: "decimal"}}},
				},
			},
			wantErr: true,
		},
		{
			name: "attr shadows promoted method",
			schema: Schema{
				Package: "people",
				Classes: []ClassDef{
					{Name: "Person", Attrs: []AttrDef{{Name: "repr", Type: "string"}}},
				},
			},
			wantErr: true,
		},
		{
			name: "output file collision",
			schema: Schema{
				Package: "people",
				Classes: []ClassDef{{Name: "Person"}, {Name: "PERSON"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExportName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"name", "Name"},
		{"firstName", "FirstName"},
		{"id", "Id"},
		{"_private", "_private"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := exportName(tt.in); got != tt.want {
			t.Errorf("exportName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderClass(t *testing.T) {
	cls := ClassDef{
		Name:  "Person",
		Flags: dynamix.FlagsOf(dynamix.TraitItem, dynamix.TraitAttr),
		Attrs: []AttrDef{
			{Name: "name", Type: "string"},
			{Name: "age", Type: "int"},
			{Name: "meta", Type: "any"},
		},
	}

	code, err := renderClass("people.yaml", "people", cls)
	if err != nil {
		t.Fatalf("renderClass() error = %v", err)
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "person_dynamix.go", code, 0)
	if err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, code)
	}

	found := make(map[string]bool)
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			found[d.Name.Name] = true
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				if ts, ok := spec.(*ast.TypeSpec); ok {
					found[ts.Name.Name] = true
				}
			}
		}
	}

	for _, want := range []string{"Person", "NewPerson", "Name", "SetName", "Age", "SetAge", "Meta", "SetMeta"} {
		if !found[want] {
			t.Errorf("generated code missing declaration %s", want)
		}
	}

	if !strings.Contains(string(code), "`dynamix:\"item,attr\"`") {
		t.Errorf("generated code missing flag tag:\n%s", code)
	}
}

func TestFlagTag(t *testing.T) {
	tests := []struct {
		name  string
		flags dynamix.Flags
		want  string
	}{
		{"no traits", dynamix.Flags{}, ""},
		{"one trait", dynamix.FlagsOf(dynamix.TraitRepr), " `dynamix:\"repr\"`"},
		{"all traits", dynamix.AllFlags(), " `dynamix:\"item,attr,iter,repr\"`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := flagTag(tt.flags); got != tt.want {
				t.Errorf("flagTag() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateAndClean(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "dynamix.yaml")
	schema := `package: people
classes:
  - name: Person
    flags: [item, repr]
    attrs:
      - name: name
        type: string
      - name: born
        type: time
`
	if err := os.WriteFile(schemaPath, []byte(schema), 0644); err != nil {
		t.Fatal(err)
	}

	g := New(Options{OutDir: dir})
	if err := g.Generate(schemaPath); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	outFile := filepath.Join(dir, "person_dynamix.go")
	code, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("generated file not written: %v", err)
	}

	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, outFile, code, 0); err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, code)
	}
	if !strings.Contains(string(code), `"time"`) {
		t.Errorf("generated code missing time import:\n%s", code)
	}

	if err := g.Clean(dir); err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if _, err := os.Stat(outFile); !os.IsNotExist(err) {
		t.Errorf("Clean() left %s behind", outFile)
	}
}

func TestGenerateDryRun(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "dynamix.yaml")
	schema := `package: people
classes:
  - name: Person
`
	if err := os.WriteFile(schemaPath, []byte(schema), 0644); err != nil {
		t.Fatal(err)
	}

	g := New(Options{OutDir: dir, DryRun: true})
	if err := g.Generate(schemaPath); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "person_dynamix.go")); !os.IsNotExist(err) {
		t.Error("dry run wrote a file")
	}
}

func TestLoadSchemaErrors(t *testing.T) {
	if _, err := LoadSchema(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadSchema() on missing file succeeded, want error")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("package: [not\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSchema(bad); err == nil {
		t.Error("LoadSchema() on malformed YAML succeeded, want error")
	}
}
