package generator

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"

	"github.com/pthm/dynamix"
)

// generateClass generates the <name>_dynamix.go file for a class.
func (g *Generator) generateClass(schemaPath, pkgName string, cls ClassDef) error {
	outputFile := filepath.Join(g.opts.OutDir, strings.ToLower(cls.Name)+"_dynamix.go")

	fmt.Printf("generating %s\n", outputFile)

	if g.opts.DryRun {
		return nil
	}

	code, err := renderClass(schemaPath, pkgName, cls)
	if err != nil {
		return errors.Wrap(err, "render template")
	}

	formatted, err := format.Source(code)
	if err != nil {
		// Write unformatted for debugging
		if writeErr := os.WriteFile(outputFile+".unformatted", code, 0644); writeErr == nil {
			fmt.Printf("  wrote unformatted code to %s.unformatted for debugging\n", outputFile)
		}
		return errors.Wrap(err, "format source")
	}

	return os.WriteFile(outputFile, formatted, 0644)
}

// renderClass renders the generated code template for one class.
func renderClass(schemaPath, pkgName string, cls ClassDef) ([]byte, error) {
	tmpl, err := template.New("dynamix").Funcs(template.FuncMap{
		"export":   exportName,
		"goType":   goTypeOf,
		"accessor": accessorCode,
	}).Parse(classTemplate)
	if err != nil {
		return nil, err
	}

	data := struct {
		Source   string
		Package  string
		Class    ClassDef
		Recv     string
		Tag      string
		NeedTime bool
	}{
		Source:   filepath.Base(schemaPath),
		Package:  pkgName,
		Class:    cls,
		Recv:     strings.ToLower(string(firstRune(cls.Name))),
		Tag:      flagTag(cls.Flags),
		NeedTime: needsTime(cls),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// flagTag renders the struct tag for the embedded Declarative field,
// backticks included. Empty when no trait is enabled, which declares a
// class with intrinsics only.
func flagTag(f dynamix.Flags) string {
	traits := f.Enabled()
	if len(traits) == 0 {
		return ""
	}
	parts := make([]string, len(traits))
	for i, t := range traits {
		parts[i] = t.String()
	}
	return " `dynamix:\"" + strings.Join(parts, ",") + "\"`"
}

// goTypeOf maps a schema attribute type to its Go type.
func goTypeOf(schemaType string) string {
	return attrTypes[schemaType]
}

// needsTime reports whether the generated file imports time.
func needsTime(cls ClassDef) bool {
	for _, attr := range cls.Attrs {
		if attr.Type == "time" {
			return true
		}
	}
	return false
}

// accessorCode generates the body of a typed getter.
func accessorCode(recv string, a AttrDef) string {
	goType := attrTypes[a.Type]
	if goType == "any" {
		return fmt.Sprintf(`return %s.Lookup("%s")`, recv, a.Name)
	}
	return fmt.Sprintf(`return dynamix.Get[%s](&%s.Object, "%s")`, goType, recv, a.Name)
}

const classTemplate = `// Code generated by dynamix. DO NOT EDIT.
// Source: {{.Source}}

package {{.Package}}

import (
{{- if .NeedTime}}
	"time"
{{- end}}

	"github.com/pthm/dynamix"
)

// {{.Class.Name}} is a declarative type backed by a dynamic attribute set.
type {{.Class.Name}} struct {
	dynamix.Declarative{{.Tag}}
}

// New{{.Class.Name}} constructs and binds a fresh {{.Class.Name}}.
func New{{.Class.Name}}() (*{{.Class.Name}}, error) {
	{{.Recv}} := &{{.Class.Name}}{}
	if err := dynamix.Init({{.Recv}}); err != nil {
		return nil, err
	}
	return {{.Recv}}, nil
}
{{range .Class.Attrs}}
// {{export .Name}} returns the "{{.Name}}" attribute if set.
func ({{$.Recv}} *{{$.Class.Name}}) {{export .Name}}() ({{goType .Type}}, bool) {
	{{accessor $.Recv .}}
}

// Set{{export .Name}} stores the "{{.Name}}" attribute.
func ({{$.Recv}} *{{$.Class.Name}}) Set{{export .Name}}(value {{goType .Type}}) {
	{{$.Recv}}.Put("{{.Name}}", value)
}
{{end}}`
