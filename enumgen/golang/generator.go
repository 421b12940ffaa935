package golang

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/broady/smartenum/enumgen/ir"
)

// GoGenerator emits a single Go file for a schema.
type GoGenerator struct{}

var _ Generator = (*GoGenerator)(nil)

// Name returns "go".
func (g *GoGenerator) Name() string { return "go" }

// Generate validates and resolves schema, renders it, and writes the file
// to opts.Sink. The schema's member values and warnings are filled in as a
// side effect.
func (g *GoGenerator) Generate(ctx context.Context, schema *ir.Schema, opts GenerateOptions) (*GenerateResult, error) {
	if schema == nil {
		return nil, errors.New("schema is nil")
	}
	if opts.Sink == nil {
		return nil, errors.New("no output sink")
	}
	if schema.Package.Name == "" {
		return nil, errors.New("package name is required")
	}
	if errs := schema.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid schema: %w", errors.Join(errs...))
	}
	if err := schema.Resolve(); err != nil {
		return nil, err
	}
	warnings := schema.Analyze()

	cfg := opts.Config
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	src, err := Render(schema, cfg)
	if err != nil {
		return nil, err
	}
	if err := opts.Sink.WriteFile(ctx, cfg.Output, src); err != nil {
		return nil, fmt.Errorf("write %s: %w", cfg.Output, err)
	}

	return &GenerateResult{
		Files:          []OutputFile{{Path: cfg.Output, Size: int64(len(src))}},
		EnumsGenerated: len(schema.Enums),
		Warnings:       warnings,
	}, nil
}

// Render returns the formatted source for a resolved schema.
func Render(schema *ir.Schema, cfg Config) ([]byte, error) {
	data := fileView{
		Package:  schema.Package.Name,
		Import:   cfg.ImportPath,
		Source:   cfg.Source,
		Comments: cfg.EmitComments,
	}
	if data.Import == "" {
		data.Import = DefaultImportPath
	}
	for _, e := range schema.Enums {
		v, err := newEnumView(e, cfg.EmitComments)
		if err != nil {
			return nil, fmt.Errorf("enum %s: %w", e.Name.Name, err)
		}
		data.Enums = append(data.Enums, v)
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	filename := cfg.Output
	if filename == "" {
		filename = DefaultOutput
	}
	out, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w\n%s", err, buf.Bytes())
	}
	return out, nil
}

type fileView struct {
	Package  string
	Import   string
	Source   string
	Comments bool
	Enums    []enumView
}

type enumView struct {
	Type      string
	GoType    string
	Doc       string
	TableVar  string
	EnumFunc  string
	ItemsFunc string
	ParseFunc string
	Consts    []constView
	Symbols   []symbolView
	Items     string
	Names     string

	FastString bool
	Cases      []caseView
}

type constView struct {
	Doc   string
	Name  string
	Value string // empty continues an iota sequence
}

type symbolView struct {
	Name     string
	Const    string
	Explicit bool
}

type caseView struct {
	Const string
	Name  string
}

func newEnumView(e *ir.EnumDescriptor, comments bool) (enumView, error) {
	typ := e.Name.Name
	v := enumView{
		Type:      typ,
		GoType:    e.Underlying.GoType(),
		TableVar:  ir.TableVar(typ),
		EnumFunc:  ir.Exportable(typ, "", "Enum"),
		ItemsFunc: ir.Exportable(typ, "", "Items"),
		ParseFunc: ir.Exportable(typ, "Parse", ""),
		Items:     stringSlice(e.Items),
		Names:     namesExpr(e.Names),
	}
	if comments {
		v.Doc = comment("", e.Documentation)
	}

	implicit := true
	for _, m := range e.Members {
		if m.Explicit() {
			implicit = false
			break
		}
	}
	for i := range e.Members {
		m := &e.Members[i]
		if m.Value == nil {
			return enumView{}, fmt.Errorf("symbol %s has no resolved value", m.Name)
		}
		c := constView{Name: e.ConstName(m)}
		switch {
		case !implicit:
			c.Value = formatValue(m.Value)
		case i == 0:
			c.Value = "iota"
		}
		if comments {
			c.Doc = comment("\t", m.Documentation)
		}
		v.Consts = append(v.Consts, c)
		v.Symbols = append(v.Symbols, symbolView{Name: m.Name, Const: c.Name, Explicit: m.Explicit()})
	}

	if e.FastString {
		v.FastString = true
		names := e.DisplayNames()
		seen := make(map[any]bool)
		for i, item := range e.Items {
			m, _ := e.Member(item)
			if seen[m.Value] {
				continue
			}
			seen[m.Value] = true
			if names[i] != "" {
				v.Cases = append(v.Cases, caseView{Const: e.ConstName(m), Name: names[i]})
			}
		}
	}
	return v, nil
}

func formatValue(v any) string {
	switch v := v.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	default:
		return fmt.Sprint(v)
	}
}

func stringSlice(ss []string) string {
	if len(ss) == 0 {
		return "nil"
	}
	quoted := make([]string, len(ss))
	for i, s := range ss {
		quoted[i] = strconv.Quote(s)
	}
	return "[]string{" + strings.Join(quoted, ", ") + "}"
}

func namesExpr(t ir.NameTable) string {
	switch {
	case t.Literal != nil:
		return "smartenum.Literal(" + strconv.Quote(*t.Literal) + ")"
	case t.List != nil:
		quoted := make([]string, len(t.List))
		for i, s := range t.List {
			quoted[i] = strconv.Quote(s)
		}
		return "smartenum.List(" + strings.Join(quoted, ", ") + ")"
	default:
		return "smartenum.Names{}"
	}
}

// comment renders doc as // lines, each ending in a newline.
func comment(indent string, doc ir.Documentation) string {
	if doc.IsZero() {
		return ""
	}
	var b strings.Builder
	line := func(s string) {
		b.WriteString(indent)
		b.WriteString("//")
		if s != "" {
			b.WriteString(" ")
			b.WriteString(s)
		}
		b.WriteString("\n")
	}
	body := strings.TrimSpace(doc.Body)
	if body == "" {
		body = doc.Summary
	}
	if body != "" {
		for _, l := range strings.Split(body, "\n") {
			line(strings.TrimRight(l, " \t"))
		}
	}
	if doc.Deprecated != nil {
		if body != "" {
			line("")
		}
		line(strings.TrimSpace("Deprecated: " + *doc.Deprecated))
	}
	return b.String()
}

var fileTemplate = template.Must(template.New("file").Parse(fileTmpl))

const fileTmpl = `// Code generated by enumgen. DO NOT EDIT.
{{- if .Source}}
// source: {{.Source}}
{{- end}}

package {{.Package}}

import "{{.Import}}"
{{range $e := .Enums}}
{{$e.Doc}}type {{$e.Type}} {{$e.GoType}}

const (
{{- range $e.Consts}}
{{.Doc}}	{{.Name}}{{if .Value}} {{$e.Type}} = {{.Value}}{{end}}
{{- end}}
)

var {{$e.TableVar}} = smartenum.MustBind(
	smartenum.MustDeclare({{printf "%q" $e.Type}},
{{- range $e.Symbols}}
		{{if .Explicit}}smartenum.SymAt({{printf "%q" .Name}}, {{.Const}}){{else}}smartenum.Sym[{{$e.Type}}]({{printf "%q" .Name}}){{end}},
{{- end}}
	),
	{{$e.Items}},
	{{$e.Names}},
)
{{if $.Comments}}
// {{$e.EnumFunc}} returns the metadata table of {{$e.Type}}.
{{- end}}
func {{$e.EnumFunc}}() *smartenum.Enum[{{$e.Type}}] { return {{$e.TableVar}} }
{{if $.Comments}}
// {{$e.ItemsFunc}} returns the active items of {{$e.Type}} in iteration order.
{{- end}}
func {{$e.ItemsFunc}}() []{{$e.Type}} { return {{$e.TableVar}}.Items() }
{{if $.Comments}}
// {{$e.ParseFunc}} returns the {{$e.Type}} whose display name is s.
{{- end}}
func {{$e.ParseFunc}}(s string) ({{$e.Type}}, bool) { return {{$e.TableVar}}.Parse(s) }
{{if $.Comments}}
// String returns the display name of x, or "" if x has none.
{{- end}}
{{- if $e.FastString}}
func (x {{$e.Type}}) String() string {
	switch x {
{{- range $e.Cases}}
	case {{.Const}}:
		return {{printf "%q" .Name}}
{{- end}}
	}
	return ""
}
{{- else}}
func (x {{$e.Type}}) String() string { return {{$e.TableVar}}.String(x) }
{{- end}}
{{if $.Comments}}
// IsValid reports whether x is an active item.
{{- end}}
func (x {{$e.Type}}) IsValid() bool { return {{$e.TableVar}}.Contains(x) }
{{if $.Comments}}
// MarshalText implements encoding.TextMarshaler.
{{- end}}
func (x {{$e.Type}}) MarshalText() ([]byte, error) { return {{$e.TableVar}}.MarshalText(x) }
{{if $.Comments}}
// UnmarshalText implements encoding.TextUnmarshaler.
{{- end}}
func (x *{{$e.Type}}) UnmarshalText(text []byte) error { return {{$e.TableVar}}.UnmarshalText(x, text) }
{{end}}`
