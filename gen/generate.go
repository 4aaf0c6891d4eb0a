// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"text/template"
)

// Generate writes kind.go, ast.go, and ptr.go for g into dir, each run
// through go/format.Source before being written so a template that emits
// syntactically invalid Go fails loudly instead of writing it. The check
// is syntax only: the output is not type-checked. dir is created if it
// does not already exist.
func Generate(dir string, g Grammar) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("gen: create output directory: %w", err)
	}

	kinds := buildKindTable(g)

	files := map[string]struct {
		tmpl string
		data any
	}{
		"kind.go": {kindTemplate, kindData{Grammar: g, Kinds: kinds}},
		"ast.go":  {astTemplate, astData{Grammar: g}},
		"ptr.go":  {ptrTemplate, ptrData{Grammar: g, Seqs: seqNodes(g)}},
	}

	for name, f := range files {
		if err := generateFile(dir, name, f.tmpl, f.data); err != nil {
			return err
		}
	}
	return nil
}

func generateFile(dir, name, tmplText string, data any) error {
	t, err := template.New(name).Funcs(funcMap).Parse(tmplText)
	if err != nil {
		return fmt.Errorf("gen: parse template for %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("gen: execute template for %s: %w", name, err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("gen: %s is not valid Go source: %w", name, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return fmt.Errorf("gen: write %s: %w", path, err)
	}
	return nil
}

var funcMap = template.FuncMap{
	"isSeq": func(n Node) bool { _, ok := n.(Seq); return ok },
	"isAlt": func(n Node) bool { _, ok := n.(Alt); return ok },
	"asSeq": func(n Node) Seq { return n.(Seq) },
	"asAlt": func(n Node) Alt { return n.(Alt) },
}

// kindEntry is one row of the generated Kind enumeration.
type kindEntry struct {
	ConstName string
	IsTrivia  bool
	Terminal  *Terminal // nil for trivia and node kinds
}

type kindData struct {
	Grammar
	Kinds []kindEntry
}

type astData struct {
	Grammar
}

type ptrData struct {
	Grammar
	Seqs []Seq
}

func seqNodes(g Grammar) []Seq {
	var out []Seq
	for _, n := range g.Nodes {
		if s, ok := n.(Seq); ok {
			out = append(out, s)
		}
	}
	return out
}

// buildKindTable assigns integer positions to kinds in the order the
// contract requires: trivia (caller order), Seq nonterminals (grammar
// order), keywords and punctuation (length desc, name asc), specials
// (name asc). Alt nonterminals contribute no kind of their own.
func buildKindTable(g Grammar) []kindEntry {
	var kinds []kindEntry

	for _, name := range g.Trivia {
		kinds = append(kinds, kindEntry{ConstName: name, IsTrivia: true})
	}
	for _, n := range g.Nodes {
		if _, ok := n.(Seq); ok {
			kinds = append(kinds, kindEntry{ConstName: n.NodeName()})
		}
	}

	// Keywords and punctuation share one ordering pass (length desc, name
	// asc), not two — a two-byte punctuation token must still sort ahead
	// of a one-byte keyword, or longest-match lookup built on the table
	// could try the shorter match first.
	var lexable, specials []Terminal
	for _, t := range g.Terminals {
		switch t.Kind {
		case Keyword, Punctuation:
			lexable = append(lexable, t)
		default:
			specials = append(specials, t)
		}
	}
	sortByLenDescNameAsc(lexable)
	sort.Slice(specials, func(i, j int) bool { return specials[i].Name < specials[j].Name })

	for _, t := range lexable {
		t := t
		kinds = append(kinds, kindEntry{ConstName: t.Name, Terminal: &t})
	}
	for _, t := range specials {
		t := t
		kinds = append(kinds, kindEntry{ConstName: t.Name, Terminal: &t})
	}
	return kinds
}

// sortByLenDescNameAsc applies the keyword/punctuation ordering rule:
// entries sorted by descending byte length of Text, ties broken by Name.
// This guarantees naive longest-match lexing tries "==" before "=".
func sortByLenDescNameAsc(ts []Terminal) {
	sort.Slice(ts, func(i, j int) bool {
		if len(ts[i].Text) != len(ts[j].Text) {
			return len(ts[i].Text) > len(ts[j].Text)
		}
		return ts[i].Name < ts[j].Name
	})
}

const kindTemplate = `// Code generated by evparse/gen. DO NOT EDIT.

package {{.Package}}

// Kind is the dense enumeration of every trivia, node, and token kind in
// this grammar. Its integer representation is part of the generator's
// contract: trivia first, then node kinds, then keywords and punctuation
// ordered by descending length and ascending name, then specials by name.
type Kind int

const (
	Unknown Kind = iota
	{{- range .Kinds}}
	{{.ConstName}}
	{{- end}}
)

var kindNames = map[Kind]string{
	{{- range .Kinds}}
	{{.ConstName}}: "{{.ConstName}}",
	{{- end}}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsTrivia satisfies evparse.Kind.
func (k Kind) IsTrivia() bool {
	switch k {
	{{- range .Kinds}}
	{{- if .IsTrivia}}
	case {{.ConstName}}:
		return true
	{{- end}}
	{{- end}}
	default:
		return false
	}
}

// keywordTable maps keyword literal text to its Kind, for lexers doing
// longest-match keyword recognition.
var keywordTable = map[string]Kind{
	{{- range .Kinds}}
	{{- if and .Terminal (eq .Terminal.Kind 0)}}
	"{{.Terminal.Text}}": {{.ConstName}},
	{{- end}}
	{{- end}}
}

// Keyword looks up text in the keyword table.
func Keyword(text string) (Kind, bool) {
	k, ok := keywordTable[text]
	return k, ok
}

type punctEntry struct {
	Text string
	Kind Kind
}

// punctuationTable is ordered by descending length so longest-match
// lexing finds multi-byte operators before their single-byte prefixes.
var punctuationTable = []punctEntry{
	{{- range .Kinds}}
	{{- if and .Terminal (eq .Terminal.Kind 1)}}
	{Text: "{{.Terminal.Text}}", Kind: {{.ConstName}}},
	{{- end}}
	{{- end}}
}

// Punctuation returns the punctuation table, in longest-match order.
func Punctuation() []punctEntry { return punctuationTable }

// TokenDesc renders a short human label for k, for use in diagnostics.
// Keywords and punctuation are back-tick quoted; specialDesc supplies the
// label for everything else.
func TokenDesc(k Kind, specialDesc func(Kind) string) string {
	{{- range .Kinds}}
	{{- if .Terminal}}
	{{- if ne .Terminal.Kind 2}}
	if k == {{.ConstName}} {
		return "` + "`{{.Terminal.Text}}`" + `"
	}
	{{- end}}
	{{- end}}
	{{- end}}
	return specialDesc(k)
}
`

const astTemplate = `// Code generated by evparse/gen. DO NOT EDIT.

package {{.Package}}

import "github.com/mdhender/evparse"

{{range .Nodes}}
{{if isSeq .}}
// {{.NodeName}} is a typed view over an evparse.TreeNode[Kind] of kind
// {{.NodeName}}, exposing its children as named accessors instead of
// positional indices.
type {{.NodeName}} struct {
	Tree evparse.TreeNode[Kind]
}

// As{{.NodeName}} wraps n if its kind matches, or reports false.
func As{{.NodeName}}(n evparse.TreeNode[Kind]) ({{.NodeName}}, bool) {
	if n == nil || n.NodeKind() != {{.NodeName}} {
		return {{.NodeName}}{}, false
	}
	return {{.NodeName}}{Tree: n}, true
}

{{$seq := asSeq .}}
{{range $i, $elem := $seq.Elems}}
// {{$elem.Field}} returns the {{$seq.Name}}'s {{$elem.Of}} child at
// position {{$i}}, or false if it is not present (e.g. after a parse
// error left this node short a child).
func (n {{$seq.Name}}) {{$elem.Field}}() (evparse.TreeNode[Kind], bool) {
	if n.Tree == nil || {{$i}} >= n.Tree.NumChildren() {
		return nil, false
	}
	return n.Tree.Child({{$i}}), true
}
{{end}}
{{end}}
{{if isAlt .}}
{{$alt := asAlt .}}
// {{$alt.Name}} is a closed union: a tree node that is one of
// {{range $i, $v := $alt.Variants}}{{if $i}}, {{end}}{{$v}}{{end}}.
type {{$alt.Name}} struct {
	Tree evparse.TreeNode[Kind]
}

// As{{$alt.Name}} wraps n if its kind is one of {{$alt.Name}}'s variants.
func As{{$alt.Name}}(n evparse.TreeNode[Kind]) ({{$alt.Name}}, bool) {
	if n == nil {
		return {{$alt.Name}}{}, false
	}
	switch n.NodeKind() {
	{{- range $alt.Variants}}
	case {{.}}:
		return {{$alt.Name}}{Tree: n}, true
	{{- end}}
	}
	return {{$alt.Name}}{}, false
}
{{end}}
{{end}}
`

const ptrTemplate = `// Code generated by evparse/gen. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/mdhender/evparse"
	"github.com/mdhender/evparse/gen"
)

// ToStablePointer converts a NodePtr captured against a tree of this
// grammar's Kind into the Kind-type-agnostic form storage code persists.
func ToStablePointer(p evparse.NodePtr[Kind]) gen.StablePointer {
	return gen.StablePointer{KindName: p.Kind.String(), Path: p.Path}
}

// FromStablePointer is the inverse of ToStablePointer. It reports false
// if sp's kind name is not one this grammar declares.
func FromStablePointer(sp gen.StablePointer) (evparse.NodePtr[Kind], bool) {
	for k, name := range kindNames {
		if name == sp.KindName {
			return evparse.NewNodePtr(k, sp.Path), true
		}
	}
	return evparse.NodePtr[Kind]{}, false
}
`
