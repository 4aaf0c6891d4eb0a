// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdhender/evparse/gen"
)

func cmdGen() *cobra.Command {
	var outDir string
	var pkg string
	var cmd = &cobra.Command{
		Use:   "gen",
		Short: "generate Kind/AST/pointer bindings for the built-in demo grammar",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := gen.Generate(outDir, demoGrammar(pkg)); err != nil {
				return fmt.Errorf("gen: %w", err)
			}
			fmt.Printf("wrote kind.go, ast.go, ptr.go to %s\n", outDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "./generated", "output directory for generated files")
	cmd.Flags().StringVar(&pkg, "package", "generated", "package name for generated files")
	return cmd
}

// demoGrammar describes evparse/lang's own shape, as a small fixed
// grammar exercising every kind of node and terminal the generator
// handles: a Seq with token and node fields, an Alt over two Seqs, and
// keyword/punctuation/special terminals.
func demoGrammar(pkg string) gen.Grammar {
	return gen.Grammar{
		Package: pkg,
		Trivia:  []string{"Whitespace", "Newline", "Comment"},
		Nodes: []gen.Node{
			gen.Seq{Name: "Literal", Elems: []gen.Elem{{Field: "Value", Of: "Number"}}},
			gen.Seq{Name: "Ident", Elems: []gen.Elem{{Field: "Name", Of: "Ident"}}},
			gen.Seq{Name: "BinaryExpr", Elems: []gen.Elem{
				{Field: "Left", Of: "Expr"},
				{Field: "Op", Of: "Operator"},
				{Field: "Right", Of: "Expr"},
			}},
			gen.Seq{Name: "ParenExpr", Elems: []gen.Elem{{Field: "Inner", Of: "Expr"}}},
			gen.Seq{Name: "AssignStmt", Elems: []gen.Elem{
				{Field: "Target", Of: "Ident"},
				{Field: "Value", Of: "Expr"},
			}},
			gen.Seq{Name: "ExprStmt", Elems: []gen.Elem{{Field: "Value", Of: "Expr"}}},
			gen.Seq{Name: "Block", Elems: []gen.Elem{{Field: "Stmts", Of: "Stmt"}}},
			gen.Alt{Name: "Stmt", Variants: []string{"AssignStmt", "ExprStmt"}},
			gen.Alt{Name: "Expr", Variants: []string{"Literal", "Ident", "BinaryExpr", "ParenExpr"}},
		},
		Terminals: []gen.Terminal{
			{Name: "Plus", Text: "+", Kind: gen.Punctuation},
			{Name: "Minus", Text: "-", Kind: gen.Punctuation},
			{Name: "Star", Text: "*", Kind: gen.Punctuation},
			{Name: "Slash", Text: "/", Kind: gen.Punctuation},
			{Name: "Equals", Text: "=", Kind: gen.Punctuation},
			{Name: "LeftParen", Text: "(", Kind: gen.Punctuation},
			{Name: "RightParen", Text: ")", Kind: gen.Punctuation},
			{Name: "Semicolon", Text: ";", Kind: gen.Punctuation},
			{Name: "Ident", Text: "", Kind: gen.Special},
			{Name: "Number", Text: "", Kind: gen.Special},
		},
	}
}
