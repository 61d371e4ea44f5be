package osexitmain

import (
	"go/ast"
	"go/token"
	"go/types"
	"testing"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
)

type fakeInspector struct {
	nodes []ast.Node
}

func (f *fakeInspector) Preorder(_ []ast.Node, fn func(ast.Node)) {
	for _, n := range f.nodes {
		fn(n)
	}
}

func newPass(pkgName string, insp any, uses map[*ast.Ident]types.Object, report func(analysis.Diagnostic)) *analysis.Pass {
	return &analysis.Pass{
		Analyzer:  Analyzer,
		Pkg:       types.NewPackage("example.org/cmd/agent", pkgName),
		TypesInfo: &types.Info{Uses: uses},
		ResultOf:  map[*analysis.Analyzer]any{inspect.Analyzer: insp},
		Report:    report,
	}
}

func exitCall(uses map[*ast.Ident]types.Object, pkgPath, fnName string) *ast.CallExpr {
	sel := &ast.SelectorExpr{X: ast.NewIdent("os"), Sel: ast.NewIdent(fnName)}
	sig := types.NewSignatureType(nil, nil, nil,
		types.NewTuple(types.NewVar(token.NoPos, nil, "code", types.Typ[types.Int])), nil, false)
	uses[sel.Sel] = types.NewFunc(token.NoPos, types.NewPackage(pkgPath, pkgPath), fnName, sig)
	return &ast.CallExpr{Fun: sel}
}

func mainDecl(name string, body ...ast.Stmt) *ast.FuncDecl {
	return &ast.FuncDecl{
		Name: ast.NewIdent(name),
		Type: &ast.FuncType{},
		Body: &ast.BlockStmt{List: body},
	}
}

func TestRunReportsOsExitInMain(t *testing.T) {
	uses := map[*ast.Ident]types.Object{}
	decl := mainDecl("main", &ast.ExprStmt{X: exitCall(uses, "os", "Exit")})

	var got []analysis.Diagnostic
	pass := newPass("main", &fakeInspector{nodes: []ast.Node{decl}}, uses, func(d analysis.Diagnostic) {
		got = append(got, d)
	})
	if _, err := run(pass); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(got))
	}
}

func TestRunIgnores(t *testing.T) {
	tests := []struct {
		name    string
		pkgName string
		decl    func(uses map[*ast.Ident]types.Object) *ast.FuncDecl
	}{
		{
			name:    "not package main",
			pkgName: "push",
			decl: func(uses map[*ast.Ident]types.Object) *ast.FuncDecl {
				return mainDecl("main", &ast.ExprStmt{X: exitCall(uses, "os", "Exit")})
			},
		},
		{
			name:    "not the main function",
			pkgName: "main",
			decl: func(uses map[*ast.Ident]types.Object) *ast.FuncDecl {
				return mainDecl("helper", &ast.ExprStmt{X: exitCall(uses, "os", "Exit")})
			},
		},
		{
			name:    "exit from another package",
			pkgName: "main",
			decl: func(uses map[*ast.Ident]types.Object) *ast.FuncDecl {
				return mainDecl("main", &ast.ExprStmt{X: exitCall(uses, "example.org/fakeos", "Exit")})
			},
		},
		{
			name:    "os.Exit inside a function literal",
			pkgName: "main",
			decl: func(uses map[*ast.Ident]types.Object) *ast.FuncDecl {
				lit := &ast.FuncLit{
					Type: &ast.FuncType{},
					Body: &ast.BlockStmt{List: []ast.Stmt{&ast.ExprStmt{X: exitCall(uses, "os", "Exit")}}},
				}
				return mainDecl("main", &ast.ExprStmt{X: &ast.CallExpr{Fun: lit}})
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uses := map[*ast.Ident]types.Object{}
			decl := tt.decl(uses)

			var got []analysis.Diagnostic
			pass := newPass(tt.pkgName, &fakeInspector{nodes: []ast.Node{decl}}, uses, func(d analysis.Diagnostic) {
				got = append(got, d)
			})
			if _, err := run(pass); err != nil {
				t.Fatalf("run() error = %v", err)
			}
			if len(got) != 0 {
				t.Fatalf("got %d diagnostics, want 0", len(got))
			}
		})
	}
}

func TestRunRejectsUnexpectedInspector(t *testing.T) {
	pass := newPass("main", "not an inspector", nil, func(analysis.Diagnostic) {})
	if _, err := run(pass); err == nil {
		t.Fatal("run() error = nil, want non-nil")
	}
}
