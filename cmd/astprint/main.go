// Command astprint parses a Lox script (or a single expression passed
// via -e) and prints its AST as parenthesized, Lisp-style text — a
// debugging aid for inspecting what the parser produced without
// running the resolver or evaluator.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sdecook/golox/pkg/lox"
)

func main() {
	expr := flag.String("e", "", "print the AST of a single expression instead of reading a file")
	flag.Parse()

	var src string
	switch {
	case *expr != "":
		src = *expr + ";"
	case flag.NArg() == 1:
		contents, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "astprint: %v\n", err)
			os.Exit(64)
		}
		src = string(contents)
	default:
		fmt.Fprintln(os.Stderr, "Usage: astprint [-e expression | script]")
		os.Exit(64)
	}

	var stderr bytes.Buffer
	session := lox.NewSession(os.Stdout, &stderr)
	tokens := lox.Scan(src, session)
	stmts := lox.Parse(tokens, session)

	if session.HadError {
		os.Stderr.Write(stderr.Bytes())
		os.Exit(65)
	}

	for _, stmt := range stmts {
		fmt.Println(printStmt(stmt))
	}
}

func printStmt(stmt lox.Stmt) string {
	switch s := stmt.(type) {
	case *lox.ExpressionStmt:
		return printExpr(s.Expr)
	case *lox.PrintStmt:
		return paren("print", printExpr(s.Expr))
	case *lox.VarStmt:
		if s.Initializer == nil {
			return paren("var", s.Name.Lexeme)
		}
		return paren("var", s.Name.Lexeme, printExpr(s.Initializer))
	case *lox.BlockStmt:
		parts := make([]string, len(s.Stmts))
		for i, inner := range s.Stmts {
			parts[i] = printStmt(inner)
		}
		return paren("block", parts...)
	case *lox.IfStmt:
		if s.ElseBranch == nil {
			return paren("if", printExpr(s.Cond), printStmt(s.ThenBranch))
		}
		return paren("if", printExpr(s.Cond), printStmt(s.ThenBranch), printStmt(s.ElseBranch))
	case *lox.WhileStmt:
		return paren("while", printExpr(s.Cond), printStmt(s.Body))
	case *lox.FunctionStmt:
		names := make([]string, len(s.Params))
		for i, p := range s.Params {
			names[i] = p.Lexeme
		}
		body := make([]string, len(s.Body))
		for i, inner := range s.Body {
			body[i] = printStmt(inner)
		}
		header := fmt.Sprintf("fun %s(%s)", s.Name.Lexeme, strings.Join(names, " "))
		return paren(header, body...)
	case *lox.ReturnStmt:
		if s.Value == nil {
			return "(return)"
		}
		return paren("return", printExpr(s.Value))
	default:
		return fmt.Sprintf("<unknown stmt %T>", stmt)
	}
}

func printExpr(expr lox.Expr) string {
	switch e := expr.(type) {
	case *lox.LiteralExpr:
		if e.Value == nil {
			return "nil"
		}
		return fmt.Sprint(e.Value)
	case *lox.GroupingExpr:
		return paren("group", printExpr(e.Inner))
	case *lox.UnaryExpr:
		return paren(e.Op.Lexeme, printExpr(e.Right))
	case *lox.BinaryExpr:
		return paren(e.Op.Lexeme, printExpr(e.Left), printExpr(e.Right))
	case *lox.LogicalExpr:
		return paren(e.Op.Lexeme, printExpr(e.Left), printExpr(e.Right))
	case *lox.VariableExpr:
		return e.Name.Lexeme
	case *lox.AssignExpr:
		return paren("=", e.Name.Lexeme, printExpr(e.Value))
	case *lox.CallExpr:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = printExpr(a)
		}
		return paren("call", append([]string{printExpr(e.Callee)}, args...)...)
	default:
		return fmt.Sprintf("<unknown expr %T>", expr)
	}
}

func paren(name string, parts ...string) string {
	if len(parts) == 0 {
		return "(" + name + ")"
	}
	return "(" + name + " " + strings.Join(parts, " ") + ")"
}
