// Command golox is the Lox interpreter's CLI driver: run a script file,
// or drop into an interactive REPL when no file is given.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/sdecook/golox/internal/replio"
	"github.com/sdecook/golox/pkg/lox"
)

func main() {
	noColor := flag.Bool("no-color", false, "disable colored REPL output")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: golox [-no-color] [script]")
	}
	flag.Parse()

	color.NoColor = *noColor || color.NoColor

	args := flag.Args()
	switch {
	case len(args) == 0:
		runREPL(*noColor)
	case len(args) == 1:
		stderr := replio.NewDiagnosticWriter(os.Stderr, *noColor)
		session := lox.NewSession(os.Stdout, stderr)
		os.Exit(session.RunFile(args[0]))
	default:
		flag.Usage()
		os.Exit(64)
	}
}

func runREPL(noColor bool) {
	reader, err := replio.New("> ", "... ", noColor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "golox: couldn't start REPL: %v\n", err)
		os.Exit(70)
	}
	defer reader.Close()

	stderr := replio.NewDiagnosticWriter(os.Stderr, noColor)
	session := lox.NewSession(os.Stdout, stderr)

	for {
		line, err := reader.ReadStatement()
		if err == io.EOF {
			fmt.Println()
			return
		}
		if line == "" {
			continue
		}
		_ = session.Run(line)
	}
}
