// Command conformance runs every testdata/*.lox script in-process
// against pkg/lox and checks its actual output against the
// "// expect:"-style annotations embedded in the script, the
// convention the Crafting Interpreters book's own test suite uses.
//
// Three annotation forms are recognized, one expectation per line:
//
//	// expect: <text>               a line the program must print, in order
//	// expect runtime error: <msg>  the program must fail with this runtime error
//	// expect exit: <n>             the process must exit with code n (unchecked if absent)
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/sdecook/golox/pkg/lox"
)

const width = 100

type expectation struct {
	stdoutLines  []string
	runtimeError string
	exitCode     int
	hasExitCode  bool
}

type caseResult struct {
	name   string
	passed bool
	detail string
}

func main() {
	dir := flag.String("dir", "cmd/conformance/testdata", "directory of .lox conformance scripts")
	flag.Parse()

	scripts, err := filepath.Glob(filepath.Join(*dir, "*.lox"))
	if err != nil || len(scripts) == 0 {
		fmt.Fprintf(os.Stderr, "conformance: no scripts found in %s\n", *dir)
		os.Exit(1)
	}

	results := runSuite(scripts)

	failed := printSummary(results)
	if failed > 0 {
		os.Exit(1)
	}
}

// runSuite runs every script concurrently over a worker pool bounded by
// GOMAXPROCS, since each script runs its own isolated *lox.Session and
// scripts never share interpreter state. Results come back in the same
// order as scripts so the summary table stays deterministic.
func runSuite(scripts []string) []caseResult {
	results := make([]caseResult, len(scripts))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(scripts) {
		workers = len(scripts)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = runScript(scripts[i])
			}
		}()
	}

	for i := range scripts {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func runScript(path string) caseResult {
	name := filepath.Base(path)
	src, err := os.ReadFile(path)
	if err != nil {
		return caseResult{name: name, passed: false, detail: err.Error()}
	}

	want := parseExpectations(string(src))

	var stdout, stderr bytes.Buffer
	session := lox.NewSession(&stdout, &stderr)
	exitCode := session.RunFile(path)

	if want.hasExitCode && exitCode != want.exitCode {
		return caseResult{name: name, passed: false,
			detail: fmt.Sprintf("expected exit %d, got %d (stderr: %s)", want.exitCode, exitCode, strings.TrimSpace(stderr.String()))}
	}

	if want.runtimeError != "" {
		if !strings.Contains(stderr.String(), want.runtimeError) {
			return caseResult{name: name, passed: false,
				detail: fmt.Sprintf("expected runtime error %q, got stderr %q", want.runtimeError, stderr.String())}
		}
		return caseResult{name: name, passed: true}
	}

	gotLines := splitNonEmpty(stdout.String())
	if len(gotLines) != len(want.stdoutLines) {
		return caseResult{name: name, passed: false,
			detail: fmt.Sprintf("expected %d lines of output, got %d:\n  want: %v\n  got:  %v", len(want.stdoutLines), len(gotLines), want.stdoutLines, gotLines)}
	}
	for i := range want.stdoutLines {
		if gotLines[i] != want.stdoutLines[i] {
			return caseResult{name: name, passed: false,
				detail: fmt.Sprintf("line %d: expected %q, got %q", i+1, want.stdoutLines[i], gotLines[i])}
		}
	}

	return caseResult{name: name, passed: true}
}

func splitNonEmpty(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func parseExpectations(src string) expectation {
	var want expectation
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		idx := strings.Index(trimmed, "// expect")
		if idx < 0 {
			continue
		}
		annotation := trimmed[idx:]

		switch {
		case strings.HasPrefix(annotation, "// expect runtime error:"):
			want.runtimeError = strings.TrimSpace(strings.TrimPrefix(annotation, "// expect runtime error:"))
		case strings.HasPrefix(annotation, "// expect exit:"):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(annotation, "// expect exit:")))
			if err == nil {
				want.exitCode = n
				want.hasExitCode = true
			}
		case strings.HasPrefix(annotation, "// expect:"):
			rest := strings.TrimPrefix(annotation, "// expect:")
			want.stdoutLines = append(want.stdoutLines, strings.TrimPrefix(rest, " "))
		}
	}
	return want
}

func printSummary(results []caseResult) int {
	failed := 0
	for _, r := range results {
		status := color.GreenString("passed")
		if !r.passed {
			status = color.RedString("failed")
			failed++
		}
		spacing := strings.Repeat(" ", max(1, width-len("  [passed] ")-len(r.name)))
		fmt.Printf("  [%s] %s%s\n", status, r.name, spacing)
		if !r.passed {
			fmt.Println(strings.Repeat("-", width))
			fmt.Println(r.detail)
			fmt.Println(strings.Repeat("-", width))
		}
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", width))
	fmt.Printf("Tests run: %d, passed: %d, failed: %d\n", len(results), len(results)-failed, failed)
	return failed
}
