// Package replio wraps github.com/chzyer/readline into the multi-line
// prompt the golox REPL needs: a Lox block can span several physical
// lines, so a bare Readline() call per statement would cut users off
// mid-block.
package replio

import (
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Reader drives one interactive session: prompt, history, and the
// brace/string-balance tracking that decides whether a line needs a
// continuation prompt before it's handed to the interpreter.
type Reader struct {
	rl         *readline.Instance
	prompt     string
	contPrompt string
	noColor    bool
}

// New builds a Reader with the given primary and continuation prompts.
// Pass noColor to suppress ANSI styling, e.g. when stdout isn't a TTY.
func New(prompt, contPrompt string, noColor bool) (*Reader, error) {
	rl, err := readline.New(prompt)
	if err != nil {
		return nil, err
	}
	return &Reader{rl: rl, prompt: prompt, contPrompt: contPrompt, noColor: noColor}, nil
}

func (r *Reader) Close() error {
	return r.rl.Close()
}

// ReadStatement reads one logical Lox statement, which may span
// several physical lines when braces or a string literal are left
// open. It returns io.EOF once the user ends the session (Ctrl-D) with
// no partial input pending.
func (r *Reader) ReadStatement() (string, error) {
	var lines []string

	r.rl.SetPrompt(r.prompt)
	for {
		line, err := r.rl.Readline()
		if err != nil {
			if len(lines) > 0 {
				// Ctrl-D mid-block: surface what was typed so far as a
				// syntax error instead of silently discarding it.
				return strings.Join(lines, "\n"), nil
			}
			return "", io.EOF
		}

		lines = append(lines, line)
		joined := strings.Join(lines, "\n")

		if strings.TrimSpace(joined) == "" {
			lines = nil
			r.rl.SetPrompt(r.prompt)
			continue
		}

		if IsBalanced(joined) {
			r.rl.SaveHistory(joined)
			return joined, nil
		}

		r.rl.SetPrompt(r.contPrompt)
	}
}

// IsBalanced reports whether src has no unterminated string literal
// and no unmatched '{'/'('/'[' — the signal that a REPL line is
// syntactically complete enough to hand to the scanner. It does not
// need to be a fully correct lexer: a false negative just means one
// extra continuation prompt, which is harmless.
func IsBalanced(src string) bool {
	depth := 0
	inString := false
	escaped := false

	for _, r := range src {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}

		switch r {
		case '"':
			inString = true
		case '{', '(', '[':
			depth++
		case '}', ')', ']':
			depth--
		}
	}

	return !inString && depth <= 0
}

// Diagnostic writes a REPL-local error line in red when color is
// enabled, matching the plain "message" text pkg/lox itself writes to
// Stderr during file execution.
func (r *Reader) Diagnostic(w io.Writer, message string) {
	if r.noColor {
		io.WriteString(w, message+"\n")
		return
	}
	color.New(color.FgRed).Fprintln(w, message)
}

// diagnosticWriter wraps a stderr-like sink so every write pkg/lox
// makes — "[line N] Error: message", the runtime error block — comes
// out wrapped in a red SGR sequence. It wraps, never rewrites: the
// plain-text bytes pkg/lox produces pass through unchanged inside the
// color codes, so a -no-color run or a non-TTY capture sees byte-for-byte
// the same diagnostic text either way.
type diagnosticWriter struct {
	w io.Writer
	c *color.Color
}

func (d diagnosticWriter) Write(p []byte) (int, error) {
	if err := d.c.Fprint(d.w, string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// NewDiagnosticWriter wraps w for error-stream output. Color is applied
// only when noColor is false and w is a terminal (checked via isatty
// when w is an *os.File; anything else is treated as non-interactive
// and left uncolored, matching how output redirected to a file or pipe
// should behave).
func NewDiagnosticWriter(w io.Writer, noColor bool) io.Writer {
	if noColor {
		return w
	}
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return w
	}
	return diagnosticWriter{w: w, c: color.New(color.FgRed)}
}
