// Package loxerr implements the error-reporter collaborator described in
// spec.md §2 and §7: it accumulates compile-time errors across scanning,
// parsing and resolution, and formats both compile-time and runtime errors
// in the bit-exact diagnostics format spec.md §6 mandates.
package loxerr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"

	"golox/internal/lox/token"
)

// CompileError is a single scan/parse/resolve-time diagnostic, attributed to
// the line of the offending token.
type CompileError struct {
	Line    int
	Where   string // "" for scanner errors, " at end" or " at '<lexeme>'"
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, e.Where, e.Message)
}

var (
	boldFmt = color.New(color.Bold)
	redFmt  = color.New(color.FgRed)
)

// DisableColor forces every Report to render as plain text, overriding
// fatih/color's automatic TTY detection. Used by the --no-color CLI flag.
func DisableColor() {
	boldFmt.DisableColor()
	redFmt.DisableColor()
}

// Report renders e the way it would appear on a terminal: the plain text is
// unchanged (so redirected/piped output, and tests, see the spec-mandated
// bit-exact string) but color.NoColor-aware escapes are layered on for TTYs.
func (e *CompileError) Report() string {
	var b strings.Builder
	boldFmt.Fprint(&b, "[line "+strconv.Itoa(e.Line)+"] ")
	redFmt.Fprint(&b, "Error"+e.Where)
	b.WriteString(": " + e.Message)
	return b.String()
}

// List accumulates CompileErrors across a single scan+parse+resolve pass,
// backed by hashicorp/go-multierror so each subsystem can keep walking after
// a failure instead of aborting, per spec.md §4.1/§4.2/§7.
type List struct {
	merr *multierror.Error
}

// Add records a new compile-time error.
func (l *List) Add(line int, where, message string) {
	l.merr = multierror.Append(l.merr, &CompileError{Line: line, Where: where, Message: message})
}

// AddToken records a compile-time error attributed to tok, formatting Where
// per spec.md §6 (" at end" at EOF, " at '<lexeme>'" otherwise).
func (l *List) AddToken(tok token.Token, message string) {
	where := fmt.Sprintf(" at '%s'", tok.Lexeme)
	if tok.Kind == token.EOF {
		where = " at end"
	}
	l.Add(tok.Line, where, message)
}

// Error implements the error interface by rendering every recorded error as
// plain text, one per line.
func (l *List) Error() string {
	var lines []string
	for _, err := range l.Errors() {
		lines = append(lines, err.Error())
	}
	return strings.Join(lines, "\n")
}

// HadError reports whether any error has been recorded.
func (l *List) HadError() bool {
	return l.merr != nil && l.merr.Len() > 0
}

// Errors returns the recorded errors in the order they were added.
func (l *List) Errors() []*CompileError {
	if l.merr == nil {
		return nil
	}
	errs := make([]*CompileError, len(l.merr.Errors))
	for i, err := range l.merr.Errors {
		errs[i] = err.(*CompileError)
	}
	return errs
}

// Report renders every recorded error, one per line, for writing to stderr.
func (l *List) Report() string {
	var b strings.Builder
	for _, err := range l.Errors() {
		b.WriteString(err.Report())
		b.WriteByte('\n')
	}
	return b.String()
}

// RuntimeError is a single runtime failure, attributed to the token whose
// line spec.md §6/§7 says must be reported.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// Report renders e in the runtime diagnostics format mandated by spec.md §6:
// "<message>\n[line N]".
func (e *RuntimeError) Report() string {
	var b strings.Builder
	redFmt.Fprint(&b, e.Message)
	b.WriteString(fmt.Sprintf("\n[line %d]", e.Token.Line))
	return b.String()
}
