// Package diag is the compiler's one shared mutable singleton: an
// append-only diagnostic accumulator, created once per compilation and
// threaded by reference through every stage (spec §4.2, §5).
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/splanck/vipc/internal/source"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	Note Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Note:
		return "note"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is a single structured compiler message (spec §3).
type Diagnostic struct {
	Severity Severity
	Code     string // optional short identifier, e.g. "B1001", "E_NS_003"
	Message  string
	Loc      source.Loc
	Length   uint32 // characters underlined; 0 means a single caret
}

// Engine collects diagnostics in emission order and tallies severities.
// report() never throws away an error: a single failing stage does not
// prevent later stages from reporting their own findings.
type Engine struct {
	diags        []Diagnostic
	errorCount   int
	warningCount int
}

// NewEngine returns an empty diagnostic engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Report appends d to the engine and updates severity counters. Counters
// are monotonically non-decreasing for the lifetime of the engine
// (spec §8 invariant).
func (e *Engine) Report(d Diagnostic) {
	e.diags = append(e.diags, d)
	switch d.Severity {
	case Error:
		e.errorCount++
	case Warning:
		e.warningCount++
	}
}

// All returns every diagnostic in emission order. Callers must not mutate
// the returned slice.
func (e *Engine) All() []Diagnostic {
	return e.diags
}

// ErrorCount returns the number of Error-severity diagnostics reported so
// far.
func (e *Engine) ErrorCount() int { return e.errorCount }

// WarningCount returns the number of Warning-severity diagnostics reported
// so far.
func (e *Engine) WarningCount() int { return e.warningCount }

// Succeeded reports whether zero errors have been reported. Warnings never
// block lowering (spec §7).
func (e *Engine) Succeeded() bool { return e.errorCount == 0 }

// PrintAll renders every diagnostic, in emission order, to out. When sm is
// non-nil, each rendering includes a source snippet and caret underline;
// otherwise only the header line is printed. Emission order equals
// iteration order here by construction (spec §8 invariant).
func (e *Engine) PrintAll(out io.Writer, sm *source.Manager, colorize bool) {
	for _, d := range e.diags {
		fmt.Fprint(out, Render(d, sm, colorize))
	}
}

// Render formats one diagnostic in the canonical form described in spec
// §4.2:
//
//	<path>:<line>:<col>: <severity>[<code>]: <message>
//	<source line>
//	<spaces to column>^<additional '^' for (length-1) more chars>
func Render(d Diagnostic, sm *source.Manager, colorize bool) string {
	var sb strings.Builder

	sevText := d.Severity.String()
	if colorize {
		sevText = severityColor(d.Severity).Sprint(sevText)
	}

	if d.Loc.IsValid() && sm != nil {
		path := sm.Path(d.Loc.File)
		if d.Code != "" {
			fmt.Fprintf(&sb, "%s:%d:%d: %s[%s]: %s\n", path, d.Loc.Line, d.Loc.Column, sevText, d.Code, d.Message)
		} else {
			fmt.Fprintf(&sb, "%s:%d:%d: %s: %s\n", path, d.Loc.Line, d.Loc.Column, sevText, d.Message)
		}

		line := sm.Line(d.Loc.File, int(d.Loc.Line))
		if line != "" {
			sb.WriteString(line)
			sb.WriteString("\n")
			col := int(d.Loc.Column)
			if col < 1 {
				col = 1
			}
			length := int(d.Length)
			if length < 1 {
				length = 1
			}
			sb.WriteString(strings.Repeat(" ", col-1))
			caret := strings.Repeat("^", length)
			if colorize {
				caret = color.New(color.FgRed, color.Bold).Sprint(caret)
			}
			sb.WriteString(caret)
			sb.WriteString("\n")
		}
		return sb.String()
	}

	if d.Code != "" {
		fmt.Fprintf(&sb, "%s[%s]: %s\n", sevText, d.Code, d.Message)
	} else {
		fmt.Fprintf(&sb, "%s: %s\n", sevText, d.Message)
	}
	return sb.String()
}

func severityColor(s Severity) *color.Color {
	switch s {
	case Error:
		return color.New(color.FgRed, color.Bold)
	case Warning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}
