package diag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/splanck/vipc/internal/source"
)

func TestEngineTalliesSeverities(t *testing.T) {
	e := NewEngine()
	e.Report(Diagnostic{Severity: Error, Message: "boom"})
	e.Report(Diagnostic{Severity: Warning, Message: "hmm"})
	e.Report(Diagnostic{Severity: Note, Message: "fyi"})

	assert.Equal(t, 1, e.ErrorCount())
	assert.Equal(t, 1, e.WarningCount())
	assert.Len(t, e.All(), 3)
	assert.False(t, e.Succeeded())
}

func TestEngineSucceedsWithOnlyWarnings(t *testing.T) {
	e := NewEngine()
	e.Report(Diagnostic{Severity: Warning, Message: "hmm"})
	assert.True(t, e.Succeeded(), "warnings never block success")
}

func TestEmitterEmitAppendsToEngine(t *testing.T) {
	sm := source.New()
	e := NewEngine()
	em := NewEmitter(e, sm)

	em.Emit(Error, "B1001", source.Invalid, 1, "undefined name 'x'")
	assert.Equal(t, 1, e.ErrorCount())
	assert.Equal(t, "B1001", e.All()[0].Code)
}

func TestEmitterEmitfFormats(t *testing.T) {
	e := NewEngine()
	em := NewEmitter(e, source.New())
	em.Emitf(Error, "B1002", source.Invalid, 1, "undefined name %q", "foo")
	assert.Equal(t, `undefined name "foo"`, e.All()[0].Message)
}

func TestEmitterEmitExpected(t *testing.T) {
	e := NewEngine()
	em := NewEmitter(e, source.New())
	em.EmitExpected("B1003", source.Invalid, "')'", "';'")
	assert.Equal(t, "expected ')', got ';'", e.All()[0].Message)
}

func TestRenderIncludesSourceSnippetAndCaret(t *testing.T) {
	sm := source.New()
	id := sm.Register("main.bas", "DIM x AS BadType\n")
	d := Diagnostic{
		Severity: Error,
		Code:     "B1010",
		Message:  "unknown type 'BadType'",
		Loc:      source.Loc{File: id, Line: 1, Column: 11},
		Length:   7,
	}
	out := Render(d, sm, false)
	assert.Contains(t, out, "main.bas:1:11: error[B1010]: unknown type 'BadType'")
	assert.Contains(t, out, "DIM x AS BadType")
	assert.Contains(t, out, strings.Repeat(" ", 10)+"^^^^^^^")
}

func TestRenderWithoutLocOmitsSnippet(t *testing.T) {
	d := Diagnostic{Severity: Warning, Code: "B2000", Message: "deprecated"}
	out := Render(d, nil, false)
	assert.Equal(t, "warning[B2000]: deprecated\n", out)
}

func TestSeverityStrings(t *testing.T) {
	assert.Equal(t, "note", Note.String())
	assert.Equal(t, "warning", Warning.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "unknown", Severity(99).String())
}

func TestPrintAllRendersInEmissionOrder(t *testing.T) {
	e := NewEngine()
	em := NewEmitter(e, source.New())
	em.Emit(Error, "B1", source.Invalid, 1, "first")
	em.Emit(Warning, "B2", source.Invalid, 1, "second")

	var sb strings.Builder
	e.PrintAll(&sb, nil, false)
	out := sb.String()
	assert.True(t, strings.Index(out, "first") < strings.Index(out, "second"))
}
