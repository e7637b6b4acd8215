// Package compiler wires the four dialect front ends, the import resolver,
// and the semantic analyzer into a single entry point that returns a
// CompilerResult: the DiagnosticEngine, the file_id used for the root
// source, and, for IL text input only, the parsed IL module. Source
// dialects run lex -> parse -> resolve -> analyze and are not lowered to
// IL. It mirrors the teacher's cmd/dwscript pipeline, collapsed into one
// reusable library call so both cmd/vipc and tests can drive it.
package compiler

import (
	"context"

	"github.com/google/uuid"

	"github.com/splanck/vipc/internal/ast"
	"github.com/splanck/vipc/internal/diag"
	"github.com/splanck/vipc/internal/il"
	"github.com/splanck/vipc/internal/iltext"
	"github.com/splanck/vipc/internal/importresolver"
	"github.com/splanck/vipc/internal/lexer"
	"github.com/splanck/vipc/internal/parser"
	"github.com/splanck/vipc/internal/runtimereg"
	"github.com/splanck/vipc/internal/semantic"
	"github.com/splanck/vipc/internal/source"
	"github.com/splanck/vipc/internal/types"
)

// Dialect selects which frontend compiles the root source. IL text is
// compiled directly by internal/iltext and never reaches the lexer/parser
// or semantic analyzer (spec §4.7: the IL text format is already the
// compiler's own lowered form).
type Dialect int

const (
	DialectBasic Dialect = iota
	DialectPascal
	DialectViper
	DialectZia
	DialectIL
)

// String names the dialect for diagnostic/log messages; the import
// resolver's default file extension comes from ext.
func (d Dialect) String() string {
	switch d {
	case DialectBasic:
		return "basic"
	case DialectPascal:
		return "pascal"
	case DialectViper:
		return "viper"
	case DialectZia:
		return "zia"
	case DialectIL:
		return "il"
	default:
		return "unknown"
	}
}

func (d Dialect) ext() string {
	switch d {
	case DialectBasic:
		return ".bas"
	case DialectPascal:
		return ".pas"
	case DialectViper:
		return ".vip"
	case DialectZia:
		return ".zia"
	default:
		return ""
	}
}

func (d Dialect) semanticDialect() semantic.Dialect {
	switch d {
	case DialectBasic:
		return semantic.DialectBasic
	case DialectPascal:
		return semantic.DialectPascal
	case DialectZia:
		return semantic.DialectZia
	default:
		return semantic.DialectViper
	}
}

// CompilerResult aggregates what a compilation produces: the diagnostic
// engine (owning every diagnostic raised across every stage), the root
// file's FileID, the parsed AST (nil for IL-text input), and the IL module
// (set only for IL-text input; source dialects are not lowered to IL, so
// it is nil for them).
type CompilerResult struct {
	// RunID distinguishes one Compile call from another in logs; it has
	// no semantic meaning to the compiler itself.
	RunID string

	Dialect Dialect
	Engine  *diag.Engine
	FileID  source.FileID
	Module  *ast.ModuleDecl
	IL      *il.Module
}

// succeeded reports whether the compilation surfaced no errors (spec §6:
// "a helper succeeded() returns true iff error_count() == 0"). Warnings
// never flip this to false.
func (r *CompilerResult) succeeded() bool {
	return r.Engine.ErrorCount() == 0
}

// Succeeded is the exported form of succeeded, for callers outside this
// package (cmd/vipc, tests).
func (r *CompilerResult) Succeeded() bool {
	return r.succeeded()
}

// newParser builds the lexer+parser pair for d reading file/src through em,
// runs ParseModule, and returns the parsed module, so every file is parsed
// with the identical dialect configuration.
func newParser(d Dialect, file source.FileID, src string, em *diag.Emitter) *ast.ModuleDecl {
	var cfg lexer.Config
	switch d {
	case DialectBasic:
		cfg = lexer.BasicConfig()
	case DialectPascal:
		cfg = lexer.PascalConfig()
	case DialectViper:
		cfg = lexer.ViperConfig()
	case DialectZia:
		cfg = lexer.ZiaConfig()
	}
	lx := lexer.New(cfg, file, src, em)

	switch d {
	case DialectBasic:
		return parser.NewBasic(lx, em).ParseModule()
	case DialectPascal:
		return parser.NewPascal(lx, em).ParseModule()
	case DialectZia:
		return parser.NewZia(lx, em).ParseModule()
	default:
		return parser.NewViper(lx, em).ParseModule()
	}
}

// Compile runs the full pipeline for dialect d over src, registered in sm
// under path and loaded through reader for any transitive imports.
//
// IL text (DialectIL) is parsed directly by internal/iltext and returned
// without a semantic pass: the IL text format is already the compiler's
// lowered intermediate representation, so there is no AST to analyze.
//
// For the four source dialects: lex+parse the root file, resolve imports
// (ViperLang/Zia only; BASIC/Pascal have no import graph), then run the
// semantic analyzer — but only when parsing produced zero errors, per spec
// §7 ("downstream lowering only runs when error_count() == 0").
func Compile(ctx context.Context, d Dialect, sm *source.Manager, reader source.Reader, path string, src string) *CompilerResult {
	file := sm.Register(path, src)
	engine := diag.NewEngine()
	em := diag.NewEmitter(engine, sm)

	res := &CompilerResult{
		RunID:   uuid.NewString(),
		Dialect: d,
		Engine:  engine,
		FileID:  file,
	}

	if d == DialectIL {
		mod, err := iltext.Parse(file, src, em)
		res.IL = mod
		if err != nil {
			// iltext.Parse only returns an error for a condition it could
			// not recover a block structure from at all; the diagnostics
			// already emitted through em explain why.
			return res
		}
		return res
	}

	module := newParser(d, file, src, em)
	res.Module = module

	if d == DialectViper || d == DialectZia {
		resolverDialect := importresolver.DialectViper
		if d == DialectZia {
			resolverDialect = importresolver.DialectZia
		}
		parseFn := func(f source.FileID, p string, s string) (*ast.ModuleDecl, error) {
			return newParser(d, f, s, em), nil
		}
		resolver := importresolver.New(resolverDialect, reader, sm, d.ext(), parseFn)
		resolved, err := resolver.Resolve(ctx, path, module)
		if err != nil {
			em.Emit(diag.Error, "IMP0001", source.Invalid, 0, err.Error())
			return res
		}
		res.Module = resolved
		module = resolved
	}

	if !res.succeeded() {
		return res
	}

	ty := types.NewTable()
	reg := runtimereg.Load()
	analyzer := semantic.New(d.semanticDialect(), em, ty, reg)
	analyzer.Analyze(module)

	return res
}
