// Package importresolver implements spec §4.5: walking a module's
// import/bind declarations, resolving each to a normalized path relative
// to the importing file, and merging the resolved declarations into the
// importing module — prepended, so imported symbols precede any reference
// to them. Used by ViperLang and Zia; BASIC and Pascal have no import
// graph to walk.
package importresolver

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/splanck/vipc/internal/ast"
	"github.com/splanck/vipc/internal/ferrors"
	"github.com/splanck/vipc/internal/source"
)

// Dialect selects the cycle policy (spec §4.5).
type Dialect int

const (
	// DialectZia tolerates import cycles: the cyclic target's
	// declarations are merged by the outer frame already on the stack,
	// so re-entry is simply skipped.
	DialectZia Dialect = iota
	// DialectViper treats a cycle as a hard error carrying the import
	// stack as a trace.
	DialectViper
)

const (
	maxDepth = 50
	maxFiles = 100
)

// ParseFunc parses one already-loaded source file into a module AST. The
// resolver is parser-agnostic: it is supplied by whichever dialect
// front-end is driving resolution, so this package never imports
// internal/parser and there is no import cycle between the two.
type ParseFunc func(file source.FileID, path string, src string) (*ast.ModuleDecl, error)

// Resolver walks an import graph for one dialect.
type Resolver struct {
	dialect Dialect
	reader  source.Reader
	sm      *source.Manager
	ext     string // extension appended to a target lacking one, e.g. ".zia"
	parse   ParseFunc

	processed  map[string]bool
	inProgress map[string]bool
	stack      []string
	fileCount  int
}

// New returns a Resolver for dialect, loading files through reader
// (registering them in sm) and parsing each with parse. ext is appended to
// an import path that has no extension of its own.
func New(dialect Dialect, reader source.Reader, sm *source.Manager, ext string, parse ParseFunc) *Resolver {
	return &Resolver{
		dialect:    dialect,
		reader:     reader,
		sm:         sm,
		ext:        ext,
		parse:      parse,
		processed:  make(map[string]bool),
		inProgress: make(map[string]bool),
	}
}

// Resolve walks root's import declarations (and transitively, every
// imported module's own imports), merging resolved declarations into
// root.Decls in place, and returns root. rootPath is the root module's own
// normalized path, used as the base for its relative imports.
func (r *Resolver) Resolve(ctx context.Context, rootPath string, root *ast.ModuleDecl) (*ast.ModuleDecl, error) {
	rootPath = normalize(rootPath)
	r.inProgress[rootPath] = true
	r.stack = append(r.stack, rootPath)

	merged, err := r.resolveDeclList(ctx, rootPath, root.Decls, 0)

	r.popStack(rootPath)
	r.processed[rootPath] = true
	if err != nil {
		root.Decls = merged
		return root, err
	}
	root.Decls = merged
	return root, nil
}

// resolveDeclList processes one declaration list: every ImportDecl is
// replaced by the (already fully resolved) declarations of its target,
// prepended ahead of the list's own non-import declarations, in the order
// the imports appear in source (spec §4.5 "prepended").
func (r *Resolver) resolveDeclList(ctx context.Context, currentPath string, decls []ast.Decl, depth int) ([]ast.Decl, error) {
	var prepend []ast.Decl
	var rest []ast.Decl
	for _, d := range decls {
		imp, ok := d.(*ast.ImportDecl)
		if !ok {
			rest = append(rest, d)
			continue
		}
		childDecls, err := r.resolveImport(ctx, currentPath, imp, depth)
		if err != nil {
			return append(append([]ast.Decl{}, prepend...), rest...), err
		}
		prepend = append(prepend, childDecls...)
	}
	return append(prepend, rest...), nil
}

func (r *Resolver) resolveImport(ctx context.Context, fromPath string, imp *ast.ImportDecl, depth int) ([]ast.Decl, error) {
	target := r.resolvePath(fromPath, imp.Path)

	if r.processed[target] {
		return nil, nil
	}
	if r.inProgress[target] {
		if r.dialect == DialectZia {
			return nil, nil
		}
		trace := append(append([]string{}, r.stack...), target)
		return nil, ferrors.Newf(imp.Loc(), "import cycle detected at '%s'", target).WithChain(trace)
	}
	if depth+1 > maxDepth {
		return nil, ferrors.Newf(imp.Loc(), "import depth limit (%d) exceeded", maxDepth)
	}
	if r.fileCount+1 > maxFiles {
		return nil, ferrors.Newf(imp.Loc(), "import file limit (%d) exceeded", maxFiles)
	}

	r.fileCount++
	r.inProgress[target] = true
	r.stack = append(r.stack, target)

	src, err := r.reader.DownloadWithURL(ctx, target)
	if err != nil {
		r.popStack(target)
		return nil, ferrors.Newf(imp.Loc(), "cannot load import '%s': %s", target, err.Error())
	}
	fileID := r.sm.Register(target, string(src))
	childMod, err := r.parse(fileID, target, string(src))
	if err != nil {
		r.popStack(target)
		return nil, err
	}

	merged, err := r.resolveDeclList(ctx, target, childMod.Decls, depth+1)
	r.popStack(target)
	if err != nil {
		return merged, err
	}
	r.processed[target] = true
	return merged, nil
}

func (r *Resolver) popStack(target string) {
	delete(r.inProgress, target)
	if n := len(r.stack); n > 0 && r.stack[n-1] == target {
		r.stack = r.stack[:n-1]
	}
}

// resolvePath resolves an import path relative to the importing file,
// adding the dialect's default extension when absent, and normalizes it.
func (r *Resolver) resolvePath(fromPath, importPath string) string {
	if !path.IsAbs(importPath) {
		importPath = path.Join(path.Dir(fromPath), importPath)
	}
	if r.ext != "" && path.Ext(importPath) == "" {
		importPath += r.ext
	}
	return normalize(importPath)
}

// normalize is idempotent: normalize(normalize(p)) == normalize(p) (spec
// §8), via path.Clean plus forward-slash canonicalization.
func normalize(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	return path.Clean(p)
}

// Trace renders a cycle/limit error's causal chain as a single
// human-readable line, used by callers that print fatal errors without
// going through ferrors.Format.
func Trace(err error) string {
	fe, ok := err.(*ferrors.FatalError)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s (%s)", fe.Message, strings.Join(fe.Chain, " -> "))
}
