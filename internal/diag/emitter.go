package diag

import (
	"fmt"

	"github.com/splanck/vipc/internal/source"
)

// Emitter wraps an Engine with per-dialect conveniences and caches source
// text by file id so repeated renders don't re-walk the manager. It is the
// only place the source-snippet rendering logic is invoked from during
// active compilation (spec §4.2).
type Emitter struct {
	engine *Engine
	sm     *source.Manager
	cache  map[source.FileID]string
}

// NewEmitter returns an Emitter reporting into engine, resolving snippets
// through sm.
func NewEmitter(engine *Engine, sm *source.Manager) *Emitter {
	return &Emitter{engine: engine, sm: sm, cache: make(map[source.FileID]string)}
}

// Engine returns the underlying diagnostic engine.
func (em *Emitter) Engine() *Engine { return em.engine }

// Emit reports a diagnostic with the given fields.
func (em *Emitter) Emit(sev Severity, code string, loc source.Loc, length uint32, message string) {
	em.engine.Report(Diagnostic{Severity: sev, Code: code, Message: message, Loc: loc, Length: length})
}

// Emitf is Emit with fmt.Sprintf-style formatting of the message.
func (em *Emitter) Emitf(sev Severity, code string, loc source.Loc, length uint32, format string, args ...interface{}) {
	em.Emit(sev, code, loc, length, fmt.Sprintf(format, args...))
}

// EmitExpected reports the common "expected X, got Y" shape shared by every
// dialect's parser.
func (em *Emitter) EmitExpected(code string, loc source.Loc, want, got string) {
	em.Emitf(Error, code, loc, 1, "expected %s, got %s", want, got)
}

// sourceLine returns the text of loc's line, read through the
// source.Manager on every call. It also stores the file's full text in
// em.cache the first time the file is seen; the returned line is not
// taken from that cache.
func (em *Emitter) sourceLine(loc source.Loc) string {
	if !loc.IsValid() || em.sm == nil {
		return ""
	}
	if _, ok := em.cache[loc.File]; !ok {
		em.cache[loc.File] = em.sm.Text(loc.File)
	}
	return em.sm.Line(loc.File, int(loc.Line))
}
