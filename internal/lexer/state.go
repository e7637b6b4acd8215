package lexer

// State is a snapshot of everything needed to rewind a Lexer to an
// earlier point: scan position, line/column, the one-token lookahead
// cache, and interpolation-frame stacks. Used by the parser's speculation
// scope (spec §4.4 "Speculation (Zia)") for bounded backtracking.
type State struct {
	pos        int
	line, col  uint32
	peeked     *Token
	quoteStack []byte
	depthStack []int
}

// SaveState captures the lexer's current position.
func (l *Lexer) SaveState() State {
	return State{
		pos:        l.pos,
		line:       l.line,
		col:        l.col,
		peeked:     l.peeked,
		quoteStack: append([]byte(nil), l.quoteStack...),
		depthStack: append([]int(nil), l.depthStack...),
	}
}

// RestoreState rewinds the lexer to a previously captured State.
func (l *Lexer) RestoreState(s State) {
	l.pos = s.pos
	l.line = s.line
	l.col = s.col
	l.peeked = s.peeked
	l.quoteStack = s.quoteStack
	l.depthStack = s.depthStack
}
