package lexer

import "sort"

// keywordTable is a sorted (by spelling) list searched by binary search,
// per spec's "Dynamic keyword tables" design note: keep keyword lists as
// sorted static arrays, not hash tables built at startup.
type keywordTable []string

func newKeywordTable(words []string) keywordTable {
	t := make(keywordTable, len(words))
	copy(t, words)
	sort.Strings(t)
	return t
}

// contains reports whether word (already case-folded per the dialect's
// policy, if applicable) is a keyword.
func (t keywordTable) contains(word string) bool {
	i := sort.SearchStrings(t, word)
	return i < len(t) && t[i] == word
}

var basicKeywords = newKeywordTable([]string{
	"and", "as", "boolean", "byte", "case", "const", "dim", "do", "each",
	"else", "elseif", "end", "exit", "false", "for", "function", "goto",
	"if", "in", "integer", "is", "loop", "mod", "namespace", "next", "not",
	"number", "or", "print", "return", "select", "step", "string", "sub",
	"then", "to", "true", "until", "using", "wend", "while",
})

var pascalKeywords = newKeywordTable([]string{
	"abstract", "and", "array", "begin", "boolean", "byte", "case", "class", "const",
	"div", "do", "downto", "else", "end", "false", "final", "for",
	"function", "if", "implements", "inherited", "integer", "interface",
	"is", "mod", "new", "nil", "not", "number", "of", "or", "override",
	"procedure", "program", "property", "protected", "private", "public",
	"record", "self", "string", "then", "to", "true", "type", "unit",
	"until", "uses", "var", "virtual", "weak", "while",
})

var viperKeywords = newKeywordTable([]string{
	"abstract", "and", "as", "bind", "boolean", "break", "byte", "class",
	"const", "continue", "else", "entity", "extern", "false", "final",
	"for", "func", "guard", "if", "implements", "import", "in", "integer",
	"interface", "is", "let", "match", "new", "not", "null", "number",
	"or", "override", "property", "return", "self", "string", "super",
	"true", "unit", "value", "var", "virtual", "weak", "while",
})

var ziaKeywords = viperKeywords
