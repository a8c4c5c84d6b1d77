package djade

import "strings"

// trimSpace is a tiny local alias kept separate from strings.TrimSpace only
// so that Comment trimming reads as its own named step in the pipeline.
func trimSpace(s string) string {
	return strings.TrimSpace(s)
}

// splitTopLevel splits s on sep, treating single- and double-quoted runs as
// opaque: a sep byte inside a quoted string never splits. Used for both the
// Variable filter chain (split on '|', then ':') and is the building block
// tag-lexeme splitting is layered on top of.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	var cur strings.Builder
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			cur.WriteByte(c)
			if c == quote {
				quote = 0
			}
			continue
		}
		switch {
		case c == '\'' || c == '"':
			quote = c
			cur.WriteByte(c)
		case c == sep:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	parts = append(parts, cur.String())
	return parts
}

// parseVariable parses the body between {{ and }} into a base expression
// and an ordered filter chain, per spec §4.1.
func parseVariable(body string) Token {
	segs := splitTopLevel(body, '|')
	base := trimSpace(segs[0])

	var filters []Filter
	for _, seg := range segs[1:] {
		seg = trimSpace(seg)
		nameArg := splitTopLevel(seg, ':')
		f := Filter{Name: trimSpace(nameArg[0])}
		if len(nameArg) > 1 {
			f.HasArg = true
			// A filter argument is opaque past the first ':': if the
			// argument itself contained a literal ':' inside quotes it was
			// already preserved by splitTopLevel; further colons outside
			// quotes in djade's grammar do not occur for a single filter
			// argument, so joining any remainder back together is safe.
			f.Arg = trimSpace(strings.Join(nameArg[1:], ":"))
		}
		filters = append(filters, f)
	}
	return Token{Kind: KindVariable, Base: base, Filters: filters}
}

// parseTag splits the body between {% and %} into whitespace-separated
// lexemes, preserving quoted strings as single lexemes, per spec §4.1. The
// first lexeme is the tag name; the rest are arguments.
func parseTag(body string) Token {
	lexemes := splitLexemes(body)
	if len(lexemes) == 0 {
		return Token{Kind: KindTag, Name: ""}
	}
	tok := Token{Kind: KindTag, Name: lexemes[0]}
	if len(lexemes) > 1 {
		tok.Args = lexemes[1:]
	}
	return tok
}

func splitLexemes(s string) []string {
	var lexemes []string
	var cur strings.Builder
	var quote byte
	has := false

	flush := func() {
		if has {
			lexemes = append(lexemes, cur.String())
			cur.Reset()
			has = false
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			cur.WriteByte(c)
			has = true
			if c == quote {
				quote = 0
			}
			continue
		}
		switch {
		case c == '\'' || c == '"':
			quote = c
			cur.WriteByte(c)
			has = true
		case isSpace(c):
			flush()
		default:
			cur.WriteByte(c)
			has = true
		}
	}
	flush()
	return lexemes
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	default:
		return false
	}
}
