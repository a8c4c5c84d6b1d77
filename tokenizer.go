package djade

import "bytes"

// detectNewline scans src for the first line terminator. "\r\n" wins if it
// is found before any lone "\n"; otherwise "\n" is the style (including the
// no-newlines-present case, per spec §6).
func detectNewline(src []byte) string {
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			if i > 0 && src[i-1] == '\r' {
				return "\r\n"
			}
			return "\n"
		}
	}
	return "\n"
}

// tokenize converts raw source bytes into an ordered token stream, per
// spec §4.1. Every byte of input is attributed to exactly one token.
func tokenize(src []byte, nl string) ([]Token, error) {
	var toks []Token
	n := len(src)
	i := 0
	textStart := 0

	flushText := func(end int) {
		if end > textStart {
			toks = append(toks, Token{
				Kind:   KindText,
				Raw:    append([]byte(nil), src[textStart:end]...),
				Offset: textStart,
			})
		}
	}

	for i < n {
		switch {
		case hasPrefixAt(src, i, "{{"):
			close := bytes.Index(src[i+2:], []byte("}}"))
			if close < 0 {
				return nil, &ParseError{Offset: i, Reason: "unterminated variable: missing closing }}"}
			}
			flushText(i)
			body := string(src[i+2 : i+2+close])
			tok := parseVariable(body)
			tok.Offset = i
			toks = append(toks, tok)
			i = i + 2 + close + 2
			textStart = i

		case hasPrefixAt(src, i, "{%"):
			close := bytes.Index(src[i+2:], []byte("%}"))
			if close < 0 {
				return nil, &ParseError{Offset: i, Reason: "unterminated tag: missing closing %}"}
			}
			flushText(i)
			body := string(src[i+2 : i+2+close])
			tok := parseTag(body)
			tok.Offset = i
			toks = append(toks, tok)
			i = i + 2 + close + 2
			textStart = i

		case hasPrefixAt(src, i, "{#"):
			close := bytes.Index(src[i+2:], []byte("#}"))
			if close < 0 {
				return nil, &ParseError{Offset: i, Reason: "unterminated comment: missing closing #}"}
			}
			flushText(i)
			body := string(src[i+2 : i+2+close])
			toks = append(toks, Token{Kind: KindComment, Content: trimSpace(body), Offset: i})
			i = i + 2 + close + 2
			textStart = i

		case nl == "\r\n" && hasPrefixAt(src, i, "\r\n"):
			flushText(i)
			toks = append(toks, Token{Kind: KindNewline, Raw: []byte("\r\n"), Offset: i})
			i += 2
			textStart = i

		case nl == "\n" && src[i] == '\n':
			flushText(i)
			toks = append(toks, Token{Kind: KindNewline, Raw: []byte("\n"), Offset: i})
			i++
			textStart = i

		default:
			i++
		}
	}
	flushText(n)
	return toks, nil
}

func hasPrefixAt(src []byte, i int, prefix string) bool {
	if i+len(prefix) > len(src) {
		return false
	}
	return string(src[i:i+len(prefix)]) == prefix
}
