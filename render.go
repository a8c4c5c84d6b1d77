package djade

// normalize is the content-normalization pass. Every Variable, Tag, and
// Comment token already renders in its normalized form via Token.Render
// (single interior space, no whitespace around filter '|'/':'), so this
// pass is structurally an identity transform over the token stream; it is
// kept as a named step so the pipeline in format.go mirrors spec §2's
// dependency order explicitly.
func normalize(tokens []Token) []Token {
	return tokens
}

// Render serializes a token stream back to bytes, concatenating each
// token's rendered payload in order.
func Render(tokens []Token) []byte {
	var out []byte
	for _, t := range tokens {
		out = append(out, t.Render()...)
	}
	return out
}
