// Package djade implements the core of a configuration-free formatter for
// Django template source files: a lossless tokenizer, a set of structural
// and content-normalization rewriters, a handful of version-gated syntactic
// fixers, and a renderer. Format is the single entry point; it is a pure
// function with no I/O and no package-level state, safe to call
// concurrently across distinct buffers.
package djade

import "bytes"

// Format rewrites src to djade's canonical style and, if target is
// non-nil, applies every fixer whose floor is at or below target. It
// returns the rewritten bytes, whether they differ from src, and a
// *ParseError if src could not be tokenized (in which case out is nil and
// src is left authoritative by the caller).
func Format(src []byte, target *Version) (out []byte, changed bool, err error) {
	nl := detectNewline(src)

	tokens, err := tokenize(src, nl)
	if err != nil {
		return nil, false, err
	}

	tokens = normalize(tokens)

	if target.AtLeast(2, 1) {
		staticfilesFixer(tokens)
	}
	if target.AtLeast(3, 1) {
		transTranslateFixer(tokens)
		ifequalFixer(tokens)
	}
	if target.AtLeast(4, 1) {
		jsonScriptFixer(tokens)
	}
	if target.AtLeast(4, 2) {
		lengthIsFixer(tokens)
	}

	tokens = trimLeadingBlank(tokens)
	if extendsIndex(tokens) >= 0 {
		tokens = unindentExtends(tokens, nl)
	}
	tokens = mergeLoads(tokens, nl)
	tokens = labelEndblocks(tokens)
	tokens = trimTrailingBlank(tokens, nl)

	out = Render(tokens)
	return out, !bytes.Equal(src, out), nil
}
