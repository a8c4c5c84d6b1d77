package djade

import "sort"

// trimLeadingBlank removes blank lines (a bare Newline, or a whitespace-only
// Text token immediately followed by a Newline) from the front of the
// stream, per spec §4.3.
func trimLeadingBlank(tokens []Token) []Token {
	for len(tokens) > 0 {
		t := tokens[0]
		if t.Kind == KindNewline {
			tokens = tokens[1:]
			continue
		}
		if t.Kind == KindText && t.IsBlank() && len(tokens) > 1 && tokens[1].Kind == KindNewline {
			tokens = tokens[1:]
			continue
		}
		break
	}
	return tokens
}

// trimTrailingBlank collapses the suffix of the stream to at most one
// trailing Newline, appending one if the stream is non-empty and does not
// already end with one, per spec §4.3.
func trimTrailingBlank(tokens []Token, nl string) []Token {
	end := len(tokens)
	for end > 0 {
		t := tokens[end-1]
		if t.Kind == KindNewline || (t.Kind == KindText && t.IsBlank()) {
			end--
			continue
		}
		break
	}
	tokens = tokens[:end]
	if len(tokens) > 0 {
		tokens = append(tokens, Token{Kind: KindNewline, Raw: []byte(nl)})
	}
	return tokens
}

func isFiller(t Token) bool {
	return t.Kind == KindNewline || (t.Kind == KindText && t.IsBlank())
}

// loadShape splits a load tag's argument list into its imported names and,
// if present, the "from <lib>" suffix, per spec §4.3.
func loadShape(args []string) (names []string, lib string, isFrom bool) {
	if len(args) >= 2 && args[len(args)-2] == "from" {
		return args[:len(args)-2], args[len(args)-1], true
	}
	return args, "", false
}

func shapeKey(lib string, isFrom bool) string {
	if isFrom {
		return "from:" + lib
	}
	return "plain"
}

func dedupeSort(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

type loadGroup struct {
	key    string
	lib    string
	isFrom bool
	names  []string
}

// mergeLoads scans for runs of `load` tags separated only by blank filler
// (Newline tokens and whitespace-only Text tokens), and merges tags within
// a run that share the same argument shape (plain-form, or from-form with
// the same library), per spec §4.3. Within a single load tag, arguments are
// always sorted, even when no merge occurs.
func mergeLoads(tokens []Token, nl string) []Token {
	var out []Token
	i := 0
	n := len(tokens)
	for i < n {
		if !tokens[i].TagIs("load") {
			out = append(out, tokens[i])
			i++
			continue
		}

		loadIdxs := []int{i}
		j := i + 1
		for {
			k := j
			for k < n && isFiller(tokens[k]) {
				k++
			}
			if k < n && tokens[k].TagIs("load") {
				loadIdxs = append(loadIdxs, k)
				j = k + 1
				continue
			}
			break
		}

		var groups []*loadGroup
		keyIndex := make(map[string]int)
		for _, idx := range loadIdxs {
			names, lib, isFrom := loadShape(tokens[idx].Args)
			key := shapeKey(lib, isFrom)
			if gi, ok := keyIndex[key]; ok {
				groups[gi].names = append(groups[gi].names, names...)
			} else {
				keyIndex[key] = len(groups)
				groups = append(groups, &loadGroup{
					key:    key,
					lib:    lib,
					isFrom: isFrom,
					names:  append([]string{}, names...),
				})
			}
		}

		for gi, g := range groups {
			names := dedupeSort(g.names)
			var args []string
			if g.isFrom {
				args = append(append([]string{}, names...), "from", g.lib)
			} else {
				args = names
			}
			out = append(out, Token{Kind: KindTag, Name: "load", Args: args})
			if gi < len(groups)-1 {
				out = append(out, Token{Kind: KindNewline, Raw: []byte(nl)})
			}
		}

		i = j
	}
	return out
}

// labelEndblocks applies the endblock label policy of spec §4.3: if an
// endblock is on the same rendered line as its matching block (no Newline
// token in between), any label on the endblock is stripped; otherwise the
// endblock's label is set to match the opening block's label (or stripped,
// if the opener is unlabelled). Matching is by a stack keyed on occurrence,
// not by label text.
func labelEndblocks(tokens []Token) []Token {
	type frame struct {
		openIdx    int
		sawNewline bool
	}
	var stack []*frame
	for i := range tokens {
		switch {
		case tokens[i].Kind == KindNewline:
			for _, f := range stack {
				f.sawNewline = true
			}
		case tokens[i].TagIs("block"):
			stack = append(stack, &frame{openIdx: i})
		case tokens[i].TagIs("endblock"):
			if len(stack) == 0 {
				continue
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			opener := tokens[f.openIdx]
			hasLabel := len(opener.Args) > 0
			if f.sawNewline && hasLabel {
				tokens[i].Args = []string{opener.Args[0]}
			} else {
				tokens[i].Args = nil
			}
		}
	}
	return tokens
}

type blockPair struct {
	Open  int
	Close int
}

// topLevelBlockPairs matches block/endblock tags by stack discipline and
// returns only the pairs whose opener occurred at stack depth zero.
func topLevelBlockPairs(tokens []Token) []blockPair {
	var stack []int
	var topOfStackWasEmpty []bool
	var pairs []blockPair
	for i := range tokens {
		switch {
		case tokens[i].TagIs("block"):
			topOfStackWasEmpty = append(topOfStackWasEmpty, len(stack) == 0)
			stack = append(stack, i)
		case tokens[i].TagIs("endblock"):
			if len(stack) == 0 {
				continue
			}
			openIdx := stack[len(stack)-1]
			wasTop := topOfStackWasEmpty[len(topOfStackWasEmpty)-1]
			stack = stack[:len(stack)-1]
			topOfStackWasEmpty = topOfStackWasEmpty[:len(topOfStackWasEmpty)-1]
			if wasTop {
				pairs = append(pairs, blockPair{Open: openIdx, Close: i})
			}
		}
	}
	return pairs
}

// extendsIndex reports whether the first non-blank, non-comment token in the
// stream is an extends tag, per spec §4.3. Returns the token's index, or -1
// if the template does not use extends.
func extendsIndex(tokens []Token) int {
	for i, t := range tokens {
		if t.Kind == KindNewline {
			continue
		}
		if t.Kind == KindText && t.IsBlank() {
			continue
		}
		if t.Kind == KindComment {
			continue
		}
		if t.TagIs("extends") {
			return i
		}
		return -1
	}
	return -1
}

// unindentExtends implements the extends unindent policy of spec §4.3. It
// must only be called when extendsIndex(tokens) >= 0.
func unindentExtends(tokens []Token, nl string) []Token {
	eIdx := extendsIndex(tokens)
	if eIdx < 0 {
		return tokens
	}
	pairs := topLevelBlockPairs(tokens)

	n := len(tokens)
	drop := make([]bool, n)
	insertBefore := make(map[int][]Token)

	dedentBefore := func(idx int) {
		if idx > 0 && tokens[idx-1].Kind == KindText && tokens[idx-1].IsBlank() {
			drop[idx-1] = true
		}
	}

	dedentBefore(eIdx)
	for _, p := range pairs {
		dedentBefore(p.Open)
		dedentBefore(p.Close)
	}

	for k := 0; k+1 < len(pairs); k++ {
		start := pairs[k].Close + 1
		end := pairs[k+1].Open - 1
		for idx := start; idx <= end && idx < n; idx++ {
			drop[idx] = true
		}
		insertBefore[start] = []Token{
			{Kind: KindNewline, Raw: []byte(nl)},
			{Kind: KindNewline, Raw: []byte(nl)},
		}
	}

	out := make([]Token, 0, n)
	for i := 0; i < n; i++ {
		if ins, ok := insertBefore[i]; ok {
			out = append(out, ins...)
		}
		if drop[i] {
			continue
		}
		out = append(out, tokens[i])
	}
	if ins, ok := insertBefore[n]; ok {
		out = append(out, ins...)
	}
	return out
}
