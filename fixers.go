package djade

import (
	"regexp"
	"sort"
)

// genericStackPairs matches opener/closer tag tokens by stack discipline,
// regardless of nesting depth — used for the if*/endif* family, where a
// closer always matches whichever opener is most recently unmatched.
func genericStackPairs(tokens []Token, isOpener, isCloser func(name string) bool) []blockPair {
	var stack []int
	var pairs []blockPair
	for i := range tokens {
		if tokens[i].Kind != KindTag {
			continue
		}
		switch {
		case isCloser(tokens[i].Name):
			if len(stack) == 0 {
				continue
			}
			openIdx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			pairs = append(pairs, blockPair{Open: openIdx, Close: i})
		case isOpener(tokens[i].Name):
			stack = append(stack, i)
		}
	}
	return pairs
}

// staticfilesFixer renames the staticfiles/admin_static load libraries to
// static (fixer floor 2.1, spec §4.4).
func staticfilesFixer(tokens []Token) {
	for i := range tokens {
		if !tokens[i].TagIs("load") {
			continue
		}
		names, lib, isFrom := loadShape(tokens[i].Args)
		for j, n := range names {
			if n == "staticfiles" || n == "admin_static" {
				names[j] = "static"
			}
		}
		tokens[i].Args = rebuildLoadArgs(names, lib, isFrom)
	}
}

func rebuildLoadArgs(names []string, lib string, isFrom bool) []string {
	if isFrom {
		return append(append([]string{}, names...), "from", lib)
	}
	return names
}

var transTagRenames = map[string]string{
	"trans":         "translate",
	"blocktrans":    "blocktranslate",
	"endblocktrans": "endblocktranslate",
}

// transTranslateFixer renames the trans/blocktrans tag family to
// translate/blocktranslate, including the imported-names list of a
// `load ... from i18n` tag (fixer floor 3.1, spec §4.4).
func transTranslateFixer(tokens []Token) {
	for i := range tokens {
		if tokens[i].Kind != KindTag {
			continue
		}
		if renamed, ok := transTagRenames[tokens[i].Name]; ok {
			tokens[i].Name = renamed
			continue
		}
		if tokens[i].Name != "load" {
			continue
		}
		names, lib, isFrom := loadShape(tokens[i].Args)
		if !isFrom || lib != "i18n" {
			continue
		}
		for j, n := range names {
			switch n {
			case "trans":
				names[j] = "translate"
			case "blocktrans":
				names[j] = "blocktranslate"
			}
		}
		sort.Strings(names)
		tokens[i].Args = rebuildLoadArgs(names, lib, isFrom)
	}
}

func isIfFamilyOpener(name string) bool {
	return name == "if" || name == "ifequal" || name == "ifnotequal"
}

func isIfFamilyCloser(name string) bool {
	return name == "endif" || name == "endifequal" || name == "endifnotequal"
}

// ifequalFixer rewrites ifequal/ifnotequal to if with ==/!=, and their
// matching endifequal/endifnotequal to endif (fixer floor 3.1, spec §4.4).
func ifequalFixer(tokens []Token) {
	pairs := genericStackPairs(tokens, isIfFamilyOpener, isIfFamilyCloser)
	for _, p := range pairs {
		open := &tokens[p.Open]
		var op string
		switch open.Name {
		case "ifequal":
			op = "=="
		case "ifnotequal":
			op = "!="
		default:
			continue
		}
		if len(open.Args) < 2 {
			continue
		}
		a, b := open.Args[0], open.Args[1]
		open.Name = "if"
		open.Args = []string{a, op, b}
		tokens[p.Close].Name = "endif"
		tokens[p.Close].Args = nil
	}
}

// jsonScriptFixer drops an explicit empty-string argument from a
// json_script filter segment (fixer floor 4.1, spec §4.4).
func jsonScriptFixer(tokens []Token) {
	for i := range tokens {
		if tokens[i].Kind != KindVariable {
			continue
		}
		for j := range tokens[i].Filters {
			f := &tokens[i].Filters[j]
			if f.Name == "json_script" && f.HasArg && (f.Arg == `""` || f.Arg == `''`) {
				f.HasArg = false
				f.Arg = ""
			}
		}
	}
}

var lengthIsShape = regexp.MustCompile(`^(.+)\|length_is:(.+)$`)

// lengthIsFixer rewrites a bare `expr|length_is:rhs` if-condition to
// `expr|length == rhs` (fixer floor 4.2, spec §4.4). It does not apply when
// the if tag carries any additional argument (and/or/not/another
// condition), which also conservatively covers a leading `not` per spec's
// own open question.
func lengthIsFixer(tokens []Token) {
	for i := range tokens {
		if !tokens[i].TagIs("if") || len(tokens[i].Args) != 1 {
			continue
		}
		m := lengthIsShape.FindStringSubmatch(tokens[i].Args[0])
		if m == nil {
			continue
		}
		expr, rhs := m[1], m[2]
		tokens[i].Args = []string{expr + "|length", "==", rhs}
	}
}
