package djade

import "strings"

// Kind identifies the semantic shape of a Token's payload.
type Kind int

const (
	KindText Kind = iota
	KindVariable
	KindTag
	KindComment
	KindNewline
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindVariable:
		return "Variable"
	case KindTag:
		return "Tag"
	case KindComment:
		return "Comment"
	case KindNewline:
		return "Newline"
	default:
		return "Unknown"
	}
}

// Filter is one segment of a Variable's filter chain: `|name` or
// `|name:arg`.
type Filter struct {
	Name   string
	HasArg bool
	Arg    string
}

// Token is the single shared unit every formatting pass operates on. Every
// byte of the original input is accounted for by exactly one token, and
// Render() on an unmodified stream reproduces the input byte-for-byte.
type Token struct {
	Kind Kind

	// Text, Newline.
	Raw []byte

	// Variable.
	Base    string
	Filters []Filter

	// Tag.
	Name string
	Args []string

	// Comment.
	Content string

	// Offset is the byte position of the token's opener in the original
	// source. Used only for diagnostics; it plays no role in rendering.
	Offset int
}

// Render serializes a token to its canonical byte form. For Variable, Tag,
// and Comment tokens this always produces the normalized spacing described
// in spec §4.2, regardless of how the token's fields were populated, which
// is what makes the content-normalization pass a structural no-op.
func (t Token) Render() []byte {
	switch t.Kind {
	case KindText, KindNewline:
		return t.Raw
	case KindVariable:
		var b strings.Builder
		b.WriteString("{{ ")
		b.WriteString(t.Base)
		for _, f := range t.Filters {
			b.WriteByte('|')
			b.WriteString(f.Name)
			if f.HasArg {
				b.WriteByte(':')
				b.WriteString(f.Arg)
			}
		}
		b.WriteString(" }}")
		return []byte(b.String())
	case KindTag:
		var b strings.Builder
		b.WriteString("{% ")
		b.WriteString(t.Name)
		for _, a := range t.Args {
			b.WriteByte(' ')
			b.WriteString(a)
		}
		b.WriteString(" %}")
		return []byte(b.String())
	case KindComment:
		var b strings.Builder
		b.WriteString("{# ")
		b.WriteString(t.Content)
		b.WriteString(" #}")
		return []byte(b.String())
	default:
		return nil
	}
}

// IsBlank reports whether a Text token consists solely of whitespace.
func (t Token) IsBlank() bool {
	if t.Kind != KindText {
		return false
	}
	for _, c := range t.Raw {
		switch c {
		case ' ', '\t', '\r', '\n', '\v', '\f':
		default:
			return false
		}
	}
	return true
}

// TagIs reports whether a Tag token's name matches name, case-sensitively,
// as spec §3 specifies ("identified by lowercase string match on the parsed
// tag name" — callers pass the lowercase form).
func (t Token) TagIs(name string) bool {
	return t.Kind == KindTag && t.Name == name
}
