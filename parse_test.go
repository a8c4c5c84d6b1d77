package djade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVariable(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		body        string
		wantBase    string
		wantFilters []Filter
	}{
		"no filters": {
			body:     " egg ",
			wantBase: "egg",
		},
		"single filter, no arg": {
			body:        "egg|crack",
			wantBase:    "egg",
			wantFilters: []Filter{{Name: "crack"}},
		},
		"filter with arg": {
			body:        "value|default:0",
			wantBase:    "value",
			wantFilters: []Filter{{Name: "default", HasArg: true, Arg: "0"}},
		},
		"quoted pipe and colon stay opaque": {
			body:        `value|default:"a|b:c"`,
			wantBase:    "value",
			wantFilters: []Filter{{Name: "default", HasArg: true, Arg: `"a|b:c"`}},
		},
		"chain of filters": {
			body:     "xs|join:', '|upper",
			wantBase: "xs",
			wantFilters: []Filter{
				{Name: "join", HasArg: true, Arg: "', '"},
				{Name: "upper"},
			},
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tok := parseVariable(tc.body)
			assert.Equal(t, KindVariable, tok.Kind)
			assert.Equal(t, tc.wantBase, tok.Base)
			assert.Equal(t, tc.wantFilters, tok.Filters)
		})
	}
}

func TestParseTag(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		body     string
		wantName string
		wantArgs []string
	}{
		"no args": {
			body:     "endblock",
			wantName: "endblock",
		},
		"collapsed whitespace": {
			body:     "  crack  egg  ",
			wantName: "crack",
			wantArgs: []string{"egg"},
		},
		"quoted string preserved as one lexeme": {
			body:     `extends 'base.html'`,
			wantName: "extends",
			wantArgs: []string{"'base.html'"},
		},
		"double-quoted string with embedded space": {
			body:     `block "my block"`,
			wantName: "block",
			wantArgs: []string{`"my block"`},
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tok := parseTag(tc.body)
			assert.Equal(t, KindTag, tok.Kind)
			assert.Equal(t, tc.wantName, tok.Name)
			assert.Equal(t, tc.wantArgs, tok.Args)
		})
	}
}

func TestTokenRender(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		tok  Token
		want string
	}{
		"variable, no filters": {
			tok:  Token{Kind: KindVariable, Base: "egg"},
			want: "{{ egg }}",
		},
		"variable with filter chain": {
			tok: Token{Kind: KindVariable, Base: "xs", Filters: []Filter{
				{Name: "length"},
			}},
			want: "{{ xs|length }}",
		},
		"tag, no args": {
			tok:  Token{Kind: KindTag, Name: "endblock"},
			want: "{% endblock %}",
		},
		"tag with args": {
			tok:  Token{Kind: KindTag, Name: "if", Args: []string{"a", "==", "b"}},
			want: "{% if a == b %}",
		},
		"comment": {
			tok:  Token{Kind: KindComment, Content: "note"},
			want: "{# note #}",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, string(tc.tok.Render()))
		})
	}
}
