package djade_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmpl-tools/djade"
)

func TestFormat_Scenarios(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input  string
		target *djade.Version
		want   string
	}{
		"whitespace in variable and tag, no target": {
			input: "{{egg}}\n{%  crack egg  %}\n",
			want:  "{{ egg }}\n{% crack egg %}\n",
		},
		"filter spacing, no fixer": {
			input: "{{ egg | crack }}\n",
			want:  "{{ egg|crack }}\n",
		},
		"load merge and sort, no target": {
			input: "{% load omelette %}\n\n{% load frittata %}\n",
			want:  "{% load frittata omelette %}\n",
		},
		"extends unindent with blank-line normalization": {
			input: "  {% extends 'egg.html' %}\n  {% block yolk %}\n  ...\n  {% endblock %}\n{% block white %}\n{% endblock %}\n",
			want:  "{% extends 'egg.html' %}\n{% block yolk %}\n  ...\n{% endblock yolk %}\n\n{% block white %}\n{% endblock white %}\n",
		},
		"ifequal fixer at target 3.1": {
			input:  "{% ifequal a b %}x{% endifequal %}\n",
			target: &djade.Version{Major: 3, Minor: 1},
			want:   "{% if a == b %}x{% endif %}\n",
		},
		"length_is fixer at target 4.2, bare comparison": {
			input:  "{% if xs|length_is:1 %}\n",
			target: &djade.Version{Major: 4, Minor: 2},
			want:   "{% if xs|length == 1 %}\n",
		},
		"length_is fixer at target 4.2, multi-argument form unchanged": {
			input:  "{% if xs|length_is:1 and y %}\n",
			target: &djade.Version{Major: 4, Minor: 2},
			want:   "{% if xs|length_is:1 and y %}\n",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, changed, err := djade.Format([]byte(tc.input), tc.target)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(out))
			assert.Equal(t, tc.input != tc.want, changed)
		})
	}
}

func TestFormat_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"{{egg}}\n{%  crack egg  %}\n",
		"{{ egg | crack }}\n",
		"{% load omelette %}\n\n{% load frittata %}\n",
		"  {% extends 'egg.html' %}\n  {% block yolk %}\n  ...\n  {% endblock %}\n{% block white %}\n{% endblock %}\n",
		"{% if a == b %}x{% endif %}\n",
		"{% if xs|length == 1 %}\n",
	}

	for _, in := range inputs {
		first, _, err := djade.Format([]byte(in), nil)
		require.NoError(t, err)
		second, changed, err := djade.Format(first, nil)
		require.NoError(t, err)
		assert.False(t, changed, "re-formatting %q should be a no-op", first)
		assert.Equal(t, string(first), string(second))
	}
}

func TestFormat_ScenariosIdempotentAfterFixer(t *testing.T) {
	t.Parallel()

	target := &djade.Version{Major: 4, Minor: 2}
	input := "{% if xs|length_is:1 %}\n"

	once, changed, err := djade.Format([]byte(input), target)
	require.NoError(t, err)
	assert.True(t, changed)

	twice, changedAgain, err := djade.Format(once, target)
	require.NoError(t, err)
	assert.False(t, changedAgain)
	assert.Equal(t, string(once), string(twice))
}

func TestFormat_CRLFPreserved(t *testing.T) {
	t.Parallel()

	input := "{{egg}}\r\n{%  crack egg  %}\r\n"
	out, changed, err := djade.Format([]byte(input), nil)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "{{ egg }}\r\n{% crack egg %}\r\n", string(out))
	assert.False(t, strings.Contains(string(out), "\r\n\r"), "no blank CRLF lines should appear in the output")
	assert.Equal(t, strings.Count(string(out), "\n"), strings.Count(string(out), "\r\n"))
}

func TestFormat_LFOnlyPreserved(t *testing.T) {
	t.Parallel()

	input := "{% load b a %}\n"
	out, _, err := djade.Format([]byte(input), nil)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "\r")
}

func TestFormat_UnchangedFileReportsNoChange(t *testing.T) {
	t.Parallel()

	input := "{{ egg }}\n"
	out, changed, err := djade.Format([]byte(input), nil)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, input, string(out))
}

func TestFormat_ParseErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"unterminated variable": "{{ egg\n",
		"unterminated tag":      "{% crack egg\n",
		"unterminated comment":  "{# a comment\n",
	}

	for name, input := range tests {
		input := input
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, changed, err := djade.Format([]byte(input), nil)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.False(t, changed)

			var perr *djade.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, 0, perr.Offset)
		})
	}
}

func TestFormat_FixerGating(t *testing.T) {
	t.Parallel()

	input := "{% ifequal a b %}x{% endifequal %}\n"
	want := "{% if a == b %}x{% endif %}\n"

	below := &djade.Version{Major: 3, Minor: 0}
	out, _, err := djade.Format([]byte(input), below)
	require.NoError(t, err)
	assert.Equal(t, input, string(out), "fixer below its floor must not apply")

	at := &djade.Version{Major: 3, Minor: 1}
	out, _, err = djade.Format([]byte(input), at)
	require.NoError(t, err)
	assert.Equal(t, want, string(out), "fixer at its floor must apply")

	out, _, err = djade.Format([]byte(input), nil)
	require.NoError(t, err)
	assert.Equal(t, input, string(out), "no target disables every fixer")
}
