package tsgen

import (
	"strings"
	"testing"

	"github.com/abdulachik/novelcards/internal/wordlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unescapeTemplate applies the template literal escape rules for the
// sequences EscapeTemplateLiteral produces.
func unescapeTemplate(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// hasBareSyntax reports a backtick or "${" that is not behind a backslash.
func hasBareSyntax(s string) bool {
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\':
			i++
		case s[i] == '`':
			return true
		case s[i] == '$' && i+1 < len(s) && s[i+1] == '{':
			return true
		}
	}
	return false
}

func TestEscapeTemplateLiteral(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain text", "plain text"},
		{"a `tick`", "a \\`tick\\`"},
		{`back\slash`, `back\\slash`},
		{"cost ${price}", "cost \\${price}"},
		{"$ alone and {braces}", "$ alone and {braces}"},
		{"\\`", "\\\\\\`"},
		{"\\${x}", "\\\\\\${x}"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeTemplateLiteral(tt.input))
		})
	}
}

func TestEscapeTemplateLiteral_RoundTrip(t *testing.T) {
	inputs := []string{
		"Reader, I married him.",
		"`quoted` and \\escaped\\ and ${interpolated}",
		"trailing backslash \\",
		"\\${not a template}",
		"line one\nline two\n\n“smart quotes” — em dash",
		"$${{``\\\\",
	}

	for _, input := range inputs {
		escaped := EscapeTemplateLiteral(input)
		assert.Equal(t, input, unescapeTemplate(escaped))
		assert.False(t, hasBareSyntax(escaped), "unescaped backtick or interpolation in %q", escaped)
	}
}

func TestEscapeSingleQuoted(t *testing.T) {
	assert.Equal(t, `o\'clock`, EscapeSingleQuoted("o'clock"))
	assert.Equal(t, "[əˈbændən]", EscapeSingleQuoted("[əˈbændən]"))
	assert.Equal(t, `\'a\' \'b\'`, EscapeSingleQuoted("'a' 'b'"))
}

func TestChaptersModule(t *testing.T) {
	t.Run("two chapters", func(t *testing.T) {
		out := ChaptersModule("janeEyreChapters", []string{"Text A", "Text `B`"})
		expected := "export const janeEyreChapters: string[] = [\n" +
			"  `Text A`,\n" +
			"  `Text \\`B\\``\n" +
			"];\n"
		assert.Equal(t, expected, string(out))
	})

	t.Run("multi-line chapter kept verbatim", func(t *testing.T) {
		out := ChaptersModule("chapters", []string{"Line 1\n\nLine 2"})
		assert.Equal(t, "export const chapters: string[] = [\n  `Line 1\n\nLine 2`\n];\n", string(out))
	})

	t.Run("no chapters", func(t *testing.T) {
		out := ChaptersModule("chapters", nil)
		assert.Equal(t, "export const chapters: string[] = [\n];\n", string(out))
	})
}

func TestVocabularyModule(t *testing.T) {
	abandon := wordlist.Entry{ID: "cet4-abandon", Word: "abandon", Pronunciation: "əˈbændən", Translation: "丢弃；放弃，抛弃"}
	ability := wordlist.Entry{ID: "cet4-ability", Word: "ability", Pronunciation: "əˈbɪlɪtɪ", Translation: "能力"}

	t.Run("empty second set", func(t *testing.T) {
		out := string(VocabularyModule([]wordlist.Set{
			{Key: "CET4", Entries: []wordlist.Entry{abandon, ability}},
			{Key: "CET6"},
		}))

		expected := strings.Join([]string{
			"",
			"import { Vocabulary, Word } from '../types';",
			"",
			"type VocabularyData = {",
			"  [key in Vocabulary]: Word[];",
			"};",
			"",
			"export const vocabularyData: VocabularyData = {",
			"  [Vocabulary.CET4]: [",
			"    { id: 'cet4-abandon', word: 'abandon', pronunciation: 'əˈbændən', translation: '丢弃；放弃，抛弃' },",
			"    { id: 'cet4-ability', word: 'ability', pronunciation: 'əˈbɪlɪtɪ', translation: '能力' }",
			"  ],",
			"  [Vocabulary.CET6]: [",
			"  ]",
			"};",
			"",
		}, "\n")
		assert.Equal(t, expected, out)
	})

	t.Run("last record of each list has no comma", func(t *testing.T) {
		cet6 := wordlist.Entry{ID: "cet6-abandon", Word: "abandon", Pronunciation: "əˈbændən", Translation: "抛弃"}
		out := string(VocabularyModule([]wordlist.Set{
			{Key: "CET4", Entries: []wordlist.Entry{abandon}},
			{Key: "CET6", Entries: []wordlist.Entry{cet6}},
		}))

		assert.Contains(t, out, "translation: '丢弃；放弃，抛弃' }\n  ],\n  [Vocabulary.CET6]: [\n")
		assert.Contains(t, out, "translation: '抛弃' }\n  ]\n};\n")
		assert.NotContains(t, out, "},\n  ]")
	})

	t.Run("escapes quotes in every field", func(t *testing.T) {
		out := string(VocabularyModule([]wordlist.Set{
			{Key: "CET4", Entries: []wordlist.Entry{{
				ID:            "cet4-o'clock",
				Word:          "o'clock",
				Pronunciation: "ə'klɒk",
				Translation:   "…点钟 ('time')",
			}}},
		}))

		require.Contains(t, out, `{ id: 'cet4-o\'clock', word: 'o\'clock', pronunciation: 'ə\'klɒk', translation: '…点钟 (\'time\')' }`)
		assert.True(t, strings.HasSuffix(out, "  ]\n};\n"))
	})
}
