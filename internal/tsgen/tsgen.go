// Package tsgen renders parsed data as TypeScript source modules.
package tsgen

import (
	"fmt"
	"strings"

	"github.com/abdulachik/novelcards/internal/wordlist"
)

// EscapeTemplateLiteral escapes text for use between backticks.
// Backslashes go first so the escapes added for backticks and "${" are not
// doubled.
func EscapeTemplateLiteral(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, "`", "\\`")
	text = strings.ReplaceAll(text, "${", "\\${")
	return text
}

// EscapeSingleQuoted escapes the quote character for use between single quotes.
func EscapeSingleQuoted(text string) string {
	return strings.ReplaceAll(text, "'", `\'`)
}

// ChaptersModule renders an exported string[] constant with one template
// literal per chapter.
func ChaptersModule(exportName string, chapters []string) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "export const %s: string[] = [\n", exportName)
	for i, chapter := range chapters {
		b.WriteString("  `")
		b.WriteString(EscapeTemplateLiteral(chapter))
		b.WriteString("`")
		if i < len(chapters)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("];\n")

	return []byte(b.String())
}

// VocabularyModule renders an exported VocabularyData constant mapping each
// set key to its list of Word records, in the order given.
func VocabularyModule(sets []wordlist.Set) []byte {
	lines := []string{
		"",
		"import { Vocabulary, Word } from '../types';",
		"",
		"type VocabularyData = {",
		"  [key in Vocabulary]: Word[];",
		"};",
		"",
		"export const vocabularyData: VocabularyData = {",
	}

	for i, set := range sets {
		lines = append(lines, fmt.Sprintf("  [Vocabulary.%s]: [", set.Key))
		for j, entry := range set.Entries {
			line := formatEntry(entry)
			if j < len(set.Entries)-1 {
				line += ","
			}
			lines = append(lines, line)
		}
		if i < len(sets)-1 {
			lines = append(lines, "  ],")
		} else {
			lines = append(lines, "  ]")
		}
	}

	lines = append(lines, "};", "")
	return []byte(strings.Join(lines, "\n"))
}

func formatEntry(e wordlist.Entry) string {
	return fmt.Sprintf("    { id: '%s', word: '%s', pronunciation: '%s', translation: '%s' }",
		EscapeSingleQuoted(e.ID),
		EscapeSingleQuoted(e.Word),
		EscapeSingleQuoted(e.Pronunciation),
		EscapeSingleQuoted(e.Translation),
	)
}
