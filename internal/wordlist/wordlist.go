package wordlist

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Entry is one parsed word-list line.
type Entry struct {
	ID            string
	Word          string
	Pronunciation string
	Translation   string
}

// Set is a named, ordered vocabulary list.
type Set struct {
	// Key is the category key used in generated output, e.g. "CET4".
	Key     string
	Entries []Entry
}

// LineParser turns one raw line into an Entry. It reports false for
// blank, header, footer and malformed lines.
type LineParser func(line string) (Entry, bool)

// minLineLength is the shortest line, in characters, that can hold an entry.
const minLineLength = 3

// space matches any Unicode white space, including U+3000 and no-break spaces.
const space = `[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`

// word [pronunciation] rest
var linePattern = regexp.MustCompile(`^([a-zA-Z'\-]+)` + space + `+\[([^\]]+)\]` + space + `+(.+)$`)

// Dialect describes one word-list format.
type Dialect struct {
	// Tag prefixes entry IDs, e.g. "cet4" gives "cet4-abandon".
	Tag string
	// SkipPrefixes marks title and footer lines of the source list.
	SkipPrefixes []string
	// Clean turns the text after the pronunciation into a translation.
	Clean func(rest string) string
}

var (
	cet4PartOfSpeech = regexp.MustCompile(`(?i)^[a-z.]+\.` + space + `*`)
	cet6PartOfSpeech = regexp.MustCompile(`(?i)^[a-z.]+` + space + `+`)
	cet6Enumeration  = regexp.MustCompile(space + `*\p{Nd}+\.` + space + `*`)
)

// CET4 parses lines like "abandon [əˈbændən] vt.丢弃；放弃，抛弃".
var CET4 = Dialect{
	Tag:          "cet4",
	SkipPrefixes: []string{"大学英语", "(共"},
	Clean: func(rest string) string {
		return cet4PartOfSpeech.ReplaceAllString(rest, "")
	},
}

// CET6 parses lines like "abandon [əˈbændən] v. 1. 抛弃，放弃 2. 离弃".
var CET6 = Dialect{
	Tag: "cet6",
	Clean: func(rest string) string {
		rest = cet6PartOfSpeech.ReplaceAllString(rest, "")
		rest = cet6Enumeration.ReplaceAllString(rest, " ")
		return strings.TrimSpace(rest)
	},
}

// Parse parses a single line in this dialect.
func (d Dialect) Parse(line string) (Entry, bool) {
	line = strings.TrimSpace(line)
	if line == "" || utf8.RuneCountInString(line) < minLineLength {
		return Entry{}, false
	}
	for _, prefix := range d.SkipPrefixes {
		if strings.HasPrefix(line, prefix) {
			return Entry{}, false
		}
	}

	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}

	word := strings.TrimSpace(m[1])
	return Entry{
		ID:            d.Tag + "-" + word,
		Word:          word,
		Pronunciation: strings.TrimSpace(m[2]),
		Translation:   d.Clean(strings.TrimSpace(m[3])),
	}, true
}

// ParseLines applies parse to every line of text in order and keeps the
// entries it accepts.
func ParseLines(text string, parse LineParser) []Entry {
	var entries []Entry
	for _, line := range strings.Split(text, "\n") {
		if entry, ok := parse(line); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}
