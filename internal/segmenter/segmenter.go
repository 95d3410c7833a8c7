package segmenter

import (
	"errors"
	"log/slog"
	"regexp"
	"strings"
)

var (
	// ErrStructureNotFound means the first chapter heading is missing, so the
	// input does not look like the expected novel.
	ErrStructureNotFound = errors.New("could not find the start of the novel (CHAPTER I)")

	// ErrNoChaptersFound means the bounded body holds no chapter headings.
	ErrNoChaptersFound = errors.New("could not find any chapters in the text")
)

const (
	// StartToken is the heading of the first chapter.
	StartToken = "CHAPTER I"

	// EndMarker starts the Project Gutenberg licence trailer.
	EndMarker = "*** END OF THE PROJECT GUTENBERG EBOOK"
)

var (
	startLinePattern = regexp.MustCompile(`(?m)^CHAPTER I\s*$`)

	// CHAPTER followed by a Roman numeral, optionally "—LABEL" as in "CHAPTER XXXVIII—CONCLUSION"
	headingPattern = regexp.MustCompile(`(?m)^CHAPTER\s+([IVXLCDM]+(?:—[A-Z]+)?)\s*$`)

	// Heading line anchored at the span start; blank lines after it go with the trim
	headingPrefix = regexp.MustCompile(`\ACHAPTER\s+[IVXLCDM]+(?:—[A-Z]+)?[ \t]*(?:\n|\z)`)
)

// Chapter is one chapter body with its heading removed.
type Chapter struct {
	// Index is the 1-based position of the chapter in the output.
	Index int
	// Heading is the numeral label, e.g. "IV" or "XXXVIII—CONCLUSION".
	Heading string
	Text    string
}

// Result is the outcome of segmenting a novel.
type Result struct {
	Chapters []Chapter
	// HeadingsFound counts heading lines in the body, including those whose
	// chapter trimmed to empty and was dropped.
	HeadingsFound int
	// EndMarkerFound is false when the body ran to the end of the input.
	EndMarkerFound bool
}

// Texts returns the chapter bodies in document order.
func (r *Result) Texts() []string {
	texts := make([]string, len(r.Chapters))
	for i, ch := range r.Chapters {
		texts[i] = ch.Text
	}
	return texts
}

// Segment splits raw novel text into chapters.
func Segment(text string) (*Result, error) {
	body, endFound, err := Body(text)
	if err != nil {
		return nil, err
	}

	matches := headingPattern.FindAllStringSubmatchIndex(body, -1)
	if len(matches) == 0 {
		return nil, ErrNoChaptersFound
	}

	slog.Debug("found chapter headings", "count", len(matches))

	result := &Result{
		HeadingsFound:  len(matches),
		EndMarkerFound: endFound,
	}

	for i, m := range matches {
		end := len(body)
		if i < len(matches)-1 {
			end = matches[i+1][0]
		}

		chapterText := stripHeading(body[m[0]:end])
		if chapterText == "" {
			slog.Debug("dropping empty chapter", "heading", body[m[2]:m[3]])
			continue
		}

		result.Chapters = append(result.Chapters, Chapter{
			Index:   len(result.Chapters) + 1,
			Heading: body[m[2]:m[3]],
			Text:    chapterText,
		})
	}

	return result, nil
}

// Body returns the novel body between the first chapter heading and the
// Gutenberg end marker. When the end marker is missing the body runs to the
// end of text and endFound is false.
func Body(text string) (body string, endFound bool, err error) {
	var start int
	if loc := startLinePattern.FindStringIndex(text); loc != nil {
		start = loc[0]
	} else {
		slog.Warn("could not find heading line, trying substring search", "token", StartToken)
		start = strings.Index(text, StartToken)
	}
	if start < 0 {
		return "", false, ErrStructureNotFound
	}

	rest := text[start:]
	if idx := strings.Index(rest, EndMarker); idx != -1 {
		return rest[:idx], true, nil
	}

	slog.Warn("could not find end marker, using full content", "marker", EndMarker)
	return rest, false, nil
}

// stripHeading removes the leading heading line and trims the span.
func stripHeading(span string) string {
	if loc := headingPrefix.FindStringIndex(span); loc != nil {
		span = span[loc[1]:]
	}
	return strings.TrimSpace(span)
}
