// Package textfmt normalizes free-text values before they are written into
// a test sheet, so that wrapped cells size their rows predictably.
package textfmt

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// DefaultWidth is the line width used for table cells.
const DefaultWidth = 50

// WrapLong breaks text at word boundaries so that no line is wider than
// maxWidth. Runs of whitespace, including existing line breaks, collapse to a
// single separator first, which makes the result stable under re-wrapping.
// Words wider than maxWidth are split into maxWidth-sized pieces.
func WrapLong(text string, maxWidth int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	if maxWidth < 1 {
		return strings.Join(words, " ")
	}

	pieces := make([]string, 0, len(words))
	for _, w := range words {
		pieces = append(pieces, splitWord(w, maxWidth)...)
	}

	ww := wordwrap.NewWriter(maxWidth)
	ww.Breakpoints = nil
	_, _ = ww.Write([]byte(strings.Join(pieces, " ")))
	_ = ww.Close()

	// wordwrap never breaks before a word as wide as the limit itself,
	// which only matters for a width of one.
	return wrap.String(ww.String(), maxWidth)
}

// splitWord cuts w into chunks no wider than width display columns.
func splitWord(w string, width int) []string {
	if runewidth.StringWidth(w) <= width {
		return []string{w}
	}
	var chunks []string
	var cur strings.Builder
	curWidth := 0
	for _, r := range w {
		rw := runewidth.RuneWidth(r)
		if curWidth+rw > width && cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curWidth = 0
		}
		cur.WriteRune(r)
		curWidth += rw
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}

var stepMarker = regexp.MustCompile(`(\s*)\d+\.`)

// WrapSteps puts every numbered step ("1.", "2.", "10.") on its own line.
// Whitespace before a marker becomes a single line break; a marker glued to
// the previous step ("app.2.Click") gets a break inserted. The first marker
// of the text gets no break. Markers inside words or numbers ("v1.2",
// "1.5", "1.2.3") are left alone.
func WrapSteps(text string) string {
	text = strings.TrimSpace(text)

	var b strings.Builder
	last := 0
	for _, m := range stepMarker.FindAllStringSubmatchIndex(text, -1) {
		if !isStepMarker(text, m[3], m[1]) {
			continue
		}
		b.WriteString(text[last:m[2]])
		b.WriteByte('\n')
		last = m[3]
	}
	b.WriteString(text[last:])
	return b.String()
}

// isStepMarker reports whether the digits at text[start:end] (dot included)
// begin a new step rather than continue a word or a number.
func isStepMarker(text string, start, end int) bool {
	if start == 0 {
		return false
	}
	if end < len(text) && isDigit(text[end]) {
		return false
	}
	prev, size := utf8.DecodeLastRuneInString(text[:start])
	if unicode.IsLetter(prev) || unicode.IsDigit(prev) {
		return false
	}
	// "1.2." continues a dotted number.
	if prev == '.' && start-size > 0 && isDigit(text[start-size-1]) {
		return false
	}
	return true
}

// LineCount returns the number of display lines in s (at least 1).
func LineCount(s string) int {
	return strings.Count(s, "\n") + 1
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
