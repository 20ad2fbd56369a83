package docblock

import (
	"fmt"
	"regexp"
	"strings"
)

// Span is a byte range into a source file, delimiters included.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Block is a located documentation comment.
type Block struct {
	Span
	// Raw is the text between the opening and closing delimiters.
	Raw string
}

// CommentPatterns match the documentation block of each dialect.
// The first capture group is the text between the delimiters.
var CommentPatterns = map[Dialect]*regexp.Regexp{
	DialectDocstring: regexp.MustCompile(`(?s)"""(.*?)"""`),
	DialectJSDoc:     regexp.MustCompile(`(?s)/\*\*(.*?)\*/`),
}

// Locator finds the documentation block of a source file.
type Locator interface {
	Locate(content, ext string, d Dialect) (Block, error)
}

// PatternLocator returns the first match of the dialect's comment pattern.
// A delimiter written inside the documentation ends the block early.
type PatternLocator struct {
	patterns map[Dialect]*regexp.Regexp
}

// NewPatternLocator creates a locator backed by CommentPatterns.
func NewPatternLocator() *PatternLocator {
	return &PatternLocator{patterns: CommentPatterns}
}

func (l *PatternLocator) Locate(content, ext string, d Dialect) (Block, error) {
	re, ok := l.patterns[d]
	if !ok {
		return Block{}, fmt.Errorf("locate %q: %w", ext, ErrUnsupportedLanguage)
	}
	m := re.FindStringSubmatchIndex(content)
	if m == nil {
		return Block{}, fmt.Errorf("locate %s block: %w", d, ErrNoCommentBlock)
	}
	return Block{
		Span: Span{Start: m[0], End: m[1]},
		Raw:  content[m[2]:m[3]],
	}, nil
}

// InnerText returns the markdown carried by a block, with the dialect's
// comment decoration removed.
func InnerText(b Block, d Dialect) string {
	if d == DialectJSDoc {
		return unwrapJSDoc(b.Raw)
	}
	return b.Raw
}

// unwrapJSDoc reverses formatJSDoc: the blank lines next to the delimiters
// are dropped and each line loses its leading "*" decoration.
func unwrapJSDoc(raw string) string {
	if !strings.Contains(raw, "\n") {
		return strings.TrimSpace(raw)
	}
	lines := strings.Split(raw, "\n")
	if strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == "" {
		lines = lines[:n-1]
	}
	for i, line := range lines {
		lines[i] = stripStar(line)
	}
	return strings.Join(lines, "\n")
}

func stripStar(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "*") {
		return line
	}
	return strings.TrimPrefix(trimmed[1:], " ")
}
