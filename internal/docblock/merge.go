package docblock

import "strings"

// SectionOrder is the canonical order of solution documentation sections.
// It only decides where a missing section is inserted; present sections
// are never reordered.
var SectionOrder = []string{
	"METADATA",
	"INTUITION",
	"APPROACH",
	"WHY THIS WORKS",
	"EXAMPLE WALKTHROUGH",
	"TIME COMPLEXITY",
	"SPACE COMPLEXITY",
	"EDGE CASES",
}

// Merge returns a copy of doc with the section called name set to content.
//
// An existing section keeps its position and its trailing whitespace; only
// the content before that whitespace is replaced. A missing section is
// inserted before the first section that follows it in order, or appended
// when no such section is present or when name is not part of order.
// Every other section is left untouched and doc itself is not modified.
func Merge(doc Document, name, content string, order []string) Document {
	out := doc.clone()
	name = strings.TrimSpace(name)
	content = normalizeContent(content)

	if i := out.Index(name); i >= 0 {
		sec := out.Sections[i]
		// A header on the last line has no newline of its own.
		if sec.header != "" && content != "" && !strings.HasSuffix(sec.header, "\n") {
			sec.header += "\n"
		}
		sec.Body = content + trailingSpace(sec.Body)
		out.Sections[i] = sec
		return out
	}

	pos := insertPosition(out, name, order)
	prefix := Document{Preamble: out.Preamble, Sections: out.Sections[:pos]}.Text()
	sec := Section{Name: name, spacer: spacerAfter(prefix)}
	if pos == len(out.Sections) {
		sec.Body = content + trailingSpace(out.Text())
	} else {
		sec.Body = content + "\n\n"
	}

	out.Sections = append(out.Sections, Section{})
	copy(out.Sections[pos+1:], out.Sections[pos:])
	out.Sections[pos] = sec
	return out
}

// insertPosition picks the slot for a new section. It depends only on which
// names are present, never on section content.
func insertPosition(doc Document, name string, order []string) int {
	k := indexFold(order, name)
	if k < 0 {
		return len(doc.Sections)
	}
	for _, next := range order[k+1:] {
		if i := doc.Index(next); i >= 0 {
			return i
		}
	}
	return len(doc.Sections)
}

// spacerAfter returns the text needed after prefix so that an inserted header
// starts on its own line with one blank line above it.
func spacerAfter(prefix string) string {
	if strings.TrimSpace(prefix) == "" {
		return ""
	}
	spacer := ""
	if !strings.HasSuffix(prefix, "\n") {
		spacer = "\n"
	}
	if strings.Count(trailingSpace(prefix)+spacer, "\n") < 2 {
		spacer += "\n"
	}
	return spacer
}

func normalizeContent(content string) string {
	content = strings.TrimLeft(content, "\r\n")
	return strings.TrimRight(content, " \t\r\n")
}

func trailingSpace(s string) string {
	return s[len(strings.TrimRight(s, " \t\r\n")):]
}

func indexFold(list []string, name string) int {
	for i, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), name) {
			return i
		}
	}
	return -1
}
