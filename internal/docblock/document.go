package docblock

import (
	"regexp"
	"strings"
)

var headerPattern = regexp.MustCompile(`^###[ \t]+(.+?):[ \t]*\r?$`)

// Section is one "### NAME:" headed part of an embedded document.
type Section struct {
	Name string
	// Body is everything after the header line up to the next header.
	Body string

	header string // header line as found in the source, newline included
	spacer string // text written before the header of an inserted section
}

// Header returns the header line of the section, newline included.
func (s Section) Header() string {
	if s.header != "" {
		return s.header
	}
	return "### " + s.Name + ":\n"
}

// Document is the markdown carried by a documentation block.
type Document struct {
	// Preamble is the text before the first section header, kept verbatim.
	Preamble string
	Sections []Section
}

// Parse splits inner text into a preamble and sections. It never fails:
// text without headers yields a document with only a preamble.
func Parse(inner string) Document {
	var doc Document
	var cur *Section
	var buf strings.Builder

	flush := func() {
		if cur == nil {
			doc.Preamble = buf.String()
		} else {
			cur.Body = buf.String()
			doc.Sections = append(doc.Sections, *cur)
		}
		buf.Reset()
	}

	for _, line := range strings.SplitAfter(inner, "\n") {
		if m := headerPattern.FindStringSubmatch(strings.TrimSuffix(line, "\n")); m != nil {
			flush()
			cur = &Section{Name: strings.TrimSpace(m[1]), header: line}
			continue
		}
		buf.WriteString(line)
	}
	flush()

	return doc
}

// Text serializes the document back to inner text. For a parsed document
// the result is byte-identical to the parser input.
func (d Document) Text() string {
	var sb strings.Builder
	sb.WriteString(d.Preamble)
	for _, s := range d.Sections {
		sb.WriteString(s.spacer)
		sb.WriteString(s.Header())
		sb.WriteString(s.Body)
	}
	return sb.String()
}

// Index returns the position of the section called name, ignoring case, or -1.
func (d Document) Index(name string) int {
	name = strings.TrimSpace(name)
	for i, s := range d.Sections {
		if strings.EqualFold(s.Name, name) {
			return i
		}
	}
	return -1
}

// Section looks up a section by name, ignoring case.
func (d Document) Section(name string) (Section, bool) {
	if i := d.Index(name); i >= 0 {
		return d.Sections[i], true
	}
	return Section{}, false
}

// Names returns the section names in document order.
func (d Document) Names() []string {
	names := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		names[i] = s.Name
	}
	return names
}

func (d Document) clone() Document {
	return Document{
		Preamble: d.Preamble,
		Sections: append([]Section(nil), d.Sections...),
	}
}
