package docblock

import (
	"fmt"
	"strings"
)

// Format wraps inner text in the comment syntax of the dialect.
func Format(inner string, d Dialect) (string, error) {
	switch d {
	case DialectDocstring:
		return `"""` + inner + `"""`, nil
	case DialectJSDoc:
		return formatJSDoc(inner), nil
	default:
		return "", fmt.Errorf("format %s: %w", d, ErrUnsupportedLanguage)
	}
}

// FormatDocument serializes doc and wraps it for the dialect.
func FormatDocument(doc Document, d Dialect) (string, error) {
	return Format(doc.Text(), d)
}

func formatJSDoc(inner string) string {
	var sb strings.Builder
	sb.WriteString("/**\n")
	for _, line := range strings.Split(inner, "\n") {
		if strings.TrimSpace(line) == "" {
			sb.WriteString(" *\n")
			continue
		}
		sb.WriteString(" * ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString(" */")
	return sb.String()
}
