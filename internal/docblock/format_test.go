package docblock

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_Docstring(t *testing.T) {
	out, err := Format("\n### INTUITION:\nfoo\n", DialectDocstring)
	require.NoError(t, err)
	assert.Equal(t, "\"\"\"\n### INTUITION:\nfoo\n\"\"\"", out)
}

func TestFormat_JSDoc(t *testing.T) {
	out, err := Format("### INTUITION:\nfoo\n\nbar", DialectJSDoc)
	require.NoError(t, err)
	assert.Equal(t, "/**\n * ### INTUITION:\n * foo\n *\n * bar\n */", out)

	for _, line := range strings.Split(out, "\n")[1:] {
		if line == " *" || line == " */" {
			continue
		}
		assert.True(t, strings.HasPrefix(line, " * "), "line %q", line)
	}
}

func TestFormat_Unsupported(t *testing.T) {
	_, err := Format("anything", DialectUnsupported)
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestFormat_JSDocRoundTrip(t *testing.T) {
	inputs := []string{
		"### INTUITION:\nfoo\n\nbar",
		"### INTUITION:\n  indented code\n",
		"",
		"Intro\n\n### APPROACH:\n1. first\n2. second",
	}
	for _, in := range inputs {
		out, err := Format(in, DialectJSDoc)
		require.NoError(t, err)

		b, err := NewPatternLocator().Locate(out, ".js", DialectJSDoc)
		require.NoError(t, err)
		assert.Equal(t, in, InnerText(b, DialectJSDoc))
	}
}

func TestFormatDocument_RoundTrip(t *testing.T) {
	doc := Parse(sampleDoc)
	out, err := FormatDocument(doc, DialectDocstring)
	require.NoError(t, err)
	assert.Equal(t, `"""`+sampleDoc+`"""`, out)
}
