package docblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternLocator_Docstring(t *testing.T) {
	code := "import sys\n\n\"\"\"\n### INTUITION:\nfoo\n\"\"\"\n\ndef f():\n    \"\"\"inner\"\"\"\n"
	b, err := NewPatternLocator().Locate(code, ".py", DialectDocstring)
	require.NoError(t, err)

	assert.Equal(t, "\n### INTUITION:\nfoo\n", b.Raw)
	assert.Equal(t, "\"\"\"\n### INTUITION:\nfoo\n\"\"\"", code[b.Start:b.End])
	assert.Equal(t, len(code[b.Start:b.End]), b.Len())
}

func TestPatternLocator_JSDoc(t *testing.T) {
	code := "// leading\n/**\n * ### INTUITION:\n * foo\n */\nfunction f() {}\n/** second */\n"
	b, err := NewPatternLocator().Locate(code, ".js", DialectJSDoc)
	require.NoError(t, err)

	assert.Equal(t, "/**\n * ### INTUITION:\n * foo\n */", code[b.Start:b.End])
	assert.Equal(t, "### INTUITION:\nfoo", InnerText(b, DialectJSDoc))
}

func TestPatternLocator_NotFound(t *testing.T) {
	_, err := NewPatternLocator().Locate("def f(): pass\n", ".py", DialectDocstring)
	assert.ErrorIs(t, err, ErrNoCommentBlock)

	_, err = NewPatternLocator().Locate("/* plain comment */", ".js", DialectJSDoc)
	assert.ErrorIs(t, err, ErrNoCommentBlock)

	_, err = NewPatternLocator().Locate("\"\"\"x\"\"\"", ".rb", DialectUnsupported)
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestInnerText_JSDocSingleLine(t *testing.T) {
	b := Block{Raw: " one liner "}
	assert.Equal(t, "one liner", InnerText(b, DialectJSDoc))
}

func TestInnerText_JSDocKeepsIndentation(t *testing.T) {
	b := Block{Raw: "\n * code:\n *     return x\n *\n * end\n "}
	assert.Equal(t, "code:\n    return x\n\nend", InnerText(b, DialectJSDoc))
}
