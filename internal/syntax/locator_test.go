package syntax

import (
	"testing"

	"soldocs/internal/docblock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocator_PythonModuleDocstring(t *testing.T) {
	code := "from typing import List\n\n\"\"\"\n### INTUITION:\nfoo\n\"\"\"\n\nclass Solution:\n    def f(self):\n        \"\"\"helper\"\"\"\n"
	b, err := NewLocator(nil).Locate(code, ".py", docblock.DialectDocstring)
	require.NoError(t, err)
	assert.Equal(t, "\n### INTUITION:\nfoo\n", b.Raw)
	assert.Equal(t, "\"\"\"\n### INTUITION:\nfoo\n\"\"\"", code[b.Start:b.End])
}

func TestLocator_EscapedDelimiter(t *testing.T) {
	code := "\"\"\"\n### EXAMPLE WALKTHROUGH:\ns = \\\"\"\"quoted\\\"\"\"\n\"\"\"\nx = 1\n"

	b, err := NewLocator(nil).Locate(code, ".py", docblock.DialectDocstring)
	require.NoError(t, err)
	assert.Equal(t, "\n### EXAMPLE WALKTHROUGH:\ns = \\\"\"\"quoted\\\"\"\"\n", b.Raw)

	naive, err := docblock.NewPatternLocator().Locate(code, ".py", docblock.DialectDocstring)
	require.NoError(t, err)
	assert.NotEqual(t, b.Raw, naive.Raw)
}

func TestLocator_PrefersDocumentedBlock(t *testing.T) {
	code := "/** @file helpers */\n/**\n * ### INTUITION:\n * foo\n */\nfunction f() {}\n"
	b, err := NewLocator(nil).Locate(code, ".js", docblock.DialectJSDoc)
	require.NoError(t, err)
	assert.Equal(t, "### INTUITION:\nfoo", docblock.InnerText(b, docblock.DialectJSDoc))
}

func TestLocator_MultipleBlocks(t *testing.T) {
	code := "/**\n * ### INTUITION:\n * a\n */\nclass A {}\n/**\n * ### INTUITION:\n * b\n */\nclass B {}\n"
	_, err := NewLocator(nil).Locate(code, ".java", docblock.DialectJSDoc)
	assert.ErrorIs(t, err, docblock.ErrMultipleBlocks)
}

func TestLocator_IgnoresNestedBlocks(t *testing.T) {
	t.Run("java method doc", func(t *testing.T) {
		code := "/**\n * ### INTUITION:\n * a\n */\nclass A {\n    /**\n     * ### NOTES:\n     * helper\n     */\n    void f() {}\n}\n"
		b, err := NewLocator(nil).Locate(code, ".java", docblock.DialectJSDoc)
		require.NoError(t, err)
		assert.Equal(t, 0, b.Start)
		assert.Equal(t, "### INTUITION:\na", docblock.InnerText(b, docblock.DialectJSDoc))
	})

	t.Run("python method docstring", func(t *testing.T) {
		code := "\"\"\"### INTUITION:\na\n\"\"\"\n\nclass Solution:\n    def f(self):\n        \"\"\"### NOTES:\n        helper\n        \"\"\"\n"
		b, err := NewLocator(nil).Locate(code, ".py", docblock.DialectDocstring)
		require.NoError(t, err)
		assert.Equal(t, 0, b.Start)
		assert.Equal(t, "### INTUITION:\na\n", b.Raw)
	})
}

func TestLocator_NoBlock(t *testing.T) {
	_, err := NewLocator(nil).Locate("// line comment\nint main() { return 0; }\n", ".cpp", docblock.DialectJSDoc)
	assert.ErrorIs(t, err, docblock.ErrNoCommentBlock)
}

func TestLocator_FallsBackWithoutGrammar(t *testing.T) {
	code := "/**\n * ### INTUITION:\n * foo\n */\nfun main() {}\n"
	assert.False(t, Supports(".kt"))

	b, err := NewLocator(nil).Locate(code, ".kt", docblock.DialectJSDoc)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Start)
}

func TestLocator_WithEngine(t *testing.T) {
	cfg := docblock.DefaultConfig()
	cfg.Locator = NewLocator(nil)
	e := docblock.NewEngine(cfg)

	code := "package main\n\n/**\n * ### INTUITION:\n * foo\n */\nfunc main() {}\n"
	out, err := e.InjectSection(code, "APPROACH", "bar", ".go")
	require.NoError(t, err)
	assert.Equal(t, "package main\n\n/**\n * ### INTUITION:\n * foo\n *\n * ### APPROACH:\n * bar\n */\nfunc main() {}\n", out)
}
