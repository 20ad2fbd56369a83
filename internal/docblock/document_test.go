package docblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `Two Sum

### INTUITION:
Use a hash map.

### APPROACH:
Walk once, look up the complement.

### TIME COMPLEXITY:
O(n)
`

func TestParse(t *testing.T) {
	doc := Parse(sampleDoc)

	assert.Equal(t, "Two Sum\n\n", doc.Preamble)
	assert.Equal(t, []string{"INTUITION", "APPROACH", "TIME COMPLEXITY"}, doc.Names())

	sec, ok := doc.Section("approach")
	require.True(t, ok)
	assert.Equal(t, "APPROACH", sec.Name)
	assert.Equal(t, "Walk once, look up the complement.\n\n", sec.Body)

	last, ok := doc.Section("Time Complexity")
	require.True(t, ok)
	assert.Equal(t, "O(n)\n", last.Body)
}

func TestParse_RoundTrip(t *testing.T) {
	inputs := []string{
		sampleDoc,
		"",
		"no headers at all\n",
		"\n### METADATA:\n**Difficulty**: Easy\n",
		"###  Spaced Name:  \nbody\n### LAST:",
		"### INTUITION:\r\nwindows\r\n### APPROACH:\r\nlines\r\n",
		"### EMPTY:\n### NEXT:\nx",
	}
	for _, in := range inputs {
		assert.Equal(t, in, Parse(in).Text())
	}
}

func TestParse_NoHeaders(t *testing.T) {
	doc := Parse("just a description\nacross lines\n")
	assert.Empty(t, doc.Sections)
	assert.Equal(t, "just a description\nacross lines\n", doc.Preamble)
}

func TestParse_HeaderRequiresColon(t *testing.T) {
	doc := Parse("### INTUITION\nnot a section\n### APPROACH:\nreal\n")
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "APPROACH", doc.Sections[0].Name)
	assert.Equal(t, "### INTUITION\nnot a section\n", doc.Preamble)
}

func TestDocument_IndexMissing(t *testing.T) {
	doc := Parse(sampleDoc)
	assert.Equal(t, -1, doc.Index("EDGE CASES"))
	_, ok := doc.Section("EDGE CASES")
	assert.False(t, ok)
}
