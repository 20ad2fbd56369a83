package analysis

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"soldocs/internal/docblock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsByName(r *CoverageReport) map[string]SectionStats {
	out := make(map[string]SectionStats)
	for _, s := range r.Sections {
		out[s.Name] = s
	}
	return out
}

func TestAnalyzeSources(t *testing.T) {
	sources := map[string]string{
		"a.py": "\"\"\"\n### INTUITION:\nidea\n\n### EXAMPLE WALKTHROUGH:\n```python\nprint(1)\n```\n\"\"\"\n",
		"b.py": "\"\"\"\n### intuition:\nmore ideas\n### Notes:\nextra\n\"\"\"\n",
		"c.py": "x = 1\n",
		"d.rb": "puts 1\n",
	}

	r := NewAnalyzer(docblock.NewEngine(docblock.DefaultConfig())).AnalyzeSources(sources)

	assert.Equal(t, 4, r.Files)
	assert.Equal(t, 2, r.Documented)
	assert.Equal(t, []string{"c.py", "d.rb"}, r.Undocumented)

	stats := statsByName(r)
	assert.Equal(t, 2, stats["INTUITION"].Present)
	assert.InDelta(t, 1.0, stats["INTUITION"].Coverage(r.Documented), 0.001)
	assert.Equal(t, 7, stats["INTUITION"].AvgChars())
	assert.Equal(t, 1, stats["EXAMPLE WALKTHROUGH"].WithCode)
	assert.Equal(t, 0, stats["APPROACH"].Present)
	assert.Equal(t, 1, stats["NOTES"].Present)

	require.Len(t, r.Sections, len(docblock.SectionOrder)+1)
	assert.Equal(t, "METADATA", r.Sections[0].Name)
	assert.Equal(t, "NOTES", r.Sections[len(r.Sections)-1].Name)
}

func TestAnalyzeFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bfs.js")
	require.NoError(t, os.WriteFile(path, []byte("/**\n * ### APPROACH:\n * queue\n */\n"), 0644))

	r := NewAnalyzer(docblock.NewEngine(docblock.DefaultConfig())).AnalyzeFiles([]string{path, filepath.Join(dir, "gone.js")})
	assert.Equal(t, 2, r.Files)
	assert.Equal(t, 1, r.Documented)
	assert.Len(t, r.Failed, 1)
	assert.Equal(t, 1, statsByName(r)["APPROACH"].Present)

	out := r.String()
	assert.True(t, strings.HasPrefix(out, "2 files, 1 documented, 0 undocumented, 1 unreadable\n"))
	assert.Contains(t, out, "APPROACH")
}

func TestHasCodeBlock(t *testing.T) {
	a := NewAnalyzer(docblock.NewEngine(docblock.DefaultConfig()))
	assert.True(t, a.hasCodeBlock("text\n\n```go\nx := 1\n```\n"))
	assert.True(t, a.hasCodeBlock("text\n\n    indented code\n"))
	assert.False(t, a.hasCodeBlock("just `inline` code and a list:\n- one\n- two\n"))
}
