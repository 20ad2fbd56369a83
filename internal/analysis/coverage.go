package analysis

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"soldocs/internal/docblock"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// SectionStats aggregates one section name across the analyzed files.
type SectionStats struct {
	Name string
	// Present counts files that carry the section.
	Present int
	// WithCode counts files whose section body contains a code block.
	WithCode   int
	TotalChars int
}

// AvgChars returns the average trimmed body length of the section.
func (s SectionStats) AvgChars() int {
	if s.Present == 0 {
		return 0
	}
	return s.TotalChars / s.Present
}

// Coverage returns the share of documented files carrying the section.
func (s SectionStats) Coverage(documented int) float64 {
	if documented == 0 {
		return 0
	}
	return float64(s.Present) / float64(documented)
}

// CoverageReport summarizes documentation coverage of a set of solutions.
type CoverageReport struct {
	Files        int
	Documented   int
	Undocumented []string
	Failed       map[string]string
	Sections     []SectionStats
}

// Analyzer computes per-section documentation coverage.
type Analyzer struct {
	engine *docblock.Engine
	md     goldmark.Markdown
}

// NewAnalyzer creates a new analyzer.
func NewAnalyzer(e *docblock.Engine) *Analyzer {
	return &Analyzer{engine: e, md: goldmark.New()}
}

// AnalyzeFiles reads and analyzes every path.
func (a *Analyzer) AnalyzeFiles(paths []string) *CoverageReport {
	acc := newAccumulator(a.engine.SectionOrder())
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			acc.report.Files++
			acc.report.Failed[path] = err.Error()
			continue
		}
		a.add(acc, path, string(data))
	}
	return acc.finish()
}

// AnalyzeSources analyzes in-memory sources keyed by path.
func (a *Analyzer) AnalyzeSources(sources map[string]string) *CoverageReport {
	paths := make([]string, 0, len(sources))
	for p := range sources {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	acc := newAccumulator(a.engine.SectionOrder())
	for _, p := range paths {
		a.add(acc, p, sources[p])
	}
	return acc.finish()
}

func (a *Analyzer) add(acc *accumulator, path, code string) {
	acc.report.Files++
	doc, err := a.engine.Parse(code, filepath.Ext(path))
	if err != nil {
		acc.report.Undocumented = append(acc.report.Undocumented, path)
		return
	}
	acc.report.Documented++

	counted := make(map[string]bool)
	for _, sec := range doc.Sections {
		key := strings.ToUpper(sec.Name)
		if counted[key] {
			continue
		}
		counted[key] = true

		st := acc.stats(key)
		st.Present++
		st.TotalChars += len(strings.TrimSpace(sec.Body))
		if a.hasCodeBlock(sec.Body) {
			st.WithCode++
		}
	}
}

// hasCodeBlock reports whether markdown contains a fenced or indented code block.
func (a *Analyzer) hasCodeBlock(markdown string) bool {
	src := []byte(markdown)
	root := a.md.Parser().Parse(text.NewReader(src))

	found := false
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if n.Kind() == ast.KindFencedCodeBlock || n.Kind() == ast.KindCodeBlock {
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}

type accumulator struct {
	report    *CoverageReport
	byName    map[string]*SectionStats
	order     []string
	canonical int
}

func newAccumulator(order []string) *accumulator {
	acc := &accumulator{
		report: &CoverageReport{Failed: map[string]string{}},
		byName: make(map[string]*SectionStats),
	}
	for _, name := range order {
		acc.stats(strings.ToUpper(name))
	}
	acc.canonical = len(acc.order)
	return acc
}

func (acc *accumulator) stats(key string) *SectionStats {
	if st, ok := acc.byName[key]; ok {
		return st
	}
	st := &SectionStats{Name: key}
	acc.byName[key] = st
	acc.order = append(acc.order, key)
	return st
}

// finish lists canonical sections first, then other names alphabetically.
func (acc *accumulator) finish() *CoverageReport {
	extra := append([]string(nil), acc.order[acc.canonical:]...)
	sort.Strings(extra)
	names := append(acc.order[:acc.canonical:acc.canonical], extra...)

	acc.report.Sections = make([]SectionStats, 0, len(names))
	for _, name := range names {
		acc.report.Sections = append(acc.report.Sections, *acc.byName[name])
	}
	sort.Strings(acc.report.Undocumented)
	return acc.report
}

// String renders the report as a plain-text table.
func (r *CoverageReport) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d files, %d documented, %d undocumented, %d unreadable\n",
		r.Files, r.Documented, len(r.Undocumented), len(r.Failed))
	for _, s := range r.Sections {
		fmt.Fprintf(&sb, "  %-22s %5.1f%%  avg %4d chars  %d with code\n",
			s.Name, 100*s.Coverage(r.Documented), s.AvgChars(), s.WithCode)
	}
	return sb.String()
}
