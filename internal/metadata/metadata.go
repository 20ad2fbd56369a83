package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"soldocs/internal/docblock"
)

// SectionName is the section written by this package.
const SectionName = "METADATA"

var languageNames = map[string]string{
	".py":    "Python",
	".js":    "JavaScript",
	".jsx":   "JavaScript",
	".ts":    "TypeScript",
	".tsx":   "TypeScript",
	".java":  "Java",
	".c":     "C",
	".h":     "C",
	".cpp":   "C++",
	".cc":    "C++",
	".hpp":   "C++",
	".cs":    "C#",
	".go":    "Go",
	".kt":    "Kotlin",
	".swift": "Swift",
	".rs":    "Rust",
	".scala": "Scala",
	".php":   "PHP",
	".dart":  "Dart",
}

// Build returns the METADATA body for the solution at path.
func Build(path string) string {
	ext := docblock.NormalizeExt(filepath.Ext(path))
	lang, ok := languageNames[ext]
	if !ok {
		lang = strings.TrimPrefix(ext, ".")
	}

	category := "Uncategorized"
	if dir := filepath.Base(filepath.Dir(path)); dir != "." && dir != string(filepath.Separator) {
		category = Title(dir)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**Problem**: %s\n", Title(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))))
	fmt.Fprintf(&sb, "**Category**: %s\n", category)
	fmt.Fprintf(&sb, "**Language**: %s", lang)
	return sb.String()
}

// Title turns identifiers such as "two_sum", "two-sum" or "TwoSum" into "Two Sum".
func Title(name string) string {
	var words []string
	var cur []rune
	runes := []rune(name)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == '.' || unicode.IsSpace(r):
			flush()
			continue
		case unicode.IsUpper(r) && i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])):
			flush()
		}
		cur = append(cur, r)
	}
	flush()

	for i, w := range words {
		rs := []rune(w)
		rs[0] = unicode.ToUpper(rs[0])
		words[i] = string(rs)
	}
	return strings.Join(words, " ")
}

type Status string

const (
	StatusAdded   Status = "added"
	StatusUpdated Status = "updated"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

type Result struct {
	Path    string
	Status  Status
	Message string
}

// Apply writes the METADATA section of the file at path. An existing section
// is only rewritten when overwrite is set.
func Apply(e *docblock.Engine, path string, overwrite bool) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Path: path, Status: StatusFailed, Message: err.Error()}
	}
	doc, err := e.Parse(string(data), filepath.Ext(path))
	if err != nil {
		return Result{Path: path, Status: StatusFailed, Message: err.Error()}
	}

	status := StatusAdded
	if _, exists := doc.Section(SectionName); exists {
		if !overwrite {
			return Result{Path: path, Status: StatusSkipped, Message: "METADATA already present"}
		}
		status = StatusUpdated
	}

	ok, msg := e.UpdateFileSection(path, SectionName, Build(path))
	if !ok {
		return Result{Path: path, Status: StatusFailed, Message: msg}
	}
	return Result{Path: path, Status: status, Message: msg}
}
