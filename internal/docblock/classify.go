package docblock

import (
	"sort"
	"strings"
)

// Dialect is the comment syntax family used to embed documentation.
type Dialect int

const (
	DialectUnsupported Dialect = iota
	DialectDocstring
	DialectJSDoc
)

func (d Dialect) String() string {
	switch d {
	case DialectDocstring:
		return "docstring"
	case DialectJSDoc:
		return "jsdoc"
	default:
		return "unsupported"
	}
}

// Languages lists the file extensions handled by each dialect.
type Languages struct {
	Docstring []string `yaml:"docstring"`
	JSDoc     []string `yaml:"jsdoc"`
}

// DefaultLanguages returns the extension sets used by the solution catalog.
func DefaultLanguages() Languages {
	return Languages{
		Docstring: []string{".py"},
		JSDoc: []string{
			".js", ".ts", ".jsx", ".tsx", ".java", ".c", ".cpp", ".cc", ".h", ".hpp",
			".cs", ".go", ".kt", ".swift", ".rs", ".scala", ".php", ".dart",
		},
	}
}

// Classifier maps file extensions to dialects.
type Classifier struct {
	dialects map[string]Dialect
}

// NewClassifier builds a classifier from the given extension sets.
// An extension listed in both sets keeps the docstring dialect.
func NewClassifier(langs Languages) *Classifier {
	c := &Classifier{dialects: make(map[string]Dialect)}
	for _, ext := range langs.JSDoc {
		if ext = NormalizeExt(ext); ext != "" {
			c.dialects[ext] = DialectJSDoc
		}
	}
	for _, ext := range langs.Docstring {
		if ext = NormalizeExt(ext); ext != "" {
			c.dialects[ext] = DialectDocstring
		}
	}
	return c
}

// Classify returns the dialect for ext. Unknown extensions are DialectUnsupported.
func (c *Classifier) Classify(ext string) Dialect {
	return c.dialects[NormalizeExt(ext)]
}

// Extensions returns every supported extension in sorted order.
func (c *Classifier) Extensions() []string {
	exts := make([]string, 0, len(c.dialects))
	for ext := range c.dialects {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// NormalizeExt lowercases ext and makes sure it starts with a dot.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
