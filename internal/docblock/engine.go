package docblock

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config is the immutable configuration of an Engine.
type Config struct {
	Languages    Languages
	SectionOrder []string
	// Locator finds documentation blocks; nil selects a PatternLocator.
	Locator Locator
}

// DefaultConfig returns the catalog defaults.
func DefaultConfig() Config {
	return Config{
		Languages:    DefaultLanguages(),
		SectionOrder: append([]string(nil), SectionOrder...),
	}
}

// Engine reads and rewrites the documentation block of solution files.
// It keeps no state between calls and is safe for concurrent use.
type Engine struct {
	classifier *Classifier
	order      []string
	locator    Locator
}

// NewEngine creates an engine from cfg.
func NewEngine(cfg Config) *Engine {
	order := cfg.SectionOrder
	if len(order) == 0 {
		order = SectionOrder
	}
	locator := cfg.Locator
	if locator == nil {
		locator = NewPatternLocator()
	}
	return &Engine{
		classifier: NewClassifier(cfg.Languages),
		order:      append([]string(nil), order...),
		locator:    locator,
	}
}

// Classify returns the dialect for a file extension.
func (e *Engine) Classify(ext string) Dialect {
	return e.classifier.Classify(ext)
}

// Extensions returns every extension the engine handles.
func (e *Engine) Extensions() []string {
	return e.classifier.Extensions()
}

// SectionOrder returns a copy of the engine's canonical section order.
func (e *Engine) SectionOrder() []string {
	return append([]string(nil), e.order...)
}

// Locate classifies ext and finds the documentation block of code.
func (e *Engine) Locate(code, ext string) (Block, Dialect, error) {
	d := e.classifier.Classify(ext)
	if d == DialectUnsupported {
		return Block{}, d, fmt.Errorf("extension %q: %w", ext, ErrUnsupportedLanguage)
	}
	b, err := e.locator.Locate(code, ext, d)
	if err != nil {
		return Block{}, d, err
	}
	return b, d, nil
}

// ExtractMarkdown returns the markdown embedded in code.
func (e *Engine) ExtractMarkdown(code, ext string) (string, error) {
	b, d, err := e.Locate(code, ext)
	if err != nil {
		return "", err
	}
	return InnerText(b, d), nil
}

// Parse extracts and parses the document embedded in code.
func (e *Engine) Parse(code, ext string) (Document, error) {
	inner, err := e.ExtractMarkdown(code, ext)
	if err != nil {
		return Document{}, err
	}
	return Parse(inner), nil
}

// InjectSection sets one section of the embedded document and returns the
// updated source. Text outside the documentation block is not touched.
func (e *Engine) InjectSection(code, name, content, ext string) (string, error) {
	if err := validateSectionName(name); err != nil {
		return "", err
	}
	b, d, err := e.Locate(code, ext)
	if err != nil {
		return "", err
	}
	doc := Merge(Parse(InnerText(b, d)), name, content, e.order)
	return splice(code, b.Span, doc.Text(), d)
}

// InjectMarkdown replaces the whole embedded document with markdown.
func (e *Engine) InjectMarkdown(code, markdown, ext string) (string, error) {
	b, d, err := e.Locate(code, ext)
	if err != nil {
		return "", err
	}
	return splice(code, b.Span, markdown, d)
}

// UpdateFileWithMarkdown replaces the embedded document of the file at path.
// The file is written once, and only when the update succeeded.
func (e *Engine) UpdateFileWithMarkdown(path, markdown string) (bool, string) {
	return rewriteFile(path, func(code, ext string) (string, error) {
		return e.InjectMarkdown(code, markdown, ext)
	})
}

// UpdateFileSection sets one section of the embedded document of the file at path.
func (e *Engine) UpdateFileSection(path, name, content string) (bool, string) {
	return rewriteFile(path, func(code, ext string) (string, error) {
		return e.InjectSection(code, name, content, ext)
	})
}

func splice(code string, span Span, inner string, d Dialect) (string, error) {
	formatted, err := Format(inner, d)
	if err != nil {
		return "", err
	}
	return code[:span.Start] + formatted + code[span.End:], nil
}

func rewriteFile(path string, update func(code, ext string) (string, error)) (ok bool, msg string) {
	defer func() {
		if r := recover(); r != nil {
			ok, msg = false, fmt.Sprintf("failed to update %s: %v", path, r)
		}
	}()

	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Sprintf("failed to read %s: %v", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Sprintf("failed to read %s: %v", path, err)
	}

	updated, err := update(string(data), filepath.Ext(path))
	if err != nil {
		return false, fmt.Sprintf("failed to update %s: %v", path, err)
	}
	if updated == string(data) {
		return true, fmt.Sprintf("%s already up to date", path)
	}

	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return false, fmt.Sprintf("failed to write %s: %v", path, err)
	}
	return true, fmt.Sprintf("updated %s", path)
}

func validateSectionName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, "\r\n") || strings.HasSuffix(name, ":") {
		return fmt.Errorf("section %q: %w", name, ErrInvalidSectionName)
	}
	return nil
}

var defaultEngine = NewEngine(DefaultConfig())

// ExtractMarkdown returns the markdown embedded in code using the default configuration.
func ExtractMarkdown(code, ext string) (string, error) {
	return defaultEngine.ExtractMarkdown(code, ext)
}

// InjectSection sets one section using the default configuration.
func InjectSection(code, name, content, ext string) (string, error) {
	return defaultEngine.InjectSection(code, name, content, ext)
}

// InjectMarkdown replaces the embedded document using the default configuration.
func InjectMarkdown(code, markdown, ext string) (string, error) {
	return defaultEngine.InjectMarkdown(code, markdown, ext)
}

// UpdateFileWithMarkdown rewrites the embedded document of a file using the default configuration.
func UpdateFileWithMarkdown(path, markdown string) (bool, string) {
	return defaultEngine.UpdateFileWithMarkdown(path, markdown)
}
