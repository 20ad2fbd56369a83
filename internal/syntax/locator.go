package syntax

import (
	"context"
	"fmt"
	"strings"

	"soldocs/internal/docblock"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// grammars maps file extensions to tree-sitter languages.
var grammars = map[string]func() *sitter.Language{
	".py":   python.GetLanguage,
	".js":   javascript.GetLanguage,
	".jsx":  javascript.GetLanguage,
	".ts":   typescript.GetLanguage,
	".tsx":  tsx.GetLanguage,
	".java": java.GetLanguage,
	".c":    c.GetLanguage,
	".h":    c.GetLanguage,
	".cpp":  cpp.GetLanguage,
	".cc":   cpp.GetLanguage,
	".hpp":  cpp.GetLanguage,
	".go":   golang.GetLanguage,
}

// Locator finds documentation blocks from the syntax tree instead of the
// first delimiter match, so escaped delimiters never end a block early.
// It also enforces one documentation block per file: a second top-level
// block that carries section headers is reported as docblock.ErrMultipleBlocks.
type Locator struct {
	fallback docblock.Locator
}

// NewLocator creates a syntax-aware locator. Extensions without a grammar
// are handed to fallback; nil selects a docblock.PatternLocator.
func NewLocator(fallback docblock.Locator) *Locator {
	if fallback == nil {
		fallback = docblock.NewPatternLocator()
	}
	return &Locator{fallback: fallback}
}

// Supports reports whether ext has a grammar.
func Supports(ext string) bool {
	_, ok := grammars[docblock.NormalizeExt(ext)]
	return ok
}

func (l *Locator) Locate(content, ext string, d docblock.Dialect) (docblock.Block, error) {
	lang, ok := grammars[docblock.NormalizeExt(ext)]
	if !ok || d == docblock.DialectUnsupported {
		return l.fallback.Locate(content, ext, d)
	}

	src := []byte(content)
	parser := sitter.NewParser()
	parser.SetLanguage(lang())
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return docblock.Block{}, fmt.Errorf("failed to parse %s source: %w", ext, err)
	}

	blocks := collectBlocks(tree.RootNode(), src, d)
	if len(blocks) == 0 {
		return docblock.Block{}, fmt.Errorf("locate %s block: %w", d, docblock.ErrNoCommentBlock)
	}

	var documented []docblock.Block
	for _, b := range blocks {
		if len(docblock.Parse(docblock.InnerText(b, d)).Sections) > 0 {
			documented = append(documented, b)
		}
	}
	switch len(documented) {
	case 0:
		return blocks[0], nil
	case 1:
		return documented[0], nil
	default:
		return docblock.Block{}, fmt.Errorf("%d blocks carry section headers (first at byte %d, second at byte %d): %w",
			len(documented), documented[0].Start, documented[1].Start, docblock.ErrMultipleBlocks)
	}
}

// collectBlocks returns the top-level documentation block candidates in
// source order. Blocks nested in classes or functions are not considered.
func collectBlocks(root *sitter.Node, src []byte, d docblock.Dialect) []docblock.Block {
	var blocks []docblock.Block
	for i := 0; i < int(root.ChildCount()); i++ {
		if b, ok := blockFromNode(root.Child(i), src, d); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func blockFromNode(n *sitter.Node, src []byte, d docblock.Dialect) (docblock.Block, bool) {
	switch d {
	case docblock.DialectDocstring:
		if n.Type() != "expression_statement" || n.NamedChildCount() != 1 {
			return docblock.Block{}, false
		}
		str := n.NamedChild(0)
		if str.Type() != "string" {
			return docblock.Block{}, false
		}
		return delimited(str, src, `"""`, `"""`, "rRuUbB")
	case docblock.DialectJSDoc:
		if n.Type() != "comment" && n.Type() != "block_comment" {
			return docblock.Block{}, false
		}
		return delimited(n, src, "/**", "*/", "")
	}
	return docblock.Block{}, false
}

// delimited turns a node whose text is openDelim...closeDelim, optionally after a
// string prefix, into a block. The span excludes the prefix.
func delimited(n *sitter.Node, src []byte, openDelim, closeDelim, prefixes string) (docblock.Block, bool) {
	start, end := int(n.StartByte()), int(n.EndByte())
	text := string(src[start:end])

	trimmed := strings.TrimLeft(text, prefixes)
	start += len(text) - len(trimmed)
	if len(trimmed) < len(openDelim)+len(closeDelim) || !strings.HasPrefix(trimmed, openDelim) || !strings.HasSuffix(trimmed, closeDelim) {
		return docblock.Block{}, false
	}
	return docblock.Block{
		Span: docblock.Span{Start: start, End: end},
		Raw:  trimmed[len(openDelim) : len(trimmed)-len(closeDelim)],
	}, true
}
