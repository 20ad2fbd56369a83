package crawler

import (
	"io/fs"
	"path/filepath"

	"soldocs/internal/docblock"
)

// Crawler scans a solution catalog for documented source files.
type Crawler struct {
	engine  *docblock.Engine
	ignored []string
	only    map[string]bool
}

// NewCrawler creates a crawler for the extensions the engine supports.
func NewCrawler(e *docblock.Engine, ignore ...string) *Crawler {
	return &Crawler{
		engine:  e,
		ignored: append([]string{".git", "vendor", "node_modules", "testdata", "__pycache__"}, ignore...),
	}
}

// Only restricts the scan to the given extensions.
func (c *Crawler) Only(exts ...string) *Crawler {
	if len(exts) == 0 {
		c.only = nil
		return c
	}
	c.only = make(map[string]bool, len(exts))
	for _, ext := range exts {
		c.only[docblock.NormalizeExt(ext)] = true
	}
	return c
}

// ScanProject walks root and streams the path of every supported file.
func (c *Crawler) ScanProject(root string, onFile func(path string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip ignored directories
		if d.IsDir() {
			if path == root {
				return nil
			}
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}

		ext := docblock.NormalizeExt(filepath.Ext(d.Name()))
		if c.engine.Classify(ext) == docblock.DialectUnsupported {
			return nil
		}
		if c.only != nil && !c.only[ext] {
			return nil
		}

		onFile(path)
		return nil
	})
}

// Collect returns every supported file under root in walk order.
func (c *Crawler) Collect(root string) ([]string, error) {
	var paths []string
	err := c.ScanProject(root, func(path string) {
		paths = append(paths, path)
	})
	return paths, err
}
