package validator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"soldocs/internal/docblock"
	"soldocs/internal/logging"

	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/sync/errgroup"
)

const (
	textCodeReadFailed = "SOLUTION_READ_FAILED"
	textCodeCanceled   = "VALIDATION_CANCELED"
)

// Validator checks the documentation convention of solution files.
type Validator struct {
	engine   *docblock.Engine
	required []string
	workers  int
	log      logging.Logger
}

type Option func(*Validator)

// WithWorkers bounds the number of files validated concurrently.
func WithWorkers(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.workers = n
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.log = l
		}
	}
}

// New creates a validator that requires the given sections in every file.
func New(e *docblock.Engine, required []string, opts ...Option) *Validator {
	v := &Validator{
		engine:   e,
		required: append([]string(nil), required...),
		workers:  4,
		log:      logging.NoOp(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateAll validates paths concurrently. A failing file never aborts the
// run; only cancellation of ctx does.
func (v *Validator) ValidateAll(ctx context.Context, root string, paths []string) (*Report, error) {
	started := time.Now()
	results := make([]FileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(v.workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = v.ValidateFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryCommand, "validation cancelled").
			WithTextCode(textCodeCanceled)
	}

	report := &Report{
		Root:      root,
		StartedAt: started.UTC(),
		Duration:  time.Since(started).Round(time.Millisecond).String(),
		Files:     results,
		Summary:   summarize(results),
	}
	v.log.Info("validation finished", "root", root, "files", report.Summary.Files, "failed", report.Summary.Failed)
	return report, nil
}

// ValidateFile reads and validates one file.
func (v *Validator) ValidateFile(path string) FileResult {
	data, err := os.ReadFile(path)
	if err != nil {
		res := FileResult{Path: path, Dialect: v.engine.Classify(filepath.Ext(path)).String(), Sections: []string{}}
		res.Err = goerrors.Wrap(err, goerrors.CategoryValidation, "failed to read solution file").
			WithTextCode(textCodeReadFailed)
		res.Issues = append(res.Issues, Issue{
			Code:     CodeReadFailed,
			Severity: SeverityError,
			Message:  err.Error(),
		})
		v.log.Warn("could not read solution file", "path", path, "error", err)
		return res
	}

	res := v.ValidateSource(path, string(data))
	v.log.Debug("validated solution file", "path", path, "sections", len(res.Sections), "issues", len(res.Issues))
	return res
}

// ValidateSource validates code as if it were read from path.
func (v *Validator) ValidateSource(path, code string) FileResult {
	ext := filepath.Ext(path)
	d := v.engine.Classify(ext)
	res := FileResult{Path: path, Dialect: d.String(), Sections: []string{}, Issues: []Issue{}}

	doc, err := v.engine.Parse(code, ext)
	if err != nil {
		res.Issues = append(res.Issues, blockIssue(err))
		return res
	}
	res.Sections = doc.Names()

	order := v.engine.SectionOrder()
	seen := make(map[string]int)
	for _, sec := range doc.Sections {
		key := strings.ToUpper(sec.Name)
		seen[key]++
		if seen[key] == 2 {
			res.Issues = append(res.Issues, Issue{
				Code:     CodeDuplicateSection,
				Severity: SeverityError,
				Section:  sec.Name,
				Message:  fmt.Sprintf("section %s appears more than once", sec.Name),
			})
		}
		if strings.TrimSpace(sec.Body) == "" {
			res.Issues = append(res.Issues, Issue{
				Code:     CodeEmptySection,
				Severity: SeverityWarning,
				Section:  sec.Name,
				Message:  fmt.Sprintf("section %s has no content", sec.Name),
			})
		}
		if indexFold(order, sec.Name) < 0 {
			res.Issues = append(res.Issues, Issue{
				Code:     CodeUnknownSection,
				Severity: SeverityWarning,
				Section:  sec.Name,
				Message:  fmt.Sprintf("section %s is not a canonical section", sec.Name),
			})
		}
	}

	for _, name := range v.required {
		if _, ok := doc.Section(name); !ok {
			res.Issues = append(res.Issues, Issue{
				Code:     CodeMissingSection,
				Severity: SeverityError,
				Section:  name,
				Message:  fmt.Sprintf("required section %s is missing", name),
			})
		}
	}

	res.Issues = append(res.Issues, orderIssues(doc, order)...)
	return res
}

// orderIssues reports canonical sections that appear after a section which
// follows them in order.
func orderIssues(doc docblock.Document, order []string) []Issue {
	var issues []Issue
	last, lastName := -1, ""
	for _, sec := range doc.Sections {
		k := indexFold(order, sec.Name)
		if k < 0 {
			continue
		}
		if k < last {
			issues = append(issues, Issue{
				Code:     CodeOutOfOrder,
				Severity: SeverityWarning,
				Section:  sec.Name,
				Message:  fmt.Sprintf("section %s should come before %s", sec.Name, lastName),
			})
			continue
		}
		last, lastName = k, sec.Name
	}
	return issues
}

func blockIssue(err error) Issue {
	is := Issue{Severity: SeverityError, Message: err.Error()}
	switch {
	case errors.Is(err, docblock.ErrUnsupportedLanguage):
		is.Code = CodeUnsupportedLanguage
	case errors.Is(err, docblock.ErrMultipleBlocks):
		is.Code = CodeMultipleBlocks
	default:
		is.Code = CodeMissingBlock
	}
	return is
}

func indexFold(list []string, name string) int {
	for i, item := range list {
		if strings.EqualFold(item, name) {
			return i
		}
	}
	return -1
}
