package validator

import "time"

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue codes reported by the validator.
const (
	CodeUnsupportedLanguage = "unsupported_language"
	CodeMissingBlock        = "missing_block"
	CodeMultipleBlocks      = "multiple_blocks"
	CodeReadFailed          = "read_failed"
	CodeMissingSection      = "missing_section"
	CodeEmptySection        = "empty_section"
	CodeDuplicateSection    = "duplicate_section"
	CodeOutOfOrder          = "out_of_order"
	CodeUnknownSection      = "unknown_section"
)

type Issue struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Section  string   `json:"section,omitempty"`
	Message  string   `json:"message"`
}

// FileResult is the outcome of validating one solution file.
type FileResult struct {
	Path     string   `json:"path"`
	Dialect  string   `json:"dialect"`
	Sections []string `json:"sections"`
	Issues   []Issue  `json:"issues"`
	// Err keeps the categorized failure when the file could not be processed.
	Err error `json:"-"`
}

// OK reports whether the file has no error-level issues.
func (r FileResult) OK() bool {
	for _, is := range r.Issues {
		if is.Severity == SeverityError {
			return false
		}
	}
	return true
}

type Summary struct {
	Files    int `json:"files"`
	Passed   int `json:"passed"`
	Failed   int `json:"failed"`
	Warnings int `json:"warnings"`
}

type Report struct {
	Root      string       `json:"root"`
	StartedAt time.Time    `json:"started_at"`
	Duration  string       `json:"duration"`
	Files     []FileResult `json:"files"`
	Summary   Summary      `json:"summary"`
}

// Failures returns the results that carry error-level issues.
func (r *Report) Failures() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if !f.OK() {
			out = append(out, f)
		}
	}
	return out
}

// ProcessingErrors returns the categorized errors of files that could not be
// processed at all.
func (r *Report) ProcessingErrors() []error {
	var errs []error
	for _, f := range r.Files {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}

func summarize(files []FileResult) Summary {
	s := Summary{Files: len(files)}
	for _, f := range files {
		if f.OK() {
			s.Passed++
		} else {
			s.Failed++
		}
		for _, is := range f.Issues {
			if is.Severity == SeverityWarning {
				s.Warnings++
			}
		}
	}
	return s
}
