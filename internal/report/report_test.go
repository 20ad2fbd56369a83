package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"soldocs/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *validator.Report {
	files := []validator.FileResult{
		{Path: "a.py", Dialect: "docstring", Sections: []string{"INTUITION"}, Issues: []validator.Issue{}},
		{
			Path:     "b.js",
			Dialect:  "jsdoc",
			Sections: []string{},
			Issues: []validator.Issue{
				{Code: validator.CodeMissingBlock, Severity: validator.SeverityError, Message: "no block"},
			},
		},
	}
	return &validator.Report{
		Root:      "catalog",
		StartedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration:  "12ms",
		Files:     files,
		Summary:   validator.Summary{Files: 2, Passed: 1, Failed: 1},
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.json")
	require.NoError(t, Save(path, sampleReport()))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"code": "missing_block"`)
	assert.NoError(t, Validate(b))
}

func TestEncode_RejectsInvalidReport(t *testing.T) {
	r := sampleReport()
	r.Files[1].Issues[0].Severity = "fatal"

	_, err := Encode(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation")
}

func TestEncode_NilFilesRejected(t *testing.T) {
	r := sampleReport()
	r.Files[0].Sections = nil

	_, err := Encode(r)
	assert.Error(t, err)
}

func TestValidate_Malformed(t *testing.T) {
	assert.Error(t, Validate([]byte("{")))
}
