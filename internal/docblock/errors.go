package docblock

import "errors"

var (
	// ErrUnsupportedLanguage is returned for file extensions outside both dialect sets.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrNoCommentBlock is returned when the source carries no documentation block.
	ErrNoCommentBlock = errors.New("no documentation comment block found")

	// ErrMultipleBlocks is returned by locators that enforce one documentation block per file.
	ErrMultipleBlocks = errors.New("multiple documentation comment blocks found")

	// ErrInvalidSectionName is returned when a section name cannot be written as a header.
	ErrInvalidSectionName = errors.New("invalid section name")
)
