package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxColumnNameLength bounds column names accepted from configuration files
// and API requests.
const maxColumnNameLength = 256

// ValidateColumnName validates a column name taken from user configuration.
//
// The rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - Maximum length of 256 characters
//
// Whether the column exists is checked later against the table schema.
func ValidateColumnName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidColumn, "column name cannot be empty")
	}

	if len(name) > maxColumnNameLength {
		return New(ErrCodeInvalidColumn, "column name too long (max %d characters)", maxColumnNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidColumn, "column name contains invalid control characters")
		}
	}

	return nil
}

// supportedInputExtensions lists the table formats the readers understand.
var supportedInputExtensions = map[string]bool{
	".csv":  true,
	".tsv":  true,
	".json": true,
}

// ValidateInputFilename validates the name of a table file handed to the CLI.
// It checks that the extension names a supported format; directories and
// empty names are rejected.
func ValidateInputFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidPath, "input filename cannot be empty")
	}
	if strings.HasSuffix(filename, "/") || strings.HasSuffix(filename, "\\") {
		return New(ErrCodeInvalidPath, "input must be a file, not a directory: %q", filename)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !supportedInputExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported input extension %q (must be .csv, .tsv or .json)", ext)
	}

	return nil
}

// ValidateRunID validates a stored run identifier received over HTTP.
// Identifiers are UUID strings; anything containing path separators or
// control characters is rejected before reaching a storage backend.
func ValidateRunID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "run id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "run id too long")
	}
	for _, r := range id {
		if unicode.IsControl(r) || r == '/' || r == '\\' {
			return New(ErrCodeInvalidInput, "run id contains invalid characters")
		}
	}
	return nil
}
