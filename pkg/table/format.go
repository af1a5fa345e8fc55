package table

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/tagcloud/pkg/errors"
)

// Format is an input table encoding.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCSV, FormatTSV, FormatJSON:
		return f, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown table format %q (use csv, tsv or json)", s)
	}
}

// Detect picks the format from the file extension.
func Detect(filename string) (Format, error) {
	if err := errors.ValidateInputFilename(filename); err != nil {
		return "", err
	}
	return Format(strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))), nil
}

// Read decodes a table in the given format. For TSV the delimiter in opts is
// replaced by a tab.
func Read(r io.Reader, format Format, opts CSVOptions) (*Table, error) {
	switch format {
	case FormatCSV:
		return ReadCSV(r, opts)
	case FormatTSV:
		opts.Comma = '\t'
		return ReadCSV(r, opts)
	case FormatJSON:
		return ReadJSON(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown table format %q", format)
	}
}

// ReadFile opens path and reads it in the detected format.
func ReadFile(path string, opts CSVOptions) (*Table, error) {
	format, err := Detect(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, format, opts)
}
