package cache

import (
	"github.com/matzehuels/tagcloud/pkg/table"
	"github.com/matzehuels/tagcloud/pkg/tagcloud"
)

// Keyer derives cache keys.
type Keyer interface {
	// ResultKey returns the key of the aggregation result for an input.
	ResultKey(inputHash string, opts ResultKeyOpts) string
}

// ResultKeyOpts are the options that change an aggregation result.
type ResultKeyOpts struct {
	Format string
	Config tagcloud.Config
	CSV    table.CSVOptions
}

// DefaultKeyer produces "result:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey hashes the input hash together with every option.
func (DefaultKeyer) ResultKey(inputHash string, opts ResultKeyOpts) string {
	return hashKey("result", inputHash, opts)
}
