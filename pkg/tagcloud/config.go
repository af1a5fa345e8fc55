package tagcloud

import (
	"github.com/matzehuels/tagcloud/pkg/errors"
)

// DefaultMaxCount is the default number of entries kept after ranking.
const DefaultMaxCount = 250

// Config selects where labels and weights come from and how rows fold.
// It is a plain value: the engine never mutates it, and it carries TOML and
// JSON tags so callers can load it from files or API requests.
type Config struct {
	// UseRowID derives the label from the row identifier instead of a column.
	UseRowID bool `toml:"use_row_id" json:"use_row_id,omitempty" bson:"use_row_id,omitempty"`

	// LabelColumn names the label column. Required unless UseRowID is set.
	LabelColumn string `toml:"label_column" json:"label_column,omitempty" bson:"label_column,omitempty"`

	// Aggregate folds rows that share a label identity into one entry.
	Aggregate bool `toml:"aggregate" json:"aggregate" bson:"aggregate"`

	// TermMode resolves labels through the term capability when the label
	// column's type supports it.
	TermMode bool `toml:"term_mode" json:"term_mode,omitempty" bson:"term_mode,omitempty"`

	// IgnoreTermTags folds terms with equal words regardless of their tags.
	IgnoreTermTags bool `toml:"ignore_term_tags" json:"ignore_term_tags,omitempty" bson:"ignore_term_tags,omitempty"`

	// UseSizeProperty takes the weight from the row-level size property.
	UseSizeProperty bool `toml:"use_size_property" json:"use_size_property,omitempty" bson:"use_size_property,omitempty"`

	// SizeColumn names the weight column. Required unless UseSizeProperty is set.
	SizeColumn string `toml:"size_column" json:"size_column,omitempty" bson:"size_column,omitempty"`

	// ExtractColor copies the colour of the first contributing row into each entry.
	ExtractColor bool `toml:"extract_color" json:"extract_color,omitempty" bson:"extract_color,omitempty"`

	// MaxCount bounds the number of ranked entries. Must be at least 1.
	MaxCount int `toml:"max_count" json:"max_count" bson:"max_count"`
}

// DefaultConfig returns a configuration with aggregation enabled and the
// default entry bound. Label and size sources still have to be chosen.
func DefaultConfig() Config {
	return Config{
		Aggregate: true,
		MaxCount:  DefaultMaxCount,
	}
}

// Validate checks the configuration without looking at any table.
// All failures are coded [errors.ErrCodeInvalidConfig] or
// [errors.ErrCodeInvalidColumn].
func (c Config) Validate() error {
	if !c.UseRowID {
		if c.LabelColumn == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "no label source: set a label column or use the row id")
		}
		if err := errors.ValidateColumnName(c.LabelColumn); err != nil {
			return err
		}
	}
	if !c.UseSizeProperty {
		if c.SizeColumn == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "no size source: set a size column or use the row size property")
		}
		if err := errors.ValidateColumnName(c.SizeColumn); err != nil {
			return err
		}
	}
	if c.MaxCount < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_count must be at least 1, got %d", c.MaxCount)
	}
	return nil
}

// binding holds the column indexes a validated Config refers to.
type binding struct {
	label int // -1 when UseRowID
	size  int // -1 when UseSizeProperty
}

// bind validates c and resolves its column references against schema.
func (c Config) bind(schema Schema) (binding, error) {
	if err := c.Validate(); err != nil {
		return binding{}, err
	}
	b := binding{label: -1, size: -1}
	if !c.UseRowID {
		if b.label = schema.Index(c.LabelColumn); b.label < 0 {
			return binding{}, errors.New(errors.ErrCodeInvalidColumn, "label column %q not found (columns: %v)", c.LabelColumn, schema.Names())
		}
	}
	if !c.UseSizeProperty {
		if b.size = schema.Index(c.SizeColumn); b.size < 0 {
			return binding{}, errors.New(errors.ErrCodeInvalidColumn, "size column %q not found (columns: %v)", c.SizeColumn, schema.Names())
		}
	}
	return b, nil
}
