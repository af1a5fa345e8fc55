package pipeline

import (
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tagcloud/pkg/errors"
)

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = "tagcloud.toml"

// LoadOptions decodes a TOML config file over [DefaultOptions]. Unknown keys
// are rejected so that typos do not silently fall back to defaults.
//
//	label_column = "word"
//	size_column = "count"
//	max_count = 100
//
//	[csv]
//	id_column = "id"
//	term_columns = ["term"]
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Options{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "config %s", path)
	}
	return DecodeOptions(string(data))
}

// DecodeOptions decodes TOML text over [DefaultOptions].
func DecodeOptions(text string) (Options, error) {
	opts := DefaultOptions()
	md, err := toml.Decode(text, &opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return Options{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return opts, nil
}
