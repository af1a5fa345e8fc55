package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/table"
)

// stdinArg reads the input table from standard input.
const stdinArg = "-"

// aggregateOpts holds the flags of the aggregate command that are not
// pipeline options.
type aggregateOpts struct {
	config      string // TOML config file
	output      string // JSON result file
	noCache     bool
	interactive bool
}

// aggregateFlags holds flag values that override the config file when set.
type aggregateFlags struct {
	label        string
	rowID        bool
	size         string
	sizeProperty bool
	noAggregate  bool
	terms        bool
	ignoreTags   bool
	color        bool
	max          int
	format       string
	idColumn     string
	rowSize      string
	rowColor     string
	termColumns  []string
	missingToken string
	refresh      bool
}

func (c *CLI) aggregateCommand() *cobra.Command {
	var (
		opts  aggregateOpts
		flags aggregateFlags
	)

	cmd := &cobra.Command{
		Use:   "aggregate FILE",
		Short: "Aggregate a table into a ranked tag cloud",
		Long: `Aggregate reads a CSV, TSV or JSON table, folds rows that share a label into
one entry whose size is the sum of their weights, and prints the heaviest
entries. FILE may be an http(s) URL; use "-" to read from standard input.

Settings are read from tagcloud.toml in the working directory (or --config)
and overridden by flags.`,
		Example: `  tagcloud aggregate words.csv --label word --size count
  tagcloud aggregate tokens.json --label term --terms --ignore-tags --size-property
  cat words.tsv | tagcloud aggregate - --format tsv --label word --size count -o cloud.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeOpts, err := loadAggregateOptions(cmd, opts.config, &flags, args[0])
			if err != nil {
				return err
			}
			return c.runAggregate(cmd.Context(), cmd.OutOrStdout(), args[0], pipeOpts, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.label, "label", "", "label column")
	f.BoolVar(&flags.rowID, "row-id", false, "use the row id as label")
	f.StringVar(&flags.size, "size", "", "weight column")
	f.BoolVar(&flags.sizeProperty, "size-property", false, "use the row size property as weight")
	f.BoolVar(&flags.noAggregate, "no-aggregate", false, "keep one entry per row")
	f.BoolVar(&flags.terms, "terms", false, "resolve labels of term columns as structured terms")
	f.BoolVar(&flags.ignoreTags, "ignore-tags", false, "fold terms with equal words regardless of tags")
	f.BoolVar(&flags.color, "color", false, "carry the first row colour into each entry")
	f.IntVar(&flags.max, "max", 0, "maximum number of entries (default 250)")
	f.StringVar(&flags.format, "format", "", "input format: csv, tsv, json (default: from file extension)")
	f.StringVar(&flags.idColumn, "id-column", "", "CSV column holding row ids")
	f.StringVar(&flags.rowSize, "row-size-column", "", "CSV column holding the row size property")
	f.StringVar(&flags.rowColor, "row-color-column", "", "CSV column holding the row colour")
	f.StringSliceVar(&flags.termColumns, "term-column", nil, "CSV column typed as term (repeatable)")
	f.StringVar(&flags.missingToken, "missing-token", "", "CSV cell value treated as missing")
	f.BoolVar(&flags.refresh, "refresh", false, "recompute and overwrite the cached result")
	f.StringVar(&opts.config, "config", "", "config file (default: "+pipeline.DefaultConfigFile+" if present)")
	f.StringVarP(&opts.output, "output", "o", "", "write the result as JSON to this file")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "browse the result interactively")

	cmd.MarkFlagsMutuallyExclusive("label", "row-id")
	cmd.MarkFlagsMutuallyExclusive("size", "size-property")

	return cmd
}

// loadAggregateOptions reads the config file and applies the flags the user
// set on top of it.
func loadAggregateOptions(cmd *cobra.Command, configPath string, flags *aggregateFlags, input string) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	if configPath == "" {
		if _, err := os.Stat(pipeline.DefaultConfigFile); err == nil {
			configPath = pipeline.DefaultConfigFile
		}
	}
	if configPath != "" {
		loaded, err := pipeline.LoadOptions(configPath)
		if err != nil {
			return opts, err
		}
		opts = loaded
		loggerFromContext(cmd.Context()).Debug("loaded config", "file", configPath)
	}

	set := cmd.Flags().Changed
	if set("label") {
		opts.LabelColumn, opts.UseRowID = flags.label, false
	}
	if set("row-id") {
		opts.UseRowID = flags.rowID
	}
	if set("size") {
		opts.SizeColumn, opts.UseSizeProperty = flags.size, false
	}
	if set("size-property") {
		opts.UseSizeProperty = flags.sizeProperty
	}
	if set("no-aggregate") {
		opts.Aggregate = !flags.noAggregate
	}
	if set("terms") {
		opts.TermMode = flags.terms
	}
	if set("ignore-tags") {
		opts.IgnoreTermTags = flags.ignoreTags
	}
	if set("color") {
		opts.ExtractColor = flags.color
	}
	if set("max") {
		opts.MaxCount = flags.max
		if flags.max <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidConfig, "--max must be at least 1, got %d", flags.max)
		}
	}
	if set("id-column") {
		opts.CSV.IDColumn = flags.idColumn
	}
	if set("row-size-column") {
		opts.CSV.SizeColumn = flags.rowSize
	}
	if set("row-color-column") {
		opts.CSV.ColorColumn = flags.rowColor
	}
	if set("term-column") {
		opts.CSV.TermColumns = flags.termColumns
	}
	if set("missing-token") {
		opts.CSV.MissingToken = flags.missingToken
	}
	opts.Refresh = flags.refresh

	// The format comes from the flag, then the file extension (or the
	// response of a URL), then the config file.
	switch {
	case set("format"):
		opts.Format = flags.format
	case pipeline.IsURL(input):
		opts.Format = ""
	case input != stdinArg:
		format, err := table.Detect(input)
		if err != nil {
			return opts, err
		}
		opts.Format = string(format)
	}
	return opts, nil
}

func (c *CLI) runAggregate(ctx context.Context, out io.Writer, input string, opts pipeline.Options, cmdOpts aggregateOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(cmdOpts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, os.Stderr, "Aggregating "+displayName(input))
	opts.Progress = spinner.SetRows
	opts.Logger = logger
	prog := newProgress(logger, "aggregate")
	spinner.Start()
	res, err := executeInput(ctx, runner, input, opts)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done("done", "rows", res.Stats.Rows, "entries", len(res.Entries), "cache_hit", res.CacheHit)

	if cmdOpts.output != "" {
		if err := writeResult(cmdOpts.output, res); err != nil {
			return err
		}
	}

	if cmdOpts.interactive {
		_, err := tea.NewProgram(NewEntryBrowserModel(res), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
		return err
	}

	printResult(out, res)
	if cmdOpts.output != "" {
		printFile(out, cmdOpts.output)
	}
	return nil
}

func printResult(out io.Writer, res *pipeline.Result) {
	if len(res.Entries) > 0 {
		fmt.Fprintln(out, renderEntries(res.Entries))
	} else {
		printInfo(out, "No entries")
	}
	printStats(out, res.Stats, len(res.Entries), res.CacheHit)
	printNotices(out, res.Stats, len(res.Entries))
}

func executeInput(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options) (*pipeline.Result, error) {
	if pipeline.IsURL(input) {
		return runner.ExecuteURL(ctx, input, opts)
	}
	data, err := readInput(input)
	if err != nil {
		return nil, err
	}
	return runner.Execute(ctx, data, opts)
}

func readInput(input string) ([]byte, error) {
	if input == stdinArg {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		return data, nil
	}
	data, err := os.ReadFile(input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", input)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", input)
	}
	return data, nil
}

func writeResult(path string, res *pipeline.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode result")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

func displayName(input string) string {
	if input == stdinArg {
		return "stdin"
	}
	return input
}
