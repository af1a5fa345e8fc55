// Package cli implements the tagcloud command-line interface.
//
// Commands share one [CLI] value that owns the logger. The logger travels to
// subcommands through the command context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/buildinfo"
	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

const appName = "tagcloud"

// Log levels for main.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger
}

func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Aggregate labelled, weighted rows into ranked tag clouds",
		Long: `tagcloud reads a CSV, TSV or JSON table, folds rows that share a label
into weighted entries and keeps the heaviest ones.

Run "tagcloud serve" to expose the same engine over HTTP.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(
		c.aggregateCommand(),
		c.serveCommand(),
		c.cacheCommand(),
		c.completionCommand(),
	)
	return root
}

// newRunner returns a runner backed by the on-disk result cache, or by no
// cache at all when noCache is set or the cache directory is unusable.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	var store cache.Cache = cache.NewNullCache()
	if !noCache {
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Warn("result cache disabled", "err", err)
		} else if store, err = cache.NewFileCache(dir); err != nil {
			return nil, err
		}
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}
