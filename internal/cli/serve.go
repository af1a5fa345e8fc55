package cli

import (
	"context"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/internal/server"
	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/observability"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/storage"
)

const (
	envRedisAddr = "TAGCLOUD_REDIS_ADDR"
	envMongoURI  = "TAGCLOUD_MONGO_URI"

	defaultAddr     = ":8080"
	runStoreSize    = 256
	memoryCacheSize = 1024
)

type serveOpts struct {
	addr        string
	redisAddr   string
	redisPrefix string
	mongoURI    string
	mongoDB     string
}

func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:      defaultAddr,
		redisAddr: os.Getenv(envRedisAddr),
		mongoURI:  os.Getenv(envMongoURI),
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the aggregation HTTP API",
		Long: `Serve exposes aggregation over HTTP. Results are cached in Redis when an
address is given (or ` + envRedisAddr + ` is set) and in memory otherwise. Runs
are stored in MongoDB when a URI is given (or ` + envMongoURI + ` is set) and in
memory otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", opts.redisAddr, "Redis address for the result cache")
	cmd.Flags().StringVar(&opts.redisPrefix, "redis-prefix", "tagcloud:", "Redis key prefix")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", opts.mongoURI, "MongoDB URI for stored runs")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", storage.DefaultMongoDatabase, "MongoDB database")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	hooks := observability.NewPromHooks(reg)
	observability.SetAggregateHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	resultCache, err := newServerCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(resultCache, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "server"), logger)
	defer runner.Close()

	store, err := newRunStore(ctx, opts)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	logger.Info("starting server", "addr", opts.addr, "cache", backendName(opts.redisAddr, "redis"), "store", backendName(opts.mongoURI, "mongo"))
	srv := server.New(runner, store, logger, server.WithGatherer(reg))
	return srv.ListenAndServe(ctx, opts.addr)
}

func newServerCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.redisAddr == "" {
		return cache.NewMemoryCache(memoryCacheSize)
	}
	return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redisAddr, Prefix: opts.redisPrefix})
}

func newRunStore(ctx context.Context, opts serveOpts) (storage.RunStore, error) {
	if opts.mongoURI == "" {
		return storage.NewMemoryStore(runStoreSize)
	}
	return storage.NewMongoStore(ctx, storage.MongoConfig{URI: opts.mongoURI, Database: opts.mongoDB})
}

func backendName(configured, name string) string {
	if configured == "" {
		return "memory"
	}
	return name
}
