package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layercake/internal/api"
	"github.com/matzehuels/layercake/pkg/cache"
	"github.com/matzehuels/layercake/pkg/pipeline"
	"github.com/matzehuels/layercake/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	storeKind string // scene store backend: memory, fs, sqlite, mongo
	storePath string // directory (fs) or database file (sqlite)
	mongoURI  string // connection string for the mongo backend
	mongoDB   string // database name for the mongo backend
	cacheKind string // artifact cache: file, memory, none, or redis:// URL
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:      defaultStr(c.cfg.Serve.Addr, ":8080"),
		storeKind: defaultStr(c.cfg.Serve.Store, "memory"),
		storePath: c.cfg.Serve.StorePath,
		mongoURI:  defaultStr(c.cfg.Serve.MongoURI, "mongodb://localhost:27017"),
		mongoDB:   defaultStr(c.cfg.Serve.MongoDatabase, appName),
		cacheKind: defaultStr(c.cfg.Serve.Cache, "file"),
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the scene rendering HTTP API",
		Long: `Serve starts an HTTP server exposing stateless rendering under
/api/v1/render and scene CRUD under /api/v1/scenes.

Scenes persist in the selected store backend; rendered artifacts are
cached in the selected cache backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.storeKind, "store", opts.storeKind, "scene store backend: memory (default), fs, sqlite, mongo")
	cmd.Flags().StringVar(&opts.storePath, "store-path", opts.storePath, "directory (fs) or database file (sqlite)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", opts.mongoURI, "MongoDB connection string")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "MongoDB database name")
	cmd.Flags().StringVar(&opts.cacheKind, "cache", opts.cacheKind, "artifact cache: file (default), memory, none, or a redis:// URL")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	st, err := newStore(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close()

	ch, err := newServeCache(ctx, opts.cacheKind)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(ch, nil, c.Logger)
	defer runner.Close()

	srv := api.New(st, runner, c.Logger)

	c.Logger.Infof("Listening on %s (store: %s, cache: %s)", opts.addr, opts.storeKind, opts.cacheKind)
	return srv.Serve(ctx, opts.addr)
}

// newStore constructs the scene store backend selected by --store.
func newStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	switch opts.storeKind {
	case "memory":
		return store.NewMemoryStore(), nil
	case "fs":
		dir := opts.storePath
		if dir == "" {
			dir = dataPath("scenes")
		}
		return store.NewFileStore(dir)
	case "sqlite":
		path := opts.storePath
		if path == "" {
			path = dataPath("scenes.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		return store.NewSQLiteStore(ctx, path)
	case "mongo":
		return store.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB)
	default:
		return nil, fmt.Errorf("invalid store: %s (must be 'memory', 'fs', 'sqlite', or 'mongo')", opts.storeKind)
	}
}

// newServeCache constructs the artifact cache selected by --cache.
func newServeCache(ctx context.Context, kind string) (cache.Cache, error) {
	switch {
	case kind == "none":
		return cache.NewNullCache(), nil
	case kind == "memory":
		return cache.NewMemoryCache(), nil
	case kind == "file":
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	case strings.HasPrefix(kind, "redis://") || strings.HasPrefix(kind, "rediss://"):
		return cache.NewRedisCache(ctx, kind)
	default:
		return nil, fmt.Errorf("invalid cache: %s (must be 'file', 'memory', 'none', or a redis:// URL)", kind)
	}
}

// dataPath returns a path under the cache directory for default store
// locations, falling back to the working directory.
func dataPath(name string) string {
	dir, err := cacheDir()
	if err != nil {
		return name
	}
	return filepath.Join(dir, name)
}

// defaultStr returns s, or fallback when s is empty.
func defaultStr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
