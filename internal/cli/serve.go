package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurospin/distmeta/internal/server"
	"github.com/neurospin/distmeta/pkg/manifest"
	"github.com/neurospin/distmeta/pkg/store"
)

// serveCommand creates the serve command for the metadata HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		mongoURI string
	)

	cmd := &cobra.Command{
		Use:   "serve [manifest...]",
		Short: "Serve stored descriptors over HTTP",
		Long:  `Serve runs an HTTP server exposing stored descriptors, including a PyPI-style /pypi/{name}/json endpoint. Manifests given as arguments are loaded into the store at startup. Without --mongo an in-memory store is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := newStore(cmd, mongoURI)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			for _, path := range args {
				d, err := manifest.Load(path)
				if err != nil {
					return fmt.Errorf("load %s: %w", path, err)
				}
				rec, err := st.Put(ctx, d)
				if err != nil {
					return fmt.Errorf("store %s: %w", path, err)
				}
				c.Logger.Info("loaded manifest", "path", path, "name", rec.Name, "revision", rec.Revision)
			}

			return server.New(st, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB URI for persistent storage (default: in-memory)")

	return cmd
}

// newStore selects the storage backend: MongoDB when a URI is given,
// in-memory otherwise.
func newStore(cmd *cobra.Command, mongoURI string) (store.Store, error) {
	if mongoURI == "" {
		return store.NewMemoryStore(), nil
	}
	st, err := store.NewMongoStore(cmd.Context(), store.MongoConfig{URI: mongoURI})
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	return st, nil
}
