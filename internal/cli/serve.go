package cli

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/coursegrid/pkg/cache"
	"github.com/matzehuels/coursegrid/pkg/config"
	"github.com/matzehuels/coursegrid/pkg/pipeline"
	"github.com/matzehuels/coursegrid/pkg/server"
)

const (
	defaultAddr = "127.0.0.1:8080"

	// apiKeyPrefix keeps server cache entries apart from CLI ones.
	apiKeyPrefix = "api:"
)

// serveCommand creates the serve command that exposes the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		maxBody int64
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts and renders over HTTP",
		Long: `Serve layouts and renders over HTTP.

Routes:
  GET  /healthz
  POST /v1/layout
  POST /v1/render/{svg,png,pdf,json,dot}

Request options default to the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()
			runner.Keyer = cache.NewScopedKeyer(runner.Keyer, apiKeyPrefix)

			srv := server.New(runner, pipeline.FromConfig(cfg),
				server.WithLogger(loggerFromContext(ctx)),
				server.WithMaxBody(maxBody),
				server.WithTimeout(timeout),
			)

			printInfo("Listening on %s", StyleLink.Render("http://"+addr))
			printKeyValue("cache", cacheLabel(cfg, noCache))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBody, "request body limit in bytes")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "per-request timeout")

	return cmd
}

func cacheLabel(cfg config.File, noCache bool) string {
	switch {
	case noCache:
		return "disabled"
	case cfg.Cache.URL == "":
		dir, _ := cacheDir()
		return dir
	}
	if u, err := url.Parse(cfg.Cache.URL); err == nil {
		return u.Redacted()
	}
	return cfg.Cache.URL
}
