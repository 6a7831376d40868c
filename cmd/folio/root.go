// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"folio/internal/config"
	"folio/internal/query"
	"folio/internal/site"
	"folio/internal/store"
	"folio/internal/urlpath"
)

// app carries state shared by every subcommand once the root command has
// loaded configuration.
type app struct {
	envFile string
	verbose bool
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "folio",
		Short: "Content index and preview server for a Markdown blog",
		Long: `folio reads posts/, tabs/ and music/ Markdown collections plus series.yaml
from CONTENT_DIR, validates their frontmatter and derives ordering,
pagination, navigation links, taxonomy counts and the route table.

Example usage:
  folio index              # write dist/index.json and dist/sitemap.txt
  folio serve              # JSON preview API with live reload
  folio routes --all       # list every generated page path
  folio publish            # upload the production index to S3`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "optional dotenv file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newIndexCmd(a),
		newServeCmd(a),
		newPublishCmd(a),
		newRoutesCmd(a),
	)
	return root
}

// init loads configuration and installs the logger: text in development,
// JSON in production.
func (a *app) init() error {
	if err := config.LoadDotEnv(a.envFile); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	a.cfg = cfg

	level := slog.LevelInfo
	if cfg.IsDev() || a.verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	slog.Debug("configuration loaded",
		"env", cfg.Env,
		"content_dir", cfg.ContentDir,
		"base_path", cfg.BasePath,
	)
	return nil
}

// mode returns the visibility mode for this run. drafts forces
// development mode regardless of APP_ENV.
func (a *app) mode(drafts bool) query.Mode {
	if drafts {
		return query.Development
	}
	return query.ModeFor(a.cfg.Env)
}

// buildSite loads the content directory and builds a snapshot.
func (a *app) buildSite(mode query.Mode) (*site.Site, error) {
	content, err := store.Load(a.cfg.ContentDir)
	if err != nil {
		return nil, err
	}
	s, err := site.Build(content, site.Options{
		Mode:         mode,
		Mapper:       urlpath.New(a.cfg.BasePath),
		PageSize:     a.cfg.PageSize,
		HomePageSize: a.cfg.HomePageSize,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("site built",
		"build_id", s.BuildID,
		"mode", mode,
		"routes", len(s.Routes()),
	)
	return s, nil
}
