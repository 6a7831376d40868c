// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"folio/internal/site"
)

// Generated file names, shared by index and publish.
const (
	indexFile   = "index.json"
	sitemapFile = "sitemap.txt"
)

// artifacts is the generated output of one build.
type artifacts struct {
	index   []byte
	sitemap []byte // nil when no site URL is configured
}

func renderArtifacts(s *site.Site, siteURL string) (artifacts, error) {
	index, err := json.MarshalIndent(s.Manifest(), "", "  ")
	if err != nil {
		return artifacts{}, fmt.Errorf("encode manifest: %w", err)
	}
	out := artifacts{index: append(index, '\n')}
	if siteURL != "" {
		out.sitemap = []byte(strings.Join(s.Sitemap(siteURL), "\n") + "\n")
	}
	return out, nil
}

func newIndexCmd(a *app) *cobra.Command {
	var (
		outDir string
		drafts bool
	)
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Validate content and write the site manifest",
		Long: `index loads every collection, fails with a list of all invalid files, and
writes index.json (entries, taxonomy, archive, routes) to the output
directory. sitemap.txt is written as well when SITE_URL is set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if outDir == "" {
				outDir = a.cfg.OutputDir
			}
			s, err := a.buildSite(a.mode(drafts))
			if err != nil {
				return err
			}
			art, err := renderArtifacts(s, a.cfg.SiteURL)
			if err != nil {
				return err
			}
			return writeArtifacts(outDir, art)
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default OUTPUT_DIR)")
	cmd.Flags().BoolVar(&drafts, "drafts", false, "include drafts regardless of APP_ENV")
	return cmd
}

func writeArtifacts(dir string, art artifacts) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	files := map[string][]byte{indexFile: art.index}
	if art.sitemap != nil {
		files[sitemapFile] = art.sitemap
	}
	for name, data := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		slog.Info("wrote file", "path", path, "bytes", len(data))
	}
	return nil
}
