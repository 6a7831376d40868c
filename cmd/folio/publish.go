// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"folio/internal/query"
	"folio/internal/storage"
)

func newPublishCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Build the production index and upload it to S3",
		Long: `publish always builds in production mode (drafts hidden) and uploads
index.json and sitemap.txt to S3_BUCKET under S3_PREFIX.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.SiteURL == "" {
				return errors.New("SITE_URL is required to publish")
			}
			client, err := storage.New(storage.Options{
				Endpoint:  a.cfg.S3Endpoint,
				Region:    a.cfg.S3Region,
				AccessKey: a.cfg.S3AccessKey,
				SecretKey: a.cfg.S3SecretKey,
				Bucket:    a.cfg.S3Bucket,
				Prefix:    a.cfg.S3Prefix,
				PublicURL: a.cfg.S3PublicURL,
			})
			if err != nil {
				return fmt.Errorf("initialize s3 storage: %w", err)
			}
			if client == nil {
				return errors.New("s3 storage not configured: set S3_ENDPOINT, S3_ACCESS_KEY and S3_SECRET_KEY")
			}

			s, err := a.buildSite(query.Production)
			if err != nil {
				return err
			}
			art, err := renderArtifacts(s, a.cfg.SiteURL)
			if err != nil {
				return err
			}

			uploads := []struct {
				name, contentType string
				data              []byte
			}{
				{indexFile, "application/json", art.index},
				{sitemapFile, "text/plain; charset=utf-8", art.sitemap},
			}
			for _, u := range uploads {
				if err := client.UploadBytes(cmd.Context(), u.name, u.contentType, u.data); err != nil {
					return err
				}
				slog.Info("published", "bucket", client.Bucket(), "url", client.FileURL(u.name), "bytes", len(u.data))
			}
			return nil
		},
	}
}
