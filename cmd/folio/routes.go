package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRoutesCmd(a *app) *cobra.Command {
	var (
		all    bool
		drafts bool
	)
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the page paths the site generates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.buildSite(a.mode(drafts))
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tPATH\tSITEMAP")
			for _, r := range s.Routes() {
				if r.Hidden && !all {
					continue
				}
				listed := "yes"
				if r.Hidden {
					listed = "no"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Kind, r.Path, listed)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include routes hidden from the sitemap")
	cmd.Flags().BoolVar(&drafts, "drafts", false, "include drafts regardless of APP_ENV")
	return cmd
}
