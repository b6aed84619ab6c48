package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/searchcore/engine/internal/robots"
)

// robotsCheckCmd parses a robots.txt file and reports the allow/disallow
// verdict for a path under a given user agent, exercising internal/robots
// (spec §4.8) the way optic-lint exercises internal/optic.
func robotsCheckCmd() *cobra.Command {
	var userAgent string

	cmd := &cobra.Command{
		Use:   "robots-check [robots.txt] [path]",
		Short: "Check whether a path is allowed by a robots.txt file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			path := args[1]

			r := robots.Parse(userAgent, string(src))
			if r.IsAllowed(path) {
				fmt.Printf("allowed: %s\n", path)
			} else {
				fmt.Printf("disallowed: %s\n", path)
			}
			if delay, ok := r.CrawlDelay(); ok {
				fmt.Printf("crawl-delay: %s\n", delay)
			}
			for _, sm := range r.Sitemaps() {
				fmt.Printf("sitemap: %s\n", sm)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userAgent, "user-agent", "*", "user agent to resolve the applicable robots.txt block for")
	return cmd
}
