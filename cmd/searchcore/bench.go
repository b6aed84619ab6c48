package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/searchcore/engine/internal/logging"
	"github.com/searchcore/engine/internal/searcher"
	"github.com/searchcore/engine/pkg/model"
)

// benchCmd loads a fixture index and times N repetitions of a query,
// retaining the spirit of the teacher's "setup" subcommand (pre-warm
// caches) but targeting segment bundles rather than embedding DBs.
func benchCmd() *cobra.Command {
	var (
		indexDir string
		query    string
		reps     int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time N repetitions of a query against a local index",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.Must(*newLogger())
			defer logger.Sync()

			segments, err := loadSegments(indexDir, true, logger)
			if err != nil {
				return err
			}
			s := searcher.New(segments)

			// Warm the segment's binary/in-memory caches before timing, the
			// same distinction the teacher's "setup" flag draws between a
			// cold and warmed-up run.
			if _, err := s.Search(context.Background(), model.SearchQuery{Query: query}); err != nil {
				return fmt.Errorf("warmup query failed: %w", err)
			}

			start := time.Now()
			for i := 0; i < reps; i++ {
				if _, err := s.Search(context.Background(), model.SearchQuery{Query: query}); err != nil {
					return fmt.Errorf("query %d failed: %w", i, err)
				}
			}
			elapsed := time.Since(start)

			fmt.Printf("%d queries in %s (%s/query)\n", reps, elapsed, elapsed/time.Duration(reps))
			return nil
		},
	}

	cmd.Flags().StringVar(&indexDir, "index", ".", "directory of segment bundles")
	cmd.Flags().StringVar(&query, "query", "", "query to repeat")
	cmd.Flags().IntVar(&reps, "reps", 100, "number of repetitions")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}
