package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/searchcore/engine/internal/errs"
	"github.com/searchcore/engine/internal/logging"
	"github.com/searchcore/engine/internal/optic"
	"github.com/searchcore/engine/internal/searcher"
	"github.com/searchcore/engine/pkg/model"
)

// searchCmd runs one query against a local segment directory, mirroring the
// teacher's -json/-platform flags as -json/-explain/-optic/-region.
func searchCmd() *cobra.Command {
	var (
		indexDir     string
		indexURL     string
		manifestName string
		jsonOutput   bool
		explain      bool
		opticFile    string
		region       uint32
		numResults   int
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Run one query against a local segment directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.Must(*newLogger())
			defer logger.Sync()
			reqID := uuid.New().String()
			logger = logger.With(zap.String("request_id", reqID))

			ctx := context.Background()
			dir, err := ensureIndexDir(ctx, indexDir, indexURL, manifestName, logger)
			if err != nil {
				return err
			}

			segments, err := loadSegments(dir, false, logger)
			if err != nil {
				return err
			}

			q := model.SearchQuery{
				Query:      strings.Join(args, " "),
				NumResults: numResults,
			}
			if region != 0 {
				r := model.Region(region)
				q.SelectedRegion = &r
			}
			if opticFile != "" {
				src, err := os.ReadFile(opticFile)
				if err != nil {
					return fmt.Errorf("read optic file: %w", err)
				}
				o, err := optic.ParseCached(string(src))
				if err != nil {
					return reportOpticError(err)
				}
				q.Optic = &o
			}

			s := searcher.New(segments)
			res, err := s.Search(ctx, q)
			if err != nil {
				return reportInputError(err)
			}

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(res)
			}
			printResult(res, explain)
			return nil
		},
	}

	cmd.Flags().StringVar(&indexDir, "index", ".", "directory of segment bundles")
	cmd.Flags().StringVar(&indexURL, "index-url", "", "fetch a segment bundle archive (.tar.gz) from this URL into --index first")
	cmd.Flags().StringVar(&manifestName, "manifest", "segment.json", "manifest filename expected inside the fetched archive")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output results as JSON")
	cmd.Flags().BoolVar(&explain, "explain", false, "print the score explanation for each result")
	cmd.Flags().StringVar(&opticFile, "optic", "", "path to an optic program to apply")
	cmd.Flags().Uint32Var(&region, "region", 0, "preferred result region code")
	cmd.Flags().IntVar(&numResults, "num", 0, "number of results (0 = server default)")
	return cmd
}

func printResult(res model.SearchResult, explain bool) {
	if len(res.Webpages) == 0 {
		fmt.Println("No matches found")
	}
	for i, wp := range res.Webpages {
		fmt.Printf("%d. %s\n   %s\n   score=%.4f\n", i+1, wp.Title, wp.Url, wp.Score)
		if explain && wp.Explanation != "" {
			fmt.Printf("   %s\n", wp.Explanation)
		}
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if res.Partial {
		fmt.Fprintln(os.Stderr, "result is partial")
	}
}

// reportInputError formats a classified input error the way spec §7's
// {code, message, position} structure expects, regardless of whether the
// caller is the CLI or the HTTP server.
func reportInputError(err error) error {
	if errs.Classify(err) != errs.ClassInput {
		return err
	}
	s := errs.ToStructured(err)
	if s.Position != nil {
		return fmt.Errorf("%s: %s (at %d:%d)", s.Code, s.Message, s.Position.Line, s.Position.Col)
	}
	return fmt.Errorf("%s: %s", s.Code, s.Message)
}

func reportOpticError(err error) error {
	return reportInputError(err)
}
