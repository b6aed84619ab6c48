// Command searchcore is the entry point for the search engine CLI and
// server, generalizing the teacher's cmd/embeddingsearch/main.go flag-based
// main into a cobra command tree with search/optic-lint/serve/bench
// subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/searchcore/engine/internal/logging"
)

var (
	logStyle string
	logLevel string
)

func main() {
	root := &cobra.Command{
		Use:   "searchcore",
		Short: "searchcore — query parsing, optic rules, and ranking over a local index",
	}
	root.PersistentFlags().StringVar(&logStyle, "log-style", "terminal", "log output style: terminal, json, noop")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "minimum log level: debug, info, warn, error")

	root.AddCommand(
		searchCmd(),
		opticLintCmd(),
		serveCmd(),
		benchCmd(),
		robotsCheckCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *logging.Config {
	return &logging.Config{Style: logging.Style(logStyle), Level: logging.Level(logLevel)}
}
