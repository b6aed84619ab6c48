package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/searchcore/engine/internal/errs"
	"github.com/searchcore/engine/internal/optic"
)

// opticLintCmd parses an optic program without running it, reporting a
// structured OpticParse{line,col,msg} on failure (spec §2.15, §7).
func opticLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "optic-lint [file]",
		Short: "Parse an optic program and report syntax errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			o, err := optic.Parse(string(src))
			if err != nil {
				s := errs.ToStructured(err)
				if s.Position != nil {
					fmt.Printf("%s: %s at %d:%d\n", s.Code, s.Message, s.Position.Line, s.Position.Col)
				} else {
					fmt.Printf("%s: %s\n", s.Code, s.Message)
				}
				return fmt.Errorf("optic-lint: %s failed", args[0])
			}

			fmt.Printf("ok: %d rule(s), discard_non_matching=%v\n", len(o.Rules), o.DiscardNonMatching)
			return nil
		},
	}
}
