package main

import (
	"fmt"

	"github.com/spf13/cobra"

	xpath "github.com/oxhq/xpathlang"
	"github.com/oxhq/xpathlang/internal/warn"
)

func newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <expression>",
		Short: "Parse an expression and report its static warnings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions()
			if err != nil {
				return fail(cmd, err)
			}

			collector := warn.New(warn.DefaultConfig())
			opts.Warnings = collector

			if _, err := xpath.Parse(args[0], opts); err != nil {
				return fail(cmd, wrap(errParseFailed, "parsing expression", err))
			}

			if flags.jsonOutput {
				printJSON(cmd.OutOrStdout(), map[string]any{"warnings": collector.All()})
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), collector.FormatReport())
			return nil
		},
	}
}
