package main

import (
	"fmt"

	"github.com/spf13/cobra"

	xpath "github.com/oxhq/xpathlang"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <expression>",
		Short: "Parse an XPath expression and print its canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions()
			if err != nil {
				return fail(cmd, err)
			}

			node, err := xpath.Parse(args[0], opts)
			if err != nil {
				return fail(cmd, wrap(errParseFailed, "parsing expression", err))
			}

			if flags.jsonOutput {
				printJSON(cmd.OutOrStdout(), map[string]any{"canonical": node.String()})
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), node.String())
			return nil
		},
	}
}
