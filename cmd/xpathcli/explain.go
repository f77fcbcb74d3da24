package main

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	xpath "github.com/oxhq/xpathlang"
	"github.com/oxhq/xpathlang/internal/stream"
)

func newExplainCmd() *cobra.Command {
	var showDiff bool
	var diffContext int

	cmd := &cobra.Command{
		Use:   "explain <expression>",
		Short: "Report an expression's XSLT 3.0 streamability classification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expression := args[0]
			opts, err := buildOptions()
			if err != nil {
				return fail(cmd, err)
			}

			node, err := xpath.Parse(expression, opts)
			if err != nil {
				return fail(cmd, wrap(errParseFailed, "parsing expression", err))
			}

			class := stream.Analyze(node)
			out := cmd.OutOrStdout()

			if flags.jsonOutput {
				report := map[string]any{
					"posture":         class.Posture.String(),
					"sweep":           class.Sweep.String(),
					"streamable":      class.Streamable,
					"memoryFootprint": class.MemoryFootprint,
					"reason":          class.Reason,
				}
				if showDiff {
					report["diff"] = unifiedDiff(expression, node.String(), diffContext)
				}
				printJSON(out, report)
				return nil
			}

			fmt.Fprintf(out, "posture: %s\n", class.Posture)
			fmt.Fprintf(out, "sweep: %s\n", class.Sweep)
			fmt.Fprintf(out, "streamable: %t\n", class.Streamable)
			fmt.Fprintf(out, "memory footprint: %.2f\n", class.MemoryFootprint)
			if class.Reason != "" {
				fmt.Fprintf(out, "reason: %s\n", class.Reason)
			}
			if showDiff {
				d := unifiedDiff(expression, node.String(), diffContext)
				if d != "" {
					fmt.Fprint(out, d)
				} else {
					fmt.Fprintln(out, "(canonical form matches input exactly)")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showDiff, "diff", false, "unified-diff the canonical String() form against the input")
	cmd.Flags().IntVar(&diffContext, "diff-context", 3, "lines of context around each diff hunk")
	return cmd
}

// unifiedDiff renders the line-based unified diff between an expression's
// original source and its canonical (re-serialized) form, used by `explain
// --diff` to surface round-trip drift.
func unifiedDiff(orig, canonical string, context int) string {
	if orig == canonical {
		return ""
	}
	d := difflib.UnifiedDiff{
		A:        difflib.SplitLines(orig),
		B:        difflib.SplitLines(canonical),
		FromFile: "input",
		ToFile:   "canonical",
		Context:  context,
	}
	text, err := difflib.GetUnifiedDiffString(d)
	if err != nil {
		return fmt.Sprintf("(diff error: %v)", err)
	}
	return strings.TrimRight(text, "\n") + "\n"
}
