package main

import (
	"fmt"

	"github.com/spf13/cobra"

	xpath "github.com/oxhq/xpathlang"
	"github.com/oxhq/xpathlang/internal/xhost"
)

func newEvaluateCmd() *cobra.Command {
	var context string

	cmd := &cobra.Command{
		Use:   "evaluate <expression>",
		Short: "Evaluate an XPath expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions()
			if err != nil {
				return fail(cmd, err)
			}

			docs, collections, closeStore, err := loadDocumentSources(flags.docstore, flags.collections)
			if err != nil {
				return fail(cmd, err)
			}
			defer closeStore()
			opts.Documents = docs
			opts.Collections = collections

			var contextNode xhost.Node
			if context != "" {
				node, ok := docs[context]
				if !ok {
					return fail(cmd, CLIError{Code: errInvalidConfig, Message: fmt.Sprintf("no document named %q registered in --docstore", context)})
				}
				contextNode = node
			}

			v, err := xpath.Evaluate(args[0], contextNode, opts)
			if err != nil {
				return fail(cmd, wrap(errEvalFailed, "evaluating expression", err))
			}

			if flags.jsonOutput {
				printJSON(cmd.OutOrStdout(), map[string]any{"result": renderSequence(v)})
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSequence(v))
			return nil
		},
	}

	cmd.Flags().StringVar(&context, "context", "", "document name (from --docstore) to use as the context node")
	return cmd
}

// buildOptions assembles the xpath.Options common to every subcommand from
// the root command's persistent flags.
func buildOptions() (xpath.Options, error) {
	version, err := parseVersion(flags.version)
	if err != nil {
		return xpath.Options{}, CLIError{Code: errInvalidVersion, Message: err.Error()}
	}
	namespaces, err := parseNamespaces(flags.namespaces)
	if err != nil {
		return xpath.Options{}, CLIError{Code: errInvalidConfig, Message: err.Error()}
	}
	return xpath.Options{
		Version:          version,
		Namespaces:       namespaces,
		DefaultCollation: flags.collation,
	}, nil
}
