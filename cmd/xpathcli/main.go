// Command xpathcli is a Cobra-based query runner over this module's XPath
// engine (SPEC_FULL.md's CLI component): evaluate, parse, explain
// (streamability), and lint (static warnings) subcommands, all sharing a
// common set of persistent flags for version, namespaces, and the demo
// document store.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var flags struct {
	version     string
	namespaces  []string
	collation   string
	docstore    string
	collections []string
	jsonOutput  bool
}

func main() {
	loadEnvDefaults()

	root := &cobra.Command{
		Use:   "xpathcli",
		Short: "Evaluate, parse, and analyze XPath expressions",
		Long:  "xpathcli is a command-line runner for the XPath 1.0-3.1 engine in this module.",
	}

	var pf *pflag.FlagSet = root.PersistentFlags()
	pf.StringVar(&flags.version, "version", envDefault("XPATH_VERSION", "3.1"), "XPath version: 1.0, 2.0, 3.0, or 3.1")
	pf.StringArrayVar(&flags.namespaces, "ns", nil, "namespace binding prefix=uri (repeatable)")
	pf.StringVar(&flags.collation, "collation", envDefault("XPATH_DEFAULT_COLLATION", ""), "default collation URI")
	pf.StringVar(&flags.docstore, "docstore", envDefault("XPATH_DOCSTORE", ""), "path to a demo document store (sqlite file)")
	pf.StringArrayVar(&flags.collections, "collection", nil, "fn:collection glob pattern to resolve via --docstore (repeatable)")
	pf.BoolVar(&flags.jsonOutput, "json", false, "emit machine-readable JSON output")

	root.AddCommand(newEvaluateCmd(), newParseCmd(), newExplainCmd(), newLintCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func fail(cmd *cobra.Command, err error) error {
	printFatal(err, flags.jsonOutput)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return err
}

