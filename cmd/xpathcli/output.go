package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/oxhq/xpathlang/internal/xvalue"
)

// printFatal reports err the way PrintFatal does in the teacher's
// internal/config/output.go: JSON-shaped when jsonOut is set, a plain
// "Error: %v" line on stderr otherwise. The core library itself never
// logs (SPEC_FULL.md's AMBIENT STACK note); only this CLI layer does.
func printFatal(err error, jsonOut bool) {
	if jsonOut {
		var ce CLIError
		if e, ok := err.(CLIError); ok {
			ce = e
		} else {
			ce = CLIError{Code: "ERR_UNKNOWN", Message: err.Error()}
		}
		fmt.Println(ce.JSON())
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// renderSequence prints v's items one per line, the way a query runner's
// result listing would: nodes render by name and text, atomics by their
// raw Go value.
func renderSequence(v xvalue.Value) string {
	seq := xvalue.AsSequence(v)
	if len(seq) == 0 {
		return "(empty sequence)"
	}
	var out string
	for i, item := range seq {
		if i > 0 {
			out += "\n"
		}
		out += renderItem(item)
	}
	return out
}

func renderItem(v xvalue.Value) string {
	switch t := v.(type) {
	case xvalue.NodeValue:
		return fmt.Sprintf("%s: %s", t.Node.NodeName(), t.Node.TextContent())
	case xvalue.Atomic:
		return fmt.Sprintf("%v", t.Raw)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func printJSON(w io.Writer, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting result to JSON: %v\n", err)
		return
	}
	fmt.Fprintln(w, string(b))
}
