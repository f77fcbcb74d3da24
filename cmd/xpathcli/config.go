package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	xpath "github.com/oxhq/xpathlang"
)

// loadEnvDefaults sources XPATH_* defaults from an optional .env file in
// the working directory, the way the teacher's CLI layer is described as
// doing in SPEC_FULL.md's AMBIENT STACK section. A missing .env is not an
// error. godotenv.Load never overrides variables already set in the
// environment, and the values it loads only become flag defaults through
// envDefault, so explicitly passed flags still take precedence.
func loadEnvDefaults() {
	_ = godotenv.Load()
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseVersion maps a CLI-friendly version string to xpath.Version.
func parseVersion(s string) (xpath.Version, error) {
	switch strings.TrimSpace(s) {
	case "1.0":
		return xpath.V1_0, nil
	case "2.0":
		return xpath.V2_0, nil
	case "3.0":
		return xpath.V3_0, nil
	case "3.1", "":
		return xpath.V3_1, nil
	default:
		return 0, fmt.Errorf("unrecognized version %q (want one of 1.0, 2.0, 3.0, 3.1)", s)
	}
}

// parseNamespaces parses repeated --ns prefix=uri flags into a table.
func parseNamespaces(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		prefix, uri, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --ns value %q (want prefix=uri)", p)
		}
		out[prefix] = uri
	}
	return out, nil
}
