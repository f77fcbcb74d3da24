// Package warn implements the structured diagnostic collector consumed by
// the parser and static-analysis layers: deprecation and compatibility
// notices that never abort evaluation, only accumulate for the caller to
// drain (spec.md §4.8).
package warn

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Severity classifies how serious a warning is.
type Severity string

const (
	SeverityInfo        Severity = "info"
	SeverityWarning     Severity = "warning"
	SeverityDeprecation Severity = "deprecation"
)

var severityRank = map[Severity]int{
	SeverityInfo:        0,
	SeverityWarning:     1,
	SeverityDeprecation: 2,
}

// Category classifies the kind of concern a warning raises.
type Category string

const (
	CategoryDeprecation    Category = "deprecation"
	CategoryCompatibility  Category = "compatibility"
	CategoryTypeCoercion   Category = "type-coercion"
	CategoryBehaviorChange Category = "behavior-change"
	CategoryPerformance    Category = "performance"
)

// Warning is one structured diagnostic record.
type Warning struct {
	Code          string
	Message       string
	Severity      Severity
	Category      Category
	Context       map[string]any
	Migration     string
	SpecReference string
}

// Meta describes a known warning code's default shape, used to synthesize
// Message/Severity/Category when emit is called with just a code.
type Meta struct {
	Message       string
	Severity      Severity
	Category      Category
	Migration     string
	SpecReference string
}

// registry indexes the known codes: XPWD0001 (deprecation) and XPWC0001
// (compatibility). Emit gives any other code the message "Unknown warning".
var registry = map[string]Meta{
	"XPWD0001": {
		Message:       "the namespace:: axis is deprecated in XPath 2.0 and later",
		Severity:      SeverityDeprecation,
		Category:      CategoryDeprecation,
		Migration:     "use in-scope-prefixes()/namespace-uri-for-prefix() instead",
		SpecReference: "XPath 2.0 §3.2.1.1",
	},
	"XPWC0001": {
		Message:       "xpath10CompatibilityMode changes numeric and boolean coercion behavior",
		Severity:      SeverityWarning,
		Category:      CategoryCompatibility,
		SpecReference: "XPath 2.0 §C.2",
	},
}

// Lookup returns the known metadata for code, if any.
func Lookup(code string) (Meta, bool) {
	m, ok := registry[code]
	return m, ok
}

// Config holds the collector's filtering policy.
type Config struct {
	Enabled            bool
	MinSeverity        Severity
	SuppressCodes      map[string]bool
	SuppressCategories map[Category]bool
	EmitOnce           bool
	MaxWarnings        int
	Handler            func(Warning)
}

// DefaultConfig returns a permissive configuration: enabled, no suppression,
// no cap, no custom handler.
func DefaultConfig() Config {
	return Config{Enabled: true, MinSeverity: SeverityInfo}
}

// Collector accumulates warnings subject to Config's filtering policy. The
// zero value is not usable; construct with New or NewNoop.
type Collector interface {
	Emit(code string, context map[string]any)
	EmitCustom(w Warning)
	All() []Warning
	BySeverity(s Severity) []Warning
	ByCategory(c Category) []Warning
	FormatReport() string
}

type collector struct {
	mu       sync.Mutex
	cfg      Config
	warnings []Warning
	seen     map[string]bool
}

// New builds a Collector governed by cfg.
func New(cfg Config) Collector {
	return &collector{cfg: cfg, seen: make(map[string]bool)}
}

// NewNoop returns a Collector that drops every emission; used as the
// default when a caller supplies no warning sink.
func NewNoop() Collector {
	return &collector{cfg: Config{Enabled: false}}
}

func (c *collector) Emit(code string, context map[string]any) {
	meta, known := registry[code]
	w := Warning{Code: code, Context: context}
	if known {
		w.Message = meta.Message
		w.Severity = meta.Severity
		w.Category = meta.Category
		w.Migration = meta.Migration
		w.SpecReference = meta.SpecReference
	} else {
		w.Message = "Unknown warning"
		w.Severity = SeverityWarning
	}
	c.EmitCustom(w)
}

func (c *collector) EmitCustom(w Warning) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.cfg.Enabled {
		return
	}
	if severityRank[w.Severity] < severityRank[c.cfg.MinSeverity] {
		return
	}
	if c.cfg.SuppressCodes[w.Code] {
		return
	}
	if c.cfg.SuppressCategories[w.Category] {
		return
	}
	if c.cfg.EmitOnce {
		if c.seen[w.Code] {
			return
		}
		c.seen[w.Code] = true
	}
	if c.cfg.MaxWarnings > 0 && len(c.warnings) >= c.cfg.MaxWarnings {
		return
	}

	c.warnings = append(c.warnings, w)
	if c.cfg.Handler != nil {
		c.cfg.Handler(w)
	}
}

func (c *collector) All() []Warning {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Warning, len(c.warnings))
	copy(out, c.warnings)
	return out
}

func (c *collector) BySeverity(s Severity) []Warning {
	var out []Warning
	for _, w := range c.All() {
		if w.Severity == s {
			out = append(out, w)
		}
	}
	return out
}

func (c *collector) ByCategory(cat Category) []Warning {
	var out []Warning
	for _, w := range c.All() {
		if w.Category == cat {
			out = append(out, w)
		}
	}
	return out
}

func (c *collector) FormatReport() string {
	all := c.All()
	if len(all) == 0 {
		return "no warnings"
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	var b strings.Builder
	for _, w := range all {
		fmt.Fprintf(&b, "[%s] %s: %s", w.Severity, w.Code, w.Message)
		if w.Migration != "" {
			fmt.Fprintf(&b, " (migration: %s)", w.Migration)
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
