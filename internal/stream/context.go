package stream

import "github.com/oxhq/xpathlang/internal/xerrors"

// Config governs a Context's buffering limits and strictness.
type Config struct {
	MaxBufferSize      int
	MaxMemoryFootprint float64
	StrictMode         bool
}

// DefaultConfig returns a generous but bounded buffer, no memory ceiling
// beyond the classification scale itself, and permissive (non-strict)
// recording of non-streamable expressions.
func DefaultConfig() Config {
	return Config{MaxBufferSize: 4096, MaxMemoryFootprint: 1.0, StrictMode: false}
}

// Stats accumulates running counters over the lifetime of a Context.
type Stats struct {
	NodesProcessed     int
	PeakBufferSize     int
	NonStreamableCount int
	MemoryUsed         float64
	Efficiency         float64 // in [0,1]; 1 means every recorded expression streamed
}

// Context is the streaming evaluation context: a bounded node Buffer plus
// running Stats, consulted by an evaluator that wants to process a
// document incrementally instead of holding it entirely in memory
// (spec.md §4.7's "streaming evaluation context").
type Context struct {
	Buffer *Buffer
	Stats  Stats
	Config Config

	recorded int
	streamed int
}

// NewContext builds a Context with the given configuration's buffer size.
func NewContext(cfg Config) *Context {
	return &Context{Buffer: NewBuffer(cfg.MaxBufferSize), Config: cfg}
}

// RecordNode folds one processed node into the running statistics,
// updating PeakBufferSize from the buffer's current occupancy.
func (c *Context) RecordNode() {
	c.Stats.NodesProcessed++
	if c.Buffer.Size() > c.Stats.PeakBufferSize {
		c.Stats.PeakBufferSize = c.Buffer.Size()
	}
}

// Record folds one expression's Classification into the running
// statistics and, in strict mode, rejects a non-streamable expression
// outright instead of merely counting it (spec.md §4.7: "in strict mode,
// recording a non-streamable expression raises an error; otherwise it is
// only counted").
func (c *Context) Record(class Classification) error {
	c.recorded++
	if class.Streamable {
		c.streamed++
	} else {
		c.Stats.NonStreamableCount++
		if c.Config.StrictMode {
			reason := class.Reason
			if reason == "" {
				reason = "expression has roaming posture"
			}
			return xerrors.New(xerrors.XTSE3430, "not streamable in strict mode: %s", reason)
		}
	}
	if class.MemoryFootprint > c.Stats.MemoryUsed {
		c.Stats.MemoryUsed = class.MemoryFootprint
	}
	if c.Config.MaxMemoryFootprint > 0 && class.MemoryFootprint > c.Config.MaxMemoryFootprint && c.Config.StrictMode {
		return xerrors.New(xerrors.XTSE3430, "memory footprint %.2f exceeds configured maximum %.2f", class.MemoryFootprint, c.Config.MaxMemoryFootprint)
	}
	c.updateEfficiency()
	return nil
}

func (c *Context) updateEfficiency() {
	if c.recorded == 0 {
		c.Stats.Efficiency = 1
		return
	}
	c.Stats.Efficiency = float64(c.streamed) / float64(c.recorded)
}
