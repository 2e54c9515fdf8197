package render

import "github.com/rs/zerolog"

// Sink receives invalidation events from a view. Calls are fire and
// forget: Reset drops any cached picture of the view, Repaint asks for
// the view to be drawn again.
type Sink interface {
	Reset(reason string)
	Repaint(reason string)
}

// NopSink ignores every event
type NopSink struct{}

func (NopSink) Reset(string)   {}
func (NopSink) Repaint(string) {}

// LogSink logs events at debug level and counts them
type LogSink struct {
	Logger   zerolog.Logger
	Resets   int
	Repaints int
}

// NewLogSink creates a sink writing to logger
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{Logger: logger}
}

// Reset logs a reset request
func (s *LogSink) Reset(reason string) {
	s.Resets++
	s.Logger.Debug().Str("reason", reason).Msg("reset")
}

// Repaint logs a repaint request
func (s *LogSink) Repaint(reason string) {
	s.Repaints++
	s.Logger.Debug().Str("reason", reason).Msg("repaint")
}
