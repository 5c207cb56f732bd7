package series

import "log"

// Sink receives diagnostic events from the pipeline stages. The stages
// themselves never write to process-wide output, so callers decide where
// diagnostics go and tests can capture them.
type Sink func(event string, fields map[string]any)

// NopSink discards diagnostics.
func NopSink(string, map[string]any) {}

// LogSink forwards diagnostics to the standard logger.
func LogSink(event string, fields map[string]any) {
	log.Printf("series: %s %v", event, fields)
}

func orNop(sink Sink) Sink {
	if sink == nil {
		return NopSink
	}
	return sink
}
