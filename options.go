package tilego

import (
	"log/slog"

	"github.com/hupe1980/tilego/codec"
	"github.com/hupe1980/tilego/tilestore"
)

type options struct {
	codec            codec.Codec
	compressor       tilestore.Compressor
	promoteID        string
	metricsCollector MetricsCollector
	logger           *Logger
	store            tilestore.Store
}

// Option configures Source constructor behavior.
type Option func(*options)

// WithCodec configures the codec used for encoding snapshots.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompressor configures the compressor used for snapshot payloads.
// Pass nil to disable compression.
func WithCompressor(c tilestore.Compressor) Option {
	return func(o *options) {
		o.compressor = c
	}
}

// WithPromoteID configures the property key feature identifiers are
// promoted from. When set, the value of that property is used as the
// feature id instead of the feature's intrinsic id.
//
// Matches the promoteId behavior of GeoJSON sources in map styles.
func WithPromoteID(key string) Option {
	return func(o *options) {
		o.promoteID = key
	}
}

// WithStore configures a tile store for snapshots. Without a store,
// Snapshot and Restore are unavailable.
func WithStore(store tilestore.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &tilego.BasicMetricsCollector{}
//	src := tilego.NewSource(tilego.WithMetricsCollector(metrics))
//	// ... use src ...
//	stats := metrics.GetStats()
//	fmt.Printf("Updates: %d, Avg latency: %dns\n", stats.UpdateCount, stats.UpdateAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := tilego.NewJSONLogger(slog.LevelInfo)
//	src := tilego.NewSource(tilego.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
