package tilego

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    updateCounter   prometheus.Counter
//	    commitHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordUpdate(duration time.Duration, err error) {
//	    p.updateCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordSetData is called after each full data replacement.
	// features is the working-set size after the replacement.
	RecordSetData(features int, duration time.Duration)

	// RecordUpdate is called after each diff submission.
	// err is nil if the diff was accepted.
	RecordUpdate(duration time.Duration, err error)

	// RecordCommit is called after each diff application.
	// features is the working-set size after the commit.
	RecordCommit(features int, duration time.Duration, err error)

	// RecordQuery is called after each spatial tile query run through
	// TileSet.TilesIn. results is the number of tiles hit.
	RecordQuery(results int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSetData(int, time.Duration)       {}
func (NoopMetricsCollector) RecordUpdate(time.Duration, error)      {}
func (NoopMetricsCollector) RecordCommit(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordQuery(int, time.Duration)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SetDataCount     atomic.Int64
	UpdateCount      atomic.Int64
	UpdateErrors     atomic.Int64
	UpdateTotalNanos atomic.Int64
	CommitCount      atomic.Int64
	CommitErrors     atomic.Int64
	CommitTotalNanos atomic.Int64
	QueryCount       atomic.Int64
	QueryResults     atomic.Int64
	QueryTotalNanos  atomic.Int64
}

// RecordSetData implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSetData(features int, duration time.Duration) {
	b.SetDataCount.Add(1)
}

// RecordUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdate(duration time.Duration, err error) {
	b.UpdateCount.Add(1)
	b.UpdateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.UpdateErrors.Add(1)
	}
}

// RecordCommit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCommit(features int, duration time.Duration, err error) {
	b.CommitCount.Add(1)
	b.CommitTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CommitErrors.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(results int, duration time.Duration) {
	b.QueryCount.Add(1)
	b.QueryResults.Add(int64(results))
	b.QueryTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SetDataCount:   b.SetDataCount.Load(),
		UpdateCount:    b.UpdateCount.Load(),
		UpdateErrors:   b.UpdateErrors.Load(),
		UpdateAvgNanos: avgNanos(b.UpdateTotalNanos.Load(), b.UpdateCount.Load()),
		CommitCount:    b.CommitCount.Load(),
		CommitErrors:   b.CommitErrors.Load(),
		CommitAvgNanos: avgNanos(b.CommitTotalNanos.Load(), b.CommitCount.Load()),
		QueryCount:     b.QueryCount.Load(),
		QueryResults:   b.QueryResults.Load(),
		QueryAvgNanos:  avgNanos(b.QueryTotalNanos.Load(), b.QueryCount.Load()),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SetDataCount   int64
	UpdateCount    int64
	UpdateErrors   int64
	UpdateAvgNanos int64
	CommitCount    int64
	CommitErrors   int64
	CommitAvgNanos int64
	QueryCount     int64
	QueryResults   int64
	QueryAvgNanos  int64
}
