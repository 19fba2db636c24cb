package types

import "time"

const (
	MetricLinesRead         = "lines_read_count"
	MetricRecordsFiltered   = "records_filtered_count"
	MetricRecordsWritten    = "records_written_count"
	MetricChunksCommitted   = "chunks_committed_count"
	MetricChunksRolledBack  = "chunks_rolled_back_count"
	MetricErrors            = "error_count"
	MetricPeakRamPercentage = "peak_ram_percentage"
	MetricPeakCpuPercentage = "peak_cpu_percentage"
)

// Meter accumulates run counters.
type Meter interface {
	IncrementCount(name string)
	AddCount(name string, delta uint64)
	GetMetricCount(name string) uint64
	SampleHost()
	GetMetricPercentage(name string) float64
	Elapsed() time.Duration
	Snapshot() map[string]uint64
	ReportSummary(logger Logger, keysAndValues ...interface{})
}
