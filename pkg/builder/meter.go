package builder

import (
	"github.com/joeydtaylor/exametl/pkg/internal/meter"
	"github.com/joeydtaylor/exametl/pkg/internal/types"
)

// MetricName is a type alias for metric names used in the Meter.
type MetricName string

// Here we re-export the constants from the types package
const (
	MetricLinesRead         MetricName = MetricName(types.MetricLinesRead)
	MetricRecordsFiltered   MetricName = MetricName(types.MetricRecordsFiltered)
	MetricRecordsWritten    MetricName = MetricName(types.MetricRecordsWritten)
	MetricChunksCommitted   MetricName = MetricName(types.MetricChunksCommitted)
	MetricChunksRolledBack  MetricName = MetricName(types.MetricChunksRolledBack)
	MetricErrors            MetricName = MetricName(types.MetricErrors)
	MetricPeakRamPercentage MetricName = MetricName(types.MetricPeakRamPercentage)
	MetricPeakCpuPercentage MetricName = MetricName(types.MetricPeakCpuPercentage)
)

type HostSampler = meter.HostSampler

// NewMeter creates a run meter.
func NewMeter(options ...types.Option[*meter.Meter]) *meter.Meter {
	return meter.NewMeter(options...)
}

// MeterWithRamSampler replaces the gopsutil memory sampler.
func MeterWithRamSampler(s HostSampler) types.Option[*meter.Meter] {
	return meter.WithRamSampler(s)
}

// MeterWithCpuSampler replaces the gopsutil CPU sampler.
func MeterWithCpuSampler(s HostSampler) types.Option[*meter.Meter] {
	return meter.WithCpuSampler(s)
}

// MeterWithComponentMetadata overrides name and ID.
func MeterWithComponentMetadata(name string, id string) types.Option[*meter.Meter] {
	return meter.WithComponentMetadata(name, id)
}
