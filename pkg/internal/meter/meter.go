// Package meter tracks the counters of one job run and samples host resource usage.
package meter

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/joeydtaylor/exametl/pkg/internal/types"
	"github.com/joeydtaylor/exametl/pkg/internal/utils"
)

// HostSampler returns a utilization percentage in [0, 100].
type HostSampler func() (float64, error)

// Meter is a types.Meter safe for concurrent use.
type Meter struct {
	componentMetadata types.ComponentMetadata

	mu          sync.Mutex
	counts      map[string]*uint64
	percentages map[string]float64
	metricNames []string
	startTime   time.Time

	ramSampler HostSampler
	cpuSampler HostSampler
}

// NewMeter creates a meter whose clock starts now.
func NewMeter(options ...types.Option[*Meter]) *Meter {
	m := &Meter{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "METER",
		},
		counts:      make(map[string]*uint64),
		percentages: make(map[string]float64),
		startTime:   time.Now(),
		ramSampler:  virtualMemoryPercent,
		cpuSampler:  cpuPercent,
	}
	m.initializeMetrics()
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *Meter) initializeMetrics() {
	for _, name := range []string{
		types.MetricLinesRead,
		types.MetricRecordsFiltered,
		types.MetricRecordsWritten,
		types.MetricChunksCommitted,
		types.MetricChunksRolledBack,
		types.MetricErrors,
	} {
		m.ensureCounter(name)
	}
}

func virtualMemoryPercent() (float64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.UsedPercent, nil
}

// cpuPercent reports usage since the previous call without blocking.
func cpuPercent() (float64, error) {
	p, err := cpu.Percent(0, false)
	if err != nil || len(p) == 0 {
		return 0, err
	}
	return p[0], nil
}

func (m *Meter) ensureCounter(name string) *uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.counts[name]; ok {
		return c
	}
	c := new(uint64)
	m.counts[name] = c
	m.metricNames = append(m.metricNames, name)
	return c
}

// IncrementCount adds one to a counter.
func (m *Meter) IncrementCount(name string) {
	atomic.AddUint64(m.ensureCounter(name), 1)
}

// AddCount adds delta to a counter.
func (m *Meter) AddCount(name string, delta uint64) {
	atomic.AddUint64(m.ensureCounter(name), delta)
}

// GetMetricCount returns the current value of a counter.
func (m *Meter) GetMetricCount(name string) uint64 {
	m.mu.Lock()
	c, ok := m.counts[name]
	m.mu.Unlock()
	if !ok {
		return 0
	}
	return atomic.LoadUint64(c)
}

// SampleHost records peak RAM and CPU usage. Sampling errors are ignored.
func (m *Meter) SampleHost() {
	if m.ramSampler != nil {
		if v, err := m.ramSampler(); err == nil {
			m.setPeakPercentage(types.MetricPeakRamPercentage, v)
		}
	}
	if m.cpuSampler != nil {
		if v, err := m.cpuSampler(); err == nil {
			m.setPeakPercentage(types.MetricPeakCpuPercentage, v)
		}
	}
}

func (m *Meter) setPeakPercentage(name string, v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v > m.percentages[name] {
		m.percentages[name] = v
	}
}

// GetMetricPercentage returns a percentage metric, zero if never sampled.
func (m *Meter) GetMetricPercentage(name string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.percentages[name]
}

// Elapsed returns the time since the meter was created.
func (m *Meter) Elapsed() time.Duration {
	return time.Since(m.startTime)
}

// Snapshot returns a copy of every counter.
func (m *Meter) Snapshot() map[string]uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]uint64, len(m.counts))
	for name, c := range m.counts {
		out[name] = atomic.LoadUint64(c)
	}
	return out
}

// GetComponentMetadata returns the metadata.
func (m *Meter) GetComponentMetadata() types.ComponentMetadata {
	return m.componentMetadata
}

// ReportSummary logs every counter, the peak host usage and the elapsed time at info level.
func (m *Meter) ReportSummary(logger types.Logger, keysAndValues ...interface{}) {
	if logger == nil {
		return
	}
	kv := append([]interface{}{
		"component", m.componentMetadata,
		"event", "Summary",
		"result", "SUCCESS",
	}, keysAndValues...)

	m.mu.Lock()
	names := append([]string(nil), m.metricNames...)
	m.mu.Unlock()
	for _, name := range names {
		kv = append(kv, name, m.GetMetricCount(name))
	}
	kv = append(kv,
		types.MetricPeakRamPercentage, m.GetMetricPercentage(types.MetricPeakRamPercentage),
		types.MetricPeakCpuPercentage, m.GetMetricPercentage(types.MetricPeakCpuPercentage),
		"elapsed", m.Elapsed().String(),
	)
	logger.Info("Job summary", kv...)
}
