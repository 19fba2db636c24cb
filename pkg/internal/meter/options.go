package meter

import "github.com/joeydtaylor/exametl/pkg/internal/types"

// WithRamSampler replaces the host memory sampler. Nil disables sampling.
func WithRamSampler(s HostSampler) types.Option[*Meter] {
	return func(m *Meter) {
		m.ramSampler = s
	}
}

// WithCpuSampler replaces the host CPU sampler. Nil disables sampling.
func WithCpuSampler(s HostSampler) types.Option[*Meter] {
	return func(m *Meter) {
		m.cpuSampler = s
	}
}

// WithComponentMetadata overrides the name and ID.
func WithComponentMetadata(name string, id string) types.Option[*Meter] {
	return func(m *Meter) {
		m.componentMetadata.Name = name
		m.componentMetadata.ID = id
	}
}
