package s3client

import (
	"strings"

	"github.com/joeydtaylor/exametl/pkg/internal/types"
)

// WithPrefixTemplate sets the key prefix. Supported tokens: {yyyy} {MM} {dd} {HH} {mm} {ts} {runId} {job}.
func WithPrefixTemplate(tmpl string) types.Option[*Publisher] {
	return func(p *Publisher) {
		p.prefixTemplate = tmpl
	}
}

// WithSSE selects server-side encryption. kmsKey is only used with aws:kms.
func WithSSE(mode, kmsKey string) types.Option[*Publisher] {
	return func(p *Publisher) {
		switch strings.ToLower(strings.TrimSpace(mode)) {
		case "aes256":
			p.sseMode = SSEAES256
		case "aws:kms", "kms":
			p.sseMode = SSEKMS
			p.kmsKey = kmsKey
		default:
			p.sseMode = SSENone
		}
	}
}

// WithMaxAttempts bounds PutObject retries.
func WithMaxAttempts(n int) types.Option[*Publisher] {
	return func(p *Publisher) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// WithLogger attaches loggers.
func WithLogger(loggers ...types.Logger) types.Option[*Publisher] {
	return func(p *Publisher) {
		p.ConnectLogger(loggers...)
	}
}

// WithComponentMetadata overrides name and ID.
func WithComponentMetadata(name string, id string) types.Option[*Publisher] {
	return func(p *Publisher) {
		if name != "" {
			p.componentMetadata.Name = name
		}
		if id != "" {
			p.componentMetadata.ID = id
		}
	}
}
