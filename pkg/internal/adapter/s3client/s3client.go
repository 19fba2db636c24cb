// Package s3client publishes finalized result documents to Amazon S3 or an S3-compatible store.
package s3client

import (
	"context"
	"sync"

	s3api "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/joeydtaylor/exametl/pkg/internal/types"
	"github.com/joeydtaylor/exametl/pkg/internal/utils"
)

// DefaultPrefixTemplate places documents under a date-partitioned prefix.
const DefaultPrefixTemplate = "exam-results/{yyyy}/{MM}/{dd}/"

// Server-side encryption modes.
const (
	SSENone   = ""
	SSEAES256 = "AES256"
	SSEKMS    = "aws:kms"
)

// PutObjectAPI is the subset of *s3.Client used by the publisher.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3api.PutObjectInput, optFns ...func(*s3api.Options)) (*s3api.PutObjectOutput, error)
}

// Publisher uploads the output document of a successful run. It implements types.Publisher.
type Publisher struct {
	componentMetadata types.ComponentMetadata
	cli               PutObjectAPI
	bucket            string
	prefixTemplate    string
	sseMode           string
	kmsKey            string
	maxAttempts       int

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// NewPublisher creates a publisher writing into bucket.
func NewPublisher(cli PutObjectAPI, bucket string, options ...types.Option[*Publisher]) *Publisher {
	p := &Publisher{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "S3_PUBLISHER",
		},
		cli:            cli,
		bucket:         bucket,
		prefixTemplate: DefaultPrefixTemplate,
		maxAttempts:    defaultMaxAttempts,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Name identifies the publisher in errors and logs.
func (p *Publisher) Name() string { return "s3" }

// Bucket returns the destination bucket.
func (p *Publisher) Bucket() string { return p.bucket }

// GetComponentMetadata returns the metadata.
func (p *Publisher) GetComponentMetadata() types.ComponentMetadata {
	return p.componentMetadata
}
