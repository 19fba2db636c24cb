package builder

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/joeydtaylor/exametl/pkg/internal/adapter/s3client"
	"github.com/joeydtaylor/exametl/pkg/internal/config"
	"github.com/joeydtaylor/exametl/pkg/internal/documentsink"
	"github.com/joeydtaylor/exametl/pkg/internal/job"
	"github.com/joeydtaylor/exametl/pkg/internal/linesource"
	"github.com/joeydtaylor/exametl/pkg/internal/meter"
	"github.com/joeydtaylor/exametl/pkg/internal/recordparser"
	"github.com/joeydtaylor/exametl/pkg/internal/transformer"
	"github.com/joeydtaylor/exametl/pkg/internal/types"
)

type Config = config.Config

// FlagKeys maps launcher flag names to property keys.
var FlagKeys = config.FlagKeys

// LoadConfig resolves the job configuration from a properties file, EXAMETL_*
// environment variables and changed flags.
func LoadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	return config.Load(path, flags)
}

// ConfiguredJob is a runner assembled from a Config together with the resources it owns.
type ConfiguredJob struct {
	Runner *job.Runner
	Meter  *meter.Meter

	closers []io.Closer
}

// Run executes the job once.
func (j *ConfiguredJob) Run(ctx context.Context) *types.JobExecution {
	return j.Runner.Run(ctx)
}

// Close releases publisher and listener clients.
func (j *ConfiguredJob) Close() error {
	var errs []error
	for _, c := range j.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// BuildJob assembles every component named by cfg. logger may be nil. When cfg.LogFile
// is set a file sink is added to logger.
func BuildJob(ctx context.Context, cfg *Config, logger types.Logger) (*ConfiguredJob, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var loggers []types.Logger
	if logger != nil {
		if cfg.LogFile != "" {
			if err := logger.AddSink("file", types.SinkConfig{
				Type:   string(types.FileSink),
				Config: map[string]interface{}{"path": cfg.LogFile},
			}); err != nil {
				return nil, err
			}
		}
		loggers = append(loggers, logger)
	}

	source := linesource.NewLineSource(cfg.Origin.Name,
		linesource.WithEncoding(cfg.Origin.Encoding),
		linesource.WithLinesToSkip(cfg.Origin.LinesToSkip),
		linesource.WithLogger(loggers...),
	)

	parser, err := recordparser.NewRecordParser(
		recordparser.WithDelimiter(cfg.Origin.Delimiter),
		recordparser.WithQuote(cfg.Origin.Quote),
		recordparser.WithColumns(cfg.Origin.Columns...),
	)
	if err != nil {
		return nil, err
	}

	tr := transformer.NewRecordTransformer(transformer.WithMinScore(cfg.MinScore))

	sink := documentsink.NewDocumentSink(cfg.Target.Name,
		documentsink.WithRootTag(cfg.Target.RootTag),
		documentsink.WithRecordTag(cfg.Target.RecordTag),
		documentsink.WithIndent(cfg.Target.Indent),
		documentsink.WithCompression(cfg.Target.Compression),
		documentsink.WithLogger(loggers...),
	)

	m := meter.NewMeter()
	cj := &ConfiguredJob{Meter: m}

	opts := []types.Option[*job.Runner]{
		job.WithChunkSize(cfg.ChunkSize),
		job.WithMeter(m),
		job.WithLogger(loggers...),
	}
	if logger != nil {
		opts = append(opts, job.WithListener(job.NewLoggingListener(logger)))
	}

	if cfg.S3.Enabled() {
		cli, err := newS3ClientFromConfig(ctx, cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("s3 client: %w", err)
		}
		pubOpts := []types.Option[*s3client.Publisher]{
			S3PublisherWithSSE(cfg.S3.SSE, cfg.S3.KMSKeyID),
			S3PublisherWithLogger(loggers...),
		}
		if cfg.S3.Prefix != "" {
			pubOpts = append(pubOpts, S3PublisherWithPrefixTemplate(cfg.S3.Prefix))
		}
		opts = append(opts, job.WithPublisher(NewS3Publisher(cli, cfg.S3.Bucket, pubOpts...)))
	}

	if cfg.Kafka.Enabled() {
		listener := NewKafkaEventListener(
			NewKafkaGoWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic),
			KafkaEventListenerWithLogger(loggers...),
		)
		cj.closers = append(cj.closers, listener)
		opts = append(opts, job.WithListener(listener))
	}

	cj.Runner = job.NewRunner(source, parser, tr, sink, opts...)
	return cj, nil
}
