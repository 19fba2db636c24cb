// Package config loads job properties from a properties file, the environment and
// command line flags. Values are read once and are immutable for the run.
package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/joeydtaylor/exametl/pkg/internal/chunk"
	"github.com/joeydtaylor/exametl/pkg/internal/codec"
	"github.com/joeydtaylor/exametl/pkg/internal/documentsink"
	"github.com/joeydtaylor/exametl/pkg/internal/linesource"
	"github.com/joeydtaylor/exametl/pkg/internal/utils"
)

// Property keys.
const (
	KeyOriginName        = "file.origin.name"
	KeyOriginDelimiter   = "file.origin.delimiter"
	KeyOriginQuote       = "file.origin.quote"
	KeyOriginEncoding    = "file.origin.encoding"
	KeyOriginLinesToSkip = "file.origin.linesToSkip"
	KeyOriginColumns     = "file.origin.columns"

	KeyTargetName        = "file.target.name"
	KeyTargetRootTag     = "file.target.rootTag"
	KeyTargetRecordTag   = "file.target.recordTag"
	KeyTargetIndent      = "file.target.indent"
	KeyTargetCompression = "file.target.compression"

	KeyChunkSize = "batch.chunk.size"
	KeyMinScore  = "transform.score.minimum"

	KeyLogLevel = "log.level"
	KeyLogFile  = "log.file"

	KeyS3Bucket   = "publish.s3.bucket"
	KeyS3Prefix   = "publish.s3.prefix"
	KeyS3Region   = "publish.s3.region"
	KeyS3Endpoint = "publish.s3.endpoint"
	KeyS3SSE      = "publish.s3.sse"
	KeyS3KMSKey   = "publish.s3.kmsKeyId"
	KeyS3RoleArn  = "publish.s3.roleArn"

	KeyS3WebIdentityTokenFile = "publish.s3.webIdentityTokenFile"

	KeyKafkaBrokers = "events.kafka.brokers"
	KeyKafkaTopic   = "events.kafka.topic"
)

// EnvPrefix prefixes environment overrides, e.g. EXAMETL_FILE_ORIGIN_NAME.
const EnvPrefix = "EXAMETL"

// FlagKeys maps launcher flag names to property keys.
var FlagKeys = map[string]string{
	"input":       KeyOriginName,
	"output":      KeyTargetName,
	"chunk-size":  KeyChunkSize,
	"delimiter":   KeyOriginDelimiter,
	"compression": KeyTargetCompression,
	"min-score":   KeyMinScore,
	"log-level":   KeyLogLevel,
}

// OriginConfig describes the input file.
type OriginConfig struct {
	Name        string
	Delimiter   rune
	Quote       rune // zero disables quoting
	Encoding    string
	LinesToSkip int
	Columns     []string
}

// TargetConfig describes the output document.
type TargetConfig struct {
	Name        string
	RootTag     string
	RecordTag   string
	Indent      string
	Compression string
}

// S3Config enables publication of the finished document when Bucket is set.
type S3Config struct {
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string
	SSE      string
	KMSKeyID string
	RoleArn  string
	// WebIdentityTokenFile switches role assumption to an OIDC token (e.g. EKS IRSA).
	WebIdentityTokenFile string
}

// Enabled reports whether publishing is configured.
func (c S3Config) Enabled() bool { return c.Bucket != "" }

// KafkaConfig enables job events when Brokers and Topic are set.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether job events are configured.
func (c KafkaConfig) Enabled() bool { return len(c.Brokers) > 0 && c.Topic != "" }

// Config is the resolved job configuration.
type Config struct {
	Origin    OriginConfig
	Target    TargetConfig
	ChunkSize int
	MinScore  float64
	LogLevel  string
	LogFile   string
	S3        S3Config
	Kafka     KafkaConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyOriginDelimiter, "|")
	v.SetDefault(KeyOriginQuote, `"`)
	v.SetDefault(KeyOriginEncoding, linesource.EncodingUTF8)
	v.SetDefault(KeyOriginLinesToSkip, 0)
	v.SetDefault(KeyOriginColumns, "studentId,courseId,score")
	v.SetDefault(KeyTargetRootTag, documentsink.DefaultRootTag)
	v.SetDefault(KeyTargetRecordTag, documentsink.DefaultRecordTag)
	v.SetDefault(KeyTargetIndent, "")
	v.SetDefault(KeyTargetCompression, codec.CompressionNone)
	v.SetDefault(KeyChunkSize, chunk.DefaultChunkSize)
	v.SetDefault(KeyMinScore, 0)
	v.SetDefault(KeyLogLevel, "info")
}

// Load resolves the configuration. Precedence, highest first: changed flags,
// EXAMETL_* environment variables, the properties file at path, defaults. path and
// flags may be empty and nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("properties")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config: bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg, err := fromViper(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) (*Config, error) {
	delim, err := singleRune(KeyOriginDelimiter, v.GetString(KeyOriginDelimiter), false)
	if err != nil {
		return nil, err
	}
	quote, err := singleRune(KeyOriginQuote, v.GetString(KeyOriginQuote), true)
	if err != nil {
		return nil, err
	}

	return &Config{
		Origin: OriginConfig{
			Name:        v.GetString(KeyOriginName),
			Delimiter:   delim,
			Quote:       quote,
			Encoding:    v.GetString(KeyOriginEncoding),
			LinesToSkip: v.GetInt(KeyOriginLinesToSkip),
			Columns:     splitList(v.GetString(KeyOriginColumns)),
		},
		Target: TargetConfig{
			Name:        v.GetString(KeyTargetName),
			RootTag:     v.GetString(KeyTargetRootTag),
			RecordTag:   v.GetString(KeyTargetRecordTag),
			Indent:      unescapeIndent(v.GetString(KeyTargetIndent)),
			Compression: strings.ToLower(v.GetString(KeyTargetCompression)),
		},
		ChunkSize: v.GetInt(KeyChunkSize),
		MinScore:  v.GetFloat64(KeyMinScore),
		LogLevel:  v.GetString(KeyLogLevel),
		LogFile:   v.GetString(KeyLogFile),
		S3: S3Config{
			Bucket:   v.GetString(KeyS3Bucket),
			Prefix:   v.GetString(KeyS3Prefix),
			Region:   v.GetString(KeyS3Region),
			Endpoint: v.GetString(KeyS3Endpoint),
			SSE:      v.GetString(KeyS3SSE),
			KMSKeyID: v.GetString(KeyS3KMSKey),
			RoleArn:  v.GetString(KeyS3RoleArn),

			WebIdentityTokenFile: v.GetString(KeyS3WebIdentityTokenFile),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString(KeyKafkaBrokers)),
			Topic:   v.GetString(KeyKafkaTopic),
		},
	}, nil
}

// Validate checks the settings a run cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Origin.Name) == "" {
		errs = append(errs, fmt.Errorf("%s is required", KeyOriginName))
	}
	if strings.TrimSpace(c.Target.Name) == "" {
		errs = append(errs, fmt.Errorf("%s is required", KeyTargetName))
	}
	if c.ChunkSize < 1 {
		errs = append(errs, fmt.Errorf("%s must be at least 1, got %d", KeyChunkSize, c.ChunkSize))
	}
	if c.Origin.Quote != 0 && c.Origin.Quote == c.Origin.Delimiter {
		errs = append(errs, fmt.Errorf("%s and %s must differ", KeyOriginDelimiter, KeyOriginQuote))
	}
	if c.Origin.LinesToSkip < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyOriginLinesToSkip))
	}
	if !linesource.ValidEncoding(c.Origin.Encoding) {
		errs = append(errs, fmt.Errorf("%s: unsupported encoding %q", KeyOriginEncoding, c.Origin.Encoding))
	}
	if !codec.ValidCompression(c.Target.Compression) {
		errs = append(errs, fmt.Errorf("%s: unsupported compression %q", KeyTargetCompression, c.Target.Compression))
	}
	if c.MinScore < 0 || c.MinScore > 100 {
		errs = append(errs, fmt.Errorf("%s must be within [0, 100], got %g", KeyMinScore, c.MinScore))
	}
	if c.S3.Enabled() && c.S3.Region == "" {
		errs = append(errs, fmt.Errorf("%s is required when %s is set", KeyS3Region, KeyS3Bucket))
	}
	if c.S3.WebIdentityTokenFile != "" && c.S3.RoleArn == "" {
		errs = append(errs, fmt.Errorf("%s requires %s", KeyS3WebIdentityTokenFile, KeyS3RoleArn))
	}
	if (len(c.Kafka.Brokers) > 0) != (c.Kafka.Topic != "") {
		errs = append(errs, fmt.Errorf("%s and %s must be set together", KeyKafkaBrokers, KeyKafkaTopic))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

func singleRune(key, s string, allowEmpty bool) (rune, error) {
	if s == "" && allowEmpty {
		return 0, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("config: %s must be a single character, got %q", key, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func splitList(s string) []string {
	parts := utils.Map(strings.Split(s, ","), strings.TrimSpace)
	return utils.Filter(parts, func(p string) bool { return p != "" })
}

// unescapeIndent lets properties files express tabs as \t.
func unescapeIndent(s string) string {
	return strings.ReplaceAll(s, `\t`, "\t")
}
