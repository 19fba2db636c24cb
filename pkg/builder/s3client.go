package builder

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/joeydtaylor/exametl/pkg/internal/adapter/s3client"
	jobconfig "github.com/joeydtaylor/exametl/pkg/internal/config"
	"github.com/joeydtaylor/exametl/pkg/internal/types"
)

const (
	s3SessionName     = "exametl"
	s3SessionDuration = 15 * time.Minute
)

// S3Client is the AWS SDK client returned by the constructors below.
type S3Client = *s3.Client

// NewS3Publisher creates a publisher that uploads the finished document to bucket.
func NewS3Publisher(cli s3client.PutObjectAPI, bucket string, options ...types.Option[*s3client.Publisher]) *s3client.Publisher {
	return s3client.NewPublisher(cli, bucket, options...)
}

// S3PublisherWithPrefixTemplate sets the object key prefix.
// Tokens: {yyyy} {MM} {dd} {HH} {mm} {ts} {runId} {job}.
func S3PublisherWithPrefixTemplate(tmpl string) types.Option[*s3client.Publisher] {
	return s3client.WithPrefixTemplate(tmpl)
}

// S3PublisherWithSSE selects server-side encryption ("AES256" or "aws:kms").
func S3PublisherWithSSE(mode, kmsKey string) types.Option[*s3client.Publisher] {
	return s3client.WithSSE(mode, kmsKey)
}

// S3PublisherWithMaxAttempts bounds PutObject retries.
func S3PublisherWithMaxAttempts(n int) types.Option[*s3client.Publisher] {
	return s3client.WithMaxAttempts(n)
}

// S3PublisherWithLogger attaches loggers.
func S3PublisherWithLogger(l ...types.Logger) types.Option[*s3client.Publisher] {
	return s3client.WithLogger(l...)
}

/////////////////////////////////////////////
// Compliant S3 client constructors (no env)
/////////////////////////////////////////////

// sharedResolver returns an endpoint resolver that maps BOTH S3 and STS to the same override.
func sharedResolver(endpoint string) aws.EndpointResolverWithOptionsFunc {
	return aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
		switch service {
		case s3.ServiceID, sts.ServiceID:
			return aws.Endpoint{URL: endpoint, HostnameImmutable: true}, nil
		default:
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		}
	})
}

// NewS3ClientStatic creates an S3 client using static credentials.
// If endpoint != "", it's used (LocalStack/MinIO). forcePathStyle=true for emulators.
func NewS3ClientStatic(
	ctx context.Context,
	region string,
	accessKey string,
	secretKey string,
	sessionToken string, // "" if none
	endpoint string, // "" for AWS
	forcePathStyle bool,
) (*s3.Client, error) {
	var loaders []func(*config.LoadOptions) error
	if region != "" {
		loaders = append(loaders, config.WithRegion(region))
	}
	loaders = append(loaders, config.WithCredentialsProvider(
		credentials.NewStaticCredentialsProvider(accessKey, secretKey, sessionToken),
	))
	if endpoint != "" {
		loaders = append(loaders, config.WithEndpointResolverWithOptions(sharedResolver(endpoint)))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) { o.UsePathStyle = forcePathStyle }), nil
}

// NewS3ClientAssumeRole creates an S3 client by assuming an IAM role via STS.
// sourceCreds: underlying creds to call STS (static keys, SSO, etc.). If nil, default chain.
// externalID optional. duration capped by role MaxSessionDuration.
func NewS3ClientAssumeRole(
	ctx context.Context,
	region string,
	roleARN string,
	sessionName string,
	duration time.Duration,
	externalID string,
	sourceCreds aws.CredentialsProvider, // nil => default provider chain
	endpoint string, // optional S3/STS endpoint override
	forcePathStyle bool,
) (*s3.Client, error) {
	var loaders []func(*config.LoadOptions) error
	if region != "" {
		loaders = append(loaders, config.WithRegion(region))
	}
	if sourceCreds != nil {
		loaders = append(loaders, config.WithCredentialsProvider(sourceCreds))
	}
	if endpoint != "" {
		loaders = append(loaders, config.WithEndpointResolverWithOptions(sharedResolver(endpoint)))
	}
	baseCfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, err
	}

	// STS client also uses the same resolver (so it doesn't go to real AWS).
	stsClient := sts.NewFromConfig(baseCfg)

	provider := stscreds.NewAssumeRoleProvider(stsClient, roleARN, func(o *stscreds.AssumeRoleOptions) {
		if sessionName != "" {
			o.RoleSessionName = sessionName
		}
		if duration > 0 {
			o.Duration = duration
		}
		if externalID != "" {
			o.ExternalID = &externalID
		}
	})

	assumed := baseCfg
	assumed.Credentials = aws.NewCredentialsCache(provider)

	return s3.NewFromConfig(assumed, func(o *s3.Options) { o.UsePathStyle = forcePathStyle }), nil
}

// NewS3ClientWebIdentity assumes a role using an OIDC/WebIdentity token file (e.g., EKS IRSA).
func NewS3ClientWebIdentity(
	ctx context.Context,
	region string,
	roleARN string,
	sessionName string,
	tokenFile string,
	duration time.Duration,
	endpoint string, // optional S3/STS endpoint override
	forcePathStyle bool,
) (*s3.Client, error) {
	var loaders []func(*config.LoadOptions) error
	if region != "" {
		loaders = append(loaders, config.WithRegion(region))
	}
	if endpoint != "" {
		loaders = append(loaders, config.WithEndpointResolverWithOptions(sharedResolver(endpoint)))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, err
	}
	stsClient := sts.NewFromConfig(cfg)
	provider := stscreds.NewWebIdentityRoleProvider(
		stsClient,
		roleARN,
		stscreds.IdentityTokenFile(tokenFile),
		func(o *stscreds.WebIdentityRoleOptions) {
			if sessionName != "" {
				o.RoleSessionName = sessionName
			}
			if duration > 0 {
				o.Duration = duration
			}
		},
	)

	assumed := cfg
	assumed.Credentials = aws.NewCredentialsCache(provider)

	return s3.NewFromConfig(assumed, func(o *s3.Options) { o.UsePathStyle = forcePathStyle }), nil
}

// NewS3ClientDefault creates an S3 client from the default credential chain.
func NewS3ClientDefault(ctx context.Context, region, endpoint string, forcePathStyle bool) (*s3.Client, error) {
	var loaders []func(*config.LoadOptions) error
	if region != "" {
		loaders = append(loaders, config.WithRegion(region))
	}
	if endpoint != "" {
		loaders = append(loaders, config.WithEndpointResolverWithOptions(sharedResolver(endpoint)))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) { o.UsePathStyle = forcePathStyle }), nil
}

// newS3ClientFromConfig picks credentials from c: a web identity token file with a role
// ARN, a role ARN alone (assume-role from the default chain), or the default chain.
// A custom endpoint implies path-style addressing.
func newS3ClientFromConfig(ctx context.Context, c jobconfig.S3Config) (*s3.Client, error) {
	pathStyle := c.Endpoint != ""
	switch {
	case c.RoleArn != "" && c.WebIdentityTokenFile != "":
		return NewS3ClientWebIdentity(ctx, c.Region, c.RoleArn, s3SessionName, c.WebIdentityTokenFile, s3SessionDuration, c.Endpoint, pathStyle)
	case c.RoleArn != "":
		return NewS3ClientAssumeRole(ctx, c.Region, c.RoleArn, s3SessionName, s3SessionDuration, "", nil, c.Endpoint, pathStyle)
	default:
		return NewS3ClientDefault(ctx, c.Region, c.Endpoint, pathStyle)
	}
}
