package builder

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"

	jobconfig "github.com/joeydtaylor/exametl/pkg/internal/config"
)

func TestNewS3ClientFromConfig_SelectsCredentials(t *testing.T) {
	t.Setenv("AWS_PROFILE", "")
	const role = "arn:aws:iam::000000000000:role/exametl"

	cases := map[string]struct {
		cfg           jobconfig.S3Config
		assumeRole    bool
		webIdentity   bool
		wantPathStyle bool
	}{
		"default chain": {
			cfg: jobconfig.S3Config{Bucket: "b", Region: "us-east-1"},
		},
		"assume role": {
			cfg:           jobconfig.S3Config{Bucket: "b", Region: "us-east-1", RoleArn: role, Endpoint: "http://localhost:4566"},
			assumeRole:    true,
			wantPathStyle: true,
		},
		"web identity": {
			cfg:         jobconfig.S3Config{Bucket: "b", Region: "eu-west-1", RoleArn: role, WebIdentityTokenFile: "/var/run/secrets/token"},
			webIdentity: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cli, err := newS3ClientFromConfig(context.Background(), tc.cfg)
			if err != nil {
				t.Fatalf("newS3ClientFromConfig error: %v", err)
			}
			opts := cli.Options()
			if opts.Region != tc.cfg.Region {
				t.Fatalf("unexpected region %q", opts.Region)
			}
			if opts.UsePathStyle != tc.wantPathStyle {
				t.Fatalf("UsePathStyle=%v want %v", opts.UsePathStyle, tc.wantPathStyle)
			}
			if got := aws.IsCredentialsProvider(opts.Credentials, (*stscreds.AssumeRoleProvider)(nil)); got != tc.assumeRole {
				t.Fatalf("assume-role provider=%v want %v", got, tc.assumeRole)
			}
			if got := aws.IsCredentialsProvider(opts.Credentials, (*stscreds.WebIdentityRoleProvider)(nil)); got != tc.webIdentity {
				t.Fatalf("web identity provider=%v want %v", got, tc.webIdentity)
			}
		})
	}
}

func TestNewS3ClientAssumeRoleLocalstack(t *testing.T) {
	t.Setenv("AWS_PROFILE", "")
	if _, err := NewS3ClientAssumeRoleLocalstack(context.Background(), LocalstackS3AssumeRoleConfig{}); err == nil {
		t.Fatalf("expected error without a role ARN")
	}

	cli, err := NewS3ClientAssumeRoleLocalstack(context.Background(), LocalstackS3AssumeRoleConfig{
		RoleARN: "arn:aws:iam::000000000000:role/exametl",
	})
	if err != nil {
		t.Fatalf("NewS3ClientAssumeRoleLocalstack error: %v", err)
	}
	opts := cli.Options()
	if opts.Region != "us-east-1" || !opts.UsePathStyle {
		t.Fatalf("unexpected LocalStack defaults: region=%q pathStyle=%v", opts.Region, opts.UsePathStyle)
	}
	if !aws.IsCredentialsProvider(opts.Credentials, (*stscreds.AssumeRoleProvider)(nil)) {
		t.Fatalf("expected assume-role credentials")
	}
}
