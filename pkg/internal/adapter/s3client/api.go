package s3client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3api "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/joeydtaylor/exametl/pkg/internal/types"
	"github.com/joeydtaylor/exametl/pkg/internal/utils"
)

// Publish uploads the file at path. The object key is the rendered prefix followed by
// the file's base name.
func (p *Publisher) Publish(ctx context.Context, path string, exec *types.JobExecution) error {
	if p.cli == nil {
		return fmt.Errorf("s3 publisher: client not configured")
	}
	if p.bucket == "" {
		return fmt.Errorf("s3 publisher: bucket not configured")
	}
	if exec == nil {
		exec = &types.JobExecution{}
	}

	sum, err := utils.FileSHA256(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}

	key := p.renderKey(exec) + filepath.Base(path)
	put := &s3api.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("application/xml"),
		Metadata: map[string]string{
			"run-id":  exec.RunID,
			"job":     exec.JobName,
			"sha256":  sum,
			"records": strconv.Itoa(exec.Step.WriteCount),
		},
	}
	if enc := contentEncoding(path); enc != "" {
		put.ContentEncoding = aws.String(enc)
	}
	switch p.sseMode {
	case SSEAES256:
		put.ServerSideEncryption = s3types.ServerSideEncryptionAes256
	case SSEKMS:
		put.ServerSideEncryption = s3types.ServerSideEncryptionAwsKms
		if p.kmsKey != "" {
			put.SSEKMSKeyId = aws.String(p.kmsKey)
		}
	}

	dur, err := p.putWithRetry(ctx, put, key)
	if err != nil {
		p.NotifyLoggers(types.ErrorLevel, "Document upload failed",
			"component", p.componentMetadata,
			"event", "Publish",
			"result", "FAILURE",
			"bucket", p.bucket,
			"key", key,
			"error", err,
		)
		return err
	}

	p.NotifyLoggers(types.InfoLevel, "Document uploaded",
		"component", p.componentMetadata,
		"event", "Publish",
		"result", "SUCCESS",
		"bucket", p.bucket,
		"key", key,
		"bytes", info.Size(),
		"sha256", sum,
		"duration", dur.String(),
	)
	return nil
}

func contentEncoding(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return "gzip"
	case ".zst":
		return "zstd"
	case ".br":
		return "br"
	case ".sz":
		return "x-snappy-framed"
	case ".lz4":
		return "x-lz4"
	default:
		return ""
	}
}
