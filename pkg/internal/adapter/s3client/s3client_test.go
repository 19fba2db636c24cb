package s3client

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3api "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/joeydtaylor/exametl/pkg/internal/types"
	"github.com/joeydtaylor/exametl/pkg/internal/utils"
)

type fakeS3 struct {
	errs   []error
	calls  int
	inputs []*s3api.PutObjectInput
	bodies []string
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3api.PutObjectInput, _ ...func(*s3api.Options)) (*s3api.PutObjectOutput, error) {
	f.calls++
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, string(b))
	if len(f.errs) > 0 {
		e := f.errs[0]
		f.errs = f.errs[1:]
		if e != nil {
			return nil, e
		}
	}
	return &s3api.PutObjectOutput{}, nil
}

func writeDoc(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func testExec() *types.JobExecution {
	return &types.JobExecution{
		RunID:     "run-42",
		JobName:   "examResultJob",
		StartTime: time.Date(2024, 6, 3, 9, 5, 0, 0, time.UTC),
		Step:      types.StepExecution{WriteCount: 2},
	}
}

func TestPublish_UploadsDocument(t *testing.T) {
	body := "<UniversityExamResultList></UniversityExamResultList>"
	path := writeDoc(t, "results.xml", body)
	cli := &fakeS3{}
	p := NewPublisher(cli, "exam-bucket", WithSSE("aws:kms", "alias/exams"))

	if err := p.Publish(context.Background(), path, testExec()); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if cli.calls != 1 {
		t.Fatalf("expected 1 call, got %d", cli.calls)
	}
	in := cli.inputs[0]
	if got := aws.ToString(in.Key); got != "exam-results/2024/06/03/results.xml" {
		t.Fatalf("unexpected key %q", got)
	}
	if aws.ToString(in.Bucket) != "exam-bucket" || aws.ToString(in.ContentType) != "application/xml" {
		t.Fatalf("unexpected input %+v", in)
	}
	if in.ContentEncoding != nil {
		t.Fatalf("plain document must not carry a content encoding")
	}
	if in.ServerSideEncryption != s3types.ServerSideEncryptionAwsKms || aws.ToString(in.SSEKMSKeyId) != "alias/exams" {
		t.Fatalf("unexpected SSE settings")
	}
	sum, _ := utils.FileSHA256(path)
	if in.Metadata["sha256"] != sum || in.Metadata["run-id"] != "run-42" || in.Metadata["records"] != "2" {
		t.Fatalf("unexpected metadata %v", in.Metadata)
	}
	if cli.bodies[0] != body {
		t.Fatalf("unexpected body %q", cli.bodies[0])
	}
}

func TestPublish_CustomPrefixAndEncoding(t *testing.T) {
	path := writeDoc(t, "results.xml.gz", "x")
	cli := &fakeS3{}
	p := NewPublisher(cli, "b", WithPrefixTemplate("/{job}/{runId}/{HH}{mm}"), WithSSE("AES256", "ignored"))

	if err := p.Publish(context.Background(), path, testExec()); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	in := cli.inputs[0]
	if got := aws.ToString(in.Key); got != "examResultJob/run-42/0905/results.xml.gz" {
		t.Fatalf("unexpected key %q", got)
	}
	if aws.ToString(in.ContentEncoding) != "gzip" {
		t.Fatalf("expected gzip content encoding")
	}
	if in.ServerSideEncryption != s3types.ServerSideEncryptionAes256 || in.SSEKMSKeyId != nil {
		t.Fatalf("unexpected SSE settings")
	}
}

func TestPublish_RetriesTransientErrors(t *testing.T) {
	path := writeDoc(t, "results.xml", "payload")
	cli := &fakeS3{errs: []error{errors.New("503 Service Unavailable"), nil}}
	p := NewPublisher(cli, "b")

	if err := p.Publish(context.Background(), path, testExec()); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if cli.calls != 2 {
		t.Fatalf("expected a retry, got %d calls", cli.calls)
	}
	if cli.bodies[1] != "payload" {
		t.Fatalf("body must be rewound before retry, got %q", cli.bodies[1])
	}
}

func TestPublish_PermanentError(t *testing.T) {
	path := writeDoc(t, "results.xml", "payload")
	cli := &fakeS3{errs: []error{errors.New("AccessDenied")}}
	p := NewPublisher(cli, "b", WithMaxAttempts(3))

	if err := p.Publish(context.Background(), path, testExec()); err == nil {
		t.Fatalf("expected error")
	}
	if cli.calls != 1 {
		t.Fatalf("permanent errors must not be retried, got %d calls", cli.calls)
	}
}

func TestPublish_MissingFileAndConfig(t *testing.T) {
	if err := NewPublisher(&fakeS3{}, "b").Publish(context.Background(), filepath.Join(t.TempDir(), "nope.xml"), nil); err == nil {
		t.Fatalf("expected missing file error")
	}
	if err := NewPublisher(nil, "b").Publish(context.Background(), "x", nil); err == nil {
		t.Fatalf("expected missing client error")
	}
	if err := NewPublisher(&fakeS3{}, "").Publish(context.Background(), "x", nil); err == nil {
		t.Fatalf("expected missing bucket error")
	}
}

func TestIsRetryable(t *testing.T) {
	cases := map[string]struct {
		err  error
		want bool
	}{
		"nil":       {nil, false},
		"canceled":  {context.Canceled, false},
		"throttled": {errors.New("Throttling: rate exceeded"), true},
		"slowdown":  {errors.New("SlowDown"), true},
		"denied":    {errors.New("AccessDenied"), false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := isRetryable(tc.err); got != tc.want {
				t.Fatalf("isRetryable(%v)=%v want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestBackoffDuration_Capped(t *testing.T) {
	for attempt := 0; attempt < 10; attempt++ {
		if d := backoffDuration(attempt); d < 0 || d > defaultMaxBackoff {
			t.Fatalf("attempt %d backoff %v out of range", attempt, d)
		}
	}
}

func TestRenderKey_FallsBackToNow(t *testing.T) {
	orig := nowFunc
	nowFunc = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	defer func() { nowFunc = orig }()

	p := NewPublisher(nil, "b", WithPrefixTemplate("{yyyy}-{MM}-{dd}"))
	if got := p.renderKey(&types.JobExecution{}); got != "2025-01-02/" {
		t.Fatalf("unexpected key %q", got)
	}
	if p.Name() != "s3" || p.Bucket() != "b" {
		t.Fatalf("unexpected identity")
	}
}
