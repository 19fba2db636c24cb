package s3client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	s3api "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/joeydtaylor/exametl/pkg/internal/types"
)

const (
	defaultMaxAttempts = 5
	defaultBaseBackoff = 100 * time.Millisecond
	defaultMaxBackoff  = 3 * time.Second
)

var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// nowFunc is swapped in tests.
var nowFunc = time.Now

func (p *Publisher) renderKey(exec *types.JobExecution) string {
	t := exec.StartTime
	if t.IsZero() {
		t = nowFunc()
	}
	t = t.UTC()

	r := strings.NewReplacer(
		"{yyyy}", fmt.Sprintf("%04d", t.Year()),
		"{MM}", fmt.Sprintf("%02d", int(t.Month())),
		"{dd}", fmt.Sprintf("%02d", t.Day()),
		"{HH}", fmt.Sprintf("%02d", t.Hour()),
		"{mm}", fmt.Sprintf("%02d", t.Minute()),
		"{ts}", strconv.FormatInt(t.UnixMilli(), 10),
		"{runId}", exec.RunID,
		"{job}", exec.JobName,
	)
	key := strings.TrimLeft(r.Replace(p.prefixTemplate), "/")
	if key != "" && !strings.HasSuffix(key, "/") {
		key += "/"
	}
	return key
}

func backoffDuration(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := defaultBaseBackoff << (attempt - 1)
	if d > defaultMaxBackoff {
		d = defaultMaxBackoff
	}
	return time.Duration(rng.Int63n(int64(d) + 1))
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "throttl"),
		strings.Contains(msg, "slowdown"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "tempor"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "eof"),
		strings.Contains(msg, "internalerror"),
		strings.Contains(msg, "service unavailable"),
		strings.Contains(msg, "503"),
		strings.Contains(msg, "500"):
		return true
	default:
		return false
	}
}

func (p *Publisher) putWithRetry(ctx context.Context, put *s3api.PutObjectInput, key string) (time.Duration, error) {
	rs, ok := put.Body.(io.ReadSeeker)
	if !ok {
		return 0, fmt.Errorf("putWithRetry requires io.ReadSeeker body")
	}

	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return 0, err
		}

		start := time.Now()
		_, err := p.cli.PutObject(ctx, put)
		dur := time.Since(start)
		if err == nil {
			return dur, nil
		}

		lastErr = err
		p.NotifyLoggers(types.WarnLevel, "PutObject retry",
			"component", p.componentMetadata,
			"event", "PutObject",
			"attempt", attempt,
			"max_attempts", p.maxAttempts,
			"key", key,
			"error", err,
		)

		if !isRetryable(err) || attempt == p.maxAttempts || ctx.Err() != nil {
			return 0, err
		}

		select {
		case <-time.After(backoffDuration(attempt)):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	return 0, lastErr
}
