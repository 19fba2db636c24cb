package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joeydtaylor/exametl/pkg/builder"
)

const sample = `# studentId|studentName|courseId|score|examDate
S001|Ada Lovelace|CS101|85|2024-06-03
S002|"Hopper, Grace"|CS101|91|2024-06-03
S003|Alan Turing|MA201|68.5|2024-06-04
`

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dir := builder.EnvOr("EXAMETL_EXAMPLE_DIR", os.TempDir())
	in := filepath.Join(dir, "exam_results.txt")
	out := filepath.Join(dir, "exam_results.xml")
	if err := os.WriteFile(in, []byte(sample), 0o644); err != nil {
		fmt.Printf("Error writing sample input: %v\n", err)
		return
	}

	logger := builder.NewLogger(builder.LoggerWithLevel(builder.EnvOr("EXAMETL_LOG_LEVEL", "info")))
	defer logger.Flush()

	parser, err := builder.NewRecordParser(
		builder.RecordParserWithColumns(
			builder.ColumnStudentID,
			builder.ColumnStudentName,
			builder.ColumnCourseID,
			builder.ColumnScore,
			builder.ColumnExamDate,
		),
	)
	if err != nil {
		fmt.Printf("Error building parser: %v\n", err)
		return
	}

	opts := []builder.Option{
		builder.RunnerWithChunkSize(builder.EnvIntOr("EXAMETL_CHUNK_SIZE", 2)),
		builder.RunnerWithMeter(builder.NewMeter()),
		builder.RunnerWithLogger(logger),
		builder.RunnerWithListener(builder.NewLoggingListener(logger)),
	}

	// Optional upload to LocalStack: EXAMETL_EXAMPLE_BUCKET=exam-results
	bucket := builder.EnvOr("EXAMETL_EXAMPLE_BUCKET", "")
	var cli builder.S3Client
	if bucket != "" {
		endpoint := builder.EnvOr("EXAMETL_EXAMPLE_S3_ENDPOINT", "http://localhost:4566")
		if role := builder.EnvOr("EXAMETL_EXAMPLE_ROLE_ARN", ""); role != "" {
			cli, err = builder.NewS3ClientAssumeRoleLocalstack(ctx, builder.LocalstackS3AssumeRoleConfig{
				RoleARN:  role,
				Endpoint: endpoint,
			})
		} else {
			cli, err = builder.NewS3ClientStatic(ctx, "us-east-1", "test", "test", "", endpoint, true)
		}
		if err != nil {
			fmt.Printf("Error building S3 client: %v\n", err)
			return
		}
		opts = append(opts, builder.RunnerWithPublisher(
			builder.NewS3Publisher(cli, bucket, builder.S3PublisherWithLogger(logger)),
		))
	}

	runner := builder.NewRunner(
		builder.NewLineSource(in, builder.LineSourceWithLogger(logger)),
		parser,
		builder.NewRecordTransformer(builder.RecordTransformerWithMinScore(70)),
		builder.NewDocumentSink(out, builder.DocumentSinkWithIndent("  "), builder.DocumentSinkWithLogger(logger)),
		opts...,
	)

	exec := runner.Run(ctx)
	fmt.Printf("Run %s finished: %s (read=%d filtered=%d written=%d)\n",
		exec.RunID, exec.Status, exec.Step.ReadCount, exec.Step.FilterCount, exec.Step.WriteCount)
	if exec.Failed() {
		fmt.Printf("Cause: %v\n", exec.Cause)
		return
	}

	doc, err := os.ReadFile(out)
	if err != nil {
		fmt.Printf("Error reading output: %v\n", err)
		return
	}
	fmt.Println(string(doc))

	if cli != nil {
		keys, err := builder.S3ListKeys(ctx, cli, bucket, "exam-results/", ".xml")
		if err != nil {
			fmt.Printf("Error listing uploaded documents: %v\n", err)
			return
		}
		fmt.Printf("Uploaded documents: %v\n", keys)
	}
}
