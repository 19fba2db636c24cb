package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joeydtaylor/exametl/pkg/builder"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	mainCMD.SetOut(&out)
	mainCMD.SetErr(&out)
	mainCMD.SetArgs(args)
	err := mainCMD.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error: %v", err)
	}
	if !strings.HasPrefix(out, "exametl ") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "results.txt")
	out := filepath.Join(dir, "results.xml")
	if err := os.WriteFile(in, []byte("S001|CS101|85\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, err := execute(t, "run", "--input", in, "--output", out, "--chunk-size", "1", "--log-level", "error")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if !strings.Contains(stdout, "COMPLETED") {
		t.Fatalf("unexpected output %q", stdout)
	}
	doc, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(doc), "</UniversityExamResultList>") {
		t.Fatalf("document not finalized: %s", doc)
	}
}

func TestRunCommand_FailedRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "results.txt")
	out := filepath.Join(dir, "results.xml")
	if err := os.WriteFile(in, []byte("S001|CS101|85\nS002|CS101\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, err := execute(t, "run", "--input", in, "--output", out, "--chunk-size", "1", "--log-level", "error")
	var pe *builder.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if !strings.Contains(stdout, "FAILED") {
		t.Fatalf("unexpected output %q", stdout)
	}
	doc, err := os.ReadFile(out)
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	if strings.Contains(string(doc), "</UniversityExamResultList>") {
		t.Fatalf("failed run must not finalize the document: %s", doc)
	}
}
