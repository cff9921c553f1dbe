package logs

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTracefRespectsVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "test: ")
	defer SetOutput(os.Stderr, "")
	defer SetVerbose(false)

	SetVerbose(false)
	Tracef("hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}

	SetVerbose(true)
	Tracef("shown %d", 2)
	if !strings.Contains(buf.String(), "[TRACE] shown 2") {
		t.Fatalf("expected trace line, got %q", buf.String())
	}
	if !strings.HasPrefix(buf.String(), "test: ") {
		t.Fatalf("expected prefix, got %q", buf.String())
	}
}

func TestInitTruncatesLogFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "logs", "latest.log")
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dest, []byte("old run\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Init(dest, "chess: ")
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer SetOutput(os.Stderr, "")
	log.Println("new run")
	f.Close()

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "old run") {
		t.Fatalf("log file was not truncated: %q", data)
	}
	if !strings.Contains(string(data), "chess: ") || !strings.Contains(string(data), "new run") {
		t.Fatalf("unexpected log contents: %q", data)
	}
}

func TestInitFileCreatesDirectory(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "run.log")
	f, err := InitFile(dest, "term: ")
	if err != nil {
		t.Fatalf("InitFile: %v", err)
	}
	defer SetOutput(os.Stderr, "")
	log.Println("file only")
	f.Close()

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "term: ") || !strings.Contains(string(data), "file only") {
		t.Fatalf("unexpected log contents: %q", data)
	}
}
