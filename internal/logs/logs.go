// Package logs wires the standard logger to a log file and carries the
// optional move validation trace.
package logs

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
)

const DefaultPath = "logs/latest.log"

var verbose atomic.Bool

// Init truncates the file at dest and sends the standard logger to both the
// file and stdout. The returned file must be closed by the caller.
func Init(dest, prefix string) (*os.File, error) {
	f, err := openTruncated(dest)
	if err != nil {
		return nil, err
	}
	SetOutput(io.MultiWriter(os.Stdout, f), prefix)
	return f, nil
}

// InitFile is Init without the stdout copy, for commands that own the
// terminal.
func InitFile(dest, prefix string) (*os.File, error) {
	f, err := openTruncated(dest)
	if err != nil {
		return nil, err
	}
	SetOutput(f, prefix)
	return f, nil
}

func openTruncated(dest string) (*os.File, error) {
	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
	}
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", dest, err)
	}
	return f, nil
}

func SetOutput(w io.Writer, prefix string) {
	log.SetOutput(w)
	log.SetPrefix(prefix)
	log.SetFlags(log.Ldate | log.Ltime)
}

// SetVerbose turns the per-check validation trace on or off.
func SetVerbose(on bool) {
	verbose.Store(on)
}

func Verbose() bool {
	return verbose.Load()
}

// Tracef logs only when verbose tracing is on.
func Tracef(format string, args ...any) {
	if !verbose.Load() {
		return
	}
	log.Output(2, fmt.Sprintf("[TRACE] "+format, args...))
}
