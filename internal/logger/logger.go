package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultPath is the grid event log, relative to the working directory (project root when run via go run ./cmd/grid).
const DefaultPath = "logs/grid.txt"

// timeFormat is the stamp prefixed to every line.
const timeFormat = "2006-01-02 15:04:05"

// Logger keeps lines (terminal input, grid lifecycle events) in memory and appends them to a file on disk.
// A nil *Logger discards everything, so packages can take one as an optional dependency.
type Logger struct {
	mu    sync.Mutex
	path  string
	lines []string
	now   func() time.Time
}

// New returns a Logger that appends to path, creating its directory. An empty path keeps lines in memory only.
func New(path string) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{path: path, lines: make([]string, 0), now: time.Now}
}

// Log stores a line prefixed with [timestamp] and appends it to the log file, if any.
// File errors are ignored; the in-memory copy is always kept.
func (l *Logger) Log(line string) {
	if l == nil {
		return
	}
	stamped := "[" + l.now().Format(timeFormat) + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	l.mu.Unlock()

	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Logf formats according to format and logs the result.
func (l *Logger) Logf(format string, args ...any) {
	if l == nil {
		return
	}
	l.Log(fmt.Sprintf(format, args...))
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Last returns the most recent n lines (fewer if not that many were logged).
func (l *Logger) Last(n int) []string {
	lines := l.Lines()
	if n < len(lines) {
		lines = lines[len(lines)-n:]
	}
	return lines
}
