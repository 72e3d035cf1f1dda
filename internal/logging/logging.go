package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultLogName = "cursortools"

// LogFilePath returns <logsDir>/<name>.<YYYYMMDD_HHMMSS>.log. The binary name
// is reduced to its base without extension, so os.Args[0] can be passed as is.
func LogFilePath(logsDir, binaryName string, sessionStart time.Time) string {
	name := strings.TrimSuffix(filepath.Base(binaryName), filepath.Ext(binaryName))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = defaultLogName
	}
	stamp := sessionStart.Format("20060102_150405")
	return filepath.Join(logsDir, name+"."+stamp+".log")
}

// OpenLogFile creates logsDir when needed and opens the session's log file
// for appending. An existing file of the same name is kept as <path>.old.
func OpenLogFile(logsDir, binaryName string, sessionStart time.Time) (*os.File, error) {
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}
	path := LogFilePath(logsDir, binaryName, sessionStart)
	if _, err := os.Stat(path); err == nil {
		_ = os.Rename(path, path+".old")
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
