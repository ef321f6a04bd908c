// Package logger provides the optional log file for icomerge.
package logger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	logFile  *os.File
	logMutex sync.Mutex
	logPath  string
)

// Init opens the log file for appending. An empty path selects icomerge.log
// in the default log directory.
func Init(path string) error {
	logMutex.Lock()
	defer logMutex.Unlock()

	if path == "" {
		path = filepath.Join(getLogDir(), "icomerge.log")
	}
	logPath = path

	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	logFile = f
	return nil
}

// CaptureStderr redirects the process stderr into the log file so a panic
// is recorded there. Init must have succeeded first.
func CaptureStderr() error {
	logMutex.Lock()
	defer logMutex.Unlock()
	if logFile == nil {
		return errors.New("log file not open")
	}
	return redirectStderr(logFile)
}

// Close closes the log file
func Close() {
	logMutex.Lock()
	defer logMutex.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// Log writes a log message. It does nothing until Init succeeds.
func Log(format string, args ...interface{}) {
	logMutex.Lock()
	defer logMutex.Unlock()
	if logFile == nil {
		return
	}

	message := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	logFile.WriteString(fmt.Sprintf("[%s] %s\n", timestamp, message))
}

// Info logs an info message
func Info(format string, args ...interface{}) {
	Log("INFO: "+format, args...)
}

// Error logs an error message
func Error(format string, args ...interface{}) {
	Log("ERROR: "+format, args...)
}

// Debug logs a debug message
func Debug(format string, args ...interface{}) {
	Log("DEBUG: "+format, args...)
}

// Warning logs a warning message
func Warning(format string, args ...interface{}) {
	Log("WARN: "+format, args...)
}

// GetLogPath returns the path to the log file
func GetLogPath() string {
	return logPath
}
