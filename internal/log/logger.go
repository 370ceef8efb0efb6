package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Logger wraps the process-wide slog logger and the file it writes to.
type Logger struct {
	logger *slog.Logger
	file   *os.File
}

var (
	globalLogger *Logger
	level        = new(slog.LevelVar)

	captureMu   sync.Mutex
	captureFile string
)

// init creates the global logger with console output by default
func init() {
	level.Set(slog.LevelInfo)
	globalLogger = &Logger{
		logger: slog.New(newHandler(os.Stderr)),
		file:   os.Stderr,
	}
}

func newHandler(w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   slog.TimeKey,
					Value: slog.StringValue(a.Value.Time().Format("2006/01/02 15:04:05.000000")),
				}
			}
			return a
		},
	})
}

// SetFileOutput configures the logger to write to the specified file
func SetFileOutput(filename string) error {
	logger, err := NewLogger(filename)
	if err != nil {
		return err
	}

	Close()
	globalLogger = logger
	return nil
}

// SetOutput redirects logging to w. The previous log file, if any, is closed.
func SetOutput(w io.Writer) {
	Close()
	globalLogger = &Logger{logger: slog.New(newHandler(w))}
}

// NewLogger creates a logger that appends to the specified file
func NewLogger(filename string) (*Logger, error) {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}

	return &Logger{
		logger: slog.New(newHandler(file)),
		file:   file,
	}, nil
}

// SetLevel parses debug, info, warn or error. Unknown names leave the level unchanged.
func SetLevel(name string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}
	level.Set(l)
	return nil
}

// SetCaptureFile enables raw chunk capture into filename. An empty name disables it.
func SetCaptureFile(filename string) {
	captureMu.Lock()
	defer captureMu.Unlock()
	captureFile = filename
}

// Slog returns the underlying logger for packages that take a *slog.Logger.
func Slog() *slog.Logger {
	return globalLogger.logger
}

func Debug(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Debug(msg, args...)
	}
}

func Info(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Info(msg, args...)
	}
}

func Warn(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Warn(msg, args...)
	}
}

func Error(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Error(msg, args...)
	}
}

// LogDataChunk appends a raw data chunk to the capture file, one chunk per line.
// Direction is "<<" for inbound and ">>" for outbound data.
func LogDataChunk(direction string, data []byte) {
	captureMu.Lock()
	defer captureMu.Unlock()

	if captureFile == "" {
		return
	}

	logFile, err := os.OpenFile(captureFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		Error("Could not open data capture file", "file", captureFile, "error", err)
		return
	}
	defer logFile.Close()

	// %q escapes control bytes; the replay tool reverses it with strconv.Unquote
	fmt.Fprintf(logFile, "%s %q\n", direction, string(data))
}

// Close closes the log file if one is open
func Close() {
	if globalLogger != nil && globalLogger.file != nil && globalLogger.file != os.Stderr && globalLogger.file != os.Stdout {
		globalLogger.file.Close()
	}
}
