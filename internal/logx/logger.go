package logx

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseLevel maps a config/flag string to a Level. Unknown names fall back to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	}
	return LevelInfo
}

const (
	colorReset  = "\033[0m"
	colorCyan   = "\033[36m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// Logger writes leveled diagnostics. A nil *Logger discards everything.
// Safe for concurrent use.
type Logger struct {
	mu    sync.Mutex
	out   *log.Logger
	level Level
	color bool
	count [4]int
}

// New returns a Logger writing to w. Messages below level are dropped but still counted.
func New(w io.Writer, level Level, color bool) *Logger {
	return &Logger{
		out:   log.New(w, "", 0),
		level: level,
		color: color,
	}
}

// Discard returns a Logger that counts messages without printing them.
func Discard() *Logger {
	return New(io.Discard, LevelError+1, false)
}

func (l *Logger) logf(level Level, format string, v ...interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.count[level]++
	l.mu.Unlock()
	if level < l.level {
		return
	}

	prefix := "[" + level.String() + "] "
	if l.color {
		var code string
		switch level {
		case LevelDebug:
			code = colorCyan
		case LevelInfo:
			code = colorBlue
		case LevelWarn:
			code = colorYellow
		case LevelError:
			code = colorRed
		}
		prefix = fmt.Sprintf("%s[%s]%s ", code, level.String(), colorReset)
	}
	l.out.Printf(prefix+format, v...)
}

func (l *Logger) Debugf(format string, v ...interface{}) { l.logf(LevelDebug, format, v...) }
func (l *Logger) Infof(format string, v ...interface{})  { l.logf(LevelInfo, format, v...) }
func (l *Logger) Warnf(format string, v ...interface{})  { l.logf(LevelWarn, format, v...) }
func (l *Logger) Errorf(format string, v ...interface{}) { l.logf(LevelError, format, v...) }

// Count returns how many messages of the given level were logged, printed or not.
func (l *Logger) Count(level Level) int {
	if l == nil || level < LevelDebug || level > LevelError {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count[level]
}
