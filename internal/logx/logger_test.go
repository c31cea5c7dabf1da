package logx

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn, false)

	l.Infof("hidden %d", 1)
	l.Warnf("shown %s", "warn")
	l.Errorf("shown %s", "error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info message should be filtered: %q", out)
	}
	if !strings.Contains(out, "[WARN] shown warn") {
		t.Fatalf("missing warn line: %q", out)
	}
	if !strings.Contains(out, "[ERROR] shown error") {
		t.Fatalf("missing error line: %q", out)
	}
	if l.Count(LevelInfo) != 1 || l.Count(LevelWarn) != 1 || l.Count(LevelError) != 1 {
		t.Fatalf("unexpected counts: info=%d warn=%d error=%d",
			l.Count(LevelInfo), l.Count(LevelWarn), l.Count(LevelError))
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Errorf("nothing")
	if l.Count(LevelError) != 0 {
		t.Fatalf("nil logger should count nothing")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"bogus":   LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
