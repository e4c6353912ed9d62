package logging

import "testing"

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"", "console", "json", "pretty"} {
		logger, err := New("quizpdf.test", Config{Level: "error", Format: format})
		if err != nil {
			t.Fatalf("New(format=%q): %v", format, err)
		}
		if logger == nil {
			t.Fatalf("New(format=%q) returned nil logger", format)
		}
		logger.Debug("suppressed", "format", format)
	}
}

func TestNewLoggerRejectsUnknownSettings(t *testing.T) {
	if _, err := New("", Config{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if _, err := New("", Config{Level: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNormalizeLevel(t *testing.T) {
	cases := map[string]bool{
		"":        true,
		"TRACE":   true,
		" debug ": true,
		"warning": true,
		"fatal":   false,
	}
	for in, ok := range cases {
		_, err := normalizeLevel(in)
		if (err == nil) != ok {
			t.Fatalf("normalizeLevel(%q) err=%v, want ok=%v", in, err, ok)
		}
	}
}
