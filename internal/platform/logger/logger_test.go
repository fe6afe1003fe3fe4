package logger

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeRedactsAndHashes(t *testing.T) {
	out := scrubber{enabled: true}.fields([]interface{}{"db_dsn", "postgres://u:p@h/db", "user_id", "abc", "count", 3})
	if len(out) != 6 {
		t.Fatalf("unexpected kv length: %d", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("dsn not redacted: %v", out[1])
	}
	hashed, ok := out[3].(string)
	if !ok || !strings.HasPrefix(hashed, "hash:") {
		t.Fatalf("user_id not hashed: %v", out[3])
	}
	if out[5] != 3 {
		t.Fatalf("plain value changed: %v", out[5])
	}
}

func TestSanitizeKeepsDanglingKey(t *testing.T) {
	out := scrubber{enabled: true}.fields([]interface{}{"a", 1, "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("dangling key lost: %v", out)
	}
}

func TestDisabledScrubberPassesThrough(t *testing.T) {
	in := []interface{}{"password", "hunter2"}
	if out := (scrubber{}).fields(in); out[1] != "hunter2" {
		t.Fatalf("disabled scrubber changed value: %v", out)
	}
}

func TestHashIsSaltedAndStable(t *testing.T) {
	a := scrubber{enabled: true, salt: "x"}.hash("ana")
	b := scrubber{enabled: true, salt: "x"}.hash("ana")
	c := scrubber{enabled: true, salt: "y"}.hash("ana")
	if a != b || a == c || len(a) != len("hash:")+12 {
		t.Fatalf("hashes: %s %s %s", a, b, c)
	}
}

func TestNewWithFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "study.log")
	log, err := NewWithFile("production", &FileSink{Path: path})
	if err != nil {
		t.Fatalf("NewWithFile: %v", err)
	}
	log.Info("hello", "k", "v")
	log.Sync()
}

func TestNopLogger(t *testing.T) {
	log := NewNop().With("service", "test")
	log.Error("ignored", "error", "x")
}
