package envutil

import (
	"testing"
	"time"
)

func TestReaders(t *testing.T) {
	t.Setenv("ENVUTIL_STR", "  hello ")
	t.Setenv("ENVUTIL_INT", "42")
	t.Setenv("ENVUTIL_BAD_INT", "4x")
	t.Setenv("ENVUTIL_FLOAT", "1.5")
	t.Setenv("ENVUTIL_BOOL", "on")
	t.Setenv("ENVUTIL_BOOL_FALSE", "0")
	t.Setenv("ENVUTIL_DUR", "250ms")
	t.Setenv("ENVUTIL_DUR_SECS", "3")

	if got := String("ENVUTIL_STR", "x"); got != "hello" {
		t.Fatalf("String: %q", got)
	}
	if got := String("ENVUTIL_MISSING", "x"); got != "x" {
		t.Fatalf("String default: %q", got)
	}
	if got := Int("ENVUTIL_INT", 1); got != 42 {
		t.Fatalf("Int: %d", got)
	}
	if got := Int("ENVUTIL_BAD_INT", 7); got != 7 {
		t.Fatalf("Int fallback: %d", got)
	}
	if got := Float("ENVUTIL_FLOAT", 0); got != 1.5 {
		t.Fatalf("Float: %v", got)
	}
	if !Bool("ENVUTIL_BOOL", false) || Bool("ENVUTIL_BOOL_FALSE", true) {
		t.Fatalf("Bool parsing")
	}
	if got := Duration("ENVUTIL_DUR", time.Second); got != 250*time.Millisecond {
		t.Fatalf("Duration: %v", got)
	}
	if got := Duration("ENVUTIL_DUR_SECS", time.Second); got != 3*time.Second {
		t.Fatalf("Duration seconds: %v", got)
	}
}
