package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLogger_RedirectsAndMutes(t *testing.T) {
	defer SetLogger(nil)

	var got []string
	SetLogger(func(format string, v ...interface{}) {
		got = append(got, fmt.Sprintf(format, v...))
	})

	Logf("hello %d", 7)
	if len(got) != 1 || got[0] != "hello 7" {
		t.Fatalf("unexpected log capture: %v", got)
	}

	SetLogger(nil)
	Logf("dropped")
	if len(got) != 1 {
		t.Fatalf("nil logger should mute output, got %v", got)
	}
}

func TestSetDebug(t *testing.T) {
	defer SetLogger(nil)
	defer SetDebug(false)

	var got []string
	SetLogger(func(format string, v ...interface{}) {
		got = append(got, fmt.Sprintf(format, v...))
	})

	Debugf("off")
	if len(got) != 0 {
		t.Fatalf("debug should be off by default, got %v", got)
	}

	SetDebug(true)
	Debugf("on %s", "x")
	if len(got) != 1 || got[0] != "[debug] on x" {
		t.Fatalf("unexpected debug capture: %v", got)
	}
}
