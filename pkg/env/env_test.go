package env

import "testing"

func TestGetFallsBackWhenUnset(t *testing.T) {
	t.Setenv("DASPORTZ_ENV_TEST", "")
	if got := Get("DASPORTZ_ENV_TEST", "json"); got != "json" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestGetTrimsValue(t *testing.T) {
	t.Setenv("DASPORTZ_ENV_TEST", " console ")
	if got := Get("DASPORTZ_ENV_TEST", "json"); got != "console" {
		t.Fatalf("expected console, got %q", got)
	}
}
