package config

import "testing"

func TestStringFallback(t *testing.T) {
	t.Setenv("CFG_TEST_STRING", "")
	if got := String("CFG_TEST_STRING", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	t.Setenv("CFG_TEST_STRING", "value")
	if got := String("CFG_TEST_STRING", "fallback"); got != "value" {
		t.Fatalf("expected value, got %q", got)
	}
}

func TestRequiredString(t *testing.T) {
	t.Setenv("CFG_TEST_REQUIRED", "")
	if _, err := RequiredString("CFG_TEST_REQUIRED"); err == nil {
		t.Fatal("expected error for missing required key")
	}
	t.Setenv("CFG_TEST_REQUIRED", "set")
	v, err := RequiredString("CFG_TEST_REQUIRED")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "set" {
		t.Fatalf("expected set, got %q", v)
	}
}

func TestIntParsing(t *testing.T) {
	t.Setenv("CFG_TEST_INT", "42")
	if got := Int("CFG_TEST_INT", 7); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	t.Setenv("CFG_TEST_INT", "not-a-number")
	if got := Int("CFG_TEST_INT", 7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
}

func TestBoolTruthy(t *testing.T) {
	for _, v := range []string{"1", "true", "Yes", "on", "Y"} {
		t.Setenv("CFG_TEST_BOOL", v)
		if !Bool("CFG_TEST_BOOL", false) {
			t.Fatalf("expected %q to be truthy", v)
		}
	}
	t.Setenv("CFG_TEST_BOOL", "false")
	if Bool("CFG_TEST_BOOL", true) {
		t.Fatal("expected false to be falsy")
	}
	t.Setenv("CFG_TEST_BOOL", "")
	if !Bool("CFG_TEST_BOOL", true) {
		t.Fatal("expected fallback true for empty value")
	}
}

func TestPort(t *testing.T) {
	t.Setenv("CFG_TEST_PORT", "8083")
	p, err := Port("CFG_TEST_PORT", "8080")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != "8083" {
		t.Fatalf("expected 8083, got %q", p)
	}
	t.Setenv("CFG_TEST_PORT", "70000")
	if _, err := Port("CFG_TEST_PORT", "8080"); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}

func TestIsProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "Production")
	if !IsProduction() {
		t.Fatal("expected production environment")
	}
	t.Setenv("ENVIRONMENT", "")
	if IsProduction() {
		t.Fatal("expected development by default")
	}
}

func TestList(t *testing.T) {
	t.Setenv("CFG_TEST_LIST", " a, b ,,c ")
	got := List("CFG_TEST_LIST", "")
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("expected [a b c], got %v", got)
	}
}
