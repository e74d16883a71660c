package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetenvFileFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(path, []byte("  from-file \n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DF_TEST_KEY", "")
	t.Setenv("DF_TEST_KEY_FILE", path)
	if got := Getenv("DF_TEST_KEY", "def"); got != "from-file" {
		t.Fatalf("Getenv = %q, want from-file", got)
	}
	t.Setenv("DF_TEST_KEY", "direct")
	if got := Getenv("DF_TEST_KEY", "def"); got != "direct" {
		t.Fatalf("Getenv = %q, want direct", got)
	}
	t.Setenv("DF_TEST_KEY", "")
	t.Setenv("DF_TEST_KEY_FILE", filepath.Join(t.TempDir(), "missing"))
	if got := Getenv("DF_TEST_KEY", "def"); got != "def" {
		t.Fatalf("Getenv = %q, want def", got)
	}
}

func TestTypedGetters(t *testing.T) {
	t.Setenv("DF_TEST_INT", "12")
	t.Setenv("DF_TEST_BAD_INT", "twelve")
	t.Setenv("DF_TEST_FLOAT", "2.5")
	t.Setenv("DF_TEST_BOOL", "on")
	t.Setenv("DF_TEST_BAD_BOOL", "sometimes")

	if got := GetInt("DF_TEST_INT", 1); got != 12 {
		t.Errorf("GetInt = %d", got)
	}
	if got := GetInt("DF_TEST_BAD_INT", 1); got != 1 {
		t.Errorf("GetInt bad = %d", got)
	}
	if got := GetFloat("DF_TEST_FLOAT", 1); got != 2.5 {
		t.Errorf("GetFloat = %v", got)
	}
	if !GetBool("DF_TEST_BOOL", false) {
		t.Errorf("GetBool on = false")
	}
	if !GetBool("DF_TEST_BAD_BOOL", true) {
		t.Errorf("GetBool bad should keep default")
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]string{
		"debug": "DEBUG", "WARN": "WARN", "warning": "WARN", "error": "ERROR", "": "INFO", "loud": "INFO",
	} {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
