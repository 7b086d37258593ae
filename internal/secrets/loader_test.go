package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFileTrims(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("  abc123\n"), 0o600); err != nil {
		t.Fatalf("writing token file: %v", err)
	}

	secret, err := Load(Source{Name: "backend token", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "abc123" {
		t.Fatalf("expected trimmed secret, got %q", secret)
	}
}

func TestLoadFilePrecedenceOverValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("from-file"), 0o600); err != nil {
		t.Fatalf("writing token file: %v", err)
	}

	secret, err := Load(Source{Name: "backend token", File: path, Value: "inline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "from-file" {
		t.Fatalf("expected file to take precedence, got %q", secret)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CONSULTMATCH_TEST_TOKEN", "  env-secret ")

	secret, err := Load(Source{Name: "backend token", Env: "CONSULTMATCH_TEST_TOKEN", Value: "inline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "env-secret" {
		t.Fatalf("expected env to take precedence over inline value, got %q", secret)
	}

	t.Setenv("CONSULTMATCH_TEST_TOKEN", "   ")
	if _, err := Load(Source{Name: "backend token", Env: "CONSULTMATCH_TEST_TOKEN"}); err == nil {
		t.Fatal("expected error for blank environment variable")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(Source{Name: "backend token"}); err == nil {
		t.Fatal("expected error for unconfigured secret")
	}

	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(empty, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("writing empty file: %v", err)
	}
	if _, err := Load(Source{Name: "backend token", File: empty}); err == nil {
		t.Fatal("expected error for empty secret file")
	}

	if _, err := Load(Source{Name: "backend token", File: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatal("expected error for missing file")
	}
}
