package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFormDefaults_OverridesOnlyPresentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.toml")
	content := []byte(`
price_per_unit_area = 5500.5
num_people = 3
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write defaults: %v", err)
	}

	got, err := LoadFormDefaults(path, DefaultFormDefaults())
	if err != nil {
		t.Fatalf("LoadFormDefaults: %v", err)
	}

	want := FormDefaults{PricePerUnitArea: 5500.5, TotalArea: 1200, NumPeople: 3, AdvancePercent: 20}
	if got != want {
		t.Fatalf("defaults = %+v, want %+v", got, want)
	}
}

func TestLoadFormDefaults_InvalidFileKeepsBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.toml")
	if err := os.WriteFile(path, []byte("price_per_unit_area = ["), 0o600); err != nil {
		t.Fatalf("write defaults: %v", err)
	}

	got, err := LoadFormDefaults(path, DefaultFormDefaults())
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if got != DefaultFormDefaults() {
		t.Fatalf("defaults = %+v, want base values", got)
	}
}

func TestLoad_AppliesFallbacks(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_PATH", "")
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("FORM_DEFAULTS_FILE", "")

	cfg := Load()

	if cfg.DBPath != defaultDBPath {
		t.Fatalf("DBPath=%q, want %q", cfg.DBPath, defaultDBPath)
	}
	if cfg.Port != defaultPort {
		t.Fatalf("Port=%q, want %q", cfg.Port, defaultPort)
	}
	if !cfg.IsDev() {
		t.Fatalf("expected dev environment by default")
	}
	if cfg.Defaults != DefaultFormDefaults() {
		t.Fatalf("Defaults=%+v, want %+v", cfg.Defaults, DefaultFormDefaults())
	}
}

func TestLoad_ReadsFormDefaultsFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "defaults.toml")
	if err := os.WriteFile(path, []byte("advance_percent = 40.0\n"), 0o600); err != nil {
		t.Fatalf("write defaults: %v", err)
	}
	t.Setenv("FORM_DEFAULTS_FILE", path)
	t.Setenv("APP_ENV", "production")

	cfg := Load()

	if cfg.Defaults.AdvancePercent != 40 {
		t.Fatalf("AdvancePercent=%v, want 40", cfg.Defaults.AdvancePercent)
	}
	if cfg.IsDev() {
		t.Fatalf("expected production environment")
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
