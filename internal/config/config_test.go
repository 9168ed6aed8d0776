package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.toml")

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if cfg.DBPath != filepath.Join(dir, "sub", DefaultDBName) {
		t.Errorf("expected db next to config, got %q", cfg.DBPath)
	}
	if cfg.Keys.Add != "a" || cfg.Keys.Toggle != " " {
		t.Errorf("unexpected default keys %+v", cfg.Keys)
	}

	again, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again != cfg {
		t.Errorf("reload mismatch:\n%+v\n%+v", again, cfg)
	}
}

func TestLoadOrCreateReadsOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
db_path = "/var/tmp/t.db"
store_key = "meu-app/tasks"
default_filter = "pending"
locale = "en"

[keys]
add = "n"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.DBPath != "/var/tmp/t.db" {
		t.Errorf("absolute db path changed: %q", cfg.DBPath)
	}
	if cfg.StoreKey != "meu-app/tasks" || cfg.DefaultFilter != "pending" || cfg.Locale != "en" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Keys.Add != "n" {
		t.Errorf("expected add key n, got %q", cfg.Keys.Add)
	}
	if cfg.Keys.Delete != "d" {
		t.Errorf("expected unspecified keys to keep defaults, got %q", cfg.Keys.Delete)
	}
}

func TestLoadOrCreateRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"filter": `default_filter = "done"`,
		"locale": `locale = "klingon"`,
		"syntax": `db_path = `,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadOrCreate(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), path) {
				t.Errorf("expected error to name the file, got %v", err)
			}
		})
	}
}

func TestResolveConfigPath(t *testing.T) {
	if got := ResolveConfigPath("/x/y.toml"); got != "/x/y.toml" {
		t.Errorf("explicit path ignored: %q", got)
	}
	t.Setenv(EnvConfigPath, "/from/env.toml")
	if got := ResolveConfigPath(""); got != "/from/env.toml" {
		t.Errorf("env path ignored: %q", got)
	}
	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if got := ResolveConfigPath(""); !strings.HasSuffix(got, filepath.Join(AppDirName, DefaultConfigFileName)) {
		t.Errorf("unexpected default path %q", got)
	}
}

func TestMemoryDBPathIsKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`db_path = ":memory:"`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != ":memory:" {
		t.Errorf("expected :memory:, got %q", cfg.DBPath)
	}
}
