package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development", DataPath: "/tmp/plateful"},
		Logger: LoggerConfig{Level: "info"},
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	c := validConfig()
	c.App.Environment = "testing"
	if err := c.Validate(); err == nil {
		t.Error("expected error for bad environment")
	}

	c = validConfig()
	c.Logger.Level = "verbose"
	if err := c.Validate(); err == nil {
		t.Error("expected error for bad log level")
	}

	c = validConfig()
	c.App.DataPath = ""
	if err := c.Validate(); err == nil {
		t.Error("expected error for empty data path")
	}
}

func TestExpandPath(t *testing.T) {
	// Empty path falls back to the default.
	got, err := expandPath("", "/default")
	if err != nil || got != "/default" {
		t.Errorf("expandPath empty: got %q, %v", got, err)
	}

	// Relative paths become absolute.
	got, err = expandPath("relative/dir", "")
	if err != nil {
		t.Fatalf("expandPath relative: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("expected absolute path, got %q", got)
	}

	// Tilde expands to the home directory.
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err = expandPath("~/plateful", "")
	if err != nil {
		t.Fatalf("expandPath tilde: %v", err)
	}
	if got != filepath.Join(home, "plateful") {
		t.Errorf("tilde expansion: got %q", got)
	}
}

func TestExpandDatabasePath_Default(t *testing.T) {
	c := &Config{App: AppConfig{DataPath: "/srv/plateful"}}
	if err := c.expandDatabasePath(); err != nil {
		t.Fatalf("expandDatabasePath: %v", err)
	}
	if c.Database.Path != filepath.Join("/srv/plateful", "plateful.db") {
		t.Errorf("Database.Path: got %q", c.Database.Path)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\n\nPLATEFUL_TEST_KEY=from-file\nPLATEFUL_TEST_QUOTED=\"quoted\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	t.Setenv("PLATEFUL_TEST_KEY", "")
	os.Unsetenv("PLATEFUL_TEST_KEY")
	t.Setenv("PLATEFUL_TEST_QUOTED", "")
	os.Unsetenv("PLATEFUL_TEST_QUOTED")

	if err := loadEnvFile(path); err != nil {
		t.Fatalf("loadEnvFile: %v", err)
	}
	if got := os.Getenv("PLATEFUL_TEST_KEY"); got != "from-file" {
		t.Errorf("PLATEFUL_TEST_KEY: got %q", got)
	}
	if got := os.Getenv("PLATEFUL_TEST_QUOTED"); got != "quoted" {
		t.Errorf("PLATEFUL_TEST_QUOTED: got %q", got)
	}
}

func TestLoadEnvFile_EnvWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("PLATEFUL_TEST_WINS=file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	t.Setenv("PLATEFUL_TEST_WINS", "env")
	if err := loadEnvFile(path); err != nil {
		t.Fatalf("loadEnvFile: %v", err)
	}
	if got := os.Getenv("PLATEFUL_TEST_WINS"); got != "env" {
		t.Errorf("expected env to win, got %q", got)
	}
}

func TestGetConfigValue(t *testing.T) {
	t.Setenv("PLATEFUL_TEST_VALUE", "from-env")

	if got := getConfigValue("from-flag", "PLATEFUL_TEST_VALUE", "default"); got != "from-flag" {
		t.Errorf("flag priority: got %q", got)
	}
	if got := getConfigValue("", "PLATEFUL_TEST_VALUE", "default"); got != "from-env" {
		t.Errorf("env priority: got %q", got)
	}
	if got := getConfigValue("", "PLATEFUL_TEST_MISSING", "default"); got != "default" {
		t.Errorf("default priority: got %q", got)
	}
}
