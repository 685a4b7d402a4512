package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subclip.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not created: %v", err)
	}

	if cfg.Hotkey != "ctrl+c" {
		t.Errorf("Hotkey = %q; want %q", cfg.Hotkey, "ctrl+c")
	}
	if cfg.Trigger != "auto" {
		t.Errorf("Trigger = %q; want %q", cfg.Trigger, "auto")
	}
	if cfg.SettleDelay() != 100*time.Millisecond {
		t.Errorf("SettleDelay = %v; want 100ms", cfg.SettleDelay())
	}
	if cfg.PollInterval() != 500*time.Millisecond {
		t.Errorf("PollInterval = %v; want 500ms", cfg.PollInterval())
	}
	if !cfg.WatchConfig || !cfg.SingleInstance {
		t.Errorf("WatchConfig=%v SingleInstance=%v; want true, true", cfg.WatchConfig, cfg.SingleInstance)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v; want level error, format console", cfg.Logging)
	}
	if cfg.ConfigVersion != CurrentConfigVersion {
		t.Errorf("ConfigVersion = %d; want %d", cfg.ConfigVersion, CurrentConfigVersion)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q; want %q", cfg.Path(), path)
	}

	if _, err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadYAMLKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subclip.yaml")
	writeFile(t, path, "hotkey: \"  Alt+S \"\ntrigger: POLL\npoll_interval_ms: 10\nconfig_version: 1\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load unexpected error: %v", err)
	}
	if cfg.Hotkey != "Alt+S" {
		t.Errorf("Hotkey = %q; want %q", cfg.Hotkey, "Alt+S")
	}
	if cfg.Trigger != "poll" {
		t.Errorf("Trigger = %q; want %q", cfg.Trigger, "poll")
	}
	if cfg.PollIntervalMS != 50 {
		t.Errorf("PollIntervalMS = %d; want clamp to 50", cfg.PollIntervalMS)
	}
	if cfg.SettleDelayMS != 100 {
		t.Errorf("SettleDelayMS = %d; want default 100", cfg.SettleDelayMS)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subclip.toml")
	writeFile(t, path, "hotkey = \"ctrl+shift+c\"\nsettle_delay_ms = 250\nconfig_version = 1\n\n[logging]\nlevel = \"DEBUG\"\nformat = \"json\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load unexpected error: %v", err)
	}
	if cfg.Hotkey != "ctrl+shift+c" || cfg.SettleDelayMS != 250 {
		t.Errorf("got hotkey=%q settle=%d; want ctrl+shift+c, 250", cfg.Hotkey, cfg.SettleDelayMS)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v; want debug/json", cfg.Logging)
	}

	out, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "settle_delay_ms = 250") {
		t.Errorf("Encode() is not TOML:\n%s", out)
	}
}

func TestLoadCreatesDefaultTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subclip.toml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load unexpected error: %v", err)
	}
	if cfg.Hotkey != "ctrl+c" {
		t.Errorf("Hotkey = %q; want ctrl+c", cfg.Hotkey)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "hotkey = ") {
		t.Errorf("default TOML file content unexpected:\n%s", data)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subclip.yaml")
	writeFile(t, path, "hotkey: ctrl+c\nsettle_delay_ms: 100\nconfig_version: 1\n")

	t.Setenv("SUBCLIP_HOTKEY", "ctrl+alt+v")
	t.Setenv("SUBCLIP_LOG_LEVEL", "info")

	// le .env ne remplace pas une variable déjà définie
	writeFile(t, filepath.Join(dir, ".env"), "SUBCLIP_HOTKEY=win+x\nSUBCLIP_SETTLE_DELAY_MS=300\n")
	t.Cleanup(func() { os.Unsetenv("SUBCLIP_SETTLE_DELAY_MS") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load unexpected error: %v", err)
	}
	if cfg.Hotkey != "ctrl+alt+v" {
		t.Errorf("Hotkey = %q; want env value ctrl+alt+v", cfg.Hotkey)
	}
	if cfg.SettleDelayMS != 300 {
		t.Errorf("SettleDelayMS = %d; want .env value 300", cfg.SettleDelayMS)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q; want info", cfg.Logging.Level)
	}

	// l'environnement n'est jamais recopié dans le fichier
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "ctrl+alt+v") {
		t.Errorf("env override leaked into config file:\n%s", data)
	}
}

func TestLoadInvalidEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subclip.yaml")
	writeFile(t, path, "config_version: 1\n")
	t.Setenv("SUBCLIP_POLL_INTERVAL_MS", "beaucoup")

	if _, err := Load(path); err == nil {
		t.Fatalf("Load with invalid env expected error, got nil")
	}
}

func TestLoadMigratesOldVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subclip.yaml")
	writeFile(t, path, "hotkey: alt+c\nsettle_delay_ms: 0\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load unexpected error: %v", err)
	}
	if cfg.ConfigVersion != CurrentConfigVersion {
		t.Errorf("ConfigVersion = %d; want %d", cfg.ConfigVersion, CurrentConfigVersion)
	}
	if cfg.SettleDelayMS != 100 {
		t.Errorf("SettleDelayMS = %d; want migrated default 100", cfg.SettleDelayMS)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "config_version: 1") || !strings.Contains(string(data), "hotkey: alt+c") {
		t.Errorf("migrated file content unexpected:\n%s", data)
	}

	matches, _ := filepath.Glob(path + ".bak.*")
	if len(matches) != 1 {
		t.Errorf("got %d backups, want 1", len(matches))
	}
}

func TestLoadCurrentVersionIsNotMigrated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subclip.yaml")
	content := "hotkey: alt+c\nsettle_delay_ms: 0\nconfig_version: 1\n"
	writeFile(t, path, content)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load unexpected error: %v", err)
	}
	if cfg.SettleDelayMS != 0 {
		t.Errorf("SettleDelayMS = %d; want 0 kept for a current file", cfg.SettleDelayMS)
	}
	if data, _ := os.ReadFile(path); string(data) != content {
		t.Errorf("current config rewritten:\n%s", data)
	}
	if matches, _ := filepath.Glob(path + ".bak.*"); len(matches) != 0 {
		t.Errorf("got %d backups, want 0", len(matches))
	}
}

func TestLoadBackslashes(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		content    string
		wantHotkey string
		wantLock   string
		wantLog    string
	}{
		{
			name:       "yaml escapes outside paths are kept",
			file:       "subclip.yaml",
			content:    "hotkey: \"\\u0061lt+s\"\nlock_file: 'C:\\Temp\\subclip.lock'\nlogging:\n  file: \"D:\\\\logs\\\\subclip.log\"\nconfig_version: 1\n",
			wantHotkey: "alt+s",
			wantLock:   "C:/Temp/subclip.lock",
			wantLog:    "D:/logs/subclip.log",
		},
		{
			name:       "toml basic and literal strings",
			file:       "subclip.toml",
			content:    "hotkey = \"\\u0061lt+s\"\nlock_file = 'C:\\Temp\\subclip.lock'\nconfig_version = 1\n\n[logging]\nfile = \"D:\\\\logs\\\\subclip.log\"\n",
			wantHotkey: "alt+s",
			wantLock:   "C:/Temp/subclip.lock",
			wantLog:    "D:/logs/subclip.log",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.file)
			writeFile(t, path, tc.content)

			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load unexpected error: %v", err)
			}
			if cfg.Hotkey != tc.wantHotkey {
				t.Errorf("Hotkey = %q; want %q", cfg.Hotkey, tc.wantHotkey)
			}
			if got := filepath.ToSlash(cfg.LockFile); got != tc.wantLock {
				t.Errorf("LockFile = %q; want %q", got, tc.wantLock)
			}
			if got := filepath.ToSlash(cfg.Logging.File); got != tc.wantLog {
				t.Errorf("Logging.File = %q; want %q", got, tc.wantLog)
			}
		})
	}
}

func TestApply(t *testing.T) {
	cfg := Default()
	hk, mode, delay, lvl := " F9 ", "POLL", -5, "DEBUG"
	cfg.Apply(Overrides{Hotkey: &hk, Trigger: &mode, SettleDelayMS: &delay, LogLevel: &lvl})

	if cfg.Hotkey != "F9" || cfg.Trigger != "poll" || cfg.SettleDelayMS != 0 || cfg.Logging.Level != "debug" {
		t.Fatalf("Apply result = hotkey %q trigger %q delay %d level %q", cfg.Hotkey, cfg.Trigger, cfg.SettleDelayMS, cfg.Logging.Level)
	}

	// les champs nil ne changent rien
	before := *cfg
	cfg.Apply(Overrides{})
	if *cfg != before {
		t.Fatalf("Apply(empty) modified config: %+v -> %+v", before, *cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"bad trigger", func(c *Config) { c.Trigger = "keyboard" }, true},
		{"bad hotkey", func(c *Config) { c.Hotkey = "ctrl+enter" }, true},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"poll with custom hotkey", func(c *Config) { c.Trigger = "poll"; c.Hotkey = "alt+x" }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			_, err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v; wantErr %v", err, tc.wantErr)
			}
		})
	}

	cfg := Default()
	cfg.Trigger = "poll"
	cfg.Hotkey = "alt+x"
	warnings, _ := cfg.Validate()
	if len(warnings) == 0 {
		t.Errorf("expected a warning for hotkey ignored in poll mode")
	}
}
