package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dmfalke/tunecast/internal/constants"
)

func TestLoad(t *testing.T) {
	// Test default values
	cfg := Load()

	if cfg.Port != constants.DefaultPort {
		t.Errorf("Expected Port to be %s, got %s", constants.DefaultPort, cfg.Port)
	}

	if cfg.DBPath != constants.DefaultDBPath {
		t.Errorf("Expected DBPath to be %s, got %s", constants.DefaultDBPath, cfg.DBPath)
	}

	if cfg.IndexPath != constants.DefaultIndexPath {
		t.Errorf("Expected IndexPath to be %s, got %s", constants.DefaultIndexPath, cfg.IndexPath)
	}

	// Check MusicDir is not empty (depends on user's home dir)
	if cfg.MusicDir == "" {
		t.Error("Expected MusicDir to not be empty")
	}

	if cfg.CoversDir == "" {
		t.Error("Expected CoversDir to not be empty")
	}
}

func TestLoadWithEnvVars(t *testing.T) {
	// Set environment variables
	os.Setenv("PORT", "9090")
	os.Setenv("DB_PATH", "/tmp/test.db")
	os.Setenv("MUSIC_DIR", "/tmp/music")
	os.Setenv("DEVICE_ID", "abcd1234")
	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("DB_PATH")
		os.Unsetenv("MUSIC_DIR")
		os.Unsetenv("DEVICE_ID")
	}()

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Expected Port to be 9090, got %s", cfg.Port)
	}

	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("Expected DBPath to be /tmp/test.db, got %s", cfg.DBPath)
	}

	if cfg.MusicDir != "/tmp/music" {
		t.Errorf("Expected MusicDir to be /tmp/music, got %s", cfg.MusicDir)
	}

	if cfg.DeviceID != "abcd1234" {
		t.Errorf("Expected DeviceID to be abcd1234, got %s", cfg.DeviceID)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Port:      "8080",
		DBPath:    "test.db",
		IndexPath: "test.bleve",
		MusicDir:  "/tmp/music",
		CoversDir: "/tmp/covers",
		LogLevel:  "info",
		LogFormat: "text",
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid port - not a number",
			mutate:  func(c *Config) { c.Port = "abc" },
			wantErr: true,
		},
		{
			name:    "invalid port - out of range",
			mutate:  func(c *Config) { c.Port = "99999" },
			wantErr: true,
		},
		{
			name:    "empty port",
			mutate:  func(c *Config) { c.Port = "" },
			wantErr: true,
		},
		{
			name:    "empty db path",
			mutate:  func(c *Config) { c.DBPath = "" },
			wantErr: true,
		},
		{
			name:    "empty index path",
			mutate:  func(c *Config) { c.IndexPath = "" },
			wantErr: true,
		},
		{
			name:    "empty music dir",
			mutate:  func(c *Config) { c.MusicDir = "" },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.LogLevel = "invalid" },
			wantErr: true,
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.LogFormat = "xml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	// Test with existing env var
	os.Setenv("TEST_VAR", "test_value")
	defer os.Unsetenv("TEST_VAR")

	value := getEnv("TEST_VAR", "default")
	if value != "test_value" {
		t.Errorf("Expected 'test_value', got '%s'", value)
	}

	// Test with non-existing env var
	value = getEnv("NON_EXISTENT_VAR", "default")
	if value != "default" {
		t.Errorf("Expected 'default', got '%s'", value)
	}
}

func TestMusicDirDefault(t *testing.T) {
	// Ensure HOME is set
	home := os.Getenv("HOME")
	if home == "" {
		t.Skip("HOME environment variable not set")
	}

	cfg := Load()
	expectedDir := filepath.Join(home, "Music")
	if cfg.MusicDir != expectedDir {
		t.Errorf("Expected MusicDir to be %s, got %s", expectedDir, cfg.MusicDir)
	}
}
