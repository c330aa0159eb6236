package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type BackendEnum string

const (
	Native  BackendEnum = "native"
	Browser BackendEnum = "browser"
)

type AppConfig struct {
	// Upstream source
	SourceURL string // e.g. https://jsonplaceholder.typicode.com/posts
	PostCount int    // how many posts to type per run

	HTTPTimeout time.Duration

	// Filesystem
	OutputDir string // where the typed files end up
	ReportDir string // empty disables the per-run CSV report

	// Automation
	Backend           BackendEnum
	EditorCommand     string
	EditorWindowTitle string
	SaveDialogTitle   string
	WindowTimeout     time.Duration
	DialogTimeout     time.Duration
	SettleDelay       time.Duration
	PostDelay         time.Duration

	// Optional status API, empty disables it
	ListenAddr string
}

func Load() (*AppConfig, error) {

	cfg := &AppConfig{}

	cfg.SourceURL = getenv("DESKPOST_SOURCE_URL", "https://jsonplaceholder.typicode.com/posts")
	cfg.PostCount = getenvi("DESKPOST_POST_COUNT", 10)
	if cfg.PostCount <= 0 {
		return nil, fmt.Errorf("DESKPOST_POST_COUNT must be positive, got %d", cfg.PostCount)
	}

	cfg.HTTPTimeout = getenvd("DESKPOST_HTTP_TIMEOUT", 15*time.Second)

	outputDir := os.Getenv("DESKPOST_OUTPUT_DIR")
	if outputDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("Failed to resolve the home directory. Error: %v", err)
		}
		outputDir = filepath.Join(home, "Desktop", "deskpost")
	}
	cfg.OutputDir = outputDir
	cfg.ReportDir = os.Getenv("DESKPOST_REPORT_DIR")

	backend := getenv("DESKPOST_BACKEND", string(Native))
	switch BackendEnum(backend) {
	case Native, Browser:
		cfg.Backend = BackendEnum(backend)
	default:
		return nil, fmt.Errorf("DESKPOST_BACKEND must be %q or %q, got %q", Native, Browser, backend)
	}

	cfg.EditorCommand = getenv("DESKPOST_EDITOR_COMMAND", "notepad.exe")
	cfg.EditorWindowTitle = getenv("DESKPOST_EDITOR_TITLE", "Notepad")
	cfg.SaveDialogTitle = getenv("DESKPOST_SAVE_DIALOG_TITLE", "Save As")

	cfg.WindowTimeout = getenvd("DESKPOST_WINDOW_TIMEOUT", 10*time.Second)
	cfg.DialogTimeout = getenvd("DESKPOST_DIALOG_TIMEOUT", 5*time.Second)
	cfg.SettleDelay = getenvd("DESKPOST_SETTLE_DELAY", 500*time.Millisecond)
	cfg.PostDelay = getenvd("DESKPOST_POST_DELAY", 1*time.Second)

	cfg.ListenAddr = os.Getenv("DESKPOST_LISTEN_ADDR")

	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		var iv int
		_, err := fmt.Sscanf(v, "%d", &iv)
		if err == nil {
			return iv
		}
	}
	return def
}

func getenvd(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
