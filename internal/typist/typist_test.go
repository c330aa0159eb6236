package typist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fluffyriot/deskpost/internal/config"
	"github.com/fluffyriot/deskpost/internal/models"
)

// fakeAutomator plays the editor: typed text accumulates per window, the
// save dialog buffers the path, and confirming writes the file like the
// real editor would.
type fakeAutomator struct {
	calls    []string
	failStep string

	typed      strings.Builder
	dialogOpen bool
	pathBuf    strings.Builder
}

func (f *fakeAutomator) step(name string) error {
	f.calls = append(f.calls, name)
	if f.failStep == name {
		return errors.New("element not found")
	}
	return nil
}

func (f *fakeAutomator) LaunchEditor(ctx context.Context) error {
	f.typed.Reset()
	f.dialogOpen = false
	return f.step("LaunchEditor")
}

func (f *fakeAutomator) FindWindow(ctx context.Context, title string, timeout time.Duration) error {
	return f.step("FindWindow " + title)
}

func (f *fakeAutomator) SendKeys(ctx context.Context, text string) error {
	if f.dialogOpen {
		f.pathBuf.WriteString(text)
	} else {
		f.typed.WriteString(text)
	}
	return f.step("SendKeys")
}

func (f *fakeAutomator) OpenSaveDialog(ctx context.Context) error {
	f.dialogOpen = true
	f.pathBuf.Reset()
	return f.step("OpenSaveDialog")
}

func (f *fakeAutomator) ConfirmDialog(ctx context.Context) error {
	if err := f.step("ConfirmDialog"); err != nil {
		return err
	}
	f.dialogOpen = false
	return os.WriteFile(f.pathBuf.String(), []byte(f.typed.String()), 0600)
}

func (f *fakeAutomator) Shutdown() error { return nil }

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	return &config.AppConfig{
		SourceURL:         "https://jsonplaceholder.typicode.com/posts",
		OutputDir:         t.TempDir(),
		EditorWindowTitle: "Notepad",
		SaveDialogTitle:   "Save As",
		WindowTimeout:     time.Second,
		DialogTimeout:     time.Second,
	}
}

func TestTypePost_SavesFile(t *testing.T) {
	cfg := testConfig(t)
	fake := &fakeAutomator{}
	ty := New(fake, cfg)

	post := models.Post{UserID: 1, ID: 7, Title: "seven", Body: "lucky number"}
	path, err := ty.TypePost(context.Background(), post)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := filepath.Join(cfg.OutputDir, "post 7.txt")
	if path != want {
		t.Fatalf("expected path %q, got %q", want, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
	if string(data) != BuildDocument(post, cfg.SourceURL) {
		t.Fatalf("saved content does not match document:\n%s", data)
	}
}

func TestTypePost_ScriptOrder(t *testing.T) {
	cfg := testConfig(t)
	fake := &fakeAutomator{}
	ty := New(fake, cfg)

	if _, err := ty.TypePost(context.Background(), models.Post{ID: 1, Title: "t", Body: "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"LaunchEditor",
		"FindWindow Notepad",
		"SendKeys",
		"OpenSaveDialog",
		"FindWindow Save As",
		"SendKeys",
		"ConfirmDialog",
	}
	if len(fake.calls) != len(want) {
		t.Fatalf("expected %d calls, got %d: %v", len(want), len(fake.calls), fake.calls)
	}
	for i := range want {
		if fake.calls[i] != want[i] {
			t.Fatalf("call %d: expected %q, got %q", i, want[i], fake.calls[i])
		}
	}
}

func TestTypePost_WindowTimeout(t *testing.T) {
	cfg := testConfig(t)
	fake := &fakeAutomator{failStep: "FindWindow Notepad"}
	ty := New(fake, cfg)

	_, err := ty.TypePost(context.Background(), models.Post{ID: 1, Title: "t", Body: "b"})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}

	var ae *AutomationError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *AutomationError, got %T", err)
	}
	if ae.Step != "find editor window" {
		t.Fatalf("expected step %q, got %q", "find editor window", ae.Step)
	}
	for _, call := range fake.calls {
		if call == "ConfirmDialog" {
			t.Fatalf("save was attempted after a failed window lookup")
		}
	}
}

func TestTypePost_DialogTimeout(t *testing.T) {
	cfg := testConfig(t)
	fake := &fakeAutomator{failStep: "FindWindow Save As"}
	ty := New(fake, cfg)

	_, err := ty.TypePost(context.Background(), models.Post{ID: 2, Title: "t", Body: "b"})

	var ae *AutomationError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *AutomationError, got %v", err)
	}
	if ae.Step != "find save dialog" {
		t.Fatalf("expected step %q, got %q", "find save dialog", ae.Step)
	}

	entries, readErr := os.ReadDir(cfg.OutputDir)
	if readErr != nil {
		t.Fatalf("reading output dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files after failed save, found %d", len(entries))
	}
}
