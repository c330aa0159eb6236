package typist

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fluffyriot/deskpost/internal/config"
	"github.com/fluffyriot/deskpost/internal/models"
)

// Automator is the capability surface a backend has to provide: window and
// dialog discovery, keystroke delivery, and save confirmation. Keeping the
// OS-facing calls behind this seam lets the typing script run against a fake.
type Automator interface {
	LaunchEditor(ctx context.Context) error
	FindWindow(ctx context.Context, title string, timeout time.Duration) error
	SendKeys(ctx context.Context, text string) error
	OpenSaveDialog(ctx context.Context) error
	ConfirmDialog(ctx context.Context) error
	Shutdown() error
}

// AutomationError marks a failed step of the typing script. The run is
// aborted at the first one, since later posts assume a clean editor state.
type AutomationError struct {
	Step string
	Err  error
}

func (e *AutomationError) Error() string {
	return fmt.Sprintf("automation failed at %q: %v", e.Step, e.Err)
}

func (e *AutomationError) Unwrap() error { return e.Err }

type Typist struct {
	auto Automator
	cfg  *config.AppConfig
}

func New(auto Automator, cfg *config.AppConfig) *Typist {
	return &Typist{auto: auto, cfg: cfg}
}

func (t *Typist) Shutdown() error { return t.auto.Shutdown() }

// TypePost drives one post through a fresh editor window: type the document,
// open the save dialog, type the target path, confirm. The editor window is
// left open afterwards. Returns the path the post was saved under.
func (t *Typist) TypePost(ctx context.Context, post models.Post) (string, error) {

	path := filepath.Join(t.cfg.OutputDir, Filename(post.ID))
	doc := BuildDocument(post, t.cfg.SourceURL)

	if err := t.auto.LaunchEditor(ctx); err != nil {
		return "", &AutomationError{Step: "launch editor", Err: err}
	}

	if err := t.auto.FindWindow(ctx, t.cfg.EditorWindowTitle, t.cfg.WindowTimeout); err != nil {
		return "", &AutomationError{Step: "find editor window", Err: err}
	}

	if err := t.auto.SendKeys(ctx, doc); err != nil {
		return "", &AutomationError{Step: "type content", Err: err}
	}

	t.settle()

	if err := t.auto.OpenSaveDialog(ctx); err != nil {
		return "", &AutomationError{Step: "open save dialog", Err: err}
	}

	if err := t.auto.FindWindow(ctx, t.cfg.SaveDialogTitle, t.cfg.DialogTimeout); err != nil {
		return "", &AutomationError{Step: "find save dialog", Err: err}
	}

	if err := t.auto.SendKeys(ctx, path); err != nil {
		return "", &AutomationError{Step: "type filename", Err: err}
	}

	if err := t.auto.ConfirmDialog(ctx); err != nil {
		return "", &AutomationError{Step: "confirm save", Err: err}
	}

	t.settle()

	log.Printf("Typist: Saved post %d to %s", post.ID, path)
	return path, nil
}

// settle gives the OS a moment to finish focus and window transitions before
// the next keystroke lands somewhere else.
func (t *Typist) settle() {
	time.Sleep(t.cfg.SettleDelay)
}
