// SPDX-License-Identifier: AGPL-3.0-only
package native

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/fluffyriot/deskpost/internal/config"
	"github.com/go-vgo/robotgo"
)

const pollInterval = 250 * time.Millisecond

// Backend drives the real desktop editor through OS-level input events.
// It always targets the currently focused window, which is why the whole
// run stays strictly sequential.
type Backend struct {
	cfg *config.AppConfig
}

func New(cfg *config.AppConfig) *Backend {
	return &Backend{cfg: cfg}
}

func (b *Backend) LaunchEditor(ctx context.Context) error {
	// Not CommandContext: the editor is supposed to outlive us.
	cmd := exec.Command(b.cfg.EditorCommand)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", b.cfg.EditorCommand, err)
	}
	return nil
}

// FindWindow polls the focused window title until it contains the wanted
// title. A freshly launched editor and a freshly opened save dialog both
// grab focus, so this covers windows and dialogs alike.
func (b *Backend) FindWindow(ctx context.Context, title string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		current := robotgo.GetTitle()
		if strings.Contains(current, title) {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("window %q not focused within %v (focused: %q)", title, timeout, current)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

func (b *Backend) SendKeys(ctx context.Context, text string) error {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		if line != "" {
			robotgo.TypeStr(line)
		}
		if i < len(lines)-1 {
			if err := robotgo.KeyTap("enter"); err != nil {
				return fmt.Errorf("sending enter: %v", err)
			}
		}
	}
	return nil
}

func (b *Backend) OpenSaveDialog(ctx context.Context) error {
	if err := robotgo.KeyTap("s", "ctrl"); err != nil {
		return fmt.Errorf("sending ctrl+s: %v", err)
	}
	return nil
}

// ConfirmDialog accepts the typed path and answers a possible overwrite
// prompt. Filenames collide across runs on purpose, so the prompt is
// answered with yes every time it shows up.
func (b *Backend) ConfirmDialog(ctx context.Context) error {
	if err := robotgo.KeyTap("enter"); err != nil {
		return fmt.Errorf("sending enter: %v", err)
	}
	robotgo.MilliSleep(500)
	if err := robotgo.KeyTap("y", "alt"); err != nil {
		return fmt.Errorf("sending alt+y: %v", err)
	}
	return nil
}

// Shutdown is a no-op: editor windows are deliberately left open, one per
// saved post.
func (b *Backend) Shutdown() error { return nil }
