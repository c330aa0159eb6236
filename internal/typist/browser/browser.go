// SPDX-License-Identifier: AGPL-3.0-only
package browser

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/fluffyriot/deskpost/internal/config"
)

const editorHTML = `<!DOCTYPE html><html><head><title>deskpost editor</title></head>` +
	`<body><textarea id="editor" autofocus rows="40" cols="120"></textarea></body></html>`

// Backend drives a textarea "editor" page in headless Chrome. It exists for
// environments without a desktop session; the native save dialog has no
// scriptable counterpart in the browser, so the dialog half of the script is
// emulated: the typed path is buffered and the confirm step writes the file.
type Backend struct {
	cfg *config.AppConfig

	allocCtx    context.Context
	allocCancel context.CancelFunc
	tabCtx      context.Context
	cancels     []context.CancelFunc
	loaded      chan struct{}

	dialogOpen bool
	pathBuf    strings.Builder
}

func New(cfg *config.AppConfig) *Backend {
	return &Backend{cfg: cfg}
}

// LaunchEditor opens a fresh tab with the editor page. Previous tabs are
// kept alive, mirroring the native behavior of one editor window per post.
func (b *Backend) LaunchEditor(ctx context.Context) error {

	if b.allocCtx == nil {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.WindowSize(1280, 900),
			chromedp.Flag("headless", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)
		b.allocCtx, b.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	}

	tabCtx, cancel := chromedp.NewContext(b.allocCtx)
	b.cancels = append(b.cancels, cancel)
	b.tabCtx = tabCtx

	loaded := make(chan struct{}, 1)
	b.loaded = loaded
	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		if _, ok := ev.(*page.EventLoadEventFired); ok {
			select {
			case loaded <- struct{}{}:
			default:
			}
		}
	})

	pageURL := "data:text/html," + url.PathEscape(editorHTML)
	if err := chromedp.Run(tabCtx, chromedp.Navigate(pageURL)); err != nil {
		return fmt.Errorf("Browser navigation failed: %w", err)
	}

	return nil
}

func (b *Backend) FindWindow(ctx context.Context, title string, timeout time.Duration) error {

	if b.dialogOpen {
		// The emulated save dialog exists as soon as it is opened.
		return nil
	}

	select {
	case <-b.loaded:
	case <-time.After(timeout):
		return fmt.Errorf("timed out waiting for editor page %q after %v", title, timeout)
	case <-ctx.Done():
		return ctx.Err()
	}

	tctx, cancel := context.WithTimeout(b.tabCtx, timeout)
	defer cancel()
	return chromedp.Run(tctx, chromedp.WaitVisible("#editor", chromedp.ByID))
}

func (b *Backend) SendKeys(ctx context.Context, text string) error {

	if b.dialogOpen {
		b.pathBuf.WriteString(text)
		return nil
	}

	tctx, cancel := context.WithTimeout(b.tabCtx, b.cfg.WindowTimeout)
	defer cancel()
	return chromedp.Run(tctx, chromedp.SendKeys("#editor", text, chromedp.ByID))
}

func (b *Backend) OpenSaveDialog(ctx context.Context) error {
	b.dialogOpen = true
	b.pathBuf.Reset()
	return nil
}

// ConfirmDialog reads the editor content back out of the tab and writes it
// to the buffered path. os.WriteFile truncates, which matches the native
// overwrite-confirmed behavior on colliding filenames.
func (b *Backend) ConfirmDialog(ctx context.Context) error {

	path := b.pathBuf.String()
	b.dialogOpen = false
	if path == "" {
		return fmt.Errorf("no filename was typed into the save dialog")
	}

	var content string
	tctx, cancel := context.WithTimeout(b.tabCtx, b.cfg.DialogTimeout)
	defer cancel()
	if err := chromedp.Run(tctx, chromedp.Value("#editor", &content, chromedp.ByID)); err != nil {
		return fmt.Errorf("reading editor content: %w", err)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

// Shutdown tears Chrome down. Unlike visible editor windows, leaked headless
// browsers serve nobody.
func (b *Backend) Shutdown() error {
	for _, cancel := range b.cancels {
		cancel()
	}
	if b.allocCancel != nil {
		b.allocCancel()
	}
	return nil
}
