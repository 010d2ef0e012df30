// Package launcher opens the shell URL in a browser window.
package launcher

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/chromedp/chromedp"
)

// OpenDefault opens the URL in the system's default browser.
func OpenDefault(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	return nil
}

// AppWindow opens the URL in a chromeless Chrome app window and blocks
// until the window closes or ctx is cancelled. chromePath is the Chrome
// binary to use; empty means auto-detect.
func AppWindow(ctx context.Context, url, chromePath string) error {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.Flag("app", url),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.WindowSize(1280, 900),
	}
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if err := chromedp.Run(browserCtx); err != nil {
		return fmt.Errorf("launching app window: %w", err)
	}

	<-browserCtx.Done()
	return nil
}
