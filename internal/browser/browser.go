// Package browser opens links with the platform's default handler.
package browser

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// ErrUnsupportedPlatform is returned when no opener command is known.
var ErrUnsupportedPlatform = errors.New("no browser opener for this platform")

// Opener launches links in the default browser.
type Opener struct {
	// GOOS overrides runtime.GOOS, for tests.
	GOOS string
	// Start runs the command without waiting for it, for tests.
	Start func(*exec.Cmd) error
}

// Command returns the command that opens link on the configured platform.
func (o Opener) Command(link string) (*exec.Cmd, error) {
	goos := o.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	switch goos {
	case "darwin":
		return exec.Command("open", link), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", link), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", link), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
}

// Open implements controller.Opener.
func (o Opener) Open(link string) error {
	cmd, err := o.Command(link)
	if err != nil {
		return err
	}
	start := o.Start
	if start == nil {
		start = (*exec.Cmd).Start
	}
	if err := start(cmd); err != nil {
		return fmt.Errorf("open %s: %w", link, err)
	}
	return nil
}
