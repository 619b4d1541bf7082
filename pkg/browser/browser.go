// Package browser opens video links in the system browser.
package browser

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"
)

// Launcher starts the platform's URL handler.
type Launcher struct {
	goos  string
	start func(name string, args ...string) error
}

// New returns a Launcher for the running platform.
func New() *Launcher {
	return &Launcher{goos: runtime.GOOS, start: startDetached}
}

// Open opens rawURL with a default Launcher.
func Open(rawURL string) error {
	return New().Open(rawURL)
}

// Validate accepts only absolute http and https URLs.
func Validate(rawURL string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme: %q (only http and https allowed)", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("invalid URL: missing host in %q", rawURL)
	}
	return nil
}

// Open validates rawURL and hands it to the browser. The BROWSER
// environment variable, when set, names the command to use instead of the
// platform default.
func (l *Launcher) Open(rawURL string) error {
	if err := Validate(rawURL); err != nil {
		return err
	}

	if custom := os.Getenv("BROWSER"); custom != "" {
		return l.start(custom, rawURL)
	}

	switch l.goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return l.start("xdg-open", rawURL)
	case "darwin":
		return l.start("open", rawURL)
	case "windows":
		return l.start("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return fmt.Errorf("unsupported platform: %s", l.goos)
	}
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...) // #nosec G204 -- URL validated before reaching here
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
