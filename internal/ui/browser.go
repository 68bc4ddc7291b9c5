package ui

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// BrowserEnv overrides the command used to open links
const BrowserEnv = "EVENTSCOUT_BROWSER"

// Browser opens URLs outside the terminal
type Browser interface {
	Open(url string) error
}

// SystemBrowser opens links with the platform's default handler
type SystemBrowser struct{}

// Open starts the opener without waiting for it, so the TUI keeps the terminal
func (SystemBrowser) Open(url string) error {
	name, args := openerCommand(runtime.GOOS, os.Getenv(BrowserEnv))
	cmd := exec.Command(name, append(args, url)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func openerCommand(goos, override string) (string, []string) {
	if override != "" {
		return override, nil
	}
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return "xdg-open", nil
	}
}
