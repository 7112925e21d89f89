// Package links detects URLs inside entry text and hands them to the host
// OS's default opener. It is a pass-through side effect with no stake in
// the diary core.
package links

import (
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
)

// urlPattern matches http/https URLs up to the next whitespace or closing
// delimiter.
var urlPattern = regexp.MustCompile(`https?://[^\s<>"')\]]+`)

// Detect returns every http/https URL found in text, in order of
// appearance.
func Detect(text string) []string {
	return urlPattern.FindAllString(text, -1)
}

// Open hands url to the OS default opener. Only http/https URLs are
// accepted; anything else is refused before reaching the shell.
func Open(url string) error {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("refusing to open non-http URL: %q", url)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // Primarily Linux, but also other UNIX-like systems.
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch opener for %q: %w", url, err)
	}
	return nil
}
