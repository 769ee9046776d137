package html

import (
	"fmt"
	"os/exec"
	"runtime"
)

// openBrowser opens the given path with the platform's default opener.
func openBrowser(path string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path).Start()
	case "linux":
		return exec.Command("xdg-open", path).Start()
	default:
		return fmt.Errorf("unsupported platform %q", runtime.GOOS)
	}
}
