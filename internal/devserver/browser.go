package devserver

import (
	"os/exec"
	"runtime"
	"time"
)

// browserCommand returns the command that opens url on goos.
func browserCommand(goos, url string) (string, []string) {
	switch goos {
	case "windows":
		return "cmd", []string{"/c", "start", url}
	case "darwin":
		return "open", []string{url}
	default:
		return "xdg-open", []string{url}
	}
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	name, args := browserCommand(runtime.GOOS, url)
	_ = exec.Command(name, args...).Start()
}

// OpenBrowserAfter opens url once delay has passed, giving the listener
// time to come up. It returns immediately.
func OpenBrowserAfter(url string, delay time.Duration) {
	go func() {
		time.Sleep(delay)
		openBrowser(url)
	}()
}
