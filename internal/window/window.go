package window

import (
	"os"
	"runtime"
)

// Options configure the chart window.
type Options struct {
	Title  string
	Width  int
	Height int
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "Telemetry Graphs"
	}
	if o.Width <= 0 {
		o.Width = 1000
	}
	if o.Height <= 0 {
		o.Height = 700
	}
	return o
}

// displayPresent reports whether a graphical session looks reachable.
func displayPresent() bool {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
	}
	return true
}
