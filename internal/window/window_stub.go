//go:build !cgo

package window

import (
	"errors"

	"graphs/internal/chart"
)

// Available reports whether Show can open a window.
func Available() bool { return false }

// Show is unavailable without cgo.
func Show(_ []chart.Figure, _ Options) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
