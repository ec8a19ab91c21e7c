//go:build !nogpu

package gpu

import (
	"log/slog"

	"github.com/gogpu/glow"
)

// slogger returns the logger configured with glow.SetLogger.
// All logging in this package goes through this function.
func slogger() *slog.Logger { return glow.Logger() }
