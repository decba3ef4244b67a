package imageutil

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var loggerPtr atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	loggerPtr.Store(&nop)
}

// SetLogger configures the logger used by imageutil. By default the
// package logs nothing. Stage timings of the Canny pipeline are logged at
// debug level.
func SetLogger(l zerolog.Logger) {
	loggerPtr.Store(&l)
}

// Logger returns the logger currently used by imageutil.
func Logger() *zerolog.Logger {
	return loggerPtr.Load()
}
