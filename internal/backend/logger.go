package backend

import (
	"github.com/concave-dev/sakaton/internal/logging"
)

// RestyLogger implements resty.Logger and routes resty's own messages through
// the logging package.
type RestyLogger struct{}

// Errorf routes error messages through structured logging.
func (RestyLogger) Errorf(format string, v ...any) {
	logging.Error(format, v...)
}

// Warnf routes warning messages through structured logging.
func (RestyLogger) Warnf(format string, v ...any) {
	logging.Warn(format, v...)
}

// Debugf routes debug messages through structured logging.
func (RestyLogger) Debugf(format string, v ...any) {
	logging.Debug(format, v...)
}
