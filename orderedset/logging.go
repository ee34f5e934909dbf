package orderedset

import "go.uber.org/zap"

// logger is consulted only off the hot path: on exhaustion, never on a
// successful Insert/Find/Count. Default is a no-op logger so an
// unconfigured container pays nothing for it, preserving the single-
// owner, no-suspension-point model the rest of the package guarantees.
var logger = zap.NewNop()

// SetLogger installs l as the package-wide logger for exhaustion events.
// Passing nil restores the no-op default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
