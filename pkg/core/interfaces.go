package core

// Logger is the logging seam every solver and component depends on.
// Kept deliberately minimal (one variadic Printf) so pkg/solver* and
// pkg/components never take a direct dependency on a logging
// framework — they format a message and hand it to whatever Logger
// the caller wired up, which in production is a zap-backed one (see
// NewZapLogger) and in tests is usually a DiscardLogger.
type Logger interface {
	Printf(format string, args ...interface{})
}

// DiscardLogger implements Logger by dropping everything. Useful in
// tests and in library call sites that don't want the warnings §7
// requires (invalid-input skip, numerical-underflow sentinel) to hit
// stdout.
type DiscardLogger struct{}

func (DiscardLogger) Printf(format string, args ...interface{}) {}
