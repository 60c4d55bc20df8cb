package core

import "go.uber.org/zap"

// ZapLogger adapts a *zap.SugaredLogger to the Logger interface, so
// the structured-logging stack backs every Printf warning the solvers
// emit (invalid source ray skipped, numerical sentinel substituted)
// without pkg/solver1/2/3 or pkg/components importing zap themselves.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger builds the default production Logger: a zap production
// config at info level, sugared for the Printf-style call sites the
// rest of the module already uses.
func NewZapLogger() (*ZapLogger, error) {
	z, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{sugar: z.Sugar()}, nil
}

// NewZapLoggerFrom wraps an already-constructed zap logger, letting
// cmd/benchsim share one zap instance across its own CLI logging and
// the solver warnings.
func NewZapLoggerFrom(z *zap.Logger) *ZapLogger {
	return &ZapLogger{sugar: z.Sugar()}
}

func (l *ZapLogger) Printf(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Sync flushes any buffered log entries; callers defer this after
// constructing the logger in cmd/benchsim.
func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}
