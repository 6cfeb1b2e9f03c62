package archive

// Logger is the leveled logging collaborator injected by the caller. The
// method set matches *log/slog.Logger, which satisfies it directly. The
// pipeline never logs passwords.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// nopLogger is used when the caller passes a nil logger.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
