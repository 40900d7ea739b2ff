package core

// Logger is any service that can report application events and errors.
// Implementations may inspect args for an error to attach a stack trace
// or a user.User to tag the report with the acting user.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}
