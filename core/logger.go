package core

// Logger is the app-wide leveled logger.
// Implementations may forward entries to an external error tracker;
// a user.User passed as an arg is attached to the report as the acting person.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
