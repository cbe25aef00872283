package logging

// Logger is the structured logger used across the module. It is deliberately
// small: callers build up context with the typed setters and emit with the
// level methods, mirroring zerolog's "context then verb" style.
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warning(args ...interface{})
	Warningf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})

	String(key, value string) Logger
	Int(key string, value int) Logger
	Int64(key string, value int64) Logger
	Fields(fields map[string]interface{}) Logger
	Level(level string) (Logger, error)

	// Clone returns an independent copy of this Logger so that a caller can
	// attach one-off context (via String/Int/...) ahead of a single log
	// call without mutating the shared instance other callers hold.
	Clone() Logger
}

// EventBuilder allows to build log events with custom tags.
type EventBuilder interface {
	String(key, value string) EventBuilder
	Error(err error) EventBuilder
	Int(key string, value int) EventBuilder
	Int64(key string, value int64) EventBuilder
	Interface(key string, value any) EventBuilder
	Fields(fields map[string]any) EventBuilder

	// Msg must be called after all tags were set
	Msg(message string)
}
