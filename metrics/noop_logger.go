package metrics

import "github.com/appmetrics/appmetrics/logging"

// noopLogger is the Registry's default logging.Logger: every method is a
// no-op, so a Registry built without SetLogger behaves exactly as it did
// before lifecycle logging existed.
type noopLogger struct{}

func (noopLogger) Debug(args ...interface{})                   {}
func (noopLogger) Debugf(format string, args ...interface{})   {}
func (noopLogger) Info(args ...interface{})                    {}
func (noopLogger) Infof(format string, args ...interface{})    {}
func (noopLogger) Warning(args ...interface{})                 {}
func (noopLogger) Warningf(format string, args ...interface{}) {}
func (noopLogger) Error(args ...interface{})                   {}
func (noopLogger) Errorf(format string, args ...interface{})   {}

func (n noopLogger) String(key, value string) logging.Logger             { return n }
func (n noopLogger) Int(key string, value int) logging.Logger            { return n }
func (n noopLogger) Int64(key string, value int64) logging.Logger        { return n }
func (n noopLogger) Fields(fields map[string]interface{}) logging.Logger { return n }
func (n noopLogger) Level(level string) (logging.Logger, error)          { return n, nil }
func (n noopLogger) Clone() logging.Logger                               { return n }
