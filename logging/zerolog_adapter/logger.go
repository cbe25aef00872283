package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/appmetrics/appmetrics/logging"
)

// Logger wraps zerolog.Logger to satisfy logging.Logger.
type Logger struct {
	zerolog.Logger
}

const (
	ModuleFieldName   = "module"
	DefaultTimeFormat = "2006-01-02 15:04:05.000"
)

// ConfigureLog creates a new logger based on github.com/rs/zerolog.
func ConfigureLog(logFile, logLevel, module string, pretty bool) (*Logger, error) {
	return newLog(logFile, logLevel, module, pretty, false)
}

// GetLogger returns a pretty stdout logger, useful for tests and examples.
func GetLogger(module string) (logging.Logger, error) {
	return newLog("stdout", "info", module, true, true)
}

func newLog(logFile, logLevel, module string, pretty, colorOff bool) (*Logger, error) {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}

	logWriter, err := getLogWriter(logFile)
	if err != nil {
		return nil, err
	}
	zerolog.TimeFieldFormat = DefaultTimeFormat

	if pretty {
		logWriter = zerolog.ConsoleWriter{
			Out:        logWriter,
			NoColor:    colorOff,
			TimeFormat: DefaultTimeFormat,
			PartsOrder: []string{zerolog.TimestampFieldName, ModuleFieldName, zerolog.LevelFieldName, zerolog.MessageFieldName},
		}
	}

	logger := zerolog.New(logWriter).Level(level).With().Str(ModuleFieldName, module).Logger()
	return &Logger{logger}, nil
}

func getLogWriter(logFileName string) (io.Writer, error) {
	if logFileName == "stdout" || logFileName == "" {
		return os.Stdout, nil
	}

	logDir := filepath.Dir(logFileName)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("can't create log directories %s: %s", logDir, err.Error())
	}
	logFile, err := os.OpenFile(logFileName, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("can't open log file %s: %s", logFileName, err.Error())
	}
	return logFile, nil
}

func (l Logger) Debug(args ...interface{}) {
	l.Logger.Debug().Timestamp().Msg(fmt.Sprint(args...))
}

func (l Logger) Debugf(format string, args ...interface{}) {
	l.Logger.Debug().Timestamp().Msgf(format, args...)
}

func (l Logger) Info(args ...interface{}) {
	l.Logger.Info().Timestamp().Msg(fmt.Sprint(args...))
}

func (l Logger) Infof(format string, args ...interface{}) {
	l.Logger.Info().Timestamp().Msgf(format, args...)
}

func (l Logger) Error(args ...interface{}) {
	l.Logger.Error().Timestamp().Msgf(fmt.Sprint(args...))
}

func (l Logger) Errorf(format string, args ...interface{}) {
	l.Logger.Error().Timestamp().Msgf(format, args...)
}

func (l Logger) Warning(args ...interface{}) {
	l.Logger.Warn().Timestamp().Msg(fmt.Sprint(args...))
}

func (l Logger) Warningf(format string, args ...interface{}) {
	l.Logger.Warn().Timestamp().Msgf(format, args...)
}

func (l *Logger) String(key, value string) logging.Logger {
	l.Logger = l.Logger.With().Str(key, value).Logger()
	return l
}

func (l *Logger) Int(key string, value int) logging.Logger {
	l.Logger = l.Logger.With().Int(key, value).Logger()
	return l
}

func (l *Logger) Int64(key string, value int64) logging.Logger {
	l.Logger = l.Logger.With().Int64(key, value).Logger()
	return l
}

func (l *Logger) Fields(fields map[string]interface{}) logging.Logger {
	l.Logger = l.Logger.With().Fields(fields).Logger()
	return l
}

// Clone returns an independent copy of l, so that a caller can chain
// String/Int/... to attach one-off context without mutating the shared
// instance - the same Clone().String(...) pattern the teacher's own
// call sites use ahead of a single logged event.
func (l *Logger) Clone() logging.Logger {
	clone := *l
	return &clone
}

func (l *Logger) Level(s string) (logging.Logger, error) {
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return l, err
	}
	l.Logger = l.Logger.Level(level)
	return l, nil
}
