package logger

import (
	"video-app/pkg/utils"

	zl "github.com/rs/zerolog"
)

// entry starts an event at level, stamped with the location of whoever
// called the exported helper.
func entry(level zl.Level) *zl.Event {
	return log.engine.WithLevel(level).Str(fieldLoc, utils.GetFileAndLoC(2))
}

func Debug(message string) {
	entry(zl.DebugLevel).Msg(message)
}

func Debugf(template string, args ...interface{}) {
	entry(zl.DebugLevel).Msgf(template, args...)
}

func Info(message string) {
	entry(zl.InfoLevel).Msg(message)
}

func Infof(template string, args ...interface{}) {
	entry(zl.InfoLevel).Msgf(template, args...)
}

func Warn(message string) {
	entry(zl.WarnLevel).Msg(message)
}

func Warnf(template string, args ...interface{}) {
	entry(zl.WarnLevel).Msgf(template, args...)
}

// Error logs message at error level; a nil err is omitted from the entry.
func Error(err error, message string) {
	entry(zl.ErrorLevel).Err(err).Msg(message)
}

func Errorf(err error, template string, args ...interface{}) {
	entry(zl.ErrorLevel).Err(err).Msgf(template, args...)
}

// Fatalf logs and exits the process.
func Fatalf(template string, args ...interface{}) {
	log.engine.Fatal().Str(fieldLoc, utils.GetFileAndLoC(1)).Msgf(template, args...)
}

// Event logs a named security event (failed login, rejected playback token,
// ...) with flat string fields as structured keys. Unknown levels log at info.
func Event(level, event string, fields map[string]string) {
	e := entry(getLogLevel(level)).Str(fieldEvent, event)
	for k, v := range fields {
		e = e.Str(k, v)
	}
	e.Msg(event)
}
