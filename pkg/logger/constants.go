package logger

import zl "github.com/rs/zerolog"

// level names accepted in LOG_LEVEL and by Event
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// output formats accepted in LOG_FORMAT
const (
	ConsoleFormat = "console"
	JSONFormat    = "json"
)

// structured field keys
const (
	fieldLoc   = "loc"
	fieldEvent = "event"
)

var levels = map[string]zl.Level{
	DebugLevel: zl.DebugLevel,
	InfoLevel:  zl.InfoLevel,
	WarnLevel:  zl.WarnLevel,
	ErrorLevel: zl.ErrorLevel,
}
