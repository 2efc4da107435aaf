package logger

import (
	"io"
	"os"

	"video-app/pkg/config"

	zl "github.com/rs/zerolog"
)

// log is an unexported package-level global variable that holds the logger instance
var log *logger

type logger struct {
	engine *zl.Logger
}

type options struct {
	format string
	out    io.Writer
}

func init() {
	// usable before InitLogger runs, e.g. from tests and library code
	zl.SetGlobalLevel(zl.InfoLevel)
	setupCloudLoggingSeverity()
	engine := newLogger(options{format: JSONFormat, out: os.Stdout})
	log = &logger{engine: &engine}
}

// InitLogger initializes the logger with configuration
func InitLogger(cfg *config.Config) {
	logLvl := getLogLevel(cfg.Log.Level)

	opts := options{
		format: cfg.Log.Format,
		out:    os.Stdout,
	}

	zl.SetGlobalLevel(logLvl)
	setupCloudLoggingSeverity()
	engine := newLogger(opts)

	log = &logger{
		engine: &engine,
	}
}

// getLogLevel maps a level name to zerolog, defaulting to info
func getLogLevel(level string) zl.Level {
	if lvl, ok := levels[level]; ok {
		return lvl
	}
	return zl.InfoLevel
}

// setupCloudLoggingSeverity configures zerolog to use Cloud Logging severity levels
func setupCloudLoggingSeverity() {
	zl.LevelFieldMarshalFunc = func(l zl.Level) string {
		switch l {
		case zl.DebugLevel:
			return "DEBUG"
		case zl.InfoLevel:
			return "INFO"
		case zl.WarnLevel:
			return "WARNING"
		case zl.ErrorLevel:
			return "ERROR"
		case zl.FatalLevel:
			return "CRITICAL"
		case zl.PanicLevel:
			return "CRITICAL"
		default:
			return "DEFAULT"
		}
	}
}

// newLogger builds the zerolog engine; JSON by default (Cloud Logging field
// names), human readable when the console format is requested.
func newLogger(opts options) zl.Logger {
	if opts.format == ConsoleFormat {
		return zl.New(zl.ConsoleWriter{Out: opts.out}).With().
			Timestamp().
			Logger()
	}

	zl.TimeFieldFormat = zl.TimeFormatUnix
	zl.TimestampFieldName = "timestamp"
	zl.LevelFieldName = "severity"
	zl.MessageFieldName = "message"

	return zl.New(opts.out).With().
		Timestamp().
		Logger()
}
