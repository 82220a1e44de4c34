// Package log provides the process-wide structured logger used by the
// cmd/mptzkp binary and, optionally, by callers embedding the engine who
// want proving/verification activity surfaced the same way.
package log

import (
	"cmp"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

var (
	mu     sync.RWMutex
	logger zerolog.Logger
)

func init() {
	Init(cmp.Or(os.Getenv("MPTZKP_LOG_LEVEL"), "info"))
}

// Init (re)configures the global logger at the given level, writing a
// console-formatted stream to stderr.
func Init(level string) {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}
	l := zerolog.New(out).With().Timestamp().Logger()

	switch level {
	case LevelDebug:
		l = l.Level(zerolog.DebugLevel)
	case LevelInfo:
		l = l.Level(zerolog.InfoLevel)
	case LevelWarn:
		l = l.Level(zerolog.WarnLevel)
	case LevelError:
		l = l.Level(zerolog.ErrorLevel)
	default:
		panic(fmt.Sprintf("log: invalid level %q", level))
	}

	mu.Lock()
	logger = l
	mu.Unlock()
}

// Logger returns the current global logger.
func Logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

func Debugw(msg string, keyvalues ...any) { Logger().Debug().Fields(keyvalues).Msg(msg) }
func Infow(msg string, keyvalues ...any)  { Logger().Info().Fields(keyvalues).Msg(msg) }
func Warnw(msg string, keyvalues ...any)  { Logger().Warn().Fields(keyvalues).Msg(msg) }
func Errorw(err error, msg string)        { Logger().Error().Err(err).Msg(msg) }
