package debug

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var once sync.Once

type logger struct {
	*log.Logger
}

var singleton *logger

func getLogger() *logger {
	if singleton == nil {
		once.Do(
			func() {
				l := log.NewWithOptions(os.Stderr, log.Options{
					ReportTimestamp: true,
					TimeFormat:      time.RFC3339,
					Prefix:          "erebus",
				})
				if os.Getenv("EREBUS_DEBUG") != "" {
					l.SetLevel(log.DebugLevel)
				}
				singleton = &logger{l}
			})
	}
	return singleton
}

// LogDebug logs at debug level. Hidden unless EREBUS_DEBUG is set.
func LogDebug(msg string, args ...interface{}) {
	getLogger().Debugf(msg, args...)
}

// LogInfo logs at info level.
func LogInfo(msg string, args ...interface{}) {
	getLogger().Infof(msg, args...)
}

// LogWarn logs at warn level.
func LogWarn(msg string, args ...interface{}) {
	getLogger().Warnf(msg, args...)
}

// LogError logs at error level.
func LogError(msg string, args ...interface{}) {
	getLogger().Errorf(msg, args...)
}

// LogFatal logs at fatal level and exits.
func LogFatal(msg string, args ...interface{}) {
	getLogger().Fatalf(msg, args...)
}
