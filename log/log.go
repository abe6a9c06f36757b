// Package log writes diagnostics to a daily file under the logs directory.
// Nothing is emitted unless logs.write is enabled.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rko-cli/rko/constant"
	"github.com/rko-cli/rko/filesystem"
	"github.com/rko-cli/rko/key"
	"github.com/rko-cli/rko/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	logger  = newLogger(io.Discard, logrus.InfoLevel)
	entry   = logger.WithField("app", constant.App)
	enabled bool
)

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	return l
}

// Setup opens today's log file and applies logs.level and logs.json.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
	f, err := filesystem.API().OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}

	logger = newLogger(f, level)
	if viper.GetBool(key.LogsJson) {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	entry = logger.WithField("app", constant.App)

	return nil
}

func Error(args ...any) {
	if enabled {
		entry.Error(args...)
	}
}

func Errorf(format string, args ...any) {
	if enabled {
		entry.Errorf(format, args...)
	}
}

func Warn(args ...any) {
	if enabled {
		entry.Warn(args...)
	}
}

func Warnf(format string, args ...any) {
	if enabled {
		entry.Warnf(format, args...)
	}
}

func Infof(format string, args ...any) {
	if enabled {
		entry.Infof(format, args...)
	}
}

func Debugf(format string, args ...any) {
	if enabled {
		entry.Debugf(format, args...)
	}
}
