package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var std = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&formatter.Formatter{
		NoColors:        true,
		TimestampFormat: "2006-01-02 15:04:05",
		FieldsOrder:     []string{"component"},
	})
	return l
}

// Init sets the level ("debug", "info", "warn", "error", "none") and, when
// logfilePath is set, also writes to a rotated log file.
func Init(logfilePath string, levelStr string) error {
	switch strings.ToLower(levelStr) {
	case "debug":
		std.SetLevel(logrus.DebugLevel)
	case "warn":
		std.SetLevel(logrus.WarnLevel)
	case "error":
		std.SetLevel(logrus.ErrorLevel)
	case "none":
		std.SetLevel(logrus.PanicLevel)
	default:
		std.SetLevel(logrus.InfoLevel)
	}

	if logfilePath == "" {
		std.SetOutput(os.Stderr)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(logfilePath), 0755); err != nil {
		return err
	}
	std.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   logfilePath,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     7,
		LocalTime:  true,
	}))
	return nil
}

// SetOutput redirects all log output, mainly for tests.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

func Debug(msg string, args ...any) {
	std.Debugf(msg, args...)
}

func Info(msg string, args ...any) {
	std.Infof(msg, args...)
}

func Warn(msg string, args ...any) {
	std.Warnf(msg, args...)
}

func Error(msg string, args ...any) {
	std.Errorf(msg, args...)
}
