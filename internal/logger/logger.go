// Package logger owns the process-wide structured logger. Normal runs log
// warnings and errors to a rotating file only; --debug raises the level and
// mirrors output to stderr.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/backtrack/internal/constants"
)

// Logger is the global logger instance. Nil until Init succeeds; the
// package-level helpers tolerate that so early failures can still be reported.
var Logger *log.Logger

// Config holds logger configuration
type Config struct {
	Debug     bool
	ConfigDir string
}

// Init builds the global logger, creating ConfigDir/logs as needed.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	// Rotated at 5 MB, two old files kept for a month
	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.AppName+".log"),
		MaxSize:    5,
		MaxBackups: 2,
		MaxAge:     30,
		Compress:   true,
	}

	level := log.WarnLevel
	writer := io.Writer(fileWriter)
	if cfg.Debug {
		level = log.DebugLevel
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})

	return nil
}

var nop = log.New(io.Discard)

// std returns the active logger, or a discard logger before Init.
func std() *log.Logger {
	if Logger != nil {
		return Logger
	}
	return nop
}

func Debug(msg string, keyvals ...interface{}) { std().Debug(msg, keyvals...) }

func Info(msg string, keyvals ...interface{}) { std().Info(msg, keyvals...) }

func Warn(msg string, keyvals ...interface{}) { std().Warn(msg, keyvals...) }

func Error(msg string, keyvals ...interface{}) { std().Error(msg, keyvals...) }

// Fatal exits with code 1 even when the logger never initialized.
func Fatal(msg string, keyvals ...interface{}) {
	std().Log(log.FatalLevel, msg, keyvals...)
	os.Exit(1)
}
