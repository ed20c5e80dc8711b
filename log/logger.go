// Package log is a thin key/value wrapper over logrus.
package log

import (
	"io"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02T15:04:05.000"

// the command line tools print results on stdout, so logs default to stderr
var std = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	return l
}()

// Logger returns the shared logger.
func Logger() *logrus.Logger {
	return std
}

// SetLogger sets level (0:panic ... 6:trace) and output format.
func SetLogger(logLevel uint32, jsonFormat, colorFormat bool) {
	std.SetLevel(logrus.Level(logLevel))
	if jsonFormat {
		std.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
		})
		return
	}
	std.SetFormatter(&logrus.TextFormatter{
		ForceColors:     colorFormat,
		DisableColors:   !colorFormat,
		ForceQuote:      true,
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
		DisableSorting:  true,
	})
}

// SetOutput redirects log output.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// SetLogFile writes logs to a rotated file as well as stderr.
// rotation is in hours and maxAge in days; zero keeps the defaults of
// one day and one week.
func SetLogFile(logFile string, rotation, maxAge uint64) error {
	if rotation == 0 {
		rotation = 24
	}
	if maxAge == 0 {
		maxAge = 7
	}
	absPath, err := filepath.Abs(logFile)
	if err != nil {
		return err
	}
	writer, err := rotatelogs.New(
		absPath+".%Y%m%d%H",
		rotatelogs.WithLinkName(absPath),
		rotatelogs.WithRotationTime(time.Duration(rotation)*time.Hour),
		rotatelogs.WithMaxAge(time.Duration(maxAge)*24*time.Hour),
	)
	if err != nil {
		return err
	}
	std.SetOutput(io.MultiWriter(os.Stderr, writer))
	return nil
}

// WithFields builds an entry from alternating keys and values.
func WithFields(ctx ...interface{}) *logrus.Entry {
	length := len(ctx)
	if length%2 != 0 {
		std.Debugf("log fields number %v is not even", length)
	}
	fields := make(logrus.Fields, length/2)
	for k := 0; k+2 <= length; k += 2 {
		key, ok := ctx[k].(string)
		if ok {
			fields[key] = ctx[k+1]
		} else {
			std.Debugf("log field key '%v' is not string", ctx[k])
		}
	}
	return std.WithFields(fields)
}

func Trace(msg string, ctx ...interface{}) {
	WithFields(ctx...).Trace(msg)
}

func Debug(msg string, ctx ...interface{}) {
	WithFields(ctx...).Debug(msg)
}

func Debugf(format string, args ...interface{}) {
	std.Debugf(format, args...)
}

func Info(msg string, ctx ...interface{}) {
	WithFields(ctx...).Info(msg)
}

func Infof(format string, args ...interface{}) {
	std.Infof(format, args...)
}

func Println(msg ...interface{}) {
	std.Println(msg...)
}

func Warn(msg string, ctx ...interface{}) {
	WithFields(ctx...).Warn(msg)
}

func Warnf(format string, args ...interface{}) {
	std.Warnf(format, args...)
}

func Error(msg string, ctx ...interface{}) {
	WithFields(ctx...).Error(msg)
}

func Errorf(format string, args ...interface{}) {
	std.Errorf(format, args...)
}

func Fatal(msg string, ctx ...interface{}) {
	WithFields(ctx...).Fatal(msg)
}

func Fatalf(format string, args ...interface{}) {
	std.Fatalf(format, args...)
}
