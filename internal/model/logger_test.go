package model

import (
	"io"
	"testing"
)

func TestDiscardLoggerWorksAsIntended(t *testing.T) {
	logger := DiscardLogger
	logger.Debug("foo")
	logger.Debugf("%s", "foo")
	logger.Info("foo")
	logger.Infof("%s", "foo")
	logger.Warn("foo")
	logger.Warnf("%s", "foo")
}

func TestErrorToStringOrOK(t *testing.T) {
	t.Run("on success", func(t *testing.T) {
		if ErrorToStringOrOK(nil) != "ok" {
			t.Fatal("expected ok")
		}
	})

	t.Run("on failure", func(t *testing.T) {
		err := io.EOF
		if result := ErrorToStringOrOK(err); result != err.Error() {
			t.Fatal("not the result we expected", result)
		}
	})
}

func TestValidLoggerOrDefault(t *testing.T) {
	t.Run("with nil logger", func(t *testing.T) {
		if ValidLoggerOrDefault(nil) != DiscardLogger {
			t.Fatal("expected DiscardLogger")
		}
	})

	t.Run("with non-nil logger", func(t *testing.T) {
		logger := &countingLogger{}
		if ValidLoggerOrDefault(logger) != logger {
			t.Fatal("expected our logger")
		}
	})
}

type countingLogger struct {
	count int
}

func (cl *countingLogger) Debug(msg string) {
	cl.count++
}

func (cl *countingLogger) Debugf(format string, v ...interface{}) {
	cl.count++
}
