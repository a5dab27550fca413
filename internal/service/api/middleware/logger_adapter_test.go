package middleware

import (
	"bytes"
	"testing"

	applog "github.com/darkkaiser/prime-calculator/pkg/log"
	"github.com/labstack/gommon/log"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestLogger() (Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}

	l := logrus.New()
	l.SetOutput(buf)
	l.SetFormatter(&logrus.JSONFormatter{})

	return Logger{Logger: l}, buf
}

func TestLogger_Level(t *testing.T) {
	t.Parallel()

	tests := []struct {
		appLevel applog.Level
		expected log.Lvl
	}{
		{applog.TraceLevel, log.DEBUG},
		{applog.DebugLevel, log.DEBUG},
		{applog.InfoLevel, log.INFO},
		{applog.WarnLevel, log.WARN},
		{applog.ErrorLevel, log.ERROR},
		{applog.FatalLevel, log.OFF},
		{applog.PanicLevel, log.OFF},
	}

	for _, tt := range tests {
		t.Run(tt.appLevel.String(), func(t *testing.T) {
			t.Parallel()

			l, _ := newTestLogger()
			l.Logger.SetLevel(tt.appLevel)

			assert.Equal(t, tt.expected, l.Level())
		})
	}
}

func TestLogger_SetLevel(t *testing.T) {
	t.Parallel()

	l, _ := newTestLogger()

	l.SetLevel(log.WARN)
	assert.Equal(t, applog.WarnLevel, l.Logger.GetLevel())

	l.SetLevel(log.OFF)
	assert.Equal(t, applog.WarnLevel, l.Logger.GetLevel(), "OFF는 무시되어야 합니다")
}

func TestLogger_Output(t *testing.T) {
	t.Parallel()

	l, buf := newTestLogger()

	assert.Same(t, buf, l.Output())
	assert.Empty(t, l.Prefix())

	l.Infoj(log.JSON{"task_id": "a"})
	l.Warnf("경고 %d", 1)

	assert.Contains(t, buf.String(), `"task_id":"a"`)
	assert.Contains(t, buf.String(), "경고 1")
}
