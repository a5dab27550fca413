package middleware

import (
	"io"

	applog "github.com/darkkaiser/prime-calculator/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// Logger Echo 내부 로그(github.com/labstack/gommon/log.Logger)를 애플리케이션 로거로 전달하는 어댑터입니다.
type Logger struct {
	*applog.Logger
}

var _ echo.Logger = Logger{}

func (l Logger) Output() io.Writer { return l.Logger.Out }

func (l Logger) SetOutput(w io.Writer) { l.Logger.SetOutput(w) }

// Prefix Echo의 Prefix 기능은 사용하지 않습니다.
func (l Logger) Prefix() string { return "" }

func (l Logger) SetPrefix(string) {}

// SetHeader Echo의 Header 기능은 사용하지 않습니다.
func (l Logger) SetHeader(string) {}

// Level 애플리케이션 로그 레벨을 Echo 로그 레벨로 변환합니다. 대응하는 레벨이 없으면 OFF입니다.
func (l Logger) Level() log.Lvl {
	switch l.Logger.Level {
	case applog.TraceLevel, applog.DebugLevel:
		return log.DEBUG
	case applog.InfoLevel:
		return log.INFO
	case applog.WarnLevel:
		return log.WARN
	case applog.ErrorLevel:
		return log.ERROR
	default:
		return log.OFF
	}
}

// SetLevel Echo 로그 레벨을 애플리케이션 로그 레벨로 변환하여 설정합니다. OFF는 무시합니다.
func (l Logger) SetLevel(lvl log.Lvl) {
	switch lvl {
	case log.DEBUG:
		l.Logger.SetLevel(applog.DebugLevel)
	case log.INFO:
		l.Logger.SetLevel(applog.InfoLevel)
	case log.WARN:
		l.Logger.SetLevel(applog.WarnLevel)
	case log.ERROR:
		l.Logger.SetLevel(applog.ErrorLevel)
	}
}

func (l Logger) Printj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Print() }
func (l Logger) Debugj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Debug() }
func (l Logger) Infoj(j log.JSON)  { l.Logger.WithFields(applog.Fields(j)).Info() }
func (l Logger) Warnj(j log.JSON)  { l.Logger.WithFields(applog.Fields(j)).Warn() }
func (l Logger) Errorj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Error() }
func (l Logger) Fatalj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Fatal() }
func (l Logger) Panicj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Panic() }
