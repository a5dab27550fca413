// Package log logrus 기반의 전역 로깅 설정과 컴포넌트 단위 로그 헬퍼를 제공합니다.
//
// 호출 측은 logrus를 직접 import하지 않고 이 패키지의 별칭 타입과 헬퍼만 사용합니다.
//
//	closer, err := log.Setup(log.NewProductionOptions("prime-calculator"))
//	defer closer.Close()
//
//	log.WithComponentAndFields("task.service", log.Fields{"task_id": id}).Info("작업 제출")
package log

import (
	"github.com/sirupsen/logrus"
)

// Level logrus.Level의 별칭입니다.
type Level = logrus.Level

const (
	PanicLevel Level = logrus.PanicLevel
	FatalLevel Level = logrus.FatalLevel
	ErrorLevel Level = logrus.ErrorLevel
	WarnLevel  Level = logrus.WarnLevel
	InfoLevel  Level = logrus.InfoLevel
	DebugLevel Level = logrus.DebugLevel
	TraceLevel Level = logrus.TraceLevel
)

// AllLevels logrus.AllLevels의 별칭입니다.
var AllLevels = logrus.AllLevels

// Fields logrus.Fields의 별칭입니다.
type Fields = logrus.Fields

// Entry logrus.Entry의 별칭입니다.
type Entry = logrus.Entry

// Logger logrus.Logger의 별칭입니다.
type Logger = logrus.Logger

// Formatter logrus.Formatter의 별칭입니다.
type Formatter = logrus.Formatter
