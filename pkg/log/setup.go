package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	fileExt = "log"

	defaultDir        = "logs"
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 20
)

var (
	// setupOnce 프로세스 생명주기 동안 Setup이 한 번만 실행되도록 보장합니다.
	setupOnce sync.Once

	globalCloser   io.Closer
	globalSetupErr error
)

// Setup 전역 로거를 초기화합니다.
//
// 두 번째 이후의 호출은 최초 호출의 결과(Closer와 에러)를 그대로 반환합니다.
// 반환된 Closer는 프로세스 종료 전에 반드시 닫아야 합니다.
func Setup(opts Options) (io.Closer, error) {
	setupOnce.Do(func() {
		globalCloser, globalSetupErr = setup(logrus.StandardLogger(), opts)
	})

	return globalCloser, globalSetupErr
}

// setup 주어진 logger에 파일 로테이션 hook을 연결합니다.
func setup(logger *logrus.Logger, opts Options) (io.Closer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("유효하지 않은 로그 설정: %w", err)
	}

	level := opts.Level
	if level == 0 {
		level = InfoLevel
	}
	logger.SetLevel(level)
	logger.SetReportCaller(opts.ReportCaller)

	// 모든 출력은 hook이 담당하므로 기본 출력은 버립니다.
	logger.SetFormatter(&silentFormatter{})
	logger.SetOutput(io.Discard)

	dir := opts.Dir
	if dir == "" {
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("로그 디렉토리 생성 실패: %w", err)
	}

	newRotator := func(suffix string) *lumberjack.Logger {
		maxSize := opts.MaxSizeMB
		if maxSize == 0 {
			maxSize = defaultMaxSizeMB
		}
		maxBackups := opts.MaxBackups
		if maxBackups == 0 {
			maxBackups = defaultMaxBackups
		}

		name := opts.Name
		if suffix != "" {
			name += "." + suffix
		}

		return &lumberjack.Logger{
			Filename:   filepath.Join(dir, name+"."+fileExt),
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			MaxAge:     opts.MaxAge,
			LocalTime:  true,
		}
	}

	h := &hook{
		formatter: newFormatter(opts),
	}

	mainRotator := newRotator("")
	h.mainWriter = mainRotator
	closers := []io.Closer{mainRotator}

	if opts.EnableCriticalLog {
		r := newRotator("critical")
		h.criticalWriter = r
		closers = append(closers, r)
	}
	if opts.EnableVerboseLog {
		r := newRotator("verbose")
		h.verboseWriter = r
		closers = append(closers, r)
	}
	if opts.EnableConsoleLog {
		h.consoleWriter = os.Stdout
	}

	logger.AddHook(h)

	c := &closer{
		closers: closers,
		hook:    h,
	}

	// Fatal 로그로 종료되기 직전에도 파일을 닫습니다.
	logrus.RegisterExitHandler(func() {
		_ = c.Close()
	})

	return c, nil
}
