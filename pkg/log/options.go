package log

import (
	"fmt"
	"os"
)

// Options 로깅 시스템 초기화 옵션입니다.
type Options struct {
	Name  string // 로그 파일명에 사용될 애플리케이션 식별자
	Dir   string // 로그 디렉토리 (빈 값: "logs")
	Level Level  // 로그 레벨 (0: InfoLevel)

	MaxAge     int // 로테이션된 파일 보관 일수 (0: 삭제 안 함)
	MaxSizeMB  int // 파일 하나의 최대 크기 (0: 100MB)
	MaxBackups int // 로테이션된 파일의 최대 보관 개수 (0: 20개)

	EnableCriticalLog bool // ERROR 이상을 <Name>.critical.log에 추가로 기록
	EnableVerboseLog  bool // DEBUG 이하를 메인 로그 대신 <Name>.verbose.log에 기록
	EnableConsoleLog  bool // 모든 레벨을 표준 출력에도 기록
	EnableJSONFormat  bool // 텍스트 대신 JSON 한 줄 형식으로 기록

	// ReportCaller 호출 위치(함수명, 줄 번호)를 함께 기록합니다.
	ReportCaller bool

	// CallerPathPrefix 호출 위치의 함수 경로에서 잘라낼 접두사입니다.
	// 예: "github.com/darkkaiser" 이면 "github.com/darkkaiser/prime-calculator/..." 가 ".../prime-calculator/..." 로 출력됩니다.
	CallerPathPrefix string
}

// Validate 옵션 값이 유효한지 검증합니다.
func (opts *Options) Validate() error {
	if opts.Name == "" {
		return fmt.Errorf("애플리케이션 식별자(Name)가 설정되지 않았습니다")
	}

	if opts.Dir != "" {
		if info, err := os.Stat(opts.Dir); err == nil && !info.IsDir() {
			return fmt.Errorf("로그 디렉토리 경로(%s)가 이미 파일로 존재합니다", opts.Dir)
		}
	}

	switch {
	case opts.MaxAge < 0:
		return fmt.Errorf("MaxAge는 0 이상이어야 합니다: %d", opts.MaxAge)
	case opts.MaxSizeMB < 0:
		return fmt.Errorf("MaxSizeMB는 0 이상이어야 합니다: %d", opts.MaxSizeMB)
	case opts.MaxBackups < 0:
		return fmt.Errorf("MaxBackups는 0 이상이어야 합니다: %d", opts.MaxBackups)
	}

	return nil
}
