// Package cronx 스케줄러가 사용하는 Cron 표현식 파서와 검증 함수를 제공합니다.
package cronx

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// StandardParser 초 단위를 포함하는 6필드 형식과 Descriptor(@every, @daily 등)를 지원하는 파서를 반환합니다.
//
// 필드 순서: [초] [분] [시] [일] [월] [요일]
//
// 예시:
//   - "*/10 * * * * *" : 10초마다
//   - "@every 30s"     : 30초 간격
func StandardParser() cron.Parser {
	return cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}

// Validate spec이 StandardParser로 해석 가능한 표현식인지 검증합니다. 앞뒤 공백은 무시합니다.
func Validate(spec string) error {
	if _, err := StandardParser().Parse(strings.TrimSpace(spec)); err != nil {
		return fmt.Errorf("Cron 표현식 파싱 실패(spec=%q): %w", spec, err)
	}
	return nil
}

// NextRun spec 기준으로 from 이후 처음 실행되는 시각을 반환합니다.
func NextRun(spec string, from time.Time) (time.Time, error) {
	schedule, err := StandardParser().Parse(strings.TrimSpace(spec))
	if err != nil {
		return time.Time{}, fmt.Errorf("Cron 표현식 파싱 실패(spec=%q): %w", spec, err)
	}
	return schedule.Next(from), nil
}
