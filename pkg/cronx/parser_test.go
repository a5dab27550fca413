package cronx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidate 스케줄러 설정에서 사용하는 표현식 형식이 올바르게 판별되는지 검증합니다.
func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		spec          string
		wantErr       bool
		errorContains string
	}{
		{name: "10초마다", spec: "*/10 * * * * *"},
		{name: "매분 0초", spec: "0 * * * * *"},
		{name: "평일 업무시간", spec: "0 0-30/5 9-17 * * MON-FRI"},
		{name: "앞뒤 공백", spec: "  */5 * * * * * "},
		{name: "@every", spec: "@every 1m30s"},
		{name: "@hourly", spec: "@hourly"},

		{name: "5필드", spec: "*/5 * * * *", wantErr: true, errorContains: "expected exactly 6 fields"},
		{name: "7필드", spec: "* * * * * * *", wantErr: true, errorContains: "expected exactly 6 fields"},
		{name: "초 범위 초과", spec: "60 * * * * *", wantErr: true, errorContains: "above maximum"},
		{name: "잘못된 문자열", spec: "every-ten-seconds", wantErr: true, errorContains: "Cron 표현식 파싱 실패"},
		{name: "빈 문자열", spec: "", wantErr: true, errorContains: "empty spec string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(tt.spec)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, strings.ToLower(err.Error()), strings.ToLower(tt.errorContains))
		})
	}
}

// TestNextRun 다음 실행 시각 계산을 검증합니다.
func TestNextRun(t *testing.T) {
	t.Parallel()

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		spec string
		want time.Time
	}{
		{"*/10 * * * * *", from.Add(10 * time.Second)},
		{"0 */5 * * * *", from.Add(5 * time.Minute)},
		{"@every 30s", from.Add(30 * time.Second)},
		{"@daily", from.Add(24 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			t.Parallel()

			next, err := NextRun(tt.spec, from)
			require.NoError(t, err)
			assert.Equal(t, tt.want, next)
		})
	}

	_, err := NextRun("* * * * *", from)
	assert.Error(t, err)
}
