package board

import (
	"time"

	"github.com/darkkaiser/prime-calculator/internal/service/contract"
)

// Status 작업 목록의 한 행에 표시되는 상태입니다.
type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusRunning    Status = "Running"
	StatusPrime      Status = "Prime"
	StatusComposite  Status = "Composite"
	StatusCanceled   Status = "Canceled"
	StatusError      Status = "Error"
)

// IsFinished 완료 알림이 반영된 상태인지 여부를 반환합니다.
func (s Status) IsFinished() bool {
	switch s {
	case StatusPrime, StatusComposite, StatusCanceled, StatusError:
		return true
	default:
		return false
	}
}

// Row 작업 목록의 한 행입니다.
type Row struct {
	TaskID contract.TaskID `json:"task_id"`
	Number int64           `json:"number"`
	RunBy  string          `json:"run_by"`
	Status Status          `json:"status"`

	Percent        int   `json:"percent"`
	CurrentDivisor int64 `json:"current_divisor"`

	// FirstDivisor 소수 판별이 끝난 경우에만 설정됩니다.
	FirstDivisor int64 `json:"first_divisor,omitempty"`

	Error     string `json:"error,omitempty"`
	ErrorType string `json:"error_type,omitempty"`

	SubmittedAt time.Time  `json:"submitted_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
}

// Summary 상태별 행 수와 병합되어 버려진 진행 상태 알림 수입니다.
type Summary struct {
	Total      int `json:"total"`
	NotStarted int `json:"not_started"`
	Running    int `json:"running"`
	Prime      int `json:"prime"`
	Composite  int `json:"composite"`
	Canceled   int `json:"canceled"`
	Error      int `json:"error"`

	ThrottledProgress int64 `json:"throttled_progress"`
}
