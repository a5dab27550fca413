package response

import (
	apiresponse "github.com/darkkaiser/prime-calculator/internal/service/api/model/response"
	"github.com/darkkaiser/prime-calculator/internal/service/board"
)

// ErrorResponse v1 API의 오류 응답 형식입니다.
type ErrorResponse = apiresponse.ErrorResponse

// SubmitTaskResponse 작업 제출 응답
type SubmitTaskResponse struct {
	// 제출된 작업의 식별자
	TaskID string `json:"task_id" example:"3f1c2a9e-6c1b-4b8e-9a57-0f8f9f2d4c11"`
	// 판별 대상 정수
	Number int64 `json:"number" example:"7919"`
}

// CancelTaskResponse 작업 취소 요청 응답
type CancelTaskResponse struct {
	// 취소를 요청한 작업의 식별자
	TaskID string `json:"task_id" example:"my-task-1"`
	// 취소 요청 접수 여부 (작업의 실제 종료는 비동기로 반영됩니다)
	CancellationRequested bool `json:"cancellation_requested" example:"true"`
}

// CancelTaskResult 일괄 취소 요청에서 작업 하나의 처리 결과
type CancelTaskResult struct {
	// 취소를 요청한 작업의 식별자
	TaskID string `json:"task_id" example:"my-task-1"`
	// 취소 요청 접수 여부
	CancellationRequested bool `json:"cancellation_requested" example:"true"`
	// 접수되지 않은 경우의 오류 코드
	ErrorCode string `json:"error_code,omitempty" example:"not_found"`
	// 접수되지 않은 경우의 오류 메시지
	Message string `json:"message,omitempty" example:"추적 중인 작업이 아닙니다"`
}

// CancelTasksResponse 작업 일괄 취소 요청 응답
type CancelTasksResponse struct {
	// 요청 순서대로 정렬된 작업별 처리 결과
	Results []CancelTaskResult `json:"results"`
	// 취소 요청이 접수된 작업 수
	Requested int `json:"requested" example:"1"`
}

// TaskListResponse 작업 목록 응답
type TaskListResponse struct {
	// 제출 순서로 정렬된 작업 목록
	Tasks []board.Row `json:"tasks"`
	// 상태별 집계
	Summary board.Summary `json:"summary"`
}
