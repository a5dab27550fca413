package request

// SubmitTaskRequest 소수 판별 작업 제출 요청
type SubmitTaskRequest struct {
	// 판별할 정수 (생략 시 무작위 정수, 최대값은 calculator.max_number 설정을 따릅니다)
	Number *int64 `json:"number" korean:"판별할 정수" example:"7919"`
	// 작업 식별자 (생략 시 서버가 UUID를 생성)
	TaskID string `json:"task_id" validate:"omitempty,max=128,printascii" korean:"작업 ID" example:"my-task-1"`
}

// CancelTasksRequest 작업 일괄 취소 요청
type CancelTasksRequest struct {
	// 취소할 작업 식별자 목록
	TaskIDs []string `json:"task_ids" validate:"required,min=1,max=100,unique,dive,required,max=128,printascii" korean:"작업 ID 목록" example:"my-task-1,my-task-2"`
}
