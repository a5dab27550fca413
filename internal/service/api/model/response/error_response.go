package response

// ErrorResponse API 오류 응답
type ErrorResponse struct {
	// ResultCode HTTP 상태 코드 (예: 400, 404, 409)
	ResultCode int `json:"result_code" example:"409"`

	// ErrorCode 기계가 판독할 수 있는 에러 분류 코드 (예: invalid_input, not_found, conflict)
	ErrorCode string `json:"error_code,omitempty" example:"conflict"`

	// Message 에러 메시지
	Message string `json:"message" example:"이미 진행 중인 작업의 TaskID입니다"`
}
