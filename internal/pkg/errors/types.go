package errors

//go:generate stringer -type=ErrorType

// ErrorType 에러의 종류를 나타내는 타입입니다.
type ErrorType int

const (
	// Unknown 분류되지 않은 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (계약 위반, 잘못된 상태 전이 등)
	Internal

	// System 시스템 또는 인프라 오류 (파일 I/O, 소켓 등)
	System

	// InvalidInput 잘못된 입력값 (유효성 검사 실패)
	InvalidInput

	// Conflict 리소스 충돌 (진행 중인 작업 ID의 재사용 등)
	Conflict

	// NotFound 리소스를 찾을 수 없음 (추적 중이지 않은 작업 ID 등)
	NotFound

	// ExecutionFailed 작업 실행 실패 (계산 중 발생한 panic 등)
	ExecutionFailed

	// Timeout 작업 시간 초과
	Timeout

	// Unavailable 서비스 일시적 사용 불가 (시작 전 또는 종료 중)
	Unavailable
)
