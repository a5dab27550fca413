package constants

// 시스템 시작/구동 시 발생할 수 있는 크리티컬한 패닉 메시지 상수입니다.
const (
	PanicMsgAppConfigRequired       = "AppConfig는 필수입니다"
	PanicMsgTaskExecutorRequired    = "TaskExecutor는 필수입니다"
	PanicMsgTaskBoardRequired       = "TaskBoard는 필수입니다"
	PanicMsgHealthCheckerRequired   = "HealthChecker는 필수입니다"
	PanicMsgNumberGeneratorRequired = "NumberGenerator는 필수입니다"

	// PanicMsgMaxNumberInvalid 패닉 메시지: 제출 가능한 정수의 최대값이 2 미만인 경우
	PanicMsgMaxNumberInvalid = "제출 가능한 정수의 최대값은 2 이상이어야 합니다 (현재값: %d)"

	// PanicMsgRateLimitBurstInvalid 패닉 메시지: 요청 제한을 사용하는데 burst가 0 이하인 경우
	PanicMsgRateLimitBurstInvalid = "RateLimiting: 요청 제한을 사용하려면 burst는 양수여야 합니다 (현재값: %d)"
)
