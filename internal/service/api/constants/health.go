package constants

// 헬스체크 및 시스템 상태 관련 상수입니다.
const (
	// ------------------------------------------------------------------------------------------------
	// 헬스체크 상태
	// ------------------------------------------------------------------------------------------------

	// HealthStatusHealthy 헬스체크 상태: 정상
	HealthStatusHealthy = "healthy"

	// HealthStatusUnhealthy 헬스체크 상태: 비정상
	HealthStatusUnhealthy = "unhealthy"

	// ------------------------------------------------------------------------------------------------
	// 내부 의존성 상태
	// ------------------------------------------------------------------------------------------------

	// DependencyTaskService 의존성 ID: 소수 판별 작업 서비스
	DependencyTaskService = "task_service"

	// MsgDepStatusHealthy 의존성 상태: 정상
	MsgDepStatusHealthy = "정상 작동 중"
)
