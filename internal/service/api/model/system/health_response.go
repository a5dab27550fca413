package system

// HealthResponse 서버 헬스체크 응답
type HealthResponse struct {
	// 전체 헬스체크 상태: healthy, unhealthy
	Status string `json:"status" example:"healthy"`

	// 서버 가동 시간(초)
	Uptime int64 `json:"uptime" example:"3600"`

	// 실행 중이거나 완료 알림 전달을 기다리는 작업 수
	RunningTasks int `json:"running_tasks" example:"3"`

	// RunningTasks 가운데 실행 슬롯을 기다리며 아직 시작되지 않은 작업 수
	WaitingTasks int `json:"waiting_tasks" example:"1"`

	// Dispatcher 대기열에서 리스너 전달을 기다리는 알림 수
	PendingNotifications int `json:"pending_notifications" example:"0"`

	// 내부 의존성별 헬스체크 결과 (키: 의존성 이름)
	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}
