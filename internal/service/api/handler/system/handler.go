// Package system 시스템 엔드포인트 핸들러를 제공합니다.
//
// 헬스체크, 버전 정보 등 시스템 수준의 API를 처리합니다.
package system

import (
	"net/http"
	"time"

	"github.com/darkkaiser/prime-calculator/internal/pkg/version"
	"github.com/darkkaiser/prime-calculator/internal/service/api/constants"
	"github.com/darkkaiser/prime-calculator/internal/service/api/model/system"
	applog "github.com/darkkaiser/prime-calculator/pkg/log"
	"github.com/labstack/echo/v4"
)

// HealthChecker 작업 서비스의 상태를 조회하기 위한 인터페이스입니다.
type HealthChecker interface {
	// Health 작업을 받을 수 있는 상태이면 nil을 반환합니다.
	Health() error

	// RunningCount 등록 해제되지 않은 작업 수를 반환합니다.
	RunningCount() int

	// WaitingCount 아직 Worker가 시작되지 않은 작업 수를 반환합니다.
	WaitingCount() int

	// PendingNotifications 리스너 전달을 기다리는 알림 수를 반환합니다.
	PendingNotifications() int
}

// Handler 시스템 엔드포인트 핸들러 (헬스체크, 버전 정보)
type Handler struct {
	healthChecker HealthChecker

	buildInfo version.Info

	serverStartTime time.Time
}

// New Handler 인스턴스를 생성합니다.
func New(healthChecker HealthChecker, buildInfo version.Info) *Handler {
	if healthChecker == nil {
		panic(constants.PanicMsgHealthCheckerRequired)
	}

	return &Handler{
		healthChecker: healthChecker,

		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler godoc
// @Summary 서버 헬스체크
// @Description 서버와 작업 서비스의 상태를 확인합니다.
// @Description
// @Description 응답 필드:
// @Description - status: 전체 서버 상태 (healthy, unhealthy)
// @Description - uptime: 서버 가동 시간(초)
// @Description - running_tasks: 실행 중인 작업 수
// @Description - waiting_tasks: 실행 슬롯을 기다리는 작업 수
// @Description - pending_notifications: 전달 대기 중인 진행/완료 알림 수
// @Description - dependencies: 내부 의존성별 상태 (task_service)
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse "헬스체크 결과"
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgHealthCheck)

	deps := make(map[string]system.DependencyStatus)

	serverStatus := constants.HealthStatusHealthy
	if err := h.healthChecker.Health(); err != nil {
		serverStatus = constants.HealthStatusUnhealthy
		deps[constants.DependencyTaskService] = system.DependencyStatus{
			Status:  constants.HealthStatusUnhealthy,
			Message: err.Error(),
		}
	} else {
		deps[constants.DependencyTaskService] = system.DependencyStatus{
			Status:  constants.HealthStatusHealthy,
			Message: constants.MsgDepStatusHealthy,
		}
	}

	return c.JSON(http.StatusOK, system.HealthResponse{
		Status:               serverStatus,
		Uptime:               int64(time.Since(h.serverStartTime).Seconds()),
		RunningTasks:         h.healthChecker.RunningCount(),
		WaitingTasks:         h.healthChecker.WaitingCount(),
		PendingNotifications: h.healthChecker.PendingNotifications(),
		Dependencies:         deps,
	})
}

// VersionHandler godoc
// @Summary 서버 버전 정보
// @Description 서버의 버전, Git 커밋 해시, 빌드 날짜, 빌드 번호, Go 버전을 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse "버전 정보"
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/version",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgVersionInfo)

	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:     h.buildInfo.Version,
		Commit:      h.buildInfo.Commit,
		BuildDate:   h.buildInfo.BuildDate,
		BuildNumber: h.buildInfo.BuildNumber,
		GoVersion:   h.buildInfo.GoVersion,
	})
}
