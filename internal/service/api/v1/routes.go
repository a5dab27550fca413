// Package v1 작업 제어 API의 v1 버전 라우트를 정의합니다.
//
// 주요 엔드포인트:
//   - POST   /api/v1/tasks          - 소수 판별 작업 제출
//   - GET    /api/v1/tasks          - 작업 목록 조회
//   - GET    /api/v1/tasks/summary  - 상태별 작업 수 조회
//   - GET    /api/v1/tasks/:id      - 작업 조회
//   - DELETE /api/v1/tasks          - 작업 일괄 취소 요청
//   - DELETE /api/v1/tasks/:id      - 작업 취소 요청
package v1

import (
	"github.com/darkkaiser/prime-calculator/internal/service/api/v1/handler"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes Echo 인스턴스에 v1 API 라우트를 등록합니다.
func RegisterRoutes(e *echo.Echo, h *handler.Handler) {
	v1Group := e.Group("/api/v1")

	tasks := v1Group.Group("/tasks")
	tasks.POST("", h.SubmitTaskHandler)
	tasks.GET("", h.ListTasksHandler)
	tasks.DELETE("", h.CancelTasksHandler)
	tasks.GET("/summary", h.TaskSummaryHandler)
	tasks.GET("/:id", h.GetTaskHandler)
	tasks.DELETE("/:id", h.CancelTaskHandler)
}
