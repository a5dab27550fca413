// Package handler v1 API의 HTTP 요청 핸들러를 제공합니다.
//
// HTTP 요청을 검증한 뒤 작업 보드와 작업 서비스를 호출하고, 결과를 HTTP 응답으로 변환합니다.
package handler

import (
	"fmt"

	"github.com/darkkaiser/prime-calculator/internal/service/api/constants"
	"github.com/darkkaiser/prime-calculator/internal/service/board"
	"github.com/darkkaiser/prime-calculator/internal/service/contract"
	applog "github.com/darkkaiser/prime-calculator/pkg/log"
	"github.com/labstack/echo/v4"
)

// TaskBoard 작업 목록의 추적과 조회를 담당하는 인터페이스입니다.
type TaskBoard interface {
	// Submit 행을 추적한 뒤 submitter로 작업을 제출합니다. 제출에 실패하면 행을 되돌립니다.
	Submit(submitter contract.TaskSubmitter, number int64, id contract.TaskID, runBy contract.TaskRunBy) error

	Row(id contract.TaskID) (board.Row, bool)
	Rows() []board.Row
	Summary() board.Summary
}

// NumberGenerator 판별할 정수가 지정되지 않은 제출 요청에 사용할 무작위 정수를 생성합니다.
type NumberGenerator interface {
	Next() int64
}

// Handler v1 API 요청을 처리하는 핸들러입니다.
type Handler struct {
	// executor 작업 제출과 취소를 수행하는 작업 서비스
	executor contract.TaskExecutor

	taskBoard TaskBoard

	generator NumberGenerator

	// maxNumber 제출 요청에 지정할 수 있는 정수의 최대값
	maxNumber int64
}

// NewHandler Handler 인스턴스를 생성합니다.
// maxNumber는 제출 요청에 지정할 수 있는 정수의 최대값이며 2 이상이어야 합니다.
func NewHandler(executor contract.TaskExecutor, taskBoard TaskBoard, generator NumberGenerator, maxNumber int64) *Handler {
	if executor == nil {
		panic(constants.PanicMsgTaskExecutorRequired)
	}
	if taskBoard == nil {
		panic(constants.PanicMsgTaskBoardRequired)
	}
	if generator == nil {
		panic(constants.PanicMsgNumberGeneratorRequired)
	}
	if maxNumber < 2 {
		panic(fmt.Sprintf(constants.PanicMsgMaxNumberInvalid, maxNumber))
	}

	return &Handler{
		executor: executor,

		taskBoard: taskBoard,

		generator: generator,
		maxNumber: maxNumber,
	}
}

// log 공통 로깅 필드가 설정된 로거 엔트리를 반환합니다.
func (h *Handler) log(c echo.Context) *applog.Entry {
	return applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":   c.Path(),
		"method":     c.Request().Method,
		"remote_ip":  c.RealIP(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	})
}
