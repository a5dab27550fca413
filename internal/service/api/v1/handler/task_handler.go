package handler

import (
	"errors"
	"net/http"

	apperrors "github.com/darkkaiser/prime-calculator/internal/pkg/errors"
	"github.com/darkkaiser/prime-calculator/internal/service/api/constants"
	apihandler "github.com/darkkaiser/prime-calculator/internal/service/api/handler"
	"github.com/darkkaiser/prime-calculator/internal/service/api/httputil"
	"github.com/darkkaiser/prime-calculator/internal/service/api/v1/model/request"
	"github.com/darkkaiser/prime-calculator/internal/service/api/v1/model/response"
	"github.com/darkkaiser/prime-calculator/internal/service/contract"
	applog "github.com/darkkaiser/prime-calculator/pkg/log"
	"github.com/labstack/echo/v4"
)

// SubmitTaskHandler godoc
// @Summary 소수 판별 작업 제출
// @Description 정수 하나의 소수 판별 작업을 제출하고 즉시 반환합니다.
// @Description 작업의 진행 상태와 결과는 GET /api/v1/tasks/{id}로 조회합니다.
// @Description
// @Description - number를 생략하면 서버가 무작위 정수를 선택합니다.
// @Description - task_id를 생략하면 서버가 UUID를 생성합니다.
// @Description - number가 calculator.max_number 설정값보다 크면 400을 반환합니다.
// @Description - 진행 중인 작업과 같은 task_id로 제출하면 409를 반환합니다.
// @Description
// @Description ```bash
// @Description curl -X POST "http://localhost:2080/api/v1/tasks" \
// @Description   -H "Content-Type: application/json" \
// @Description   -d '{"number":7919,"task_id":"my-task-1"}'
// @Description ```
// @Tags Task
// @Accept json
// @Produce json
// @Param task body request.SubmitTaskRequest false "제출할 작업 정보"
// @Success 202 {object} response.SubmitTaskResponse "제출됨"
// @Failure 400 {object} response.ErrorResponse "잘못된 요청"
// @Failure 409 {object} response.ErrorResponse "진행 중인 작업과 task_id 중복"
// @Failure 503 {object} response.ErrorResponse "작업 서비스 중지됨"
// @Router /api/v1/tasks [post]
func (h *Handler) SubmitTaskHandler(c echo.Context) error {
	req := new(request.SubmitTaskRequest)
	if err := c.Bind(req); err != nil {
		return NewErrInvalidBody()
	}
	if err := apihandler.ValidateRequest(req); err != nil {
		return NewErrValidationFailed(apihandler.FormatValidationError(err))
	}

	id := contract.TaskID(req.TaskID)
	if id.IsEmpty() {
		id = contract.NewTaskID()
	}

	var number int64
	if req.Number != nil {
		if *req.Number > h.maxNumber {
			return NewErrNumberTooLarge(h.maxNumber)
		}
		number = *req.Number
	} else {
		number = h.generator.Next()
	}

	if err := h.taskBoard.Submit(h.executor, number, id, contract.TaskRunByUser); err != nil {
		h.log(c).WithFields(applog.Fields{
			"task_id": id,
			"number":  number,
			"error":   err,
		}).Warn(constants.LogMsgTaskSubmitFailed)

		return err
	}

	h.log(c).WithFields(applog.Fields{
		"task_id": id,
		"number":  number,
	}).Info(constants.LogMsgTaskSubmitted)

	return c.JSON(http.StatusAccepted, response.SubmitTaskResponse{
		TaskID: id.String(),
		Number: number,
	})
}

// ListTasksHandler godoc
// @Summary 작업 목록 조회
// @Description 작업 보드에 남아 있는 작업을 제출 순서대로 반환합니다.
// @Tags Task
// @Produce json
// @Success 200 {object} response.TaskListResponse "작업 목록"
// @Router /api/v1/tasks [get]
func (h *Handler) ListTasksHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, response.TaskListResponse{
		Tasks:   h.taskBoard.Rows(),
		Summary: h.taskBoard.Summary(),
	})
}

// TaskSummaryHandler godoc
// @Summary 작업 상태 집계
// @Tags Task
// @Produce json
// @Success 200 {object} board.Summary "상태별 작업 수"
// @Router /api/v1/tasks/summary [get]
func (h *Handler) TaskSummaryHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, h.taskBoard.Summary())
}

// GetTaskHandler godoc
// @Summary 작업 조회
// @Tags Task
// @Produce json
// @Param id path string true "작업 ID"
// @Success 200 {object} board.Row "작업 상태"
// @Failure 404 {object} response.ErrorResponse "작업 보드에 없는 작업"
// @Router /api/v1/tasks/{id} [get]
func (h *Handler) GetTaskHandler(c echo.Context) error {
	id := contract.TaskID(c.Param("id"))

	row, ok := h.taskBoard.Row(id)
	if !ok {
		return NewErrTaskNotFound(id)
	}

	return c.JSON(http.StatusOK, row)
}

// CancelTaskHandler godoc
// @Summary 작업 취소 요청
// @Description 진행 중인 작업에 취소를 요청합니다. 작업은 다음 제수를 시험하기 전에 취소 상태로 종료됩니다.
// @Description 이미 종료되었거나 제출된 적 없는 작업이면 404를 반환합니다.
// @Tags Task
// @Produce json
// @Param id path string true "작업 ID"
// @Success 202 {object} response.CancelTaskResponse "취소 요청 접수"
// @Failure 404 {object} response.ErrorResponse "추적 중이지 않은 작업"
// @Router /api/v1/tasks/{id} [delete]
func (h *Handler) CancelTaskHandler(c echo.Context) error {
	id := contract.TaskID(c.Param("id"))

	if err := h.executor.Cancel(id); err != nil {
		return err
	}

	h.log(c).WithField("task_id", id).Info(constants.LogMsgTaskCancelRequested)

	return c.JSON(http.StatusAccepted, response.CancelTaskResponse{
		TaskID:                id.String(),
		CancellationRequested: true,
	})
}

// CancelTasksHandler godoc
// @Summary 작업 일괄 취소 요청
// @Description 여러 작업에 한 번에 취소를 요청합니다. 결과는 요청한 순서대로 작업별로 반환됩니다.
// @Description 이미 종료되었거나 제출된 적 없는 작업은 cancellation_requested가 false이고 error_code가 not_found입니다.
// @Description
// @Description ```bash
// @Description curl -X DELETE "http://localhost:2080/api/v1/tasks" \
// @Description   -H "Content-Type: application/json" \
// @Description   -d '{"task_ids":["my-task-1","my-task-2"]}'
// @Description ```
// @Tags Task
// @Accept json
// @Produce json
// @Param tasks body request.CancelTasksRequest true "취소할 작업 ID 목록"
// @Success 202 {object} response.CancelTasksResponse "작업별 취소 요청 결과"
// @Failure 400 {object} response.ErrorResponse "잘못된 요청"
// @Router /api/v1/tasks [delete]
func (h *Handler) CancelTasksHandler(c echo.Context) error {
	req := new(request.CancelTasksRequest)
	if err := c.Bind(req); err != nil {
		return NewErrInvalidBody()
	}
	if err := apihandler.ValidateRequest(req); err != nil {
		return NewErrValidationFailed(apihandler.FormatValidationError(err))
	}

	results := make([]response.CancelTaskResult, 0, len(req.TaskIDs))
	requested := 0
	for _, taskID := range req.TaskIDs {
		id := contract.TaskID(taskID)

		err := h.executor.Cancel(id)
		if err == nil {
			requested++
			results = append(results, response.CancelTaskResult{TaskID: taskID, CancellationRequested: true})
			continue
		}

		// 추적 중이지 않은 작업만 작업별 결과로 남기고, 그 밖의 에러는 요청 전체를 실패시킵니다.
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) || appErr.Type() != apperrors.NotFound {
			return err
		}
		results = append(results, response.CancelTaskResult{
			TaskID:    taskID,
			ErrorCode: httputil.ErrorCode(appErr.Type()),
			Message:   appErr.Message(),
		})
	}

	h.log(c).WithFields(applog.Fields{
		"task_ids":  req.TaskIDs,
		"requested": requested,
	}).Info(constants.LogMsgTasksCancelRequested)

	return c.JSON(http.StatusAccepted, response.CancelTasksResponse{
		Results:   results,
		Requested: requested,
	})
}
