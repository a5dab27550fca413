package handler

import (
	"fmt"

	"github.com/darkkaiser/prime-calculator/internal/service/api/constants"
	"github.com/darkkaiser/prime-calculator/internal/service/api/httputil"
	"github.com/darkkaiser/prime-calculator/internal/service/contract"
)

// NewErrInvalidBody 요청 본문의 JSON 형식이 올바르지 않아 파싱에 실패했을 때 발생하는 에러를 생성합니다.
func NewErrInvalidBody() error {
	return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
}

// NewErrValidationFailed 요청 데이터가 유효성 검증에 실패했을 때 발생하는 에러를 생성합니다.
func NewErrValidationFailed(msg string) error {
	return httputil.NewBadRequestError(msg)
}

// NewErrNumberTooLarge 판별할 정수가 제출 가능한 최대값을 넘었을 때 발생하는 에러를 생성합니다.
func NewErrNumberTooLarge(maxNumber int64) error {
	return httputil.NewBadRequestError(fmt.Sprintf(constants.ErrMsgNumberTooLarge, maxNumber))
}

// NewErrTaskNotFound 작업 보드에 없는 TaskID를 조회했을 때 발생하는 에러를 생성합니다.
func NewErrTaskNotFound(id contract.TaskID) error {
	return httputil.NewNotFoundError(fmt.Sprintf(constants.ErrMsgTaskNotFound, id))
}
