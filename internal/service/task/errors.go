package task

import (
	"fmt"

	apperrors "github.com/darkkaiser/prime-calculator/internal/pkg/errors"
)

var (
	// ErrListenerNotInitialized 서비스 시작 시 TaskListener가 주입되지 않았을 때 반환됩니다.
	ErrListenerNotInitialized = apperrors.New(apperrors.Internal, "TaskListener 객체가 초기화되지 않았습니다")

	// ErrServiceNotRunning Task 서비스가 시작 전이거나 종료된 상태에서 작업을 제출했을 때 반환됩니다.
	ErrServiceNotRunning = apperrors.New(apperrors.Unavailable, "Task 서비스가 현재 실행 중이지 않아 요청을 수행할 수 없습니다")
)

// PanicError 작업 실행 중 복구된 panic 값과 당시의 고루틴 스택입니다.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap panic 값이 error이면 그 값을 반환합니다.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// newTaskPanicError 작업 실행 중 panic이 발생했을 때 Failed Outcome의 원인으로 사용할 에러를 생성합니다.
func newTaskPanicError(v any, stack []byte) error {
	return apperrors.Wrap(&PanicError{Value: v, Stack: stack}, apperrors.ExecutionFailed, "작업 실행 중 예기치 않은 panic이 발생하였습니다")
}
