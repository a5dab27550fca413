// Package errors 타입 기반으로 분류되는 애플리케이션 에러를 제공합니다.
//
// 모든 에러는 ErrorType으로 분류되며 Wrap을 통해 원인 에러를 체인으로 보존합니다.
// 호출자는 Is로 체인 안의 분류를 검사하고, UnderlyingType으로 가장 안쪽 분류를
// 얻어 HTTP 상태 코드나 로그 레벨을 결정합니다.
//
//	err := errors.New(errors.Conflict, "이미 진행 중인 작업 ID입니다")
//
//	if errors.Is(err, errors.Conflict) {
//	    // 새 ID로 다시 제출
//	}
//
// # Wrap 시 타입 선택
//
// 원인이 AppError이면 보통 같은 타입을 유지하고 컨텍스트만 추가합니다.
// 원인이 외부 라이브러리 에러이면 발생 계층에 맞는 타입을 고릅니다.
//   - 설정 파일 읽기 실패: System
//   - JSON 디코딩 실패, 유효성 검사 실패: InvalidInput
//   - 계산 중 복구된 panic: ExecutionFailed
//   - context.DeadlineExceeded: Timeout
package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// AppError 애플리케이션에서 발생하는 에러를 표준화하여 표현하는 구조체입니다.
type AppError struct {
	errType ErrorType    // 에러의 종류
	message string       // 사용자에게 보여줄 메시지
	cause   error        // 원인 에러 (에러 체이닝)
	stack   []StackFrame // 에러 생성 시점의 호출 스택
}

// Type 에러의 타입을 반환합니다.
func (e *AppError) Type() ErrorType {
	return e.errType
}

// Message 에러 메시지를 반환합니다.
func (e *AppError) Message() string {
	return e.message
}

// Stack 에러 생성 시점의 스택 프레임을 반환합니다.
func (e *AppError) Stack() []StackFrame {
	return e.stack
}

// Error error 인터페이스를 구현합니다.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.errType, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.errType, e.message)
}

// Unwrap 원인 에러를 반환합니다.
func (e *AppError) Unwrap() error {
	return e.cause
}

// Format %+v로 출력하면 에러 체인과 체인 끝의 스택 트레이스를 함께 출력합니다.
func (e *AppError) Format(s fmt.State, verb rune) {
	if verb != 'v' || !s.Flag('+') {
		if verb == 'q' {
			fmt.Fprintf(s, "%q", e.Error())
			return
		}
		io.WriteString(s, e.Error())
		return
	}

	fmt.Fprintf(s, "[%s] %s", e.errType, e.message)

	var next *AppError
	if e.cause == nil || !errors.As(e.cause, &next) {
		writeStack(s, e.stack)
	}

	if e.cause == nil {
		return
	}

	fmt.Fprint(s, "\nCaused by:\n")
	if formatter, ok := e.cause.(fmt.Formatter); ok {
		formatter.Format(s, verb)
	} else {
		fmt.Fprintf(s, "\t%v", e.cause)
	}
}

func writeStack(w io.Writer, frames []StackFrame) {
	if len(frames) == 0 {
		return
	}

	fmt.Fprint(w, "\nStack trace:")
	for _, frame := range frames {
		fn := frame.Function
		if idx := strings.LastIndex(fn, "/"); idx != -1 {
			fn = fn[idx+1:]
		}
		fmt.Fprintf(w, "\n\t%s:%d %s", frame.File, frame.Line, fn)
	}
}

// New 새로운 에러를 생성합니다.
func New(errType ErrorType, message string) error {
	return newAppError(errType, message, nil)
}

// Newf 포맷 문자열을 사용하여 새로운 에러를 생성합니다.
func Newf(errType ErrorType, format string, args ...any) error {
	return newAppError(errType, fmt.Sprintf(format, args...), nil)
}

// Wrap err을 원인으로 하는 새 에러를 생성합니다. err이 nil이면 nil을 반환합니다.
func Wrap(err error, errType ErrorType, message string) error {
	if err == nil {
		return nil
	}
	return newAppError(errType, message, err)
}

// Wrapf 포맷 문자열을 사용하여 err을 감쌉니다. err이 nil이면 nil을 반환합니다.
func Wrapf(err error, errType ErrorType, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return newAppError(errType, fmt.Sprintf(format, args...), err)
}

// newAppError 반드시 공개 생성 함수에서 직접 호출해야 합니다. 스택은 공개 함수의 호출 지점부터 수집됩니다.
func newAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		errType: errType,
		message: message,
		cause:   cause,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Is 에러 체인에 주어진 ErrorType의 AppError가 포함되어 있는지 확인합니다.
func Is(err error, errType ErrorType) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.errType == errType {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// As 표준 errors.As의 별칭입니다.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// RootCause 에러 체인의 가장 안쪽 원인 에러를 반환합니다.
func RootCause(err error) error {
	if err == nil {
		return nil
	}

	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

// UnderlyingType 에러 체인에서 가장 안쪽에 있는 AppError의 ErrorType을 반환합니다.
//
// 체인에 AppError가 없거나 err이 nil이면 Unknown을 반환합니다.
//
//	err := Wrap(New(NotFound, "작업 없음"), Internal, "취소 실패")
//	UnderlyingType(err) // NotFound
func UnderlyingType(err error) ErrorType {
	lastAppErrorType := Unknown

	for err != nil {
		if appErr, ok := err.(*AppError); ok {
			lastAppErrorType = appErr.errType
		}
		err = errors.Unwrap(err)
	}

	return lastAppErrorType
}
