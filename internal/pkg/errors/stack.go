package errors

import (
	"path/filepath"
	"runtime"
)

// defaultCallerSkip runtime.Callers, captureStack, newAppError, 공개 생성 함수를 건너뜁니다.
const defaultCallerSkip = 4

// maxStackFrames 수집할 최대 프레임 수입니다.
const maxStackFrames = 5

// StackFrame 단일 호출 스택 프레임입니다.
type StackFrame struct {
	File     string // 파일 이름 (경로 제외)
	Line     int    // 줄 번호
	Function string // 패키지 경로를 포함한 함수 이름
}

func captureStack(skip int) []StackFrame {
	pc := make([]uintptr, maxStackFrames)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return nil
	}

	callersFrames := runtime.CallersFrames(pc[:n])

	frames := make([]StackFrame, 0, n)
	for {
		frame, more := callersFrames.Next()
		frames = append(frames, StackFrame{
			File:     filepath.Base(frame.File),
			Line:     frame.Line,
			Function: frame.Function,
		})
		if !more {
			break
		}
	}

	return frames
}
