package scheduler

import (
	apperrors "github.com/darkkaiser/prime-calculator/internal/pkg/errors"
)

var (
	// ErrTaskSubmitterNotInitialized 서비스 시작 시 TaskSubmitter가 초기화되지 않았을 때 반환하는 에러입니다.
	ErrTaskSubmitterNotInitialized = apperrors.New(apperrors.Internal, "TaskSubmitter 객체가 초기화되지 않았습니다")

	// ErrNumberGeneratorNotInitialized 서비스 시작 시 NumberGenerator가 초기화되지 않았을 때 반환하는 에러입니다.
	ErrNumberGeneratorNotInitialized = apperrors.New(apperrors.Internal, "NumberGenerator 객체가 초기화되지 않았습니다")
)

// newErrInvalidCronSpec Cron 표현식이 올바르지 않아 스케줄 등록에 실패했을 때 반환하는 에러를 생성합니다.
func newErrInvalidCronSpec(timeSpec string, cause error) error {
	return apperrors.Wrapf(cause, apperrors.InvalidInput, "스케줄 등록 실패: 잘못된 Cron 표현식입니다 (TimeSpec='%s')", timeSpec)
}
