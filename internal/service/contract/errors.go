package contract

import (
	apperrors "github.com/darkkaiser/prime-calculator/internal/pkg/errors"
)

var (
	// ErrInvalidTaskID TaskID가 비어 있거나 공백으로만 구성된 경우 반환됩니다.
	ErrInvalidTaskID = apperrors.New(apperrors.InvalidInput, "TaskID는 필수입니다")

	// ErrDuplicateTask 진행 중인 작업과 같은 TaskID로 제출한 경우 반환됩니다.
	// 새 TaskID로 다시 제출하면 됩니다.
	ErrDuplicateTask = apperrors.New(apperrors.Conflict, "이미 진행 중인 작업의 TaskID입니다")

	// ErrUnknownTask 추적 중이지 않은(종료되었거나 제출된 적 없는) TaskID를 취소하려 한 경우 반환됩니다.
	ErrUnknownTask = apperrors.New(apperrors.NotFound, "추적 중인 작업이 아닙니다")

	// ErrResultUnavailable 성공하지 않은 Outcome에서 결과를 조회한 경우 반환됩니다.
	ErrResultUnavailable = apperrors.New(apperrors.Internal, "작업 결과가 존재하지 않습니다")
)
