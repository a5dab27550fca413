package contract

import (
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/darkkaiser/prime-calculator/internal/pkg/errors"
)

// TaskID 제출된 소수 판별 작업을 식별하는 고유 식별자입니다.
//
// 호출자가 제출 시점에 직접 지정하며, 진행 중인 작업끼리는 중복될 수 없습니다.
// 작업이 종료되어 등록이 해제되면 같은 값을 다시 사용할 수 있습니다.
type TaskID string

// NewTaskID 무작위 128비트 UUID(v4) 기반의 새 TaskID를 생성합니다.
func NewTaskID() TaskID {
	return TaskID(uuid.NewString())
}

func (id TaskID) IsEmpty() bool {
	return len(id) == 0
}

func (id TaskID) Validate() error {
	if strings.TrimSpace(string(id)) == "" {
		return ErrInvalidTaskID
	}
	if len(id) > maxTaskIDLength {
		return apperrors.Newf(apperrors.InvalidInput, "TaskID는 %d자를 넘을 수 없습니다", maxTaskIDLength)
	}
	return nil
}

func (id TaskID) String() string {
	return string(id)
}

const maxTaskIDLength = 128
