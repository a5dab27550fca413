package contract

// TaskSubmitter 소수 판별 작업을 제출하기 위한 인터페이스입니다.
type TaskSubmitter interface {
	// Submit number에 대한 작업을 id로 등록하고 즉시 반환합니다.
	// id가 이미 진행 중이면 ErrDuplicateTask를 반환합니다.
	Submit(number int64, id TaskID) error
}

// TaskCanceler 진행 중인 작업의 취소를 요청하기 위한 인터페이스입니다.
type TaskCanceler interface {
	// Cancel id로 추적 중인 작업에 취소를 요청합니다.
	// 추적 중이지 않은 id이면 ErrUnknownTask를 반환합니다.
	Cancel(id TaskID) error
}

// TaskExecutor 작업 제출과 취소를 함께 제공하는 인터페이스입니다.
type TaskExecutor interface {
	TaskSubmitter
	TaskCanceler
}
