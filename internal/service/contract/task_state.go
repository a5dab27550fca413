package contract

// TaskState 작업 레코드의 상태입니다.
//
// 상태 전이는 Running에서 세 가지 종료 상태 중 하나로 단 한 번만 일어나며,
// 종료 상태에서 다른 상태로 전이하지 않습니다.
type TaskState int32

const (
	TaskStateRunning TaskState = iota
	TaskStateCompleted
	TaskStateCancelled
	TaskStateFailed
)

// IsTerminal 종료 상태인지 여부를 반환합니다.
func (s TaskState) IsTerminal() bool {
	return s != TaskStateRunning
}

func (s TaskState) String() string {
	switch s {
	case TaskStateRunning:
		return "Running"
	case TaskStateCompleted:
		return "Completed"
	case TaskStateCancelled:
		return "Cancelled"
	case TaskStateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}
