package contract

// TaskListener 작업의 진행 상태와 최종 결과를 수신하는 인터페이스입니다.
//
// 같은 작업에 대해 OnProgress는 0번 이상 호출된 뒤 OnCompleted가 정확히 한 번 호출되며,
// OnCompleted 이후에는 해당 작업의 OnProgress가 호출되지 않습니다.
// 서로 다른 작업 간의 호출 순서는 보장되지 않습니다.
type TaskListener interface {
	OnProgress(snapshot ProgressSnapshot)
	OnCompleted(id TaskID, outcome Outcome)
}

// TaskListenerFuncs 함수 값으로 TaskListener를 구성하는 어댑터입니다. nil 필드는 무시됩니다.
type TaskListenerFuncs struct {
	Progress  func(snapshot ProgressSnapshot)
	Completed func(id TaskID, outcome Outcome)
}

func (f TaskListenerFuncs) OnProgress(snapshot ProgressSnapshot) {
	if f.Progress != nil {
		f.Progress(snapshot)
	}
}

func (f TaskListenerFuncs) OnCompleted(id TaskID, outcome Outcome) {
	if f.Completed != nil {
		f.Completed(id, outcome)
	}
}

// MultiListener 등록된 순서대로 여러 TaskListener에 이벤트를 전달합니다.
type MultiListener []TaskListener

func (m MultiListener) OnProgress(snapshot ProgressSnapshot) {
	for _, l := range m {
		l.OnProgress(snapshot)
	}
}

func (m MultiListener) OnCompleted(id TaskID, outcome Outcome) {
	for _, l := range m {
		l.OnCompleted(id, outcome)
	}
}
