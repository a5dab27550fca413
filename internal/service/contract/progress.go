package contract

// ProgressSnapshot 실행 중인 작업의 중간 진행 상태입니다.
//
// 저장되지 않는 일시적인 값이며, 전달되지 않은 스냅샷은 같은 작업의 더 최신 스냅샷으로 대체됩니다.
type ProgressSnapshot struct {
	TaskID TaskID

	// PercentComplete 0 이상 100 이하의 진행률입니다.
	PercentComplete int

	// CurrentDivisor 현재 시험 중인 제수입니다.
	CurrentDivisor int64
}
