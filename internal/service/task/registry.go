package task

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/darkkaiser/prime-calculator/internal/service/contract"
)

// record 제출된 작업 하나의 추적 정보입니다. 등록부터 등록 해제까지 registry가 소유합니다.
type record struct {
	id          contract.TaskID
	number      int64
	submittedAt time.Time

	state atomic.Int32

	// cancellationRequested Cancel 요청 시 설정되고 Worker가 매 제수마다 확인합니다.
	cancellationRequested atomic.Bool

	// started 동시 실행 슬롯을 얻어 Worker가 실제로 실행되기 시작했는지 여부입니다.
	started atomic.Bool

	// ctx 동시 실행 슬롯 대기를 취소 요청으로 중단하기 위한 컨텍스트입니다.
	ctx    context.Context
	cancel context.CancelFunc

	// pendingProgress 아직 리스너에 전달되지 않은 가장 최신의 진행 상태입니다.
	pendingProgress atomic.Pointer[contract.ProgressSnapshot]

	// completed 완료 알림이 전달되기 시작하면 설정되며, 이후의 진행 상태 전달을 막습니다.
	completed atomic.Bool
}

func newRecord(id contract.TaskID, number int64) *record {
	ctx, cancel := context.WithCancel(context.Background())

	r := &record{
		id:          id,
		number:      number,
		submittedAt: time.Now(),
		ctx:         ctx,
		cancel:      cancel,
	}
	r.state.Store(int32(contract.TaskStateRunning))

	return r
}

func (r *record) State() contract.TaskState {
	return contract.TaskState(r.state.Load())
}

// transition Running 상태에서 주어진 종료 상태로 전이합니다. 이미 종료 상태이면 false를 반환합니다.
func (r *record) transition(to contract.TaskState) bool {
	return r.state.CompareAndSwap(int32(contract.TaskStateRunning), int32(to))
}

func (r *record) requestCancellation() {
	r.cancellationRequested.Store(true)
	r.cancel()
}

func (r *record) isCancellationRequested() bool {
	return r.cancellationRequested.Load()
}

func (r *record) info() TaskInfo {
	return TaskInfo{
		ID:                    r.id,
		Number:                r.number,
		State:                 r.State(),
		Started:               r.started.Load(),
		CancellationRequested: r.cancellationRequested.Load(),
		SubmittedAt:           r.submittedAt,
	}
}

// TaskInfo 추적 중인 작업의 조회용 사본입니다.
type TaskInfo struct {
	ID                    contract.TaskID
	Number                int64
	State                 contract.TaskState
	Started               bool
	CancellationRequested bool
	SubmittedAt           time.Time
}

// registry 진행 중인 작업을 TaskID로 추적합니다.
//
// 작업을 실행하거나 중단하지 않으며, Worker가 스스로 확인하는 취소 플래그만 보관합니다.
type registry struct {
	mu      sync.Mutex
	records map[contract.TaskID]*record
}

func newRegistry() *registry {
	return &registry{
		records: make(map[contract.TaskID]*record),
	}
}

// register id를 추적 목록에 추가합니다. 이미 추적 중이면 ErrDuplicateTask를 반환합니다.
func (r *registry) register(id contract.TaskID, number int64) (*record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[id]; exists {
		return nil, contract.ErrDuplicateTask
	}

	rec := newRecord(id, number)
	r.records[id] = rec

	return rec, nil
}

// requestCancellation id의 취소 플래그를 설정합니다. 여러 번 호출해도 안전합니다.
// 추적 중이지 않거나 이미 종료 상태이면 ErrUnknownTask를 반환합니다.
func (r *registry) requestCancellation(id contract.TaskID) error {
	r.mu.Lock()
	rec, exists := r.records[id]
	r.mu.Unlock()

	if !exists || rec.State().IsTerminal() {
		return contract.ErrUnknownTask
	}

	rec.requestCancellation()

	return nil
}

// isCancellationRequested id에 취소가 요청되었는지 확인합니다. 추적 중이지 않으면 false입니다.
func (r *registry) isCancellationRequested(id contract.TaskID) bool {
	r.mu.Lock()
	rec, exists := r.records[id]
	r.mu.Unlock()

	return exists && rec.isCancellationRequested()
}

// unregister id를 추적 목록에서 제거합니다. 이후 같은 id로 다시 제출할 수 있습니다.
func (r *registry) unregister(id contract.TaskID) {
	r.mu.Lock()
	rec, exists := r.records[id]
	delete(r.records, id)
	r.mu.Unlock()

	if exists {
		rec.cancel()
	}
}

// cancelAll 추적 중인 모든 작업에 취소를 요청하고 요청한 작업 수를 반환합니다.
func (r *registry) cancelAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, rec := range r.records {
		if !rec.State().IsTerminal() {
			rec.requestCancellation()
			n++
		}
	}

	return n
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.records)
}

func (r *registry) lookup(id contract.TaskID) (TaskInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, exists := r.records[id]
	if !exists {
		return TaskInfo{}, false
	}
	return rec.info(), true
}

// snapshot 추적 중인 작업 목록을 제출 시각 순으로 반환합니다.
func (r *registry) snapshot() []TaskInfo {
	r.mu.Lock()
	infos := make([]TaskInfo, 0, len(r.records))
	for _, rec := range r.records {
		infos = append(infos, rec.info())
	}
	r.mu.Unlock()

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].SubmittedAt.Before(infos[j].SubmittedAt)
	})

	return infos
}
