// Package board 작업 목록 화면의 모델을 제공합니다.
//
// Board는 contract.TaskListener를 구현하여 Task 서비스의 알림을 행 단위 상태로 반영합니다.
// 진행 상태는 작업마다 설정된 간격으로 솎아내어 반영하고, 완료 알림은 항상 반영합니다.
package board

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	apperrors "github.com/darkkaiser/prime-calculator/internal/pkg/errors"
	"github.com/darkkaiser/prime-calculator/internal/service/contract"
	applog "github.com/darkkaiser/prime-calculator/pkg/log"
)

const component = "board"

const (
	defaultProgressInterval = 100 * time.Millisecond
	defaultMaxRows          = 1000
)

// ErrRowAlreadyTracked 완료되지 않은 행과 같은 TaskID를 다시 추가하려 할 때 반환됩니다.
var ErrRowAlreadyTracked = apperrors.Wrap(contract.ErrDuplicateTask, apperrors.Conflict, "작업 목록에 진행 중인 같은 TaskID의 행이 있습니다")

// Options Board 옵션입니다.
type Options struct {
	// ProgressInterval 작업 하나의 진행 상태를 반영하는 최소 간격입니다. 0이면 100ms, 음수이면 모두 반영합니다.
	ProgressInterval time.Duration

	// MaxRows 유지할 최대 행 수입니다. 초과하면 완료된 행부터 오래된 순으로 제거합니다. 0이면 1000입니다.
	MaxRows int
}

// Board 작업 목록 모델입니다. 여러 고루틴에서 동시에 사용할 수 있습니다.
type Board struct {
	mu    sync.Mutex
	rows  map[contract.TaskID]*Row
	order []contract.TaskID

	// limiters 진행 중인 행마다 진행 상태 반영 빈도를 제한합니다.
	limiters map[contract.TaskID]*rate.Limiter

	progressInterval time.Duration
	maxRows          int

	throttled int64

	now func() time.Time
}

// New Board를 생성합니다.
func New(opts Options) *Board {
	b := &Board{
		rows:     make(map[contract.TaskID]*Row),
		limiters: make(map[contract.TaskID]*rate.Limiter),

		progressInterval: opts.ProgressInterval,
		maxRows:          opts.MaxRows,

		now: time.Now,
	}
	if b.progressInterval == 0 {
		b.progressInterval = defaultProgressInterval
	}
	if b.maxRows <= 0 {
		b.maxRows = defaultMaxRows
	}

	return b
}

// Submit 행을 추가한 뒤 submitter에 작업을 제출합니다. 제출에 실패하면 추가한 행을 다시 제거합니다.
func (b *Board) Submit(submitter contract.TaskSubmitter, number int64, id contract.TaskID, runBy contract.TaskRunBy) error {
	if err := b.Track(id, number, runBy); err != nil {
		return err
	}

	if err := submitter.Submit(number, id); err != nil {
		b.untrack(id)
		return err
	}

	return nil
}

// SubmitterFor next에 제출하기 전에 runBy 주체로 행을 추가하는 TaskSubmitter를 반환합니다.
func (b *Board) SubmitterFor(next contract.TaskSubmitter, runBy contract.TaskRunBy) contract.TaskSubmitter {
	return trackingSubmitter{board: b, next: next, runBy: runBy}
}

type trackingSubmitter struct {
	board *Board
	next  contract.TaskSubmitter
	runBy contract.TaskRunBy
}

func (s trackingSubmitter) Submit(number int64, id contract.TaskID) error {
	return s.board.Submit(s.next, number, id, s.runBy)
}

// Track "Not Started" 상태의 행을 목록 끝에 추가합니다.
// 같은 TaskID의 행이 완료된 상태이면 새 행으로 대체하고, 진행 중이면 ErrRowAlreadyTracked를 반환합니다.
func (b *Board) Track(id contract.TaskID, number int64, runBy contract.TaskRunBy) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if row, exists := b.rows[id]; exists {
		if !row.Status.IsFinished() {
			return ErrRowAlreadyTracked
		}
		b.removeLocked(id)
	}

	b.rows[id] = &Row{
		TaskID:      id,
		Number:      number,
		RunBy:       runBy.String(),
		Status:      StatusNotStarted,
		SubmittedAt: b.now(),
	}
	b.order = append(b.order, id)

	if b.progressInterval > 0 {
		b.limiters[id] = rate.NewLimiter(rate.Every(b.progressInterval), 1)
	}

	b.evictLocked()

	return nil
}

func (b *Board) untrack(id contract.TaskID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if row, exists := b.rows[id]; exists && row.Status == StatusNotStarted {
		b.removeLocked(id)
	}
}

// OnProgress 진행 상태를 행에 반영합니다. 반영 간격보다 빨리 도착한 진행 상태는 버립니다.
func (b *Board) OnProgress(snapshot contract.ProgressSnapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	row, exists := b.rows[snapshot.TaskID]
	if !exists || row.Status.IsFinished() {
		return
	}

	if limiter := b.limiters[snapshot.TaskID]; limiter != nil && !limiter.AllowN(b.now(), 1) {
		b.throttled++
		return
	}

	row.Status = StatusRunning
	row.Percent = snapshot.PercentComplete
	row.CurrentDivisor = snapshot.CurrentDivisor
}

// OnCompleted 최종 결과를 행에 반영합니다. 추적하지 않던 TaskID이면 새 행을 추가합니다.
func (b *Board) OnCompleted(id contract.TaskID, outcome contract.Outcome) {
	b.mu.Lock()
	defer b.mu.Unlock()

	row, exists := b.rows[id]
	if !exists {
		applog.WithComponentAndFields(component, applog.Fields{
			"task_id": id,
			"outcome": outcome.String(),
		}).Warn("추적하지 않던 작업의 완료 알림을 수신하여 새 행을 추가합니다")

		row = &Row{TaskID: id, RunBy: contract.TaskRunByUnknown.String(), SubmittedAt: b.now()}
		b.rows[id] = row
		b.order = append(b.order, id)
	}

	switch {
	case outcome.IsSucceeded():
		result, _ := outcome.Result()
		row.Number = result.NumberTested
		row.FirstDivisor = result.FirstDivisor
		row.Percent = 100
		if result.IsPrime {
			row.Status = StatusPrime
		} else {
			row.Status = StatusComposite
		}

	case outcome.IsCancelled():
		row.Status = StatusCanceled

	default:
		row.Status = StatusError
		row.Error = outcome.Cause().Error()
		row.ErrorType = outcome.FailureType().String()
	}

	finishedAt := b.now()
	row.FinishedAt = &finishedAt
	delete(b.limiters, id)

	applog.WithComponentAndFields(component, applog.Fields{
		"task_id": id,
		"number":  row.Number,
		"status":  row.Status,
	}).Debug("작업 목록 갱신: 완료")

	b.evictLocked()
}

// Row TaskID에 해당하는 행의 사본을 반환합니다.
func (b *Board) Row(id contract.TaskID) (Row, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	row, exists := b.rows[id]
	if !exists {
		return Row{}, false
	}
	return *row, true
}

// Rows 모든 행의 사본을 추가된 순서대로 반환합니다.
func (b *Board) Rows() []Row {
	b.mu.Lock()
	defer b.mu.Unlock()

	rows := make([]Row, 0, len(b.order))
	for _, id := range b.order {
		rows = append(rows, *b.rows[id])
	}
	return rows
}

// Summary 상태별 행 수를 집계합니다.
func (b *Board) Summary() Summary {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := Summary{Total: len(b.order), ThrottledProgress: b.throttled}
	for _, row := range b.rows {
		switch row.Status {
		case StatusNotStarted:
			s.NotStarted++
		case StatusRunning:
			s.Running++
		case StatusPrime:
			s.Prime++
		case StatusComposite:
			s.Composite++
		case StatusCanceled:
			s.Canceled++
		case StatusError:
			s.Error++
		}
	}
	return s
}

// evictLocked 행 수가 maxRows를 넘으면 완료된 행을 오래된 순으로 제거합니다.
// 진행 중인 행은 제거하지 않으므로 진행 중인 작업이 많으면 일시적으로 maxRows를 넘을 수 있습니다.
func (b *Board) evictLocked() {
	excess := len(b.order) - b.maxRows
	if excess <= 0 {
		return
	}

	kept := b.order[:0]
	for _, id := range b.order {
		if excess > 0 && b.rows[id].Status.IsFinished() {
			delete(b.rows, id)
			excess--
			continue
		}
		kept = append(kept, id)
	}
	b.order = kept
}

func (b *Board) removeLocked(id contract.TaskID) {
	delete(b.rows, id)
	delete(b.limiters, id)
	for i, v := range b.order {
		if v == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

var _ contract.TaskListener = (*Board)(nil)
