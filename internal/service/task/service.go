package task

import (
	"context"
	"io"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/darkkaiser/prime-calculator/internal/service/contract"
	applog "github.com/darkkaiser/prime-calculator/pkg/log"
)

// component Task 서비스의 로깅용 컴포넌트 이름
const component = "task.service"

// defaultShutdownTimeout 서비스 종료 시 실행 중인 작업 고루틴을 기다리는 기본 시간입니다.
const defaultShutdownTimeout = 30 * time.Second

// Worker 작업 하나의 계산을 수행합니다.
//
// cancelPoll이 true를 반환하면 가능한 빨리 취소 Outcome을 반환해야 하며,
// onProgress는 계산 도중 여러 번 호출될 수 있습니다.
type Worker interface {
	Run(n int64, cancelPoll func() bool, onProgress func(percent int, divisor int64)) contract.Outcome
}

// Options Task 서비스의 동작 옵션입니다.
type Options struct {
	// MaxConcurrentTasks 동시에 계산을 수행할 최대 작업 수입니다. 0이면 제한하지 않습니다.
	// 제한을 넘는 작업은 등록된 상태로 슬롯을 기다리며, 기다리는 동안에도 취소할 수 있습니다.
	MaxConcurrentTasks int

	// ShutdownTimeout 종료 시 작업 고루틴을 기다리는 최대 시간입니다. 0이면 30초입니다.
	ShutdownTimeout time.Duration
}

// Service 소수 판별 작업의 제출, 취소, 진행 상태 및 완료 알림을 총괄합니다.
//
// 작업마다 독립된 고루틴에서 Worker를 실행하며, 작업 간에는 취소 플래그 외의 상태를 공유하지 않습니다.
// 알림은 설정된 Dispatcher를 통해 TaskListener로 전달됩니다.
//
// 주요 책임:
//   - 진행 중인 TaskID의 중복 제출 거부
//   - 협조적 취소 (Worker가 매 제수마다 취소 플래그 확인)
//   - 작업마다 완료 알림을 정확히 한 번 전달, 그 이후의 진행 상태 알림 차단
//   - Worker의 panic을 Failed Outcome으로 변환
//   - 서비스 종료 시 실행 중인 모든 작업 취소 (Graceful Shutdown)
type Service struct {
	worker   Worker
	registry *registry

	listener   contract.TaskListener
	dispatcher Dispatcher

	// slots 동시 실행 수 제한용 세마포어입니다. 제한이 없으면 nil입니다.
	slots              *semaphore.Weighted
	maxConcurrentTasks int

	shutdownTimeout time.Duration

	// taskStopWG 실행 중인 작업 고루틴의 종료를 추적합니다.
	taskStopWG sync.WaitGroup

	running   bool
	runningMu sync.Mutex
}

// NewService Task 서비스를 생성합니다.
func NewService(worker Worker, opts Options) *Service {
	if worker == nil {
		panic("Worker는 필수입니다")
	}

	s := &Service{
		worker:   worker,
		registry: newRegistry(),

		dispatcher: InlineDispatcher{},

		shutdownTimeout: opts.ShutdownTimeout,
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = defaultShutdownTimeout
	}
	if opts.MaxConcurrentTasks > 0 {
		s.slots = semaphore.NewWeighted(int64(opts.MaxConcurrentTasks))
		s.maxConcurrentTasks = opts.MaxConcurrentTasks
	}

	return s
}

// SetListener 진행 상태와 완료 알림을 수신할 리스너를 주입합니다. Start 이전에 호출해야 합니다.
func (s *Service) SetListener(listener contract.TaskListener) {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	s.listener = listener
}

// SetDispatcher 알림 전달에 사용할 Dispatcher를 주입합니다. Start 이전에 호출해야 하며, nil이면 InlineDispatcher를 사용합니다.
//
// Dispatcher가 io.Closer를 구현하면 서비스가 종료될 때 작업 고루틴을 모두 기다린 뒤 Close합니다.
func (s *Service) SetDispatcher(dispatcher Dispatcher) {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if dispatcher == nil {
		dispatcher = InlineDispatcher{}
	}
	s.dispatcher = dispatcher
}

// Start Task 서비스를 시작합니다.
//
// serviceStopCtx가 취소되면 실행 중인 모든 작업에 취소를 요청하고, 작업 고루틴이 끝나기를 기다린 뒤
// serviceStopWG.Done()을 호출합니다. 이미 실행 중이면 경고 로그만 남기고 nil을 반환합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: Task 서비스 초기화 프로세스를 시작합니다")

	if s.listener == nil {
		defer serviceStopWG.Done()
		return ErrListenerNotInitialized
	}

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(component).Warn("Task 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	s.running = true

	go s.waitForStop(serviceStopCtx, serviceStopWG)

	applog.WithComponentAndFields(component, applog.Fields{
		"max_concurrent_tasks": s.maxConcurrentTasks,
		"shutdown_timeout":     s.shutdownTimeout.String(),
	}).Info("서비스 시작 완료: Task 서비스가 정상적으로 초기화되었습니다")

	return nil
}

func (s *Service) waitForStop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	<-serviceStopCtx.Done()

	s.handleStop()
}

// handleStop 실행 중인 모든 작업에 취소를 요청하고 종료를 기다립니다.
//
//  1. running = false 설정 및 모든 작업 취소 요청
//  2. 작업 고루틴 종료 대기 (최대 shutdownTimeout)
//  3. Dispatcher 닫기 (대기 중인 알림 모두 전달)
func (s *Service) handleStop() {
	applog.WithComponent(component).Info("종료 절차 진입: Task 서비스 중지 시그널을 수신했습니다")

	// =====================================================================
	// [단계 1] 신규 제출 차단 및 작업 취소
	// =====================================================================
	// Submit은 runningMu를 잡은 상태에서 taskStopWG.Add를 호출하므로,
	// 이 블록 이후에는 새 작업 고루틴이 추가되지 않습니다.
	s.runningMu.Lock()
	s.running = false
	cancelled := s.registry.cancelAll()
	dispatcher := s.dispatcher
	s.runningMu.Unlock()

	applog.WithComponentAndFields(component, applog.Fields{
		"cancelled_count": cancelled,
	}).Debug("실행 중인 작업에 취소를 요청했습니다")

	// =====================================================================
	// [단계 2] 작업 고루틴 종료 대기
	// =====================================================================
	done := make(chan struct{})
	go func() {
		s.taskStopWG.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(s.shutdownTimeout):
		applog.WithComponentAndFields(component, applog.Fields{
			"shutdown_timeout": s.shutdownTimeout.String(),
			"remaining_tasks":  s.registry.len(),
		}).Warn("Task 서비스 강제 종료: 작업 고루틴 종료 대기 시간 초과")
	}

	// =====================================================================
	// [단계 3] Dispatcher 정리
	// =====================================================================
	if c, ok := dispatcher.(io.Closer); ok {
		if err := c.Close(); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"error": err,
			}).Warn("Dispatcher 종료 실패")
		}
	}

	applog.WithComponent(component).Info("Task 서비스 종료 완료: 모든 리소스가 정리되었습니다")
}

// Submit number의 소수 판별 작업을 id로 등록하고 별도의 고루틴에서 실행합니다.
//
// 작업의 완료를 기다리지 않고 즉시 반환합니다.
//
// 반환값:
//   - contract.ErrInvalidTaskID: id가 비어 있는 경우
//   - contract.ErrDuplicateTask: id가 이미 진행 중인 경우
//   - ErrServiceNotRunning: 서비스가 시작 전이거나 종료된 경우
func (s *Service) Submit(number int64, id contract.TaskID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return ErrServiceNotRunning
	}

	rec, err := s.registry.register(id, number)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"task_id": id,
			"number":  number,
			"error":   err,
		}).Warn("작업 제출 거부: 이미 진행 중인 TaskID")

		return err
	}

	listener, dispatcher := s.listener, s.dispatcher

	s.taskStopWG.Add(1)
	go func() {
		defer s.taskStopWG.Done()

		outcome := s.execute(rec, listener, dispatcher)
		s.complete(rec, outcome, listener, dispatcher)
	}()

	applog.WithComponentAndFields(component, applog.Fields{
		"task_id": id,
		"number":  number,
	}).Debug("작업 제출 완료")

	return nil
}

// Cancel id로 추적 중인 작업에 취소를 요청합니다.
//
// 취소는 협조적으로 처리되므로 즉시 중단되지 않을 수 있으며, 결과는 완료 알림(Cancelled)으로 전달됩니다.
// 추적 중이지 않거나 이미 종료된 작업이면 contract.ErrUnknownTask를 반환합니다.
func (s *Service) Cancel(id contract.TaskID) error {
	if err := s.registry.requestCancellation(id); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"task_id": id,
		}).Debug("작업 취소 실패: 추적 중인 작업이 아닙니다")

		return err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"task_id": id,
	}).Debug("작업 취소 요청 완료")

	return nil
}

// IsCancellationRequested id에 취소가 요청되었는지 확인합니다.
func (s *Service) IsCancellationRequested(id contract.TaskID) bool {
	return s.registry.isCancellationRequested(id)
}

// lookup 추적 중인 작업의 정보를 반환합니다.
func (s *Service) lookup(id contract.TaskID) (TaskInfo, bool) {
	return s.registry.lookup(id)
}

// Tasks 추적 중인 모든 작업의 정보를 제출 순으로 반환합니다.
func (s *Service) Tasks() []TaskInfo {
	return s.registry.snapshot()
}

// WaitingCount 추적 중인 작업 가운데 아직 Worker가 시작되지 않은 작업 수를 반환합니다.
// 동시 실행 수가 제한된 경우 실행 슬롯을 기다리는 작업이 여기에 포함됩니다.
func (s *Service) WaitingCount() int {
	waiting := 0
	for _, info := range s.Tasks() {
		if !info.Started {
			waiting++
		}
	}
	return waiting
}

// RunningCount 추적 중인 작업 수를 반환합니다.
func (s *Service) RunningCount() int {
	return s.registry.len()
}

// PendingNotifications Dispatcher에서 전달을 기다리는 알림 수를 반환합니다. 대기열이 없는 Dispatcher이면 0입니다.
func (s *Service) PendingNotifications() int {
	s.runningMu.Lock()
	dispatcher := s.dispatcher
	s.runningMu.Unlock()

	if q, ok := dispatcher.(interface{ Len() int }); ok {
		return q.Len()
	}
	return 0
}

// Health 서비스가 작업을 받을 수 있는 상태이면 nil을 반환합니다.
func (s *Service) Health() error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return ErrServiceNotRunning
	}
	return nil
}

// execute Worker를 실행하고 Outcome을 반환합니다.
// Worker 또는 인라인으로 실행된 진행 상태 리스너에서 발생한 panic은 Failed Outcome이 됩니다.
func (s *Service) execute(rec *record, listener contract.TaskListener, dispatcher Dispatcher) (outcome contract.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			err := newTaskPanicError(r, debug.Stack())

			applog.WithComponentAndFields(component, applog.Fields{
				"task_id": rec.id,
				"number":  rec.number,
				"panic":   r,
			}).Error("작업 실행 중 panic 복구: Failed 상태로 종료합니다")

			outcome = contract.NewFailedOutcome(err)
		}
	}()

	if s.slots != nil {
		if err := s.slots.Acquire(rec.ctx, 1); err != nil {
			// 슬롯을 기다리는 동안 취소되었습니다.
			return contract.NewCancelledOutcome()
		}
		defer s.slots.Release(1)
	}

	rec.started.Store(true)

	return s.worker.Run(rec.number, rec.isCancellationRequested, func(percent int, divisor int64) {
		s.publishProgress(rec, contract.ProgressSnapshot{
			TaskID:          rec.id,
			PercentComplete: percent,
			CurrentDivisor:  divisor,
		}, listener, dispatcher)
	})
}

// publishProgress 진행 상태를 전달 대기 슬롯에 기록합니다.
//
// 슬롯이 비어 있었을 때만 전달 함수를 Dispatch하며, 이미 전달 대기 중인 스냅샷이 있으면 덮어씁니다.
// 따라서 작업마다 전달되지 않은 스냅샷은 최대 하나이고, 전달 시점에는 항상 가장 최신 값이 전달됩니다.
func (s *Service) publishProgress(rec *record, snapshot contract.ProgressSnapshot, listener contract.TaskListener, dispatcher Dispatcher) {
	if rec.pendingProgress.Swap(&snapshot) != nil {
		return
	}

	dispatcher.Dispatch(func() {
		latest := rec.pendingProgress.Swap(nil)
		if latest == nil || rec.completed.Load() {
			return
		}
		listener.OnProgress(*latest)
	})
}

// complete 레코드를 종료 상태로 전이하고 완료 알림을 정확히 한 번 전달합니다.
//
// 종료 상태 전이는 알림 전달보다 먼저 일어나므로, 이 시점 이후의 Cancel은 ErrUnknownTask를 반환합니다.
// 등록 해제는 리스너 호출 직전에 수행되어, OnCompleted 안에서는 이미 같은 TaskID로 다시 제출할 수 있습니다.
func (s *Service) complete(rec *record, outcome contract.Outcome, listener contract.TaskListener, dispatcher Dispatcher) {
	if !rec.transition(stateOf(outcome)) {
		applog.WithComponentAndFields(component, applog.Fields{
			"task_id": rec.id,
			"state":   rec.State().String(),
		}).Error("작업 완료 처리 무시: 이미 종료 상태입니다")
		return
	}

	fields := applog.Fields{
		"task_id": rec.id,
		"number":  rec.number,
		"outcome": outcome.String(),
		"elapsed": time.Since(rec.submittedAt).String(),
	}
	if outcome.IsFailed() {
		applog.WithComponentAndFields(component, fields).Warn("작업 실패")
	} else {
		applog.WithComponentAndFields(component, fields).Debug("작업 완료")
	}

	dispatcher.Dispatch(func() {
		rec.completed.Store(true)
		rec.pendingProgress.Store(nil)

		s.registry.unregister(rec.id)

		defer func() {
			if r := recover(); r != nil {
				applog.WithComponentAndFields(component, applog.Fields{
					"task_id": rec.id,
					"panic":   r,
				}).Error("완료 알림 처리 중 panic 복구")
			}
		}()

		listener.OnCompleted(rec.id, outcome)
	})
}

func stateOf(outcome contract.Outcome) contract.TaskState {
	switch outcome.Kind() {
	case contract.OutcomeSucceeded:
		return contract.TaskStateCompleted
	case contract.OutcomeCancelled:
		return contract.TaskStateCancelled
	default:
		return contract.TaskStateFailed
	}
}
