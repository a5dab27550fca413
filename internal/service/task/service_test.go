package task

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/prime-calculator/internal/pkg/errors"
	"github.com/darkkaiser/prime-calculator/internal/service/contract"
	"github.com/darkkaiser/prime-calculator/internal/service/task/prime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitTimeout = 5 * time.Second

// =============================================================================
// Test Helpers
// =============================================================================

type workerFunc func(n int64, cancelPoll func() bool, onProgress func(int, int64)) contract.Outcome

func (f workerFunc) Run(n int64, cancelPoll func() bool, onProgress func(int, int64)) contract.Outcome {
	return f(n, cancelPoll, onProgress)
}

// newGatedWorker release가 닫히거나 취소될 때까지 진행 상태를 보고하며 대기하는 Worker를 생성합니다.
func newGatedWorker(release <-chan struct{}) Worker {
	return workerFunc(func(n int64, cancelPoll func() bool, onProgress func(int, int64)) contract.Outcome {
		for d := int64(2); ; d++ {
			if cancelPoll() {
				return contract.NewCancelledOutcome()
			}
			onProgress(0, d)

			select {
			case <-release:
				return contract.NewSucceededOutcome(n, true, n)
			case <-time.After(time.Millisecond):
			}
		}
	})
}

// recordingListener 수신한 이벤트를 기록하고, 완료 이후의 진행 상태 수신을 위반으로 기록합니다.
type recordingListener struct {
	mu         sync.Mutex
	progress   map[contract.TaskID][]contract.ProgressSnapshot
	outcomes   map[contract.TaskID][]contract.Outcome
	violations []string

	onProgress  func(contract.ProgressSnapshot)
	onCompleted func(contract.TaskID, contract.Outcome)
}

func newRecordingListener() *recordingListener {
	return &recordingListener{
		progress: make(map[contract.TaskID][]contract.ProgressSnapshot),
		outcomes: make(map[contract.TaskID][]contract.Outcome),
	}
}

func (l *recordingListener) OnProgress(snapshot contract.ProgressSnapshot) {
	l.mu.Lock()
	if len(l.outcomes[snapshot.TaskID]) > 0 {
		l.violations = append(l.violations, fmt.Sprintf("progress after completion: %s", snapshot.TaskID))
	}
	l.progress[snapshot.TaskID] = append(l.progress[snapshot.TaskID], snapshot)
	hook := l.onProgress
	l.mu.Unlock()

	if hook != nil {
		hook(snapshot)
	}
}

func (l *recordingListener) OnCompleted(id contract.TaskID, outcome contract.Outcome) {
	l.mu.Lock()
	l.outcomes[id] = append(l.outcomes[id], outcome)
	hook := l.onCompleted
	l.mu.Unlock()

	if hook != nil {
		hook(id, outcome)
	}
}

func (l *recordingListener) outcomeOf(id contract.TaskID) (contract.Outcome, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if o := l.outcomes[id]; len(o) > 0 {
		return o[0], true
	}
	return contract.Outcome{}, false
}

// progressOf id로 전달된 진행 상태를 전달 순서대로 복사해 반환합니다.
func (l *recordingListener) progressOf(id contract.TaskID) []contract.ProgressSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]contract.ProgressSnapshot(nil), l.progress[id]...)
}

func (l *recordingListener) completionCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, o := range l.outcomes {
		n += len(o)
	}
	return n
}

func (l *recordingListener) waitOutcome(t *testing.T, id contract.TaskID) contract.Outcome {
	t.Helper()

	var outcome contract.Outcome
	require.Eventually(t, func() bool {
		var ok bool
		outcome, ok = l.outcomeOf(id)
		return ok
	}, waitTimeout, time.Millisecond, "작업 %s의 완료 알림을 기다리는 중 시간 초과", id)

	return outcome
}

// setupTestService 서비스를 시작하고, 테스트 종료 시 서비스를 중지하도록 등록합니다.
func setupTestService(t *testing.T, worker Worker, opts Options, dispatcher Dispatcher) (*Service, *recordingListener, func()) {
	t.Helper()

	listener := newRecordingListener()

	s := NewService(worker, opts)
	s.SetListener(listener)
	if dispatcher != nil {
		s.SetDispatcher(dispatcher)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))

	var once sync.Once
	stop := func() {
		once.Do(func() {
			cancel()
			wg.Wait()
		})
	}
	t.Cleanup(stop)

	return s, listener, stop
}

// =============================================================================
// 생명주기
// =============================================================================

func TestService_Start_WithoutListener(t *testing.T) {
	t.Parallel()

	s := NewService(prime.NewWorker(prime.BoundSqrt), Options{})

	wg := &sync.WaitGroup{}
	wg.Add(1)
	err := s.Start(context.Background(), wg)

	assert.ErrorIs(t, err, ErrListenerNotInitialized)
	wg.Wait()
}

func TestService_Start_Twice(t *testing.T) {
	t.Parallel()

	s, _, _ := setupTestService(t, prime.NewWorker(prime.BoundSqrt), Options{}, nil)

	wg := &sync.WaitGroup{}
	wg.Add(1)
	assert.NoError(t, s.Start(context.Background(), wg))
	wg.Wait()
}

func TestNewService_NilWorker(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewService(nil, Options{}) })
}

func TestService_Submit_NotRunning(t *testing.T) {
	t.Parallel()

	s := NewService(prime.NewWorker(prime.BoundSqrt), Options{})
	s.SetListener(newRecordingListener())

	err := s.Submit(17, "a")

	assert.ErrorIs(t, err, ErrServiceNotRunning)
	assert.True(t, apperrors.Is(err, apperrors.Unavailable))
	assert.ErrorIs(t, s.Health(), ErrServiceNotRunning)
}

func TestService_Submit_InvalidID(t *testing.T) {
	t.Parallel()

	s, _, _ := setupTestService(t, prime.NewWorker(prime.BoundSqrt), Options{}, nil)

	assert.ErrorIs(t, s.Submit(17, ""), contract.ErrInvalidTaskID)
	assert.ErrorIs(t, s.Submit(17, "  "), contract.ErrInvalidTaskID)
}

// =============================================================================
// 종단 간 시나리오
// =============================================================================

func TestService_EndToEnd(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name       string
		dispatcher func() Dispatcher
	}{
		{"Inline", func() Dispatcher { return nil }},
		{"Queue", func() Dispatcher { return NewQueueDispatcher() }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, listener, _ := setupTestService(t, prime.NewWorker(prime.BoundSqrt), Options{}, tc.dispatcher())
			require.NoError(t, s.Health())

			id1, id2 := contract.NewTaskID(), contract.NewTaskID()
			require.NoError(t, s.Submit(17, id1))
			require.NoError(t, s.Submit(100, id2))

			o1 := listener.waitOutcome(t, id1)
			require.True(t, o1.IsSucceeded())
			assert.Equal(t, contract.PrimeResult{NumberTested: 17, IsPrime: true, FirstDivisor: 17}, mustResult(t, o1))

			o2 := listener.waitOutcome(t, id2)
			assert.Equal(t, contract.PrimeResult{NumberTested: 100, IsPrime: false, FirstDivisor: 2}, mustResult(t, o2))
		})
	}
}

func mustResult(t *testing.T, o contract.Outcome) contract.PrimeResult {
	t.Helper()

	r, err := o.Result()
	require.NoError(t, err)
	return r
}

// TestService_CancelRunningTask 7919를 제출한 직후 취소하면 Cancelled로 끝나야 합니다.
// 첫 진행 상태 알림에서 Worker를 멈춰 세워 취소가 계산 도중에 도착하도록 합니다.
func TestService_CancelRunningTask(t *testing.T) {
	t.Parallel()

	id := contract.NewTaskID()
	firstProgress := make(chan struct{})
	resume := make(chan struct{})
	var once sync.Once

	s, listener, _ := setupTestService(t, prime.NewWorker(prime.BoundNaive), Options{}, nil)
	listener.onProgress = func(contract.ProgressSnapshot) {
		once.Do(func() {
			close(firstProgress)
			<-resume
		})
	}

	require.NoError(t, s.Submit(7919, id))
	<-firstProgress

	require.NoError(t, s.Cancel(id))
	assert.True(t, s.IsCancellationRequested(id))
	close(resume)

	outcome := listener.waitOutcome(t, id)
	assert.True(t, outcome.IsCancelled())
	listener.mu.Lock()
	assert.Len(t, listener.outcomes[id], 1)
	assert.Empty(t, listener.violations)
	listener.mu.Unlock()

	assert.ErrorIs(t, s.Cancel(id), contract.ErrUnknownTask, "종료된 작업은 취소할 수 없어야 합니다")
}

func TestService_DuplicateTaskID(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	s, listener, _ := setupTestService(t, newGatedWorker(release), Options{}, nil)

	require.NoError(t, s.Submit(1, "dup"))

	err := s.Submit(2, "dup")
	assert.ErrorIs(t, err, contract.ErrDuplicateTask)
	assert.True(t, apperrors.Is(err, apperrors.Conflict))

	close(release)
	listener.waitOutcome(t, "dup")

	// 종료된 작업의 ID는 다시 사용할 수 있습니다.
	require.NoError(t, s.Submit(3, "dup"))
	require.Eventually(t, func() bool { return s.RunningCount() == 0 }, waitTimeout, time.Millisecond)
}

func TestService_CancelUnknownTask(t *testing.T) {
	t.Parallel()

	s, _, _ := setupTestService(t, prime.NewWorker(prime.BoundSqrt), Options{}, nil)

	err := s.Cancel("never-submitted")

	assert.ErrorIs(t, err, contract.ErrUnknownTask)
	assert.True(t, apperrors.Is(err, apperrors.NotFound))
}

// =============================================================================
// 실패 격리
// =============================================================================

func TestService_WorkerPanicBecomesFailed(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	worker := workerFunc(func(n int64, _ func() bool, _ func(int, int64)) contract.Outcome {
		if n == 13 {
			panic(errBoom)
		}
		return contract.NewSucceededOutcome(n, false, 2)
	})
	s, listener, _ := setupTestService(t, worker, Options{}, nil)

	require.NoError(t, s.Submit(13, "panic"))
	outcome := listener.waitOutcome(t, "panic")

	require.True(t, outcome.IsFailed())
	assert.Equal(t, apperrors.ExecutionFailed, outcome.FailureType())
	assert.ErrorIs(t, outcome.Cause(), errBoom)

	var panicErr *PanicError
	require.True(t, errors.As(outcome.Cause(), &panicErr))
	assert.Equal(t, errBoom, panicErr.Value)
	assert.NotEmpty(t, panicErr.Stack)
	assert.Panics(t, func() { outcome.IsPrime() })

	// 다른 작업은 영향을 받지 않습니다.
	require.NoError(t, s.Submit(4, "after"))
	assert.True(t, listener.waitOutcome(t, "after").IsSucceeded())
}

func TestService_ProgressListenerPanicBecomesFailed(t *testing.T) {
	t.Parallel()

	s, listener, _ := setupTestService(t, prime.NewWorker(prime.BoundSqrt), Options{}, nil)
	listener.onProgress = func(contract.ProgressSnapshot) { panic("listener bug") }

	require.NoError(t, s.Submit(7919, "a"))

	outcome := listener.waitOutcome(t, "a")
	require.True(t, outcome.IsFailed())

	var panicErr *PanicError
	require.True(t, errors.As(outcome.Cause(), &panicErr))
	assert.Equal(t, "listener bug", panicErr.Value)
	assert.Nil(t, panicErr.Unwrap())
}

func TestService_CompletionListenerPanicIsContained(t *testing.T) {
	t.Parallel()

	s, listener, _ := setupTestService(t, prime.NewWorker(prime.BoundSqrt), Options{}, NewQueueDispatcher())
	listener.onCompleted = func(id contract.TaskID, _ contract.Outcome) {
		if id == "bad" {
			panic("completion bug")
		}
	}

	require.NoError(t, s.Submit(17, "bad"))
	listener.waitOutcome(t, "bad")

	require.NoError(t, s.Submit(17, "good"))
	assert.True(t, listener.waitOutcome(t, "good").IsSucceeded())

	require.Eventually(t, func() bool { return s.RunningCount() == 0 }, waitTimeout, time.Millisecond)
}

// =============================================================================
// 알림 순서와 병합
// =============================================================================

// manualDispatcher Dispatch된 함수를 실행하지 않고 쌓아 둡니다.
type manualDispatcher struct {
	mu  sync.Mutex
	fns []func()
}

func (d *manualDispatcher) Dispatch(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fns = append(d.fns, fn)
}

func (d *manualDispatcher) len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.fns)
}

func (d *manualDispatcher) runAll() {
	d.mu.Lock()
	fns := d.fns
	d.fns = nil
	d.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// TestService_ProgressCoalescing 전달되지 않은 진행 상태는 최신 값 하나로 병합되어야 합니다.
func TestService_ProgressCoalescing(t *testing.T) {
	t.Parallel()

	d := &manualDispatcher{}
	s, listener, _ := setupTestService(t, prime.NewWorker(prime.BoundNaive), Options{}, d)

	require.NoError(t, s.Submit(7919, "a"))

	// 7917번의 진행 상태 보고는 전달 함수 하나로 병합되고, 완료 알림이 하나 추가됩니다.
	require.Eventually(t, func() bool { return d.len() == 2 }, waitTimeout, time.Millisecond)
	assert.Equal(t, 1, s.RunningCount(), "완료 알림이 전달되기 전까지는 등록이 유지됩니다")
	assert.ErrorIs(t, s.Cancel("a"), contract.ErrUnknownTask, "종료 상태로 전이된 뒤에는 취소할 수 없습니다")

	d.runAll()

	progress := listener.progressOf("a")
	require.Len(t, progress, 1)
	assert.Equal(t, contract.ProgressSnapshot{TaskID: "a", PercentComplete: 100, CurrentDivisor: 7918}, progress[0])
	outcome, ok := listener.outcomeOf("a")
	require.True(t, ok)
	assert.True(t, outcome.IsPrime())
	assert.Zero(t, s.RunningCount())
}

// countingDispatcher 대기 중인 함수 수를 Len으로 노출하는 manualDispatcher입니다.
type countingDispatcher struct {
	manualDispatcher
}

func (d *countingDispatcher) Len() int { return d.len() }

func TestService_PendingNotifications(t *testing.T) {
	t.Parallel()

	t.Run("Len을 제공하는 Dispatcher", func(t *testing.T) {
		t.Parallel()

		d := &countingDispatcher{}
		s, _, _ := setupTestService(t, prime.NewWorker(prime.BoundSqrt), Options{}, d)

		require.NoError(t, s.Submit(97, "a"))
		require.Eventually(t, func() bool { return s.PendingNotifications() == 2 }, waitTimeout, time.Millisecond)

		d.runAll()
		assert.Zero(t, s.PendingNotifications())
	})

	t.Run("InlineDispatcher", func(t *testing.T) {
		t.Parallel()

		s, _, _ := setupTestService(t, prime.NewWorker(prime.BoundSqrt), Options{}, nil)
		assert.Zero(t, s.PendingNotifications())
	})
}

// TestService_ConcurrentTasks 동시에 제출한 N개의 작업은 각각 정확히 한 번씩 완료되어야 합니다.
func TestService_ConcurrentTasks(t *testing.T) {
	t.Parallel()

	const n = 50

	s, listener, _ := setupTestService(t, prime.NewWorker(prime.BoundNaive), Options{}, NewQueueDispatcher())

	ids := make([]contract.TaskID, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		ids[i] = contract.NewTaskID()
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.Submit(int64(100_000+i), ids[i]))
		}(i)
	}
	wg.Wait()

	require.Eventually(t, func() bool { return listener.completionCount() == n }, waitTimeout, time.Millisecond)

	listener.mu.Lock()
	defer listener.mu.Unlock()

	assert.Len(t, listener.outcomes, n)
	for i, id := range ids {
		outcomes := listener.outcomes[id]
		require.Len(t, outcomes, 1, "id=%s", id)
		assert.Equal(t, int64(100_000+i), outcomes[0].NumberTested())
	}
	assert.Empty(t, listener.violations)
}

func TestService_ResubmitInsideCompletion(t *testing.T) {
	t.Parallel()

	s, listener, _ := setupTestService(t, prime.NewWorker(prime.BoundSqrt), Options{}, NewQueueDispatcher())

	resubmitErr := make(chan error, 1)
	var once sync.Once
	listener.onCompleted = func(id contract.TaskID, _ contract.Outcome) {
		once.Do(func() { resubmitErr <- s.Submit(18, id) })
	}

	require.NoError(t, s.Submit(17, "a"))

	select {
	case err := <-resubmitErr:
		assert.NoError(t, err)
	case <-time.After(waitTimeout):
		t.Fatal("완료 알림을 기다리는 중 시간 초과")
	}

	require.Eventually(t, func() bool { return listener.completionCount() == 2 }, waitTimeout, time.Millisecond)
}

// =============================================================================
// 동시 실행 제한과 종료
// =============================================================================

func TestService_MaxConcurrentTasks(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	s, listener, _ := setupTestService(t, newGatedWorker(release), Options{MaxConcurrentTasks: 1}, nil)

	require.NoError(t, s.Submit(1, "first"))
	require.Eventually(t, func() bool {
		info, ok := s.lookup("first")
		return ok && info.Started
	}, waitTimeout, time.Millisecond)

	require.NoError(t, s.Submit(2, "second"))
	time.Sleep(20 * time.Millisecond)

	info, ok := s.lookup("second")
	require.True(t, ok)
	assert.False(t, info.Started, "슬롯이 없으면 실행되지 않아야 합니다")
	assert.Len(t, s.Tasks(), 2)
	assert.Equal(t, 1, s.WaitingCount(), "슬롯을 기다리는 작업만 집계되어야 합니다")

	// 슬롯을 기다리는 작업도 취소할 수 있습니다.
	require.NoError(t, s.Cancel("second"))
	assert.True(t, listener.waitOutcome(t, "second").IsCancelled())
	assert.Empty(t, listener.progressOf("second"))

	close(release)
	assert.True(t, listener.waitOutcome(t, "first").IsSucceeded())
	require.Eventually(t, func() bool { return s.WaitingCount() == 0 }, waitTimeout, time.Millisecond)
}

func TestService_ShutdownCancelsRunningTasks(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)

	s, listener, stop := setupTestService(t, newGatedWorker(release), Options{ShutdownTimeout: waitTimeout}, NewQueueDispatcher())

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Submit(int64(i), contract.TaskID(fmt.Sprintf("task-%d", i))))
	}

	stop()

	assert.Equal(t, 5, listener.completionCount(), "종료 시 대기 중인 알림까지 모두 전달되어야 합니다")
	for i := 0; i < 5; i++ {
		o, ok := listener.outcomeOf(contract.TaskID(fmt.Sprintf("task-%d", i)))
		require.True(t, ok)
		assert.True(t, o.IsCancelled())
	}

	assert.ErrorIs(t, s.Submit(1, "late"), ErrServiceNotRunning)
	assert.Zero(t, s.RunningCount())
}
