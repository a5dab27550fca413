package task

import (
	"sync"

	applog "github.com/darkkaiser/prime-calculator/pkg/log"
)

// Dispatcher 진행 상태와 완료 알림을 리스너가 원하는 실행 컨텍스트로 전달합니다.
//
// 구현체는 같은 고루틴에서 연속으로 Dispatch된 함수들을 호출 순서대로(FIFO) 실행해야 합니다.
// 작업 하나의 진행 상태가 완료 알림보다 늦게 도착하지 않는다는 보장이 이 순서에 의존합니다.
type Dispatcher interface {
	Dispatch(fn func())
}

// InlineDispatcher 함수를 호출한 고루틴(작업 고루틴)에서 즉시 실행합니다.
type InlineDispatcher struct{}

func (InlineDispatcher) Dispatch(fn func()) {
	fn()
}

// QueueDispatcher 전용 고루틴 하나에서 함수들을 순서대로 실행합니다.
//
// 대기열은 크기 제한이 없으므로 Dispatch는 블로킹되지 않습니다. 진행 상태는 작업마다
// 최대 하나만 대기열에 쌓이므로 대기열 길이는 진행 중인 작업 수에 비례합니다.
// 실행 중 발생한 panic은 복구되어 로그로 남고, 이후 함수들은 계속 실행됩니다.
type QueueDispatcher struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool

	done chan struct{}
}

// NewQueueDispatcher 전달 고루틴을 시작한 QueueDispatcher를 생성합니다. 사용 후 Close를 호출해야 합니다.
func NewQueueDispatcher() *QueueDispatcher {
	d := &QueueDispatcher{
		done: make(chan struct{}),
	}
	d.cond = sync.NewCond(&d.mu)

	go d.loop()

	return d
}

// Dispatch fn을 대기열에 추가합니다. Close 이후에는 대기열이 비워진 뒤 호출자 고루틴에서 바로 실행합니다.
func (d *QueueDispatcher) Dispatch(fn func()) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()

		<-d.done
		d.run(fn)
		return
	}
	d.queue = append(d.queue, fn)
	d.mu.Unlock()

	d.cond.Signal()
}

// Len 대기 중인 함수의 수를 반환합니다.
func (d *QueueDispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.queue)
}

// Close 새 함수의 대기열 추가를 중단하고, 이미 쌓인 함수가 모두 실행될 때까지 대기합니다.
// 여러 번 호출해도 안전합니다.
func (d *QueueDispatcher) Close() error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	d.cond.Broadcast()
	<-d.done

	return nil
}

func (d *QueueDispatcher) loop() {
	defer close(d.done)

	for {
		d.mu.Lock()
		for len(d.queue) == 0 && !d.closed {
			d.cond.Wait()
		}
		if len(d.queue) == 0 {
			d.mu.Unlock()
			return
		}
		fn := d.queue[0]
		d.queue[0] = nil
		d.queue = d.queue[1:]
		d.mu.Unlock()

		d.run(fn)
	}
}

func (d *QueueDispatcher) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"panic": r,
			}).Error("알림 전달 중 panic 복구: 리스너 구현을 점검해야 합니다")
		}
	}()

	fn()
}
