package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/darkkaiser/prime-calculator/internal/config"
	"github.com/darkkaiser/prime-calculator/internal/service/contract"
	"github.com/darkkaiser/prime-calculator/pkg/cronx"
	applog "github.com/darkkaiser/prime-calculator/pkg/log"
)

// component Scheduler 서비스의 로깅용 컴포넌트 이름
const component = "scheduler.service"

// NumberGenerator 자동 제출할 정수를 생성하는 인터페이스입니다.
type NumberGenerator interface {
	Next() int64
}

// Scheduler 설정된 Cron 주기마다 임의의 정수에 대한 소수 판별 작업을 새 TaskID로 제출하는 서비스입니다.
type Scheduler struct {
	config config.SchedulerConfig

	cron *cron.Cron

	// taskSubmitter 작업 제출을 요청하는 인터페이스입니다.
	taskSubmitter contract.TaskSubmitter

	generator NumberGenerator

	running   bool
	runningMu sync.Mutex
}

// NewService 새로운 Scheduler 서비스 인스턴스를 생성합니다.
func NewService(cfg config.SchedulerConfig, submitter contract.TaskSubmitter, generator NumberGenerator) *Scheduler {
	if submitter == nil {
		panic("TaskSubmitter는 필수입니다")
	}
	if generator == nil {
		panic("NumberGenerator는 필수입니다")
	}

	return &Scheduler{
		config: cfg,

		taskSubmitter: submitter,

		generator: generator,
	}
}

// Start 스케줄러를 시작하고, 활성화된 경우 자동 제출 작업을 Cron 엔진에 등록합니다.
//
// 매개변수:
//   - serviceStopCtx: 서비스 종료 신호를 받기 위한 Context
//   - serviceStopWG: 서비스 종료 완료를 알리기 위한 WaitGroup
func (s *Scheduler) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: Scheduler 서비스 초기화 프로세스를 시작합니다")

	if s.taskSubmitter == nil {
		serviceStopWG.Done()
		return ErrTaskSubmitterNotInitialized
	}
	if s.generator == nil {
		serviceStopWG.Done()
		return ErrNumberGeneratorNotInitialized
	}

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Scheduler 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	// Recover: 작업 실행 중 panic이 발생해도 스케줄러는 계속 동작합니다.
	// SkipIfStillRunning: 이전 실행이 끝나지 않았으면 이번 실행을 건너뜁니다.
	s.cron = cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(cron.VerbosePrintfLogger(applog.StandardLogger())),
		cron.WithChain(
			cron.Recover(cron.VerbosePrintfLogger(applog.StandardLogger())),
			cron.SkipIfStillRunning(cron.VerbosePrintfLogger(applog.StandardLogger())),
		),
	)

	if s.config.Runnable {
		if _, err := s.cron.AddFunc(s.config.TimeSpec, s.submitRandomTask); err != nil {
			s.cron = nil
			serviceStopWG.Done()
			return newErrInvalidCronSpec(s.config.TimeSpec, err)
		}
	}

	s.cron.Start()
	s.running = true

	fields := applog.Fields{
		"runnable":             s.config.Runnable,
		"registered_schedules": len(s.cron.Entries()),
	}
	if s.config.Runnable {
		fields["time_spec"] = s.config.TimeSpec
		if next, err := cronx.NextRun(s.config.TimeSpec, time.Now()); err == nil {
			fields["next_run"] = next.Format(time.RFC3339)
		}
	}
	applog.WithComponentAndFields(component, fields).Info("서비스 시작 완료: Scheduler 서비스가 정상적으로 초기화되었습니다")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.stop()
	}()

	return nil
}

// stop 실행 중인 스케줄러를 중지하고 진행 중인 제출이 끝날 때까지 기다립니다.
func (s *Scheduler) stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("종료 절차 진입: Scheduler 서비스 중지 시그널을 수신했습니다")

	if s.cron != nil {
		<-s.cron.Stop().Done()
	}

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("Scheduler 서비스 종료 완료: 모든 리소스가 정리되었습니다")
}

// submitRandomTask 임의의 정수를 새 TaskID로 제출합니다. 제출은 즉시 반환되므로 Cron 실행이 블로킹되지 않습니다.
func (s *Scheduler) submitRandomTask() {
	id := contract.NewTaskID()
	number := s.generator.Next()

	fields := applog.Fields{
		"task_id": id,
		"number":  number,
		"run_by":  contract.TaskRunByScheduler,
	}

	if err := s.taskSubmitter.Submit(number, id); err != nil {
		fields["error"] = err
		applog.WithComponentAndFields(component, fields).Error("작업 요청 실패: 자동 제출 중 오류가 발생했습니다")
		return
	}

	applog.WithComponentAndFields(component, fields).Debug("자동 제출 완료")
}
