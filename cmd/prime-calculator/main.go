package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/darkkaiser/prime-calculator/internal/config"
	apperrors "github.com/darkkaiser/prime-calculator/internal/pkg/errors"
	"github.com/darkkaiser/prime-calculator/internal/pkg/version"
	"github.com/darkkaiser/prime-calculator/internal/service"
	"github.com/darkkaiser/prime-calculator/internal/service/api"
	"github.com/darkkaiser/prime-calculator/internal/service/board"
	"github.com/darkkaiser/prime-calculator/internal/service/contract"
	"github.com/darkkaiser/prime-calculator/internal/service/scheduler"
	"github.com/darkkaiser/prime-calculator/internal/service/task"
	"github.com/darkkaiser/prime-calculator/internal/service/task/numgen"
	"github.com/darkkaiser/prime-calculator/internal/service/task/prime"
	applog "github.com/darkkaiser/prime-calculator/pkg/log"
)

// @title Prime Calculator API
// @version 1.0
// @description 취소와 진행 상태 보고를 지원하는 소수 판별 작업 관리 서버의 REST API입니다.
// @description
// @description ## 주요 기능
// @description - 정수 하나의 소수 판별 작업 제출 (정수와 작업 ID는 생략 가능)
// @description - 진행 중인 작업의 취소 요청
// @description - 작업 보드를 통한 진행률, 현재 제수, 결과 조회
// @description
// @description 작업은 제출 즉시 202 Accepted로 응답하며, 계산은 서버에서 비동기로 진행됩니다.

// @contact.name DarkKaiser
// @contact.url https://github.com/DarkKaiser

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /

const component = "main"

const banner = `
  ____       _                  ____      _            _       _
 |  _ \ _ __(_)_ __ ___   ___  / ___|__ _| | ___ _   _| | __ _| |_ ___  _ __
 | |_) | '__| | '_ ' _ \ / _ \| |   / _' | |/ __| | | | |/ _' | __/ _ \| '__|
 |  __/| |  | | | | | | |  __/| |__| (_| | | (__| |_| | | (_| | || (_) | |
 |_|   |_|  |_|_| |_| |_|\___| \____\__,_|_|\___|\__,_|_|\__,_|\__\___/|_|
                                                                   %s
                                                        developed by DarkKaiser
--------------------------------------------------------------------------------
`

func main() {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.Load()
	if err != nil {
		// 로거 초기화 전이므로 표준 에러에 출력
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	var logOpts applog.Options
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	} else {
		logOpts = applog.NewProductionOptions(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	applog.SetDebugMode(appConfig.Debug)

	buildInfo := version.Get()
	fmt.Printf(banner, buildInfo.Version)

	applog.WithComponentAndFields(component, buildInfo.Fields()).
		WithField("env", map[bool]string{true: "development", false: "production"}[appConfig.Debug]).
		Info("서버 초기화 시작")

	for _, warning := range appConfig.VerifyRecommendations() {
		applog.WithComponent(component).Warn(warning)
	}

	services, err := newServices(appConfig, buildInfo)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Error("서비스 구성 실패")

		appLogCloser.Close()
		os.Exit(1)
	}

	serviceStopCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serviceStopWG := &sync.WaitGroup{}
	if err := startServices(serviceStopCtx, serviceStopWG, services); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Error("서비스 초기화 실패")

		stop() // 이미 시작된 서비스도 종료
		serviceStopWG.Wait()

		appLogCloser.Close()
		os.Exit(1)
	}

	applog.WithComponent(component).Info("서버 가동 완료")

	<-serviceStopCtx.Done()

	applog.WithComponent(component).Info("종료 신호 수신: 모든 서비스를 종료합니다")
	stop()
	serviceStopWG.Wait()

	applog.WithComponent(component).Info("서버 종료 완료")
}

// newServices 설정에 따라 서비스들을 생성하고 서로 연결합니다. 반환 순서가 시작 순서입니다.
func newServices(appConfig *config.AppConfig, buildInfo version.Info) ([]service.Service, error) {
	bound, err := prime.ParseDivisorBound(appConfig.Calculator.DivisorBound)
	if err != nil {
		return nil, err
	}

	generator, err := numgen.NewSeeded(appConfig.Generator.Seed, appConfig.Generator.MaxNumber)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "난수 생성기 초기화에 실패했습니다")
	}

	taskBoard := board.New(board.Options{
		ProgressInterval: appConfig.Board.ProgressInterval,
		MaxRows:          appConfig.Board.MaxRows,
	})

	taskService := task.NewService(prime.NewWorker(bound), task.Options{
		MaxConcurrentTasks: appConfig.Calculator.MaxConcurrentTasks,
		ShutdownTimeout:    appConfig.Calculator.ShutdownTimeout,
	})
	taskService.SetListener(contract.MultiListener{taskBoard, newOutcomeLogger(applog.StandardLogger())})
	if appConfig.Calculator.Dispatcher == "queue" {
		taskService.SetDispatcher(task.NewQueueDispatcher())
	}

	schedulerService := scheduler.NewService(appConfig.Scheduler, taskBoard.SubmitterFor(taskService, contract.TaskRunByScheduler), generator)
	apiService := api.NewService(appConfig, taskService, taskBoard, generator, buildInfo)

	return []service.Service{taskService, schedulerService, apiService}, nil
}

// newOutcomeLogger 작업의 최종 결과를 logger에 기록하는 리스너를 생성합니다.
func newOutcomeLogger(logger *applog.Logger) contract.TaskListener {
	return contract.TaskListenerFuncs{
		Completed: func(id contract.TaskID, outcome contract.Outcome) {
			entry := logger.WithFields(applog.Fields{
				"component": component,
				"task_id":   id,
				"outcome":   outcome.Kind().String(),
			})

			switch {
			case outcome.IsSucceeded():
				entry.WithFields(applog.Fields{
					"number":        outcome.NumberTested(),
					"prime":         outcome.IsPrime(),
					"first_divisor": outcome.FirstDivisor(),
				}).Info("작업 완료")
			case outcome.IsCancelled():
				entry.Info("작업 취소 완료")
			default:
				entry.WithFields(applog.Fields{
					"error":        outcome.Cause(),
					"failure_type": outcome.FailureType().String(),
				}).Warn("작업 실패")
			}
		},
	}
}

// startServices 서비스를 순서대로 시작합니다. 하나라도 실패하면 즉시 에러를 반환합니다.
func startServices(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup, services []service.Service) error {
	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			return err
		}
	}
	return nil
}
