package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	_ "github.com/darkkaiser/prime-calculator/docs"
	"github.com/darkkaiser/prime-calculator/internal/config"
	"github.com/darkkaiser/prime-calculator/internal/pkg/version"
	"github.com/darkkaiser/prime-calculator/internal/service/api/constants"
	"github.com/darkkaiser/prime-calculator/internal/service/api/handler/system"
	v1 "github.com/darkkaiser/prime-calculator/internal/service/api/v1"
	v1handler "github.com/darkkaiser/prime-calculator/internal/service/api/v1/handler"
	"github.com/darkkaiser/prime-calculator/internal/service/contract"
	applog "github.com/darkkaiser/prime-calculator/pkg/log"
	"github.com/labstack/echo/v4"
)

// TaskService API 서비스가 사용하는 작업 서비스의 기능입니다.
type TaskService interface {
	contract.TaskExecutor
	system.HealthChecker
}

// Service 작업 제어 REST API 서버의 생명주기를 관리하는 서비스입니다.
//
// Echo 기반 HTTP 서버를 시작하고, 미들웨어 체인과 라우트(시스템, v1 API, Swagger UI)를 구성합니다.
// Start() 메서드로 시작하고, context 취소로 종료됩니다.
type Service struct {
	appConfig *config.AppConfig

	taskService TaskService
	taskBoard   v1handler.TaskBoard
	generator   v1handler.NumberGenerator

	buildInfo version.Info

	running   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다.
func NewService(appConfig *config.AppConfig, taskService TaskService, taskBoard v1handler.TaskBoard, generator v1handler.NumberGenerator, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic(constants.PanicMsgAppConfigRequired)
	}
	if taskService == nil {
		panic(constants.PanicMsgTaskExecutorRequired)
	}
	if taskBoard == nil {
		panic(constants.PanicMsgTaskBoardRequired)
	}
	if generator == nil {
		panic(constants.PanicMsgNumberGeneratorRequired)
	}

	return &Service{
		appConfig: appConfig,

		taskService: taskService,
		taskBoard:   taskBoard,
		generator:   generator,

		buildInfo: buildInfo,
	}
}

// Start API 서비스를 시작합니다.
//
// 서버는 별도의 고루틴에서 실행되며, serviceStopCtx가 취소되면 Graceful Shutdown 후
// serviceStopWG.Done()을 호출합니다. 이미 실행 중이면 경고만 남기고 nil을 반환합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

// runServiceLoop 서버 설정, HTTP 서버 시작, Shutdown 대기를 순차적으로 수행합니다.
func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	e := s.setupServer()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer Echo 서버 인스턴스를 생성하고 핸들러와 라우트를 등록합니다.
func (s *Service) setupServer() *echo.Echo {
	systemHandler := system.New(s.taskService, s.buildInfo)
	v1Handler := v1handler.NewHandler(s.taskService, s.taskBoard, s.generator, s.appConfig.Calculator.MaxNumber)

	httpAPI := s.appConfig.HTTPAPI
	e := NewHTTPServer(HTTPServerConfig{
		Debug:             s.appConfig.Debug,
		AllowOrigins:      httpAPI.CORS.AllowOrigins,
		RequestsPerSecond: httpAPI.RateLimit.RequestsPerSecond,
		Burst:             httpAPI.RateLimit.Burst,
	})

	RegisterRoutes(e, systemHandler)
	v1.RegisterRoutes(e, v1Handler)

	return e
}

// startHTTPServer HTTP 서버를 시작합니다. 서버가 종료되면 done 채널을 닫습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	port := s.appConfig.HTTPAPI.ListenPort
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": port,
	}).Debug(constants.LogMsgServiceHTTPServerStarting)

	s.handleServerError(e.Start(fmt.Sprintf(":%d", port)))
}

// handleServerError HTTP 서버 종료 사유를 기록합니다. http.ErrServerClosed는 정상 종료입니다.
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceHTTPServerStopped)
		return
	}

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.HTTPAPI.ListenPort,
		"error": fmt.Errorf("%w: %w", ErrServerStartFailed, err),
	}).Error(constants.LogMsgServiceHTTPServerFatalError)
}

// waitForShutdown 종료 신호를 대기하고 Graceful Shutdown을 수행합니다.
// HTTP 서버가 먼저 종료된 경우(포트 바인딩 실패 등)에는 Shutdown 없이 상태만 정리합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)
	case <-httpServerDone:
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)

		s.cleanup()

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgServiceHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

// cleanup 서비스 종료 후 상태를 정리합니다.
func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
