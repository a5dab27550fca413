package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/prime-calculator/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "prime-calculator"

	// DefaultFilename 실행 인자로 경로가 주어지지 않을 때 읽는 기본 설정 파일명입니다.
	DefaultFilename = AppName + ".json"

	// envPrefix 설정을 덮어쓰는 환경 변수의 접두사입니다.
	envPrefix = "PRIME_"
)

const (
	DefaultDivisorBound            = "sqrt"
	DefaultDispatcher              = "queue"
	DefaultShutdownTimeout         = 30 * time.Second
	DefaultProgressInterval        = 100 * time.Millisecond
	DefaultMaxRows                 = 1000
	DefaultMaxTaskNumber     int64 = 1_000_000_000_000
	DefaultMaxNumber         int64 = 200000
	DefaultListenPort              = 2080
	DefaultRequestsPerSecond       = 20.0
	DefaultRateLimitBurst          = 40
)

// newDefaultConfig 설정 파일과 환경 변수로 덮어쓰기 전의 기본 설정을 생성합니다.
func newDefaultConfig() AppConfig {
	return AppConfig{
		Debug: false,
		Calculator: CalculatorConfig{
			DivisorBound:       DefaultDivisorBound,
			MaxConcurrentTasks: 0,
			ShutdownTimeout:    DefaultShutdownTimeout,
			Dispatcher:         DefaultDispatcher,
			MaxNumber:          DefaultMaxTaskNumber,
		},
		Board: BoardConfig{
			ProgressInterval: DefaultProgressInterval,
			MaxRows:          DefaultMaxRows,
		},
		Generator: GeneratorConfig{
			MaxNumber: DefaultMaxNumber,
		},
		Scheduler: SchedulerConfig{
			Runnable: false,
			TimeSpec: "*/10 * * * * *",
		},
		HTTPAPI: HTTPAPIConfig{
			ListenPort: DefaultListenPort,
			CORS: CORSConfig{
				AllowOrigins: []string{"*"},
			},
			RateLimit: RateLimitConfig{
				RequestsPerSecond: DefaultRequestsPerSecond,
				Burst:             DefaultRateLimitBurst,
			},
		},
	}
}

// normalizeEnvKey 환경 변수명을 설정 키로 변환합니다.
// 예: PRIME_CALCULATOR__MAX_CONCURRENT_TASKS -> calculator.max_concurrent_tasks
func normalizeEnvKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

// Load 기본 설정 파일을 읽어 애플리케이션 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 기본값, 설정 파일, 환경 변수 순으로 설정을 병합한 뒤 검증된 AppConfig를 반환합니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값 (가장 낮은 우선순위)
	if err := k.Load(structs.Provider(newDefaultConfig(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
		}
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
	}

	// 3. 환경 변수 (최우선 순위)
	if err := k.Load(env.Provider(envPrefix, ".", normalizeEnvKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. 구조체 언마샬링 (정의되지 않은 키는 에러)
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			ErrorUnused:      true,
			WeaklyTypedInput: true,
		},
	}
	var appConfig AppConfig
	unmarshalConf.DecoderConfig.Result = &appConfig
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	// 5. 유효성 검사
	if err := appConfig.validate(newValidator()); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}
