package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/darkkaiser/prime-calculator/internal/pkg/errors"
	"github.com/darkkaiser/prime-calculator/pkg/validation"
)

// newValidator 새로운 Validator 인스턴스를 생성하고 커스텀 유효성 검사 함수를 등록합니다.
func newValidator() *validator.Validate {
	v := validator.New()

	// 에러 메시지에 구조체 필드명 대신 JSON 키 이름을 사용합니다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("cors_origin", validateCORSOrigin); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'cors_origin' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}

	return v
}

func validateCORSOrigin(fl validator.FieldLevel) bool {
	return validation.ValidateCORSOrigin(fl.Field().String()) == nil
}

// checkStruct 구조체를 태그 규칙에 따라 검증하고, 첫 번째 위반 사항을 사용자 친화적인 에러로 변환합니다.
// fields를 지정하면 해당 필드만 부분 검증합니다.
func checkStruct(v *validator.Validate, s any, contextName string, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = v.StructPartial(s, fields...)
	} else {
		err = v.Struct(s)
	}
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s 유효성 검증에 실패했습니다", contextName))
	}

	firstErr := validationErrors[0]

	switch firstErr.StructField() {
	case "DivisorBound":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("약수 탐색 범위(divisor_bound)는 'sqrt' 또는 'naive'여야 합니다: '%v'", firstErr.Value()))
	case "Dispatcher":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("알림 디스패처(dispatcher)는 'inline' 또는 'queue'여야 합니다: '%v'", firstErr.Value()))
	case "ShutdownTimeout":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("종료 대기 시간(shutdown_timeout)은 0보다 커야 합니다: '%v'", firstErr.Value()))
	case "ListenPort":
		return apperrors.New(apperrors.InvalidInput, "웹 서비스 포트(listen_port)는 1에서 65535 사이의 값이어야 합니다")
	case "TimeSpec":
		return apperrors.New(apperrors.InvalidInput, "스케줄러 활성화 시 실행 주기(time_spec)는 필수입니다")
	case "AllowOrigins":
		if firstErr.Tag() == "min" {
			return apperrors.New(apperrors.InvalidInput, "CORS 허용 도메인(allow_origins) 목록이 비어있습니다")
		}
	}

	if firstErr.Tag() == "cors_origin" {
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("CORS Origin 형식이 올바르지 않습니다: '%v' (형식: Scheme://Host[:Port], 예: https://example.com)", firstErr.Value()))
	}

	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 설정이 올바르지 않습니다: %s (조건: %s=%s)", contextName, firstErr.Field(), firstErr.Tag(), firstErr.Param()))
}
