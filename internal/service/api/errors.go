package api

import (
	apperrors "github.com/darkkaiser/prime-calculator/internal/pkg/errors"
)

var (
	// ErrServerStartFailed HTTP 서버가 포트 바인딩 실패 등으로 기동되지 못했을 때의 에러입니다.
	ErrServerStartFailed = apperrors.New(apperrors.System, "API 서버를 시작할 수 없습니다")
)
