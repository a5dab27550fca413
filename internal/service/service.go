// Package service 애플리케이션을 구성하는 서비스들의 공통 생명주기 계약을 정의합니다.
package service

import (
	"context"
	"sync"
)

// Service 시작 이후 serviceStopCtx가 취소되면 종료 처리를 마치고 serviceStopWG.Done()을 호출하는 서비스입니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
