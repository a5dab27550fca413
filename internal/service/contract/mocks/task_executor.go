package mocks

import (
	"github.com/darkkaiser/prime-calculator/internal/service/contract"
	"github.com/stretchr/testify/mock"
)

// MockTaskExecutor contract.TaskExecutor 인터페이스의 Mock 구현체입니다.
type MockTaskExecutor struct {
	mock.Mock
}

// Submit 작업 제출 호출을 기록합니다.
func (m *MockTaskExecutor) Submit(number int64, id contract.TaskID) error {
	args := m.Called(number, id)
	return args.Error(0)
}

// Cancel 작업 취소 호출을 기록합니다.
func (m *MockTaskExecutor) Cancel(id contract.TaskID) error {
	args := m.Called(id)
	return args.Error(0)
}

var _ contract.TaskExecutor = (*MockTaskExecutor)(nil)
