package task

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineDispatcher(t *testing.T) {
	t.Parallel()

	called := false
	InlineDispatcher{}.Dispatch(func() { called = true })

	assert.True(t, called)
}

func TestQueueDispatcher_FIFO(t *testing.T) {
	t.Parallel()

	d := NewQueueDispatcher()

	var mu sync.Mutex
	var got []int
	for i := 0; i < 1000; i++ {
		d.Dispatch(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		})
	}
	require.NoError(t, d.Close())

	require.Len(t, got, 1000)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
	assert.Zero(t, d.Len())
}

func TestQueueDispatcher_RecoversPanic(t *testing.T) {
	t.Parallel()

	d := NewQueueDispatcher()

	ran := make(chan struct{})
	d.Dispatch(func() { panic("listener bug") })
	d.Dispatch(func() { close(ran) })

	<-ran
	require.NoError(t, d.Close())
}

func TestQueueDispatcher_Close(t *testing.T) {
	t.Parallel()

	t.Run("대기 중인 함수를 모두 실행한 뒤 반환한다", func(t *testing.T) {
		d := NewQueueDispatcher()

		block := make(chan struct{})
		count := 0
		d.Dispatch(func() { <-block })
		for i := 0; i < 10; i++ {
			d.Dispatch(func() { count++ })
		}
		close(block)

		require.NoError(t, d.Close())
		assert.Equal(t, 10, count)
	})

	t.Run("종료 이후의 Dispatch는 즉시 실행한다", func(t *testing.T) {
		d := NewQueueDispatcher()
		require.NoError(t, d.Close())
		require.NoError(t, d.Close())

		called := false
		d.Dispatch(func() { called = true })
		assert.True(t, called)
	})
}
