package prime

import (
	"math"
	"testing"

	apperrors "github.com/darkkaiser/prime-calculator/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallestDivisor 검증용 단순 구현입니다.
func smallestDivisor(n int64) int64 {
	for d := int64(2); d < n; d++ {
		if n%d == 0 {
			return d
		}
	}
	return n
}

func TestWorker_Run_KnownValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n            int64
		isPrime      bool
		firstDivisor int64
	}{
		{-7, false, -7},
		{0, false, 0},
		{1, false, 1},
		{2, true, 2},
		{3, true, 3},
		{4, false, 2},
		{9, false, 3},
		{17, true, 17},
		{25, false, 5},
		{100, false, 2},
		{7919, true, 7919},
		{199999, true, 199999},
		{1_000_003 * 3, false, 3},
	}

	for _, bound := range []DivisorBound{BoundSqrt, BoundNaive} {
		w := NewWorker(bound)
		for _, tt := range tests {
			o := w.Run(tt.n, nil, nil)

			require.True(t, o.IsSucceeded(), "n=%d bound=%s", tt.n, bound)
			assert.Equal(t, tt.n, o.NumberTested())
			assert.Equal(t, tt.isPrime, o.IsPrime(), "n=%d bound=%s", tt.n, bound)
			assert.Equal(t, tt.firstDivisor, o.FirstDivisor(), "n=%d bound=%s", tt.n, bound)
		}
	}
}

// TestWorker_Run_MatchesBruteForce 모든 n에 대해 가장 작은 약수를 정확히 보고해야 합니다.
func TestWorker_Run_MatchesBruteForce(t *testing.T) {
	t.Parallel()

	w := NewWorker(BoundSqrt)
	for n := int64(2); n <= 3000; n++ {
		o := w.Run(n, nil, nil)
		d := smallestDivisor(n)

		assert.Equal(t, d == n, o.IsPrime(), "n=%d", n)
		assert.Equal(t, d, o.FirstDivisor(), "n=%d", n)
		assert.Zero(t, n%o.FirstDivisor(), "n=%d", n)
	}
}

func TestWorker_Run_NoProgressForSmallNumbers(t *testing.T) {
	t.Parallel()

	w := NewWorker(BoundNaive)
	called := false
	for _, n := range []int64{-1, 0, 1} {
		w.Run(n, func() bool { called = true; return false }, func(int, int64) { called = true })
	}

	assert.False(t, called)
}

func TestWorker_Run_Progress(t *testing.T) {
	t.Parallel()

	t.Run("소수는 100%까지 단조 증가한다", func(t *testing.T) {
		var percents []int
		var divisors []int64
		NewWorker(BoundSqrt).Run(7919, nil, func(p int, d int64) {
			percents = append(percents, p)
			divisors = append(divisors, d)
		})

		// floor(sqrt(7919)) = 88
		require.Len(t, divisors, 87)
		assert.Equal(t, int64(2), divisors[0])
		assert.Equal(t, int64(88), divisors[len(divisors)-1])
		assert.Equal(t, 100, percents[len(percents)-1])
		for i := 1; i < len(percents); i++ {
			assert.GreaterOrEqual(t, percents[i], percents[i-1])
		}
	})

	t.Run("약수를 찾은 제수에서는 진행 상태를 보고하지 않는다", func(t *testing.T) {
		var divisors []int64
		o := NewWorker(BoundNaive).Run(35, nil, func(_ int, d int64) {
			divisors = append(divisors, d)
		})

		assert.Equal(t, int64(5), o.FirstDivisor())
		assert.Equal(t, []int64{2, 3, 4}, divisors)
	})

	t.Run("naive 상한의 진행률", func(t *testing.T) {
		var percents []int
		NewWorker(BoundNaive).Run(11, nil, func(p int, _ int64) {
			percents = append(percents, p)
		})

		// round(100*d/10), d=2..10
		assert.Equal(t, []int{20, 30, 40, 50, 60, 70, 80, 90, 100}, percents)
	})
}

func TestWorker_Run_Cancel(t *testing.T) {
	t.Parallel()

	t.Run("시작 전 취소", func(t *testing.T) {
		progressCalls := 0
		o := NewWorker(BoundNaive).Run(7919, func() bool { return true }, func(int, int64) { progressCalls++ })

		assert.True(t, o.IsCancelled())
		assert.Zero(t, progressCalls)
	})

	t.Run("진행 중 취소하면 이후 제수를 시험하지 않는다", func(t *testing.T) {
		polls := 0
		var last int64
		o := NewWorker(BoundNaive).Run(7919, func() bool {
			polls++
			return polls > 10
		}, func(_ int, d int64) { last = d })

		assert.True(t, o.IsCancelled())
		assert.Equal(t, 11, polls)
		assert.Equal(t, int64(11), last)
	})
}

func TestWorker_UpperBound(t *testing.T) {
	t.Parallel()

	sqrtWorker := NewWorker(BoundSqrt)
	naiveWorker := NewWorker(BoundNaive)

	assert.Equal(t, int64(0), sqrtWorker.UpperBound(1))
	assert.Equal(t, int64(1), sqrtWorker.UpperBound(2))
	assert.Equal(t, int64(10), sqrtWorker.UpperBound(100))
	assert.Equal(t, int64(10), sqrtWorker.UpperBound(120))
	assert.Equal(t, int64(99), naiveWorker.UpperBound(100))
}

func TestIsqrt(t *testing.T) {
	t.Parallel()

	values := []int64{1, 2, 3, 4, 15, 16, 17, 99, 100, 101, 1 << 52, (1 << 52) + 1, math.MaxInt64 - 1, math.MaxInt64}
	for i := int64(3037000480); i <= 3037000499; i++ {
		values = append(values, i*i-1, i*i, i*i+1)
	}

	for _, n := range values {
		if n <= 0 {
			continue
		}
		r := isqrt(n)
		assert.LessOrEqual(t, r, n/r, "n=%d r=%d", n, r)
		assert.Greater(t, r+1, n/(r+1), "n=%d r=%d", n, r)
	}
}

func TestPercentOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100, percentOf(5, 0))
	assert.Equal(t, 50, percentOf(1, 2))
	assert.Equal(t, 33, percentOf(1, 3))
	assert.Equal(t, 67, percentOf(2, 3))
	assert.Equal(t, 100, percentOf(math.MaxInt64, math.MaxInt64))
}

func TestParseDivisorBound(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]DivisorBound{"": BoundSqrt, "sqrt": BoundSqrt, " NAIVE ": BoundNaive} {
		got, err := ParseDivisorBound(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseDivisorBound("cube")
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
}
