// Package prime 시행 나눗셈(trial division)으로 소수를 판별하는 계산기를 제공합니다.
package prime

import (
	"math"
	"strings"

	apperrors "github.com/darkkaiser/prime-calculator/internal/pkg/errors"
	"github.com/darkkaiser/prime-calculator/internal/service/contract"
)

// DivisorBound 시행 나눗셈의 상한을 결정하는 방식입니다.
type DivisorBound int

const (
	// BoundSqrt floor(sqrt(n))까지만 나누어 봅니다.
	BoundSqrt DivisorBound = iota

	// BoundNaive n-1까지 모두 나누어 봅니다.
	BoundNaive
)

func (b DivisorBound) String() string {
	switch b {
	case BoundSqrt:
		return "sqrt"
	case BoundNaive:
		return "naive"
	default:
		return "unknown"
	}
}

// ParseDivisorBound 설정 문자열("sqrt", "naive")을 DivisorBound로 변환합니다. 빈 문자열은 BoundSqrt입니다.
func ParseDivisorBound(s string) (DivisorBound, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sqrt":
		return BoundSqrt, nil
	case "naive":
		return BoundNaive, nil
	default:
		return 0, apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 제수 상한 방식입니다: %q", s)
	}
}

// Worker 단일 정수의 소수 여부를 판별합니다. 상태를 갖지 않으므로 여러 고루틴에서 동시에 사용할 수 있습니다.
type Worker struct {
	bound DivisorBound
}

// NewWorker 주어진 상한 방식을 사용하는 Worker를 생성합니다.
func NewWorker(bound DivisorBound) *Worker {
	return &Worker{bound: bound}
}

// UpperBound n에 대해 시험할 가장 큰 제수를 반환합니다. n <= 1이면 0입니다.
func (w *Worker) UpperBound(n int64) int64 {
	if n <= 1 {
		return 0
	}
	if w.bound == BoundNaive {
		return n - 1
	}
	return isqrt(n)
}

// Run n의 소수 여부를 판별합니다.
//
// 제수 d를 2부터 오름차순으로 시험하며, 매 제수마다 다음 순서를 따릅니다.
//  1. cancelPoll()이 true이면 즉시 취소 Outcome을 반환합니다.
//  2. d가 n을 나누어 떨어뜨리면 {n, false, d}를 반환합니다.
//  3. 그렇지 않으면 onProgress(round(100*d/upper), d)를 호출합니다.
//
// 모든 제수를 시험하면 {n, true, n}을 반환합니다. n <= 1은 {n, false, n}이며 진행 상태를 보고하지 않습니다.
// cancelPoll과 onProgress는 nil일 수 있습니다.
func (w *Worker) Run(n int64, cancelPoll func() bool, onProgress func(percent int, divisor int64)) contract.Outcome {
	if n <= 1 {
		return contract.NewSucceededOutcome(n, false, n)
	}

	upper := w.UpperBound(n)
	for d := int64(2); d <= upper; d++ {
		if cancelPoll != nil && cancelPoll() {
			return contract.NewCancelledOutcome()
		}

		if n%d == 0 {
			return contract.NewSucceededOutcome(n, false, d)
		}

		if onProgress != nil {
			onProgress(percentOf(d, upper), d)
		}
	}

	return contract.NewSucceededOutcome(n, true, n)
}

// percentOf 100*d/upper를 반올림하여 반환합니다. 큰 n에서 100*d가 넘치지 않도록 실수로 계산합니다.
func percentOf(d, upper int64) int {
	if upper <= 0 {
		return 100
	}
	p := int(math.Round(100 * float64(d) / float64(upper)))
	return min(max(p, 0), 100)
}

// isqrt floor(sqrt(n))을 반환합니다. float64 정밀도 오차를 정수 연산으로 보정합니다.
func isqrt(n int64) int64 {
	r := int64(math.Sqrt(float64(n)))
	for r > 0 && r > n/r {
		r--
	}
	for r+1 <= n/(r+1) {
		r++
	}
	return r
}
