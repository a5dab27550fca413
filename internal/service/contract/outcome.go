package contract

import (
	"fmt"

	apperrors "github.com/darkkaiser/prime-calculator/internal/pkg/errors"
)

// OutcomeKind Outcome의 종류입니다.
type OutcomeKind int

const (
	OutcomeUnknown OutcomeKind = iota
	OutcomeSucceeded
	OutcomeCancelled
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSucceeded:
		return "Succeeded"
	case OutcomeCancelled:
		return "Cancelled"
	case OutcomeFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// PrimeResult 성공한 소수 판별의 결과입니다.
type PrimeResult struct {
	NumberTested int64
	IsPrime      bool

	// FirstDivisor 소수이면 NumberTested 자신, 합성수이면 1보다 큰 가장 작은 약수입니다.
	FirstDivisor int64
}

// Outcome 작업 하나의 최종 결과입니다. 성공, 취소, 실패 중 정확히 하나를 나타냅니다.
//
// 결과 필드 접근자(NumberTested, IsPrime, FirstDivisor)는 성공한 Outcome에서만 호출할 수 있으며,
// 그 밖의 경우에는 panic이 발생합니다. 호출 전 상태를 알 수 없다면 Result를 사용합니다.
type Outcome struct {
	kind   OutcomeKind
	result PrimeResult
	cause  error
}

// NewSucceededOutcome 성공 Outcome을 생성합니다.
func NewSucceededOutcome(numberTested int64, isPrime bool, firstDivisor int64) Outcome {
	return Outcome{
		kind: OutcomeSucceeded,
		result: PrimeResult{
			NumberTested: numberTested,
			IsPrime:      isPrime,
			FirstDivisor: firstDivisor,
		},
	}
}

// NewCancelledOutcome 취소 Outcome을 생성합니다.
func NewCancelledOutcome() Outcome {
	return Outcome{kind: OutcomeCancelled}
}

// NewFailedOutcome 실패 Outcome을 생성합니다. cause가 nil이면 Unknown 타입의 에러로 대체합니다.
func NewFailedOutcome(cause error) Outcome {
	if cause == nil {
		cause = apperrors.New(apperrors.Unknown, "원인을 알 수 없는 작업 실패")
	}
	return Outcome{kind: OutcomeFailed, cause: cause}
}

func (o Outcome) Kind() OutcomeKind { return o.kind }

func (o Outcome) IsSucceeded() bool { return o.kind == OutcomeSucceeded }

func (o Outcome) IsCancelled() bool { return o.kind == OutcomeCancelled }

func (o Outcome) IsFailed() bool { return o.kind == OutcomeFailed }

// Cause 실패 원인을 반환합니다. 실패가 아닌 Outcome이면 nil입니다.
func (o Outcome) Cause() error {
	return o.cause
}

// FailureType 실패 원인 체인의 가장 안쪽 ErrorType을 반환합니다.
func (o Outcome) FailureType() apperrors.ErrorType {
	return apperrors.UnderlyingType(o.cause)
}

// Result 성공 결과를 반환합니다. 성공이 아니면 ErrResultUnavailable을 감싼 에러를 반환합니다.
func (o Outcome) Result() (PrimeResult, error) {
	if o.kind != OutcomeSucceeded {
		return PrimeResult{}, apperrors.Wrapf(ErrResultUnavailable, apperrors.Internal, "%s 상태의 작업은 결과를 제공하지 않습니다", o.kind)
	}
	return o.result, nil
}

func (o Outcome) NumberTested() int64 { return o.mustResult().NumberTested }

func (o Outcome) IsPrime() bool { return o.mustResult().IsPrime }

func (o Outcome) FirstDivisor() int64 { return o.mustResult().FirstDivisor }

func (o Outcome) mustResult() PrimeResult {
	r, err := o.Result()
	if err != nil {
		panic(err)
	}
	return r
}

func (o Outcome) String() string {
	switch o.kind {
	case OutcomeSucceeded:
		return fmt.Sprintf("Succeeded{number=%d, prime=%t, first_divisor=%d}", o.result.NumberTested, o.result.IsPrime, o.result.FirstDivisor)
	case OutcomeFailed:
		return fmt.Sprintf("Failed{cause=%v}", o.cause)
	default:
		return o.kind.String() + "{}"
	}
}
