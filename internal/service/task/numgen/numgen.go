// Package numgen 소수 판별 작업에 사용할 임의의 정수를 생성합니다.
package numgen

import (
	"math/rand/v2"
	"sync"
	"time"

	apperrors "github.com/darkkaiser/prime-calculator/internal/pkg/errors"
)

// DefaultMaxNumber 생성되는 정수의 기본 상한(미포함)입니다.
const DefaultMaxNumber int64 = 200000

// Generator [0, max) 범위의 정수를 생성합니다. 여러 고루틴에서 동시에 사용할 수 있습니다.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	max int64
}

// New 주입된 source로 Generator를 생성합니다. max는 2 이상이어야 합니다.
func New(src rand.Source, max int64) (*Generator, error) {
	if src == nil {
		return nil, apperrors.New(apperrors.InvalidInput, "난수 source가 nil입니다")
	}
	if max < 2 {
		return nil, apperrors.Newf(apperrors.InvalidInput, "생성 상한은 2 이상이어야 합니다 (입력값: %d)", max)
	}

	return &Generator{
		rnd: rand.New(src),
		max: max,
	}, nil
}

// NewSeeded seed로 초기화한 PCG source를 사용합니다. seed가 0이면 현재 시각을 사용합니다.
func NewSeeded(seed uint64, max int64) (*Generator, error) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15), max)
}

// Next [0, max) 범위의 정수를 반환합니다.
func (g *Generator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.rnd.Int64N(g.max)
}
