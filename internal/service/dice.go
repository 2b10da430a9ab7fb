package service

import (
	"math/rand/v2"
	"time"
)

// Roller - источник случайности для боя, добычи и отдыха.
// *rand.Rand из math/rand/v2 удовлетворяет этому интерфейсу; в тестах подставляется заглушка.
type Roller interface {
	IntN(n int) int
	Float64() float64
}

// NewRoller создает генератор. seed == 0 означает посев от текущего времени.
func NewRoller(seed int64) Roller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// rollRange возвращает равномерное целое из [lo, hi].
func rollRange(r Roller, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}
