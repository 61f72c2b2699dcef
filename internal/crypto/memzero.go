package crypto

import (
	"runtime"

	"forgeauth/internal/domain"
)

// Wipe zeroes the provided buffer. This is best-effort and aims to
// reduce the chance of the compiler eliding the write.
//
//go:noinline
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}

// WipeSeed zeroes a seed in place.
func WipeSeed(s *domain.Seed) {
	if s == nil {
		return
	}
	Wipe(s[:])
}
