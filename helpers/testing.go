package helpers

import (
	"math/rand"
	"time"
)

func RandUnix() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// RandPayload is random bytes of random length in [0, maxLen).
func RandPayload(r *rand.Rand, maxLen int) []byte {
	b := make([]byte, r.Intn(maxLen))
	_, _ = r.Read(b)
	return b
}
