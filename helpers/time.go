package helpers

import (
	"math"
	"time"
)

// SecondsDefault converts config seconds (fractions allowed) to Duration.
// Zero or negative means default.
func SecondsDefault(x float64, def time.Duration) time.Duration {
	if x <= 0 {
		return def
	}
	return time.Duration(math.Round(x * float64(time.Second)))
}

func IntSecondDefault(x int, def time.Duration) time.Duration {
	if x <= 0 {
		return def
	}
	return time.Duration(x) * time.Second
}
