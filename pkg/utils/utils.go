package utils

import (
	"log"
	"strconv"
)

// GoSafe runs the given function in a new goroutine and recovers from any panic.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[Panic Recovered] %v", r)
			}
		}()
		fn()
	}()
}

func ToPointer[T any](value T) *T {
	return &value
}

// FormatPrice renders a price without trailing zeros (4317, 4317.5, 4317.25).
func FormatPrice(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
