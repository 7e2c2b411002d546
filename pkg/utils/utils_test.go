package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "4317", FormatPrice(4317))
	assert.Equal(t, "4317.5", FormatPrice(4317.5))
	assert.Equal(t, "4317.25", FormatPrice(4317.25))
}

func TestToPointer(t *testing.T) {
	p := ToPointer("x")
	assert.Equal(t, "x", *p)
}

func TestGoSafe_RecoversFromPanic(t *testing.T) {
	done := make(chan struct{})
	GoSafe(func() {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("GoSafe goroutine did not run")
	}
}
