package time

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExecute(t *testing.T) {
	var count int64
	stop := make(chan struct{})
	done := make(chan struct{})

	Execute(stop, "test", 5*time.Millisecond, func() error {
		if atomic.AddInt64(&count, 1)%2 == 0 {
			return errors.New("every other call fails")
		}
		return nil
	}, func() {
		close(done)
	})

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&count) >= 3
	}, time.Second, time.Millisecond)

	close(stop)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("shutdown hook not called")
	}
}

func TestMilli(t *testing.T) {
	now := time.UnixMilli(1614600000123)
	assert.Equal(t, int64(1614600000123), ToMilli(now))
	assert.True(t, now.Equal(FromMilli(ToMilli(now))))
}
