package jobs

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShutdownWaitsForAsyncJobs(t *testing.T) {
	w := NewWorker(1)

	var completed int32
	for i := 0; i < 20; i++ {
		w.EnqueueAsync(func(ctx context.Context) error {
			atomic.AddInt32(&completed, 1)
			return nil
		})
	}

	// Every enqueued job is registered with the wait group before its
	// goroutine starts, so Shutdown must not return until all have run.
	w.Shutdown()
	assert.Equal(t, int32(20), atomic.LoadInt32(&completed))
}
