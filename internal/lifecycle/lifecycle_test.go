package lifecycle

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// blockingService runs until stopped, or returns result at once when set.
type blockingService struct {
	started atomic.Bool
	stopped atomic.Bool
	once    sync.Once
	stop    chan struct{}
	result  error
	returns bool
}

func newBlockingService() *blockingService {
	return &blockingService{stop: make(chan struct{})}
}

func (m *blockingService) Start() error {
	m.started.Store(true)
	if m.returns {
		return m.result
	}
	<-m.stop
	return nil
}

func (m *blockingService) Stop() {
	m.stopped.Store(true)
	m.once.Do(func() { close(m.stop) })
}

func runAsync(ctx context.Context, lc *Lifecycle) <-chan error {
	done := make(chan error, 1)
	go func() { done <- lc.Run(ctx) }()
	return done
}

func waitResult(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not shut down in time")
		return nil
	}
}

func TestLifecycle_CancelStopsServices(t *testing.T) {
	lc := New(zaptest.NewLogger(t))
	svc1, svc2 := newBlockingService(), newBlockingService()
	lc.Add("svc1", svc1)
	lc.Add("svc2", svc2)

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, lc)

	require.Eventually(t, func() bool {
		return svc1.started.Load() && svc2.started.Load()
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, waitResult(t, done))
	assert.True(t, svc1.stopped.Load())
	assert.True(t, svc2.stopped.Load())
}

func TestLifecycle_ServiceExitStopsOthers(t *testing.T) {
	lc := New(zaptest.NewLogger(t))
	other := newBlockingService()
	quitter := newBlockingService()
	quitter.returns = true
	quitter.result = errors.New("boom")
	lc.Add("other", other)
	lc.Add("quitter", quitter)

	err := waitResult(t, runAsync(context.Background(), lc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service quitter: boom")
	assert.True(t, other.stopped.Load())
}

func TestLifecycle_CleanExitReturnsNil(t *testing.T) {
	lc := New(zaptest.NewLogger(t))
	svc := newBlockingService()
	svc.returns = true
	lc.Add("svc", svc)

	assert.NoError(t, waitResult(t, runAsync(context.Background(), lc)))
	assert.True(t, svc.stopped.Load(), "Stop is called even after Start returned")
}

func TestFuncService(t *testing.T) {
	started := false
	stopped := false

	svc := &FuncService{
		StartFn: func() error {
			started = true
			return nil
		},
		StopFn: func() {
			stopped = true
		},
	}

	err := svc.Start()
	assert.NoError(t, err)
	assert.True(t, started)

	svc.Stop()
	assert.True(t, stopped)
}
