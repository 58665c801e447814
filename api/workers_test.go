package api

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cyberx/scanner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func pendingTask() *ScanTask {
	return &ScanTask{
		ID:     testTaskID,
		Status: StatusPending,
		Request: ScanSettings{
			Target: "127.0.0.1", Ports: "80,22", TCP: true,
			TimeoutMs: 1200, Concurrency: 200, Retries: 2,
		},
		CreatedAt: time.Now().UTC(),
	}
}

func newTestPool(store TaskStore, prober scanner.Prober, deadline time.Duration) *WorkerPool {
	return &WorkerPool{
		store:    store,
		scanner:  scanner.New(scanner.WithProber(prober), scanner.WithLogger(discardLogger())),
		deadline: deadline,
		logger:   discardLogger(),
	}
}

// statusRecorder captures the task status at every UpdateTask call.
type statusRecorder struct {
	mu       sync.Mutex
	statuses []string
	last     ScanTask
}

func (r *statusRecorder) record(_ context.Context, task *ScanTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, task.Status)
	r.last = *task
	return nil
}

func (r *statusRecorder) snapshot() ([]string, ScanTask) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.statuses...), r.last
}

func TestWorkerPool_ProcessCompletes(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockTaskStore(ctrl)
	prober := scanner.NewMockProber(ctrl)

	rec := &statusRecorder{}
	store.EXPECT().GetTask(gomock.Any(), testTaskID).Return(pendingTask(), nil)
	store.EXPECT().UpdateTask(gomock.Any(), gomock.Any()).DoAndReturn(rec.record).Times(2)
	prober.EXPECT().
		ProbeTCP(gomock.Any(), "127.0.0.1", gomock.Any(), scanner.DefaultTimeout).
		DoAndReturn(func(_ context.Context, _ string, port int, _ time.Duration) scanner.ScanResult {
			if port == 22 {
				return scanner.ScanResult{State: scanner.StateClosed, Reason: "rst/econnrefused"}
			}
			return openResult()
		}).
		Times(2)

	newTestPool(store, prober, time.Second).process(context.Background(), testTaskID)

	statuses, last := rec.snapshot()
	assert.Equal(t, []string{StatusRunning, StatusCompleted}, statuses)
	assert.Equal(t, 2, last.Count)
	require.Len(t, last.Results, 2)
	assert.Equal(t, 22, last.Results[0].Port)
	assert.Equal(t, scanner.StateClosed, last.Results[0].State)
	assert.Equal(t, 80, last.Results[1].Port)
	assert.Equal(t, scanner.StateOpen, last.Results[1].State)
	assert.NotNil(t, last.CompletedAt)
	assert.Empty(t, last.Error)
}

func TestWorkerPool_ProcessMissingTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockTaskStore(ctrl)
	store.EXPECT().GetTask(gomock.Any(), testTaskID).Return(nil, ErrTaskNotFound)

	newTestPool(store, scanner.NewMockProber(ctrl), time.Second).process(context.Background(), testTaskID)
}

func TestWorkerPool_ProcessDeadline(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockTaskStore(ctrl)
	prober := scanner.NewMockProber(ctrl)

	rec := &statusRecorder{}
	store.EXPECT().GetTask(gomock.Any(), testTaskID).Return(pendingTask(), nil)
	store.EXPECT().UpdateTask(gomock.Any(), gomock.Any()).DoAndReturn(rec.record).Times(2)
	prober.EXPECT().
		ProbeTCP(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ int, _ time.Duration) scanner.ScanResult {
			<-ctx.Done()
			return scanner.ScanResult{State: scanner.StateFiltered, Reason: "canceled"}
		}).
		AnyTimes()

	newTestPool(store, prober, 30*time.Millisecond).process(context.Background(), testTaskID)

	statuses, last := rec.snapshot()
	assert.Equal(t, []string{StatusRunning, StatusFailed}, statuses)
	assert.Contains(t, last.Error, context.DeadlineExceeded.Error())
	assert.Nil(t, last.Results)
	assert.Zero(t, last.Count)
	assert.NotNil(t, last.CompletedAt)
}

func TestWorkerPool_ProcessUpdateFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockTaskStore(ctrl)
	store.EXPECT().GetTask(gomock.Any(), testTaskID).Return(pendingTask(), nil)
	store.EXPECT().UpdateTask(gomock.Any(), gomock.Any()).Return(errors.New("READONLY"))

	// No probe may run when the running state was not persisted.
	newTestPool(store, scanner.NewMockProber(ctrl), time.Second).process(context.Background(), testTaskID)
}

func TestStartWorkers_ConsumesQueueUntilCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockTaskStore(ctrl)
	prober := scanner.NewMockProber(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := make(chan string, 1)
	queue <- testTaskID
	store.EXPECT().
		PopFromQueue(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (string, error) {
			select {
			case id := <-queue:
				return id, nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}).
		AnyTimes()

	done := make(chan struct{})
	rec := &statusRecorder{}
	store.EXPECT().GetTask(gomock.Any(), testTaskID).Return(pendingTask(), nil)
	store.EXPECT().
		UpdateTask(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, task *ScanTask) error {
			err := rec.record(ctx, task)
			if task.Status == StatusCompleted {
				close(done)
			}
			return err
		}).
		Times(2)
	prober.EXPECT().
		ProbeTCP(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(openResult()).
		Times(2)

	pool := StartWorkers(ctx, store, scanner.New(scanner.WithProber(prober)), 3, time.Second)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("task was not processed")
	}

	cancel()
	waited := make(chan struct{})
	go func() {
		pool.Wait()
		close(waited)
	}()
	select {
	case <-waited:
	case <-time.After(5 * time.Second):
		t.Fatal("workers did not stop after cancel")
	}

	statuses, _ := rec.snapshot()
	assert.Equal(t, []string{StatusRunning, StatusCompleted}, statuses)
}
