package api

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"cyberx/logging"
	"cyberx/scanner"
)

// WorkerPool processes queued scan tasks in the background.
type WorkerPool struct {
	store    TaskStore
	scanner  *scanner.Scanner
	deadline time.Duration
	logger   *slog.Logger
	wg       sync.WaitGroup
}

// StartWorkers launches background goroutines that process scan tasks until
// ctx is canceled. Each scan is bounded by deadline.
func StartWorkers(ctx context.Context, store TaskStore, s *scanner.Scanner, numWorkers int, deadline time.Duration) *WorkerPool {
	pool := &WorkerPool{
		store:    store,
		scanner:  s,
		deadline: deadline,
		logger:   logging.Logger(),
	}
	for i := 0; i < numWorkers; i++ {
		pool.wg.Add(1)
		go func() {
			defer pool.wg.Done()
			pool.workerLoop(ctx)
		}()
	}
	return pool
}

// Wait blocks until every worker has exited.
func (p *WorkerPool) Wait() {
	p.wg.Wait()
}

func (p *WorkerPool) workerLoop(ctx context.Context) {
	for {
		taskID, err := p.store.PopFromQueue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.logger.Error("worker failed to pop task", "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		p.process(ctx, taskID)
	}
}

func (p *WorkerPool) process(ctx context.Context, taskID string) {
	task, err := p.store.GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			p.logger.Warn("worker task disappeared", "task_id", taskID)
			return
		}
		p.logger.Error("worker failed to load task", "task_id", taskID, "error", err)
		return
	}

	task.Status = StatusRunning
	task.Error = ""
	task.Results = nil
	task.Count = 0
	task.CompletedAt = nil
	if err := p.store.UpdateTask(ctx, task); err != nil {
		p.logger.Error("worker failed to mark task running", "task_id", taskID, "error", err)
		return
	}

	scanCtx, cancel := context.WithTimeout(ctx, p.deadline)
	defer cancel()

	start := time.Now()
	results, err := p.scanner.Scan(scanCtx, task.Request.scannerRequest())
	if err != nil {
		p.failTask(ctx, task, err)
		return
	}

	task.Status = StatusCompleted
	task.Results = results
	task.Count = len(results)
	now := time.Now().UTC()
	task.CompletedAt = &now

	if err := p.store.UpdateTask(ctx, task); err != nil {
		p.logger.Error("worker failed to update task", "task_id", task.ID, "error", err)
		return
	}

	p.logger.Info("scan task completed",
		"task_id", task.ID,
		"target", task.Request.Target,
		"results", task.Count,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func (p *WorkerPool) failTask(ctx context.Context, task *ScanTask, err error) {
	p.logger.Error("worker task failed", "task_id", task.ID, "error", err)
	task.Status = StatusFailed
	task.Error = err.Error()
	task.Results = nil
	task.Count = 0
	now := time.Now().UTC()
	task.CompletedAt = &now
	// Record the failure even if shutdown canceled the scan.
	if updateErr := p.store.UpdateTask(context.WithoutCancel(ctx), task); updateErr != nil {
		p.logger.Error("worker failed to persist failed task", "task_id", task.ID, "error", updateErr)
	}
}
