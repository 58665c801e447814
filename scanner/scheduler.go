package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"cyberx/logging"

	"go.uber.org/ratelimit"
)

// Scanner runs a request's tasks through a fixed-size worker pool.
type Scanner struct {
	prober  Prober
	limiter ratelimit.Limiter
	logger  *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithProber replaces the socket prober.
func WithProber(p Prober) Option {
	return func(s *Scanner) {
		s.prober = p
	}
}

// WithRateLimit caps the number of probes started per second across all
// workers. Zero or a negative value disables pacing.
func WithRateLimit(perSecond int) Option {
	return func(s *Scanner) {
		if perSecond <= 0 {
			s.limiter = ratelimit.NewUnlimited()
			return
		}
		s.limiter = ratelimit.New(perSecond)
	}
}

// WithLogger sets the logger used for task-level failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// New creates a Scanner probing through the host network stack.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		prober:  NewNetProber(),
		limiter: ratelimit.NewUnlimited(),
		logger:  logging.Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan probes every requested port over every enabled protocol and returns
// one result per task, sorted by port then protocol. If ctx ends before the
// scan completes no results are returned.
func Scan(ctx context.Context, req Request) ([]ScanResult, error) {
	return New().Scan(ctx, req)
}

// Scan is the scan orchestrator.
// It manages workers, distributes tasks, and collects results.
func (s *Scanner) Scan(ctx context.Context, req Request) ([]ScanResult, error) {
	if strings.TrimSpace(req.Target) == "" {
		return nil, ErrNoTarget
	}

	req = req.Normalize()
	tasks := req.Tasks()
	if len(tasks) == 0 {
		return []ScanResult{}, nil
	}

	workerCount := min(req.Concurrency, len(tasks))
	jobs := make(chan ScanTask)
	// Buffered to the task count so workers never block on delivery.
	results := make(chan ScanResult, len(tasks))

	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(ctx, req, jobs, results)
		}()
	}

	go func() {
		defer close(jobs)
		for _, task := range tasks {
			select {
			case <-ctx.Done():
				return
			case jobs <- task:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	scanResults := make([]ScanResult, 0, len(tasks))
	for result := range results {
		scanResults = append(scanResults, result)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan of %s aborted after %d/%d probes: %w", req.Target, len(scanResults), len(tasks), err)
	}

	SortResults(scanResults)
	return scanResults, nil
}

func (s *Scanner) worker(ctx context.Context, req Request, jobs <-chan ScanTask, results chan<- ScanResult) {
	for task := range jobs {
		if ctx.Err() != nil {
			continue
		}
		// Take cannot be interrupted, so check again once the slot arrives.
		s.limiter.Take()
		if ctx.Err() != nil {
			continue
		}
		results <- s.runTask(ctx, req, task)
	}
}

// runTask invokes the prober for one task. A panicking prober still yields a
// filtered result for its task.
func (s *Scanner) runTask(ctx context.Context, req Request, task ScanTask) (result ScanResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("probe panicked",
				"target", req.Target,
				"port", task.Port,
				"protocol", task.Protocol,
				"panic", r,
			)
			result = ScanResult{
				Port:     task.Port,
				Protocol: task.Protocol,
				State:    StateFiltered,
				Reason:   panicReason(r),
			}
		}
	}()

	switch task.Protocol {
	case ProtocolUDP:
		result = s.prober.ProbeUDP(ctx, req.Target, task.Port, req.Timeout, req.Retries)
	default:
		result = s.prober.ProbeTCP(ctx, req.Target, task.Port, req.Timeout)
	}

	result.Port = task.Port
	result.Protocol = task.Protocol
	return result
}

func panicReason(r any) string {
	var reason string
	switch v := r.(type) {
	case error:
		reason = v.Error()
	case string:
		reason = v
	default:
		reason = fmt.Sprint(v)
	}
	if reason == "" {
		return "error"
	}
	return reason
}

// SortResults orders results by port, then protocol name.
func SortResults(results []ScanResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Port != results[j].Port {
			return results[i].Port < results[j].Port
		}
		return results[i].Protocol < results[j].Protocol
	})
}
