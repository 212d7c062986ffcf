// Package workers runs cipher invocations off the caller's goroutine so a
// slow external process or remote call never blocks the surface that
// triggered it.
package workers

import (
	"context"
	"sync"

	"scriptum/internal/logger"
	"scriptum/internal/service"
	"scriptum/models"
)

// Outcome is the terminal state of one background invocation.
type Outcome struct {
	Result models.CipherResult
	Err    error
}

// InvocationJob runs a single cipher request in the background. Start
// launches the request; the Outcome arrives on Results. Starting a new
// request cancels and waits out the previous one, so at most one invocation
// is in flight per job.
type InvocationJob interface {
	Start(ctx context.Context, op models.Operation, req models.CipherRequest)
	Stop()
	Results() <-chan Outcome
}

type invocationJob struct {
	cipherService service.CipherService
	results       chan Outcome

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewInvocationJob creates an InvocationJob backed by cipherService. The job
// is idle until Start is called.
func NewInvocationJob(cipherService service.CipherService) InvocationJob {
	return &invocationJob{
		cipherService: cipherService,
		// Buffered so a finished invocation never blocks waiting for the
		// consumer, even if Stop races with delivery.
		results: make(chan Outcome, 1),
	}
}

// Start implements InvocationJob. It stops any previously running invocation,
// then launches a background goroutine that executes the request and delivers
// its Outcome on Results. The goroutine exits when the request finishes or
// ctx is cancelled.
func (j *invocationJob) Start(ctx context.Context, op models.Operation, req models.CipherRequest) {
	j.Stop()

	// A replaced invocation may have parked its outcome in the buffer in
	// the window between the cancel and its send. Stop has already joined
	// that goroutine, so draining here cannot race with a live sender, and
	// the stale outcome can never be mistaken for this invocation's result.
	select {
	case <-j.results:
	default:
	}

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		log := logger.FromContext(jobCtx)

		var out Outcome
		if op == models.OperationEncrypt {
			out.Result, out.Err = j.cipherService.Encrypt(jobCtx, req)
		} else {
			out.Result, out.Err = j.cipherService.Decrypt(jobCtx, req)
		}
		log.Debug().Str("operation", op.String()).Err(out.Err).
			Msg("cipher invocation finished")

		select {
		case j.results <- out:
		case <-jobCtx.Done():
		}
	}()
}

// Stop implements InvocationJob. It cancels the in-flight invocation's context
// and blocks until its goroutine has fully exited. Safe to call when the job
// is not running (no-op in that case).
func (j *invocationJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// Results returns the channel on which finished invocations deliver their
// Outcome. The channel is never closed; one Outcome arrives per completed
// Start.
func (j *invocationJob) Results() <-chan Outcome {
	return j.results
}
