package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scriptum/models"
)

// blockableService lets tests control how long an invocation takes and what
// it returns. The mutex keeps field updates between two Starts race-free.
type blockableService struct {
	mu     sync.Mutex
	delay  time.Duration
	result models.CipherResult
	err    error

	calls chan models.Operation
}

func newBlockableService() *blockableService {
	return &blockableService{calls: make(chan models.Operation, 8)}
}

func (s *blockableService) set(delay time.Duration, result models.CipherResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = delay
	s.result = result
	s.err = err
}

func (s *blockableService) Encrypt(ctx context.Context, req models.CipherRequest) (models.CipherResult, error) {
	return s.process(ctx, models.OperationEncrypt)
}

func (s *blockableService) Decrypt(ctx context.Context, req models.CipherRequest) (models.CipherResult, error) {
	return s.process(ctx, models.OperationDecrypt)
}

func (s *blockableService) process(ctx context.Context, op models.Operation) (models.CipherResult, error) {
	s.mu.Lock()
	delay, result, err := s.delay, s.result, s.err
	s.mu.Unlock()

	s.calls <- op
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return models.CipherResult{}, ctx.Err()
		}
	}
	return result, err
}

func TestInvocationJob_DeliversResult(t *testing.T) {
	svc := newBlockableService()
	svc.set(0, models.CipherResult{Output: "ciphered"}, nil)

	job := NewInvocationJob(svc)
	defer job.Stop()

	job.Start(context.Background(), models.OperationEncrypt, models.CipherRequest{
		Algorithm: models.AlgorithmAES,
		Text:      "hello",
	})

	select {
	case out := <-job.Results():
		require.NoError(t, out.Err)
		assert.Equal(t, "ciphered", out.Result.Output)
	case <-time.After(3 * time.Second):
		t.Fatal("no outcome delivered")
	}

	assert.Equal(t, models.OperationEncrypt, <-svc.calls)
}

func TestInvocationJob_DeliversError(t *testing.T) {
	svc := newBlockableService()
	svc.set(0, models.CipherResult{}, errors.New("bad key"))

	job := NewInvocationJob(svc)
	defer job.Stop()

	job.Start(context.Background(), models.OperationDecrypt, models.CipherRequest{})

	select {
	case out := <-job.Results():
		assert.EqualError(t, out.Err, "bad key")
	case <-time.After(3 * time.Second):
		t.Fatal("no outcome delivered")
	}

	assert.Equal(t, models.OperationDecrypt, <-svc.calls)
}

func TestInvocationJob_StopCancelsInFlight(t *testing.T) {
	svc := newBlockableService()
	svc.set(10*time.Second, models.CipherResult{}, nil)

	job := NewInvocationJob(svc)
	job.Start(context.Background(), models.OperationEncrypt, models.CipherRequest{})

	// Wait until the invocation is actually running before stopping it.
	<-svc.calls

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Stop did not return after cancelling the invocation")
	}
}

func TestInvocationJob_StartReplacesPrevious(t *testing.T) {
	svc := newBlockableService()
	svc.set(10*time.Second, models.CipherResult{}, nil)

	job := NewInvocationJob(svc)
	defer job.Stop()

	job.Start(context.Background(), models.OperationEncrypt, models.CipherRequest{})
	<-svc.calls

	// The second Start cancels the first invocation and runs its own.
	svc.set(0, models.CipherResult{Output: "second"}, nil)
	job.Start(context.Background(), models.OperationDecrypt, models.CipherRequest{})

	select {
	case out := <-job.Results():
		require.NoError(t, out.Err)
		assert.Equal(t, "second", out.Result.Output)
	case <-time.After(3 * time.Second):
		t.Fatal("no outcome delivered for the replacing invocation")
	}
}

// A replaced invocation is cancelled while it may already be parking its
// outcome; that stale outcome must never surface as the replacement's
// result. Looped because the stale delivery is a timing window.
func TestInvocationJob_ReplacementNeverYieldsStaleOutcome(t *testing.T) {
	svc := newBlockableService()
	job := NewInvocationJob(svc)
	defer job.Stop()

	for i := 0; i < 50; i++ {
		svc.set(10*time.Second, models.CipherResult{}, nil)
		job.Start(context.Background(), models.OperationEncrypt, models.CipherRequest{})
		<-svc.calls

		svc.set(0, models.CipherResult{Output: "fresh"}, nil)
		job.Start(context.Background(), models.OperationDecrypt, models.CipherRequest{})
		<-svc.calls

		select {
		case out := <-job.Results():
			require.NoError(t, out.Err, "iteration %d delivered a stale outcome", i)
			require.Equal(t, "fresh", out.Result.Output, "iteration %d", i)
		case <-time.After(3 * time.Second):
			t.Fatalf("iteration %d: no outcome delivered", i)
		}
	}
}

func TestInvocationJob_StopWhenIdleIsNoop(t *testing.T) {
	job := NewInvocationJob(newBlockableService())
	job.Stop()
	job.Stop()
}
