package operator

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/ledger-server/internal/storage"
)

var errNoDatabase = errors.New("no database in tests")

// failingWriteStorage refuses to open a writer, so items travel the full
// queue round trip without ever touching a transaction.
type failingWriteStorage struct{}

func (failingWriteStorage) Write(context.Context) (*storage.Writer, error) {
	return nil, errNoDatabase
}

type noopAction struct{}

func (noopAction) Perform(context.Context, *storage.Writer) error { return nil }

func TestProcess_DeliversWorkerResult(t *testing.T) {
	delegator := NewOperatorDelegator(failingWriteStorage{}, 2)
	delegator.Start()
	defer delegator.Stop()

	err := delegator.Process(context.Background(), noopAction{})

	assert.ErrorIs(t, err, errNoDatabase)
}

func TestProcess_AfterStopReturnsError(t *testing.T) {
	delegator := NewOperatorDelegator(failingWriteStorage{}, 2)
	delegator.Start()
	delegator.Stop()

	err := delegator.Process(context.Background(), noopAction{})

	assert.ErrorIs(t, err, ErrStopped)
}

func TestProcess_CanceledContext(t *testing.T) {
	delegator := NewOperatorDelegator(failingWriteStorage{}, 1)
	// No workers started; a canceled context must still unblock the caller.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := delegator.Process(ctx, noopAction{})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestStop_Idempotent(t *testing.T) {
	delegator := NewOperatorDelegator(failingWriteStorage{}, 1)
	delegator.Start()

	delegator.Stop()
	delegator.Stop()
}

func TestProcess_ConcurrentWithStop(t *testing.T) {
	delegator := NewOperatorDelegator(failingWriteStorage{}, 2)
	delegator.Start()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := delegator.Process(context.Background(), noopAction{})
			if !errors.Is(err, ErrStopped) && !errors.Is(err, errNoDatabase) {
				t.Errorf("unexpected Process result: %v", err)
			}
		}()
	}
	delegator.Stop()
	wg.Wait()
}
