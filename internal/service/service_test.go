package service

import (
	"context"
	"errors"
	"sync"

	"github.com/abgdnv/catalog/pkg/messaging"
	"github.com/stretchr/testify/mock"
)

// mockPublisher is a mock implementation of the messaging.Publisher interface
type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event messaging.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type operation struct {
	collection string
	name       string
	err        error
}

// fakeRecorder remembers every observation it receives
type fakeRecorder struct {
	mu      sync.Mutex
	ops     []operation
	records map[string]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{records: make(map[string]int)}
}

func (r *fakeRecorder) ObserveOperation(collection, name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, operation{collection: collection, name: name, err: err})
}

func (r *fakeRecorder) SetRecords(collection string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[collection] = n
}

func (r *fakeRecorder) last() operation {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ops) == 0 {
		return operation{}
	}
	return r.ops[len(r.ops)-1]
}

var errPublish = errors.New("broker unavailable")

func ptr[T any](v T) *T {
	return &v
}

func canceledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

