package helpers

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
)

// MockMediator is a test double for the Mediator interface. Responses are
// canned per request type.
type MockMediator struct {
	mu        sync.Mutex
	responses map[reflect.Type]mediator.Response
	errors    map[reflect.Type]error
	callLog   []string // Track which requests were sent
}

// NewMockMediator creates a new MockMediator
func NewMockMediator() *MockMediator {
	return &MockMediator{
		responses: make(map[reflect.Type]mediator.Response),
		errors:    make(map[reflect.Type]error),
	}
}

// Respond sets the response for requests of the same type as request
func (m *MockMediator) Respond(request mediator.Request, response mediator.Response, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := reflect.TypeOf(request)
	m.responses[t] = response
	if err != nil {
		m.errors[t] = err
	} else {
		delete(m.errors, t)
	}
}

// Send implements the Mediator interface
func (m *MockMediator) Send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := reflect.TypeOf(request)
	m.callLog = append(m.callLog, t.String())
	if err, ok := m.errors[t]; ok {
		return m.responses[t], err
	}
	response, ok := m.responses[t]
	if !ok {
		return nil, fmt.Errorf("unsupported request type: %T", request)
	}
	return response, nil
}

// GetCallLog returns the request types sent so far
func (m *MockMediator) GetCallLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.callLog...)
}

// Register implements the Mediator interface (no-op for tests)
func (m *MockMediator) Register(requestType reflect.Type, handler mediator.RequestHandler) error {
	return nil
}

// Use implements the Mediator interface (no-op for tests)
func (m *MockMediator) Use(middleware mediator.Middleware) {}

var _ mediator.Mediator = (*MockMediator)(nil)
