package mediator_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
)

type pingQuery struct{ Name string }

type pingHandler struct{}

func (pingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	return "pong " + request.(*pingQuery).Name, nil
}

func TestMediator_SendDispatchesByType(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	// Act
	response, err := m.Send(context.Background(), &pingQuery{Name: "atlas"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pong atlas", response)
}

func TestMediator_RegisterRejectsDuplicatesAndNil(t *testing.T) {
	m := mediator.NewMediator()
	typ := reflect.TypeOf(&pingQuery{})

	require.NoError(t, m.Register(typ, pingHandler{}))
	assert.ErrorContains(t, m.Register(typ, pingHandler{}), "already registered")
	assert.Error(t, m.Register(nil, pingHandler{}))
	assert.Error(t, m.Register(reflect.TypeOf(1), nil))
}

func TestMediator_SendUnknownOrNil(t *testing.T) {
	m := mediator.NewMediator()

	_, err := m.Send(context.Background(), &pingQuery{})
	assert.ErrorContains(t, err, "no handler registered")

	_, err = m.Send(context.Background(), nil)
	assert.Error(t, err)
}

func TestMediator_MiddlewaresRunOutermostFirst(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))
	var order []string
	trace := func(name string) mediator.Middleware {
		return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			order = append(order, name+" in")
			response, err := next(ctx, request)
			order = append(order, name+" out")
			return response, err
		}
	}
	m.Use(trace("outer"))
	m.Use(trace("inner"))
	m.Use(nil)

	// Act
	_, err := m.Send(context.Background(), &pingQuery{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"outer in", "inner in", "inner out", "outer out"}, order)
}

func TestMediator_PlainFunctionsCanHandleRequests(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	count := mediator.HandlerFunc(func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return len(request.(*pingQuery).Name), nil
	})
	require.NoError(t, m.Register(reflect.TypeOf(&pingQuery{}), count))

	// Act
	response, err := m.Send(context.Background(), &pingQuery{Name: "Hunchback"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 9, response)
}
