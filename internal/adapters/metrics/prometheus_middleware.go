package metrics

import (
	"context"
	"reflect"
	"time"

	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
)

// PrometheusMiddleware times every request passing through the mediator and
// counts it by outcome. A nil collector turns it into a pass-through.
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordCommandExecution(requestName(request), time.Since(start).Seconds(), err)
		return response, err
	}
}

// requestName is the bare type name: *commands.ImportUnitCommand gives ImportUnitCommand
func requestName(request mediator.Request) string {
	if request == nil {
		return "Unknown"
	}
	t := reflect.TypeOf(request)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
