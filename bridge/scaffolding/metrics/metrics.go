// Package metrics publishes request counters through expvar.
package metrics

import (
	"context"
	"expvar"
	"runtime"
)

// metrics is published once per process under the "tasmag" expvar key.
var m *metrics

type metrics struct {
	goroutines *expvar.Int
	requests   *expvar.Int
	errors     *expvar.Int
	panics     *expvar.Int
}

func init() {
	m = &metrics{
		goroutines: new(expvar.Int),
		requests:   new(expvar.Int),
		errors:     new(expvar.Int),
		panics:     new(expvar.Int),
	}

	root := expvar.NewMap("tasmag")
	root.Set("goroutines", m.goroutines)
	root.Set("requests", m.requests)
	root.Set("errors", m.errors)
	root.Set("panics", m.panics)
}

type ctxKey int

const key ctxKey = 1

// Set stores the metrics on the context.
func Set(ctx context.Context) context.Context {
	return context.WithValue(ctx, key, m)
}

// AddGoroutines records the current goroutine count.
func AddGoroutines(ctx context.Context) int64 {
	if v, ok := ctx.Value(key).(*metrics); ok {
		g := int64(runtime.NumGoroutine())
		v.goroutines.Set(g)
		return g
	}
	return 0
}

// AddRequests increments the request count and returns the new total.
func AddRequests(ctx context.Context) int64 {
	if v, ok := ctx.Value(key).(*metrics); ok {
		v.requests.Add(1)
		return v.requests.Value()
	}
	return 0
}

// AddErrors increments the error count and returns the new total.
func AddErrors(ctx context.Context) int64 {
	if v, ok := ctx.Value(key).(*metrics); ok {
		v.errors.Add(1)
		return v.errors.Value()
	}
	return 0
}

// AddPanics increments the panic count and returns the new total.
func AddPanics(ctx context.Context) int64 {
	if v, ok := ctx.Value(key).(*metrics); ok {
		v.panics.Add(1)
		return v.panics.Value()
	}
	return 0
}
