package harness

import (
	"context"
	"fmt"
)

// Outcome is the settled value of an asynchronous operation
type Outcome struct {
	Value interface{}
	Err   error
}

// Go starts fn on its own goroutine and returns a channel that settles with
// its outcome. A panic in fn settles the outcome with an unhandled-rejection
// style error instead of crashing the worker.
func Go(fn func() (interface{}, error)) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- Outcome{Err: &panicError{value: r}}
			}
		}()
		value, err := fn()
		ch <- Outcome{Value: value, Err: err}
	}()
	return ch
}

// Await suspends the case until the operation settles or ctx is cancelled.
func Await(ctx context.Context, op <-chan Outcome) (interface{}, error) {
	select {
	case outcome := <-op:
		return outcome.Value, outcome.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type panicError struct {
	value interface{}
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic in async operation: %v", e.value)
}
