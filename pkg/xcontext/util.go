package xcontext

import "context"

type requestStateKey struct{}

// requestState holds the handler outcome of the current request so After
// middlewares and closers can observe it.
type requestState struct {
	response any
	err      error
}

func WithRequestState(ctx context.Context) context.Context {
	return context.WithValue(ctx, requestStateKey{}, &requestState{})
}

func SetResponse(ctx context.Context, resp any) {
	if state, ok := ctx.Value(requestStateKey{}).(*requestState); ok {
		state.response = resp
	}
}

func Response(ctx context.Context) any {
	if state, ok := ctx.Value(requestStateKey{}).(*requestState); ok {
		return state.response
	}

	return nil
}

func SetError(ctx context.Context, err error) {
	if state, ok := ctx.Value(requestStateKey{}).(*requestState); ok {
		state.err = err
	}
}

func Error(ctx context.Context) error {
	if state, ok := ctx.Value(requestStateKey{}).(*requestState); ok {
		return state.err
	}

	return nil
}
