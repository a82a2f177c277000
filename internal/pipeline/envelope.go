package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Envelope is the result of one boundary call. Exactly one of Data and Failure is set.
type Envelope[T any] struct {
	Success   bool   `json:"success"`
	RequestID string `json:"request_id,omitempty"`
	Data      *T     `json:"data,omitempty"`
	*Failure
	ProcessingTimeMS int64 `json:"processing_time_ms"`
}

func succeed[T any](ctx context.Context, data *T, start time.Time) Envelope[T] {
	return Envelope[T]{
		Success:          true,
		RequestID:        RequestID(ctx),
		Data:             data,
		ProcessingTimeMS: time.Since(start).Milliseconds(),
	}
}

func fail[T any](ctx context.Context, f *Failure, start time.Time) Envelope[T] {
	return Envelope[T]{
		Success:          false,
		RequestID:        RequestID(ctx),
		Failure:          f,
		ProcessingTimeMS: time.Since(start).Milliseconds(),
	}
}

type requestIDKey struct{}

// WithRequestID returns ctx carrying id. An empty id gets a new UUID.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
