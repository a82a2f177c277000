package llm

import (
	"context"
	"errors"
	"sync/atomic"
)

// fakeProvider is a scripted Provider for tests
type fakeProvider struct {
	name      ProviderName
	available bool
	content   string
	err       error
	calls     atomic.Int32
}

func (f *fakeProvider) Name() ProviderName { return f.name }
func (f *fakeProvider) Model() string      { return "fake-" + string(f.name) }
func (f *fakeProvider) IsAvailable() bool  { return f.available }

func (f *fakeProvider) CreateChatCompletion(context.Context, []Message, Options) (string, error) {
	f.calls.Add(1)
	if !f.available {
		return "", &ProviderError{Provider: f.name, Message: "not available", Cause: ErrProviderUnavailable}
	}
	return f.content, f.err
}

var errBoom = errors.New("boom")
