package mocks

import (
	"context"
	"lendahand/infras/otel"
	"maps"
	"slices"
	"sync"
)

// Recorder is an in-memory otel.Otel. It keeps every scope it opened so tests
// can check span names, attributes and traced failures.
type Recorder struct {
	mu    sync.Mutex
	spans []*Span
}

// NewScope implements otel.Otel.
func (r *Recorder) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, otel.Scope) {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := &Span{Scope: scopeName, Name: spanName, Attributes: map[string]any{}}
	r.spans = append(r.spans, span)

	return ctx, &scopeImpl{mu: &r.mu, span: span}
}

// Shutdown implements otel.Otel.
func (r *Recorder) Shutdown(_ context.Context) error {
	return nil
}

// Spans returns copies of the recorded spans in the order they were opened.
func (r *Recorder) Spans() []Span {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := make([]Span, 0, len(r.spans))
	for _, span := range r.spans {
		copied := *span
		copied.Events = slices.Clone(span.Events)
		copied.Attributes = maps.Clone(span.Attributes)
		res = append(res, copied)
	}

	return res
}

// Find returns the last span with the given name.
func (r *Recorder) Find(name string) (Span, bool) {
	spans := r.Spans()

	for i := len(spans) - 1; i >= 0; i-- {
		if spans[i].Name == name {
			return spans[i], true
		}
	}

	return Span{}, false
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func NewOtel() otel.Otel {
	return NewRecorder()
}
