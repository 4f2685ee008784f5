package mocks

import (
	"lendahand/infras/otel"
	"lendahand/shared/failure"
	"sync"
)

// Span is what a Recorder keeps of one scope.
type Span struct {
	Scope      string
	Name       string
	Events     []string
	Attributes map[string]any
	Err        error
	Ended      bool
}

// Kind is the failure kind of the traced error, empty when none was traced.
func (s Span) Kind() failure.Kind {
	if s.Err == nil {
		return ""
	}

	return failure.GetKind(s.Err)
}

type scopeImpl struct {
	mu   *sync.Mutex
	span *Span
}

// AddEvent implements otel.Scope.
func (s *scopeImpl) AddEvent(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.span.Events = append(s.span.Events, name)
}

// End implements otel.Scope.
func (s *scopeImpl) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.span.Ended = true
}

// SetAttribute implements otel.Scope.
func (s *scopeImpl) SetAttribute(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.span.Attributes[key] = value
}

// SetAttributes implements otel.Scope.
func (s *scopeImpl) SetAttributes(attributes map[string]any) {
	for key, value := range attributes {
		s.SetAttribute(key, value)
	}
}

// TraceError implements otel.Scope.
func (s *scopeImpl) TraceError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.span.Err = err
}

// TraceIfError implements otel.Scope.
func (s *scopeImpl) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

var _ otel.Scope = (*scopeImpl)(nil)
