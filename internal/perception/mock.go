package perception

import (
	"gocv.io/x/gocv"
)

// MockEngine is a test implementation of the Engine interface. Tests
// either pin one result or enqueue a per-frame script.
type MockEngine struct {
	result Result
	queue  []Result
	err    error
	calls  int
}

// NewMockEngine creates a new MockEngine instance.
func NewMockEngine() *MockEngine {
	return &MockEngine{}
}

// SetResult pins the result returned by every Detect call.
func (m *MockEngine) SetResult(r Result) {
	m.result = r
}

// Enqueue appends results returned one per Detect call before falling
// back to the pinned result.
func (m *MockEngine) Enqueue(results ...Result) {
	m.queue = append(m.queue, results...)
}

// SetError sets the error returned by Detect.
func (m *MockEngine) SetError(err error) {
	m.err = err
}

// Calls returns how many times Detect has run.
func (m *MockEngine) Calls() int {
	return m.calls
}

// Detect returns the pre-configured result or error.
func (m *MockEngine) Detect(frame *gocv.Mat) (Result, error) {
	if m.err != nil {
		return Result{}, m.err
	}
	m.calls++
	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		return next, nil
	}
	return m.result, nil
}

// Close is a no-op for the mock engine.
func (m *MockEngine) Close() error {
	return nil
}
