// Package devicetest provides an in-memory device endpoint for tests.
package devicetest

import (
	"errors"
	"sync"
)

// Recorder is an in-memory endpoint that keeps every accepted frame.
// It can be told to fail or to accept only part of a frame.
type Recorder struct {
	mu      sync.Mutex
	frames  [][]byte
	closed  bool
	failErr error
	short   bool
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Write implements io.Writer.
func (r *Recorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, errors.New("recorder closed")
	}
	if r.failErr != nil {
		return 0, r.failErr
	}
	if r.short && len(p) > 0 {
		return len(p) - 1, nil
	}
	r.frames = append(r.frames, append([]byte(nil), p...))
	return len(p), nil
}

// Close implements io.Closer.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// FailWith makes subsequent writes return err. nil restores normal writes.
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failErr = err
}

// ShortWrites makes subsequent writes accept one byte less than given.
func (r *Recorder) ShortWrites(short bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.short = short
}

// Frames returns a copy of the recorded frames.
func (r *Recorder) Frames() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]byte, len(r.frames))
	copy(out, r.frames)
	return out
}

// Closed reports whether Close was called.
func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Reset drops the recorded frames.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = nil
}
