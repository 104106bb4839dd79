// Package metrics provides a small instrumentation surface with a no-op
// default and a Prometheus-backed implementation.
package metrics

import (
	"sync"
	"time"
)

// Probe outcome labels.
const (
	OutcomeFact   = "fact"
	OutcomeAbsent = "absent"
	OutcomeError  = "error"
)

// Recorder defines the metrics used across the codebase.
type Recorder interface {
	IncProbeOutcome(probe, outcome string)
	ObserveGraphQuery(query string, success bool, seconds float64)
	ObserveFeedFetch(success bool, seconds float64)
}

type noopRecorder struct{}

func (noopRecorder) IncProbeOutcome(string, string) {}
func (noopRecorder) ObserveGraphQuery(string, bool, float64) {}
func (noopRecorder) ObserveFeedFetch(bool, float64) {}

var (
	recMu    sync.RWMutex
	recorder Recorder = noopRecorder{}
)

// Default returns the current recorder.
func Default() Recorder {
	recMu.RLock()
	defer recMu.RUnlock()
	return recorder
}

// SetRecorder swaps the global recorder implementation.
func SetRecorder(r Recorder) {
	recMu.Lock()
	defer recMu.Unlock()
	recorder = r
}

// TimeQuery times a graph query. Call the returned func with the result.
func TimeQuery(name string) func(success bool) {
	start := time.Now()
	return func(success bool) {
		Default().ObserveGraphQuery(name, success, time.Since(start).Seconds())
	}
}

// TimeFetch times a remote feed fetch.
func TimeFetch() func(success bool) {
	start := time.Now()
	return func(success bool) {
		Default().ObserveFeedFetch(success, time.Since(start).Seconds())
	}
}
