// Package metrics exposes Prometheus metrics for the keyboard session.
package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/smazurov/kbcontrol/internal/events"
	"github.com/smazurov/kbcontrol/internal/keyboard"
)

const namespace = "kbcontrol"

var (
	framesWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "device",
		Name:      "frames_written_total",
		Help:      "Frames accepted by a device endpoint",
	}, []string{"endpoint"})

	writeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "device",
		Name:      "write_failures_total",
		Help:      "Frames rejected by a device endpoint",
	}, []string{"endpoint"})

	commands = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "commands_total",
		Help:      "Commands applied to the hardware",
	}, []string{"command"})

	persistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "persist_failures_total",
		Help:      "State saves that failed",
	})

	brightness = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "keyboard",
		Name:      "brightness",
		Help:      "Current brightness, 0-100",
	})

	mode = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "keyboard",
		Name:      "mode",
		Help:      "1 for the active lighting mode",
	}, []string{"mode"})

	zoneEnabled = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "keyboard",
		Name:      "zone_enabled",
		Help:      "1 when a static zone is lit",
	}, []string{"zone"})

	// Local copy for the JSON stats endpoint.
	stats   Stats
	statsMu sync.RWMutex
)

// Stats holds the running totals since process start.
type Stats struct {
	FramesWritten   map[string]uint64 `json:"frames_written" doc:"Frames accepted, by endpoint"`
	WriteFailures   map[string]uint64 `json:"write_failures" doc:"Frames rejected, by endpoint"`
	Commands        map[string]uint64 `json:"commands" doc:"Commands applied, by name"`
	PersistFailures uint64            `json:"persist_failures" doc:"Failed state saves"`
}

// RecordFrame counts a frame written to endpoint.
func RecordFrame(endpoint string) {
	framesWritten.WithLabelValues(endpoint).Inc()
	updateStats(func(s *Stats) { s.FramesWritten = inc(s.FramesWritten, endpoint) })
}

// RecordWriteFailure counts a frame rejected by endpoint.
func RecordWriteFailure(endpoint string) {
	writeFailures.WithLabelValues(endpoint).Inc()
	updateStats(func(s *Stats) { s.WriteFailures = inc(s.WriteFailures, endpoint) })
}

// RecordCommand counts an applied command and updates the state gauges.
func RecordCommand(command string, state keyboard.State) {
	commands.WithLabelValues(command).Inc()
	updateStats(func(s *Stats) { s.Commands = inc(s.Commands, command) })
	SetState(state)
}

// RecordPersistFailure counts a failed save.
func RecordPersistFailure() {
	persistFailures.Inc()
	updateStats(func(s *Stats) { s.PersistFailures++ })
}

// SetState updates the gauges describing the lighting state.
func SetState(state keyboard.State) {
	brightness.Set(float64(state.Brightness))
	for _, m := range []keyboard.Mode{keyboard.ModeStatic, keyboard.ModeDynamic} {
		mode.WithLabelValues(m.String()).Set(boolGauge(state.Mode == m))
	}
	for i, z := range state.Zones {
		zoneEnabled.WithLabelValues(strconv.Itoa(i + 1)).Set(boolGauge(z.Enabled))
	}
}

// Snapshot returns a copy of the running totals.
func Snapshot() Stats {
	statsMu.RLock()
	defer statsMu.RUnlock()
	return Stats{
		FramesWritten:   clone(stats.FramesWritten),
		WriteFailures:   clone(stats.WriteFailures),
		Commands:        clone(stats.Commands),
		PersistFailures: stats.PersistFailures,
	}
}

// Subscribe feeds the metrics from session events. Call the returned
// function to stop.
func Subscribe(bus *events.Bus) func() {
	unsubs := []func(){
		bus.Subscribe(func(e events.FrameWrittenEvent) { RecordFrame(e.Endpoint) }),
		bus.Subscribe(func(e events.WriteFailedEvent) { RecordWriteFailure(e.Endpoint) }),
		bus.Subscribe(func(events.PersistFailedEvent) { RecordPersistFailure() }),
		bus.Subscribe(func(e events.StateChangedEvent) { RecordCommand(e.Command, e.State) }),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func updateStats(update func(*Stats)) {
	statsMu.Lock()
	defer statsMu.Unlock()
	update(&stats)
}

func inc(m map[string]uint64, key string) map[string]uint64 {
	if m == nil {
		m = make(map[string]uint64)
	}
	m[key]++
	return m
}

func clone(m map[string]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
