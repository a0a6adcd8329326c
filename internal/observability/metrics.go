package observability

import (
	"sync"

	"github.com/danmuck/protoreg/internal/protocols"
	"github.com/prometheus/client_golang/prometheus"
)

// RegistryView is the read surface metrics need from an assembled registry.
type RegistryView interface {
	Range(fn func(protocols.Name, protocols.Table))
	BidiArtifactFound() bool
}

var (
	registerOnce sync.Once

	// gatherer holds only protoreg series so textfile output stays free of
	// process and runtime collectors.
	gatherer = prometheus.NewRegistry()

	registryEndpoints = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "protoreg",
			Subsystem: "registry",
			Name:      "endpoints",
			Help:      "Endpoint paths per protocol table.",
		},
		[]string{"protocol"},
	)
	registryCommands = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "protoreg",
			Subsystem: "registry",
			Name:      "commands",
			Help:      "Method-level command definitions per protocol table.",
		},
		[]string{"protocol"},
	)
	bidiArtifactPresent = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "protoreg",
			Subsystem: "bidi",
			Name:      "artifact_present",
			Help:      "1 when the generated WebDriver Bidi table was found, 0 otherwise.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		gatherer.MustRegister(registryEndpoints, registryCommands, bidiArtifactPresent)
	})
}

// Gatherer exposes the protoreg metric set.
func Gatherer() prometheus.Gatherer {
	RegisterMetrics()
	return gatherer
}

// RecordRegistry replaces all registry gauges with the state of reg.
func RecordRegistry(reg RegistryView) {
	RegisterMetrics()
	registryEndpoints.Reset()
	registryCommands.Reset()
	reg.Range(func(name protocols.Name, table protocols.Table) {
		registryEndpoints.WithLabelValues(string(name)).Set(float64(table.Endpoints()))
		registryCommands.WithLabelValues(string(name)).Set(float64(table.Commands()))
	})
	if reg.BidiArtifactFound() {
		bidiArtifactPresent.Set(1)
	} else {
		bidiArtifactPresent.Set(0)
	}
}

// WriteTextfile writes the metric set in node-exporter textfile format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Gatherer())
}
