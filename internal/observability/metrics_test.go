package observability

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/protoreg/internal/protocols"
	"github.com/danmuck/protoreg/internal/testutil/testlog"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistry struct {
	tables map[protocols.Name]protocols.Table
	found  bool
}

func (f fakeRegistry) Range(fn func(protocols.Name, protocols.Table)) {
	for _, name := range protocols.Names() {
		fn(name, f.tables[name])
	}
}

func (f fakeRegistry) BidiArtifactFound() bool {
	return f.found
}

func TestRegisterMetricsIsIdempotent(t *testing.T) {
	testlog.Start(t)
	RegisterMetrics()
	RegisterMetrics()
	_, err := Gatherer().Gather()
	require.NoError(t, err)
}

func TestRecordRegistry(t *testing.T) {
	testlog.Start(t)
	reg := fakeRegistry{
		tables: map[protocols.Name]protocols.Table{
			protocols.WebDriver: {
				"/session":     json.RawMessage(`{"POST": {"command": "newSession"}}`),
				"/session/:id": json.RawMessage(`{"DELETE": {"command": "deleteSession"}, "GET": {"command": "getSession"}}`),
			},
			protocols.WebDriverBidi: {},
		},
		found: true,
	}
	RecordRegistry(reg)

	assert.Equal(t, 2.0, testutil.ToFloat64(registryEndpoints.WithLabelValues("webdriver")))
	assert.Equal(t, 3.0, testutil.ToFloat64(registryCommands.WithLabelValues("webdriver")))
	assert.Equal(t, 0.0, testutil.ToFloat64(registryCommands.WithLabelValues("webdriverBidi")))
	assert.Equal(t, 1.0, testutil.ToFloat64(bidiArtifactPresent))
	assert.Equal(t, len(protocols.Names()), testutil.CollectAndCount(registryCommands))

	reg.found = false
	RecordRegistry(reg)
	assert.Equal(t, 0.0, testutil.ToFloat64(bidiArtifactPresent))
}

func TestWriteTextfile(t *testing.T) {
	testlog.Start(t)
	RecordRegistry(fakeRegistry{tables: map[protocols.Name]protocols.Table{}})

	path := filepath.Join(t.TempDir(), "protoreg.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, "protoreg_bidi_artifact_present 0"), out)
	assert.Contains(t, out, `protoreg_registry_commands{protocol="appium"} 0`)
	assert.NotContains(t, out, "go_goroutines")
}
