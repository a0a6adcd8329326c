package config

import (
	"fmt"
	"os"
)

func Template() string {
	return protoctlTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(protoctlTemplate), 0o600)
}

const protoctlTemplate = `# repository root probed for the generated Bidi table
root = "."
protocols_package = "wdio-protocols"
bidi_artifact = "webdriverBidi.json"

log_level = "info"
# metrics_textfile = "/var/lib/node_exporter/textfile/protoreg.prom"
`
