package registry

import (
	"fmt"
	"slices"
	"time"

	"github.com/danmuck/protoreg/internal/protocols"
)

// EditWarning is prepended to generated files.
const EditWarning = `// -------------------- ATTENTION --------------------
// Do not edit this file as it gets auto-generated!
// For edits modify /scripts/templates/*.tpl.d.ts
// Check CONTRIBUTING.md for more details.
// --------------------------------------------------
//
`

const SauceAPIDescription = "\n" +
	"All commands are only supported on Chrome using Sauce Labs\n" +
	"[Extended Debugging](https://docs.saucelabs.com/insights/debug/#enabling-extended-debugging)\n" +
	"capabilities. You can enable these by setting the following Sauce options:\n\n\n" +
	"```js\n" +
	"{\n" +
	"    browserName: 'Chrome',\n" +
	"    browserVersion: 'latest',\n" +
	"    platformName: 'Windows 10',\n" +
	"    'sauce:options': {\n" +
	"        extendedDebugging: true\n" +
	"    }\n" +
	"}\n" +
	"```\n"

const bidiAPIDescriptionFormat = "\n" +
	"These protocol commands are generated based on the current living\n" +
	"[WebDriver Bidi](https://w3c.github.io/webdriver-bidi/) specification. To enable the protocol\n" +
	"for your test make sure to have `webSocketUrl: true` set in your capabilities.\n" +
	"\n" +
	":::caution Use with Caution!\n" +
	"\n" +
	"Browser support is not guaranteed and interfaces can change in the future. The standard\n" +
	"is currently under development and browser vendors will add these capabilities based on their\n" +
	"own timelines.\n" +
	"\n" +
	":::\n" +
	"\n" +
	"Last Updated: %s\n"

// LastUpdatedLayout renders the Bidi "Last Updated" stamp without its zone name.
const LastUpdatedLayout = "Mon Jan 02 2006 15:04:05 GMT-0700"

// BidiAPIDescription renders the Bidi description stamped with at.
func BidiAPIDescription(at time.Time) string {
	return fmt.Sprintf(bidiAPIDescriptionFormat, LastUpdated(at))
}

// LastUpdated formats at like a browser Date string. UTC gets the long zone
// name browsers print; other zones keep their abbreviation since Go carries
// no long names.
func LastUpdated(at time.Time) string {
	zone, offset := at.Zone()
	if offset == 0 && (zone == "UTC" || zone == "GMT" || zone == "") {
		zone = "Coordinated Universal Time"
	}
	return fmt.Sprintf("%s (%s)", at.Format(LastUpdatedLayout), zone)
}

var displayNames = map[protocols.Name]string{
	protocols.Appium:        "Appium",
	protocols.Chromium:      "Chromium",
	protocols.Gecko:         "Firefox",
	protocols.MJSONWP:       "Mobile JSON Wire Protocol",
	protocols.SauceLabs:     "Sauce Labs",
	protocols.Selenium:      "Selenium Standalone",
	protocols.WebDriver:     "WebDriver Protocol",
	protocols.WebDriverBidi: "WebDriver Bidi Protocol",
}

var (
	mobileProtocols = []protocols.Name{protocols.Appium, protocols.MJSONWP}
	vendorProtocols = []protocols.Name{protocols.Chromium}

	ignoredSubpackagesForDocs = []string{
		"eslint-plugin-wdio",
		"wdio-smoke-test-service",
		"wdio-smoke-test-reporter",
		"wdio-smoke-test-cjs-service",
	}
)

// DisplayName returns the human-readable label for name.
func DisplayName(name protocols.Name) (string, bool) {
	label, ok := displayNames[name]
	return label, ok
}

// DisplayNames returns a copy of the full label map.
func DisplayNames() map[protocols.Name]string {
	out := make(map[protocols.Name]string, len(displayNames))
	for k, v := range displayNames {
		out[k] = v
	}
	return out
}

func Mobile() []protocols.Name {
	return slices.Clone(mobileProtocols)
}

func Vendor() []protocols.Name {
	return slices.Clone(vendorProtocols)
}

func IsMobile(name protocols.Name) bool {
	return slices.Contains(mobileProtocols, name)
}

func IsVendor(name protocols.Name) bool {
	return slices.Contains(vendorProtocols, name)
}

// IgnoredSubpackagesForDocs lists packages the documentation generator skips.
func IgnoredSubpackagesForDocs() []string {
	return slices.Clone(ignoredSubpackagesForDocs)
}
