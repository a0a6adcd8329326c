package protocols

import (
	"testing"

	"github.com/danmuck/protoreg/internal/testutil/testlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamesDeclaredOrder(t *testing.T) {
	testlog.Start(t)
	want := []Name{"appium", "chromium", "gecko", "mjsonwp", "saucelabs", "selenium", "webdriver", "webdriverBidi"}
	assert.Equal(t, want, Names())
}

func TestNamesReturnsCopy(t *testing.T) {
	testlog.Start(t)
	names := Names()
	names[0] = "mutated"
	assert.Equal(t, Appium, Names()[0])
}

func TestMandatoryExcludesBidi(t *testing.T) {
	testlog.Start(t)
	got := Mandatory()
	require.Len(t, got, 7)
	assert.NotContains(t, got, WebDriverBidi)
}

func TestNameValid(t *testing.T) {
	testlog.Start(t)
	for _, name := range Names() {
		assert.True(t, name.Valid(), "name=%s", name)
	}
	assert.False(t, Name("jsonwp").Valid())
}
