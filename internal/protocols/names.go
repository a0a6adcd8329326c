package protocols

// Name identifies one protocol dialect.
type Name string

const (
	Appium        Name = "appium"
	Chromium      Name = "chromium"
	Gecko         Name = "gecko"
	MJSONWP       Name = "mjsonwp"
	SauceLabs     Name = "saucelabs"
	Selenium      Name = "selenium"
	WebDriver     Name = "webdriver"
	WebDriverBidi Name = "webdriverBidi"
)

var declared = []Name{
	Appium,
	Chromium,
	Gecko,
	MJSONWP,
	SauceLabs,
	Selenium,
	WebDriver,
	WebDriverBidi,
}

// Names returns every protocol name in declared order.
func Names() []Name {
	out := make([]Name, len(declared))
	copy(out, declared)
	return out
}

// Mandatory returns the names whose tables ship with the binary, in declared order.
func Mandatory() []Name {
	out := make([]Name, 0, len(declared)-1)
	for _, name := range declared {
		if name == WebDriverBidi {
			continue
		}
		out = append(out, name)
	}
	return out
}

// Valid reports whether name belongs to the fixed protocol set.
func (n Name) Valid() bool {
	for _, name := range declared {
		if name == n {
			return true
		}
	}
	return false
}

func (n Name) String() string {
	return string(n)
}
