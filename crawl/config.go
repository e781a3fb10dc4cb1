package crawl

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/a11yscan/auditor/session"
)

// Profile is a crawl's YAML-defined configuration, letting a user pin
// a reusable set of crawl options outside the CLI invocation.
type Profile struct {
	RootURL         string `yaml:"rootUrl"`
	MaxPages        int    `yaml:"maxPages"`
	Device          string `yaml:"device"`
	SkipHeavyweight bool   `yaml:"skipHeavyweight"`
}

// LoadProfile reads a crawl profile from a YAML file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read crawl profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse crawl profile: %w", err)
	}
	return &p, nil
}

// ToOptions converts the profile into Options, resolving the device string
// to a DeviceProfile (defaulting to desktop for an unrecognized value).
func (p *Profile) ToOptions() Options {
	device := session.DeviceDesktop
	switch p.Device {
	case "mobile":
		device = session.DeviceMobile
	case "tablet":
		device = session.DeviceTablet
	case "low-vision":
		device = session.DeviceLowVision
	case "reduced-motion":
		device = session.DeviceReducedMotion
	}
	return Options{
		MaxPages:        p.MaxPages,
		Device:          device,
		SkipHeavyweight: p.SkipHeavyweight,
	}
}
