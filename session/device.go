package session

// DeviceProfile names a fixed viewport/UA/motion preset a scan runs under.
// The underlying facade only exposes the raw primitives (viewport, media
// emulation); this closed set gives callers named presets instead of having
// to assemble them by hand.
type DeviceProfile string

const (
	DeviceDesktop       DeviceProfile = "desktop"
	DeviceMobile        DeviceProfile = "mobile"
	DeviceTablet        DeviceProfile = "tablet"
	DeviceLowVision     DeviceProfile = "low-vision"
	DeviceReducedMotion DeviceProfile = "reduced-motion"
)

// profile bundles the concrete settings a DeviceProfile expands to.
type profile struct {
	Viewport      Viewport
	UserAgent     string
	DeviceScale   float64
	ReducedMotion bool
	Zoom          float64
}

var profiles = map[DeviceProfile]profile{
	DeviceDesktop: {
		Viewport:    Viewport{Width: 1366, Height: 900},
		UserAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
		DeviceScale: 1,
		Zoom:        1,
	},
	DeviceMobile: {
		Viewport:    Viewport{Width: 390, Height: 844},
		UserAgent:   "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148",
		DeviceScale: 3,
		Zoom:        1,
	},
	DeviceTablet: {
		Viewport:    Viewport{Width: 810, Height: 1080},
		UserAgent:   "Mozilla/5.0 (iPad; CPU OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148",
		DeviceScale: 2,
		Zoom:        1,
	},
	DeviceLowVision: {
		Viewport:    Viewport{Width: 1366, Height: 900},
		UserAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
		DeviceScale: 1,
		Zoom:        2,
	},
	DeviceReducedMotion: {
		Viewport:      Viewport{Width: 1366, Height: 900},
		UserAgent:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
		DeviceScale:   1,
		ReducedMotion: true,
		Zoom:          1,
	},
}

// resolveProfile returns the profile settings for a DeviceProfile, falling
// back to desktop for the zero value or an unrecognized name.
func resolveProfile(d DeviceProfile) profile {
	if p, ok := profiles[d]; ok {
		return p
	}
	return profiles[DeviceDesktop]
}
