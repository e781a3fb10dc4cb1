package cmd

import "github.com/a11yscan/auditor/session"

func parseDevice(name string) session.DeviceProfile {
	switch name {
	case "mobile":
		return session.DeviceMobile
	case "tablet":
		return session.DeviceTablet
	case "low-vision":
		return session.DeviceLowVision
	case "reduced-motion":
		return session.DeviceReducedMotion
	default:
		return session.DeviceDesktop
	}
}
