package domain

import "fmt"

// Intensity is a named session length preset.
type Intensity string

const (
	IntensityLight  Intensity = "Light"
	IntensityNormal Intensity = "Normal"
	IntensityDeep   Intensity = "Deep"
)

// DurationConfig selects the countdown length. An explicit positive custom
// minute value always wins over the intensity preset.
type DurationConfig struct {
	Intensity     Intensity
	CustomMinutes int
}

// Seconds maps the configuration to a session duration. Unknown or unset
// intensities fall back to the Normal preset.
func (c DurationConfig) Seconds() int {
	if c.CustomMinutes > 0 {
		return c.CustomMinutes * 60
	}
	switch c.Intensity {
	case IntensityLight:
		return 15 * 60
	case IntensityDeep:
		return 50 * 60
	default:
		return 25 * 60
	}
}

// FormatClock renders remaining seconds as mm:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
