// Package forecast derives natural-language precipitation summaries and icon
// classifications from minute-by-minute next-hour forecast data.
package forecast

// Precipitation type markers as reported by the upstream provider
const (
	TypeClear = "clear"
	TypeRain  = "rain"
	TypeSnow  = "snow"
	TypeSleet = "sleet"
	TypeHail  = "hail"
)

// MaxMinutes is the longest forecast window we consider. Providers
// occasionally return more; anything past the first hour is ignored.
const MaxMinutes = 60

// Minute is one entry of a minute-by-minute forecast, in chronological order
// starting from now.
type Minute struct {
	StartTime  string  `json:"startTime,omitempty"`
	Intensity  float64 `json:"precipitationIntensity"`
	Chance     float64 `json:"precipitationChance"`
	PrecipType string  `json:"precipitationType"`
}

// Payload mirrors the provider's next-hour forecast structure as pushed to us
// by the data-fetch collaborator. Daylight is carried from the provider's
// current conditions when available and only affects icon selection.
type Payload struct {
	ForecastStart string   `json:"forecastStart,omitempty"`
	ForecastEnd   string   `json:"forecastEnd,omitempty"`
	Minutes       []Minute `json:"minutes"`
	Daylight      *bool    `json:"daylight,omitempty"`
}

// Period is a maximal contiguous run of minutes with non-zero precipitation
// intensity. Start and End are inclusive minute offsets into the forecast
// window. PrecipType is the most recent non-clear type observed within the
// period and may be "clear" if every minute reported the clear marker.
type Period struct {
	Start        int
	End          int
	PrecipType   string
	MaxIntensity float64
}

// Duration returns the length of the period in minutes.
func (p Period) Duration() int {
	return p.End - p.Start + 1
}

// Window returns the first MaxMinutes entries of the minute sequence. The
// original array is passed through to attributes untrimmed; only the derived
// computations use the trimmed window.
func Window(minutes []Minute) []Minute {
	if len(minutes) > MaxMinutes {
		return minutes[:MaxMinutes]
	}
	return minutes
}
