package forecast

// Icon identifiers handed to the presentation collaborator. These are
// Material Design icon names.
const (
	IconClearDay   = "mdi:weather-sunny"
	IconClearNight = "mdi:weather-night"
	IconRain       = "mdi:weather-rainy"
	IconHeavyRain  = "mdi:weather-pouring"
	IconSnow       = "mdi:weather-snowy"
	IconHeavySnow  = "mdi:weather-snowy-heavy"
	IconSleet      = "mdi:weather-snowy-rainy"
	IconHail       = "mdi:weather-hail"

	// IconNoData is used when no forecast payload is available at all.
	IconNoData = "mdi:weather-partly-cloudy"
)

// SelectIcon chooses an icon for the forecast based on the first upcoming
// precipitation period. With no periods, a day or night clear-sky icon is
// returned according to the daylight flag; the flag has no effect otherwise.
func SelectIcon(periods []Period, isDaylight bool) string {
	if len(periods) == 0 {
		if isDaylight {
			return IconClearDay
		}
		return IconClearNight
	}

	first := periods[0]
	light := TierFor(first.MaxIntensity) == TierLight

	switch first.PrecipType {
	case TypeRain:
		if light {
			return IconRain
		}
		return IconHeavyRain
	case TypeSnow:
		if light {
			return IconSnow
		}
		return IconHeavySnow
	case TypeSleet:
		return IconSleet
	case TypeHail:
		return IconHail
	default:
		return IconRain
	}
}
