// Package daylight determines whether the sun is above the horizon at a given
// location and time. It is used to pick the day or night clear-sky icon when
// the forecast payload does not carry a daylight flag.
package daylight

import (
	"math"
	"time"
)

const degToRad = math.Pi / 180.0

// SunTimes returns sunrise and sunset for the day of t, as minutes from
// midnight UTC. polar is true during polar day or polar night, in which case
// the sunrise and sunset values are meaningless and up reports whether the sun
// is continuously above the horizon.
func SunTimes(t time.Time, latitude, longitude float64) (sunrise, sunset int, polar, up bool) {
	doy := float64(t.UTC().YearDay())

	// Solar declination (ASCE approximation)
	inner := (356.6 + 0.9856*doy) * degToRad
	outer := (278.97 + 0.9856*doy + 1.9165*math.Sin(inner)) * degToRad
	declination := math.Asin(0.39785 * math.Sin(outer))

	// Hour angle at sunrise/sunset: cos(H) = -tan(lat) * tan(decl)
	cosH := -math.Tan(latitude*degToRad) * math.Tan(declination)
	if cosH < -1.0 {
		return 0, 0, true, true // midnight sun
	}
	if cosH > 1.0 {
		return 0, 0, true, false // polar night
	}
	halfDayMinutes := math.Acos(cosH) / degToRad * 4.0 // 4 minutes per degree

	// Solar noon in UTC, shifted by longitude and the equation of time
	solarNoon := 720.0 - longitude*4.0 - equationOfTime(doy)

	rise := math.Mod(solarNoon-halfDayMinutes+1440, 1440)
	set := math.Mod(solarNoon+halfDayMinutes+1440, 1440)

	return int(math.Round(rise)), int(math.Round(set)), false, false
}

// IsUp reports whether the sun is above the horizon at t for the given
// coordinates.
func IsUp(t time.Time, latitude, longitude float64) bool {
	sunrise, sunset, polar, up := SunTimes(t, latitude, longitude)
	if polar {
		return up
	}

	utc := t.UTC()
	minute := utc.Hour()*60 + utc.Minute()

	if sunrise <= sunset {
		return minute >= sunrise && minute < sunset
	}
	// Daylight spans midnight UTC (western longitudes in summer)
	return minute >= sunrise || minute < sunset
}

// equationOfTime returns the difference between apparent and mean solar time
// in minutes, using the compact Fourier approximation. Accuracy is within a
// couple of minutes, which is plenty for a day/night decision.
func equationOfTime(doy float64) float64 {
	b := 2 * math.Pi * (doy - 81) / 364.0
	return 9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b)
}
