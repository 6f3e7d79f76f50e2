package forecast

// Segment scans a minute sequence and returns the contiguous precipitation
// periods found in it, in chronological order. A period opens on the first
// minute with intensity above zero and closes on the next zero-intensity
// minute (or at the end of the window). While a period is open, the recorded
// type follows the most recent non-clear type seen; a zero-type period keeps
// the clear marker and is classified generically downstream.
func Segment(minutes []Minute) []Period {
	var periods []Period

	open := false
	var cur Period

	for i, m := range minutes {
		if m.Intensity > 0 {
			if !open {
				open = true
				cur = Period{
					Start:        i,
					PrecipType:   m.PrecipType,
					MaxIntensity: m.Intensity,
				}
				continue
			}
			if m.Intensity > cur.MaxIntensity {
				cur.MaxIntensity = m.Intensity
			}
			// Last non-clear type wins. This is intentional: a rain shower
			// turning to sleet is reported as sleet, not as the majority type.
			if m.PrecipType != TypeClear {
				cur.PrecipType = m.PrecipType
			}
		} else if open {
			cur.End = i - 1
			periods = append(periods, cur)
			open = false
		}
	}

	// Precipitation continuing through the end of the window
	if open {
		cur.End = len(minutes) - 1
		periods = append(periods, cur)
	}

	return periods
}
