package forecast

// Intensity thresholds (mm/h) separating the tiers
const (
	moderateThreshold = 2.5
	heavyThreshold    = 10.0
)

// Tier is an intensity classification derived from a period's peak intensity.
type Tier int

const (
	TierLight Tier = iota
	TierModerate
	TierHeavy
)

func (t Tier) String() string {
	switch t {
	case TierModerate:
		return "moderate"
	case TierHeavy:
		return "heavy"
	default:
		return "light"
	}
}

// TierFor classifies a peak intensity into a tier.
func TierFor(intensity float64) Tier {
	switch {
	case intensity < moderateThreshold:
		return TierLight
	case intensity < heavyThreshold:
		return TierModerate
	default:
		return TierHeavy
	}
}

// DescriptionKey returns the translation key describing a period, combining
// its intensity tier with its precipitation type. Unknown or clear types fall
// back to the generic "precipitation" descriptor.
func DescriptionKey(p Period) string {
	tier := TierFor(p.MaxIntensity)

	switch p.PrecipType {
	case TypeRain, TypeSnow, TypeSleet, TypeHail:
		return tier.String() + "_" + p.PrecipType
	default:
		return tier.String() + "_precipitation"
	}
}
