package forecast

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// NoPrecipitationKey is the state key rendered when no precipitation periods
// are found in the forecast window.
const NoPrecipitationKey = "no_precipitation"

// Template identifiers used to phrase a single precipitation period
const (
	TemplateNow            = "now"
	TemplateForNextMinutes = "for_next_minutes"
	TemplateInMinutes      = "in_minutes"
	TemplateStartingIn     = "starting_in_minutes_lasting"
)

// Translator supplies localized text for summary rendering. State resolves a
// state key to display text. Template substitutes named placeholders into a
// phrasing pattern; on substitution failure it returns the unformatted pattern
// along with the error, so rendering can degrade without aborting.
type Translator interface {
	State(key string) string
	Template(id string, placeholders map[string]string) (string, error)
}

// Summarize renders a human-readable summary of the given precipitation
// periods. Each period is phrased by one of four templates selected by its
// start offset and duration, and the fragments are joined with "; ". With no
// periods, the distinguished no-precipitation state is rendered instead.
//
// A template substitution failure is logged through the supplied logger and
// degrades that one fragment to the raw pattern text; remaining periods are
// still rendered.
func Summarize(periods []Period, tr Translator, logger *zap.SugaredLogger) string {
	if len(periods) == 0 {
		return tr.State(NoPrecipitationKey)
	}

	parts := make([]string, 0, len(periods))
	for _, p := range periods {
		desc := tr.State(DescriptionKey(p))

		var id string
		placeholders := map[string]string{"precipitation": desc}

		switch {
		case p.Start == 0 && p.Duration() == 1:
			id = TemplateNow
		case p.Start == 0:
			id = TemplateForNextMinutes
			placeholders["duration"] = strconv.Itoa(p.Duration())
		case p.Duration() == 1:
			id = TemplateInMinutes
			placeholders["minutes"] = strconv.Itoa(p.Start)
		default:
			id = TemplateStartingIn
			placeholders["start_minutes"] = strconv.Itoa(p.Start)
			placeholders["duration"] = strconv.Itoa(p.Duration())
		}

		fragment, err := tr.Template(id, placeholders)
		if err != nil && logger != nil {
			logger.Warnw("failed to format forecast template",
				"template", id,
				"placeholders", placeholders,
				"error", err)
		}
		parts = append(parts, fragment)
	}

	return strings.Join(parts, "; ")
}
