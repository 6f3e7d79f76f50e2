// Package sensor maintains the next-hour forecast sensor: the availability
// state machine and the latest computed summary, icon, and attributes.
package sensor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/minutewx/nexthour/internal/coordinator"
	"github.com/minutewx/nexthour/internal/forecast"
	"github.com/minutewx/nexthour/internal/translate"
	"github.com/minutewx/nexthour/pkg/daylight"
	"go.uber.org/zap"
)

// Availability is the sensor's availability state.
type Availability string

const (
	// AvailabilityNoData means no forecast payload has been received yet.
	AvailabilityNoData Availability = "no_data"
	// AvailabilityUnavailable means the upstream refresh has failed and the
	// last payload can no longer be trusted.
	AvailabilityUnavailable Availability = "unavailable"
	// AvailabilityAvailable means a payload has been received and the derived
	// outputs are current.
	AvailabilityAvailable Availability = "available"
)

// MinuteRecord is one pass-through entry of the attributes payload.
type MinuteRecord struct {
	StartTime              string  `json:"start_time,omitempty"`
	PrecipitationIntensity float64 `json:"precipitation_intensity"`
	PrecipitationChance    float64 `json:"precipitation_chance"`
	PrecipitationType      string  `json:"precipitation_type"`
}

// Attributes is the structured payload handed to the presentation
// collaborator alongside the display string. The minutes array is passed
// through exactly as received from upstream, including entries beyond the
// computed one-hour window.
type Attributes struct {
	ForecastStart string         `json:"forecast_start,omitempty"`
	ForecastEnd   string         `json:"forecast_end,omitempty"`
	Minutes       []MinuteRecord `json:"minutes,omitempty"`
	MinuteCount   int            `json:"minute_count,omitempty"`
}

// Snapshot is an immutable copy of the sensor's current outputs.
type Snapshot struct {
	Availability Availability `json:"availability"`
	State        string       `json:"state,omitempty"`
	Icon         string       `json:"icon"`
	Attributes   Attributes   `json:"attributes"`
	PayloadID    string       `json:"payload_id,omitempty"`
	UpdatedAt    time.Time    `json:"updated_at,omitempty"`
}

// Sensor computes and caches the derived forecast outputs. All methods are
// safe for concurrent use.
type Sensor struct {
	catalog   *translate.Catalog
	logger    *zap.SugaredLogger
	latitude  float64
	longitude float64

	mu      sync.RWMutex
	current Snapshot
}

// New creates a Sensor in the NoData state. The station coordinates are used
// to decide day versus night when a payload carries no daylight flag.
func New(catalog *translate.Catalog, logger *zap.SugaredLogger, latitude, longitude float64) *Sensor {
	return &Sensor{
		catalog:   catalog,
		logger:    logger,
		latitude:  latitude,
		longitude: longitude,
		current: Snapshot{
			Availability: AvailabilityNoData,
			Icon:         forecast.IconNoData,
		},
	}
}

// Run consumes coordinator updates until the context is cancelled.
func (s *Sensor) Run(ctx context.Context, wg *sync.WaitGroup, updates <-chan coordinator.Update) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {
			select {
			case u := <-updates:
				if u.Payload != nil {
					s.Apply(u.Payload)
				} else {
					s.MarkUnavailable(u.Err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Apply recomputes the sensor outputs from a fresh payload and transitions
// the sensor to Available. The computation is a pure function of the payload;
// nothing is carried over from previous invocations.
func (s *Sensor) Apply(p *forecast.Payload) {
	id := uuid.New().String()

	window := forecast.Window(p.Minutes)
	periods := forecast.Segment(window)
	state := forecast.Summarize(periods, s.catalog, s.logger)
	icon := forecast.SelectIcon(periods, s.isDaylight(p))

	snap := Snapshot{
		Availability: AvailabilityAvailable,
		State:        state,
		Icon:         icon,
		Attributes:   buildAttributes(p),
		PayloadID:    id,
		UpdatedAt:    time.Now().UTC(),
	}

	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()

	s.logger.Infow("forecast sensor updated",
		"payload_id", id,
		"minutes", len(p.Minutes),
		"periods", len(periods),
		"state", state,
		"icon", icon)
}

// MarkUnavailable transitions the sensor to Unavailable and discards the
// derived outputs. The core computation is not run again until a fresh
// payload arrives.
func (s *Sensor) MarkUnavailable(err error) {
	s.mu.Lock()
	s.current = Snapshot{
		Availability: AvailabilityUnavailable,
		Icon:         forecast.IconNoData,
		UpdatedAt:    time.Now().UTC(),
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warnw("upstream forecast refresh failed, sensor unavailable", "error", err)
	} else {
		s.logger.Warnw("upstream forecast refresh failed, sensor unavailable")
	}
}

// Snapshot returns a copy of the current sensor outputs.
func (s *Sensor) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.current
	if snap.Attributes.Minutes != nil {
		minutes := make([]MinuteRecord, len(snap.Attributes.Minutes))
		copy(minutes, snap.Attributes.Minutes)
		snap.Attributes.Minutes = minutes
	}
	return snap
}

func (s *Sensor) isDaylight(p *forecast.Payload) bool {
	if p.Daylight != nil {
		return *p.Daylight
	}
	return daylight.IsUp(time.Now(), s.latitude, s.longitude)
}

func buildAttributes(p *forecast.Payload) Attributes {
	attrs := Attributes{
		ForecastStart: p.ForecastStart,
		ForecastEnd:   p.ForecastEnd,
	}

	if len(p.Minutes) == 0 {
		return attrs
	}

	attrs.Minutes = make([]MinuteRecord, len(p.Minutes))
	for i, m := range p.Minutes {
		attrs.Minutes[i] = MinuteRecord{
			StartTime:              m.StartTime,
			PrecipitationIntensity: m.Intensity,
			PrecipitationChance:    m.Chance,
			PrecipitationType:      m.PrecipType,
		}
	}
	attrs.MinuteCount = len(p.Minutes)

	return attrs
}
