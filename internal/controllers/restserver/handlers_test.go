package restserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/minutewx/nexthour/internal/coordinator"
	"github.com/minutewx/nexthour/internal/sensor"
	"github.com/minutewx/nexthour/internal/translate"
	"github.com/minutewx/nexthour/pkg/config"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

func newTestController(t *testing.T) (*Controller, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	logger := zap.NewNop().Sugar()
	coord := coordinator.New()
	sens := sensor.New(translate.New("en"), logger, 47.6, -122.3)
	sens.Run(ctx, &wg, coord.Subscribe())
	coord.Start(ctx, &wg)

	ctrl, err := NewController(ctx, &wg, config.RESTData{Port: 8080}, coord, sens, logger)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return ctrl, cancel
}

// waitForAvailability polls the sensor until it reaches the wanted state.
func waitForAvailability(t *testing.T, ctrl *Controller, want sensor.Availability) sensor.Snapshot {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap := ctrl.sensor.Snapshot()
		if snap.Availability == want {
			return snap
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("sensor never reached availability %q", want)
	return sensor.Snapshot{}
}

const snowPayload = `{
	"forecastStart": "2023-09-08T22:03:04Z",
	"forecastEnd": "2023-09-08T23:03:04Z",
	"daylight": true,
	"minutes": [
		{"precipitationIntensity": 0, "precipitationType": "clear"},
		{"precipitationIntensity": 0, "precipitationType": "clear"},
		{"precipitationIntensity": 3.0, "precipitationChance": 0.8, "precipitationType": "snow"},
		{"precipitationIntensity": 3.0, "precipitationChance": 0.8, "precipitationType": "snow"},
		{"precipitationIntensity": 0, "precipitationType": "clear"},
		{"precipitationIntensity": 0, "precipitationType": "clear"}
	]
}`

func TestPutForecastThenGetNextHour(t *testing.T) {
	ctrl, cancel := newTestController(t)
	defer cancel()
	router := ctrl.setupRouter()

	put := httptest.NewRequest(http.MethodPut, "/v1/forecast", strings.NewReader(snowPayload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, put)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("PUT /v1/forecast = %d, want %d", rec.Code, http.StatusAccepted)
	}

	waitForAvailability(t, ctrl, sensor.AvailabilityAvailable)

	get := httptest.NewRequest(http.MethodGet, "/v1/nexthour", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, get)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /v1/nexthour = %d, want %d", rec.Code, http.StatusOK)
	}

	var snap sensor.Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decoding snapshot: %v", err)
	}

	if snap.State != "Moderate snow starting in 2 minutes, lasting 2 minutes" {
		t.Errorf("state = %q", snap.State)
	}
	if snap.Icon != "mdi:weather-snowy-heavy" {
		t.Errorf("icon = %q", snap.Icon)
	}
	if snap.Attributes.MinuteCount != 6 {
		t.Errorf("minute_count = %d, want 6", snap.Attributes.MinuteCount)
	}
	if snap.Attributes.ForecastStart != "2023-09-08T22:03:04Z" {
		t.Errorf("forecast_start = %q", snap.Attributes.ForecastStart)
	}
}

func TestGetNextHourBeforeAnyPayload(t *testing.T) {
	ctrl, cancel := newTestController(t)
	defer cancel()
	router := ctrl.setupRouter()

	get := httptest.NewRequest(http.MethodGet, "/v1/nexthour", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, get)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /v1/nexthour = %d, want %d", rec.Code, http.StatusOK)
	}

	var snap sensor.Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decoding snapshot: %v", err)
	}
	if snap.Availability != sensor.AvailabilityNoData {
		t.Errorf("availability = %q, want %q", snap.Availability, sensor.AvailabilityNoData)
	}
	if snap.Icon != "mdi:weather-partly-cloudy" {
		t.Errorf("icon = %q", snap.Icon)
	}
}

func TestPutForecastRejectsMalformedBody(t *testing.T) {
	ctrl, cancel := newTestController(t)
	defer cancel()
	router := ctrl.setupRouter()

	put := httptest.NewRequest(http.MethodPut, "/v1/forecast", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, put)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("PUT /v1/forecast = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestForecastFailureMarksSensorUnavailable(t *testing.T) {
	ctrl, cancel := newTestController(t)
	defer cancel()
	router := ctrl.setupRouter()

	put := httptest.NewRequest(http.MethodPut, "/v1/forecast", strings.NewReader(snowPayload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, put)
	waitForAvailability(t, ctrl, sensor.AvailabilityAvailable)

	fail := httptest.NewRequest(http.MethodPost, "/v1/forecast/failure", strings.NewReader(`{"reason": "provider timeout"}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, fail)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("POST /v1/forecast/failure = %d, want %d", rec.Code, http.StatusAccepted)
	}

	snap := waitForAvailability(t, ctrl, sensor.AvailabilityUnavailable)
	if snap.State != "" {
		t.Errorf("state survived the failure: %q", snap.State)
	}
}

func TestGetNextHourMsgPack(t *testing.T) {
	ctrl, cancel := newTestController(t)
	defer cancel()
	router := ctrl.setupRouter()

	put := httptest.NewRequest(http.MethodPut, "/v1/forecast", strings.NewReader(snowPayload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, put)
	waitForAvailability(t, ctrl, sensor.AvailabilityAvailable)

	get := httptest.NewRequest(http.MethodGet, "/v1/nexthour?format=msgpack", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, get)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /v1/nexthour = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/msgpack" {
		t.Errorf("Content-Type = %q, want application/msgpack", ct)
	}

	var snap sensor.Snapshot
	if err := msgpack.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decoding msgpack: %v", err)
	}
	if snap.Icon != "mdi:weather-snowy-heavy" {
		t.Errorf("icon = %q", snap.Icon)
	}
}

func TestGetHealth(t *testing.T) {
	ctrl, cancel := newTestController(t)
	defer cancel()
	router := ctrl.setupRouter()

	get := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, get)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /v1/health = %d, want %d", rec.Code, http.StatusOK)
	}

	var status map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decoding health response: %v", err)
	}
	if status["status"] != "ok" {
		t.Errorf("status = %v, want ok", status["status"])
	}
	if status["availability"] != string(sensor.AvailabilityNoData) {
		t.Errorf("availability = %v, want %q", status["availability"], sensor.AvailabilityNoData)
	}
}

func TestGetLogsRejectsBadLimit(t *testing.T) {
	ctrl, cancel := newTestController(t)
	defer cancel()
	router := ctrl.setupRouter()

	get := httptest.NewRequest(http.MethodGet, "/v1/logs?limit=zero", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, get)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("GET /v1/logs = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
