package forecast

import (
	"reflect"
	"testing"
)

// run builds a minute sequence from parallel intensity/type slices.
func run(intensities []float64, precipType string) []Minute {
	minutes := make([]Minute, len(intensities))
	for i, v := range intensities {
		minutes[i] = Minute{Intensity: v, PrecipType: precipType}
		if v == 0 {
			minutes[i].PrecipType = TypeClear
		}
	}
	return minutes
}

func TestSegment(t *testing.T) {
	tests := []struct {
		name     string
		minutes  []Minute
		expected []Period
	}{
		{
			name:     "empty input",
			minutes:  nil,
			expected: nil,
		},
		{
			name:     "all zero intensity",
			minutes:  run([]float64{0, 0, 0, 0}, TypeRain),
			expected: nil,
		},
		{
			name:    "single non-zero sample at offset zero",
			minutes: run([]float64{0.5}, TypeRain),
			expected: []Period{
				{Start: 0, End: 0, PrecipType: TypeRain, MaxIntensity: 0.5},
			},
		},
		{
			name:    "uniform six-minute rain run",
			minutes: run([]float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}, TypeRain),
			expected: []Period{
				{Start: 0, End: 5, PrecipType: TypeRain, MaxIntensity: 0.5},
			},
		},
		{
			name:    "run bounded by zeros",
			minutes: run([]float64{0, 0, 3.0, 3.0, 0, 0}, TypeSnow),
			expected: []Period{
				{Start: 2, End: 3, PrecipType: TypeSnow, MaxIntensity: 3.0},
			},
		},
		{
			name:    "two separate periods",
			minutes: run([]float64{1.0, 0, 0, 2.0, 2.5, 0, 0.1}, TypeRain),
			expected: []Period{
				{Start: 0, End: 0, PrecipType: TypeRain, MaxIntensity: 1.0},
				{Start: 3, End: 4, PrecipType: TypeRain, MaxIntensity: 2.5},
				{Start: 6, End: 6, PrecipType: TypeRain, MaxIntensity: 0.1},
			},
		},
		{
			name: "last non-clear type wins",
			minutes: []Minute{
				{Intensity: 1.0, PrecipType: TypeRain},
				{Intensity: 1.5, PrecipType: TypeClear},
				{Intensity: 2.0, PrecipType: TypeSleet},
				{Intensity: 0.5, PrecipType: TypeClear},
			},
			expected: []Period{
				{Start: 0, End: 3, PrecipType: TypeSleet, MaxIntensity: 2.0},
			},
		},
		{
			name: "all-clear type with intensity keeps clear marker",
			minutes: []Minute{
				{Intensity: 0.2, PrecipType: TypeClear},
				{Intensity: 0.3, PrecipType: TypeClear},
			},
			expected: []Period{
				{Start: 0, End: 1, PrecipType: TypeClear, MaxIntensity: 0.3},
			},
		},
		{
			name: "peak intensity is the maximum not the last",
			minutes: []Minute{
				{Intensity: 1.0, PrecipType: TypeRain},
				{Intensity: 11.0, PrecipType: TypeRain},
				{Intensity: 0.2, PrecipType: TypeRain},
			},
			expected: []Period{
				{Start: 0, End: 2, PrecipType: TypeRain, MaxIntensity: 11.0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.minutes)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Segment() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestSegmentCountsMaximalRuns(t *testing.T) {
	// The number of periods must equal the number of maximal contiguous runs
	// of non-zero intensity in the window.
	intensities := []float64{0, 1, 1, 0, 2, 0, 0, 3, 3, 3, 0, 4}
	minutes := run(intensities, TypeRain)

	runs := 0
	inRun := false
	for _, v := range intensities {
		if v > 0 && !inRun {
			runs++
			inRun = true
		} else if v == 0 {
			inRun = false
		}
	}

	periods := Segment(minutes)
	if len(periods) != runs {
		t.Errorf("got %d periods, want %d contiguous runs", len(periods), runs)
	}
}

func TestSegmentIdempotent(t *testing.T) {
	minutes := run([]float64{0, 0.5, 1.5, 0, 0, 2.0}, TypeSnow)

	first := Segment(minutes)
	second := Segment(minutes)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated segmentation differs: %+v vs %+v", first, second)
	}
}

func TestWindowTruncation(t *testing.T) {
	// A 90-minute sequence and its first 60 minutes must produce identical
	// periods once passed through the window.
	long := make([]Minute, 90)
	for i := range long {
		long[i] = Minute{Intensity: 0.5, PrecipType: TypeRain}
	}
	short := long[:60]

	if len(Window(long)) != MaxMinutes {
		t.Fatalf("window length = %d, want %d", len(Window(long)), MaxMinutes)
	}

	fromLong := Segment(Window(long))
	fromShort := Segment(Window(short))
	if !reflect.DeepEqual(fromLong, fromShort) {
		t.Errorf("truncated and pre-trimmed inputs disagree: %+v vs %+v", fromLong, fromShort)
	}

	if fromLong[0].End != MaxMinutes-1 {
		t.Errorf("period end = %d, want %d", fromLong[0].End, MaxMinutes-1)
	}
}
