package units

import (
	"math"
	"testing"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		expected bool
	}{
		{"valid mps", MPS, true},
		{"valid mph", MPH, true},
		{"valid kmph", KMPH, true},
		{"valid kph", KPH, true},
		{"invalid unit", "invalid", false},
		{"empty unit", "", false},
		{"uppercase MPS", "MPS", false}, // Case-sensitive
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValid(tt.unit)
			if result != tt.expected {
				t.Errorf("IsValid(%s) = %v, want %v", tt.unit, result, tt.expected)
			}
		})
	}
}

func TestGetValidUnitsString(t *testing.T) {
	result := GetValidUnitsString()
	expected := "mps, mph, kmph, kph"
	if result != expected {
		t.Errorf("GetValidUnitsString() = %s, want %s", result, expected)
	}
}

func TestConvertSpeed(t *testing.T) {
	tests := []struct {
		name     string
		speedKmh float64
		unit     string
		expected float64
	}{
		// Test KM/H (no conversion)
		{"0 km/h to kmph", 0.0, KMPH, 0.0},
		{"54 km/h to kmph", 54.0, KMPH, 54.0},
		{"54 km/h to kph", 54.0, KPH, 54.0},

		// Test m/s conversion (1 m/s = 3.6 km/h)
		{"0 km/h to mps", 0.0, MPS, 0.0},
		{"3.6 km/h to mps", 3.6, MPS, 1.0},
		{"54 km/h to mps", 54.0, MPS, 15.0},

		// Test mph conversion
		{"0 km/h to mph", 0.0, MPH, 0.0},
		{"100 km/h to mph", 100.0, MPH, 62.1371192237334},

		// Test unknown unit (falls back to km/h)
		{"54 km/h to unknown", 54.0, "unknown", 54.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertSpeed(tt.speedKmh, tt.unit)
			if math.Abs(result-tt.expected) > 1e-10 {
				t.Errorf("ConvertSpeed(%f, %s) = %f, want %f", tt.speedKmh, tt.unit, result, tt.expected)
			}
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	kmh := 43.2

	mps := ConvertSpeed(kmh, MPS)
	backToKmh := ConvertToKmh(mps, MPS)
	if math.Abs(backToKmh-kmh) > 1e-10 {
		t.Errorf("mps round trip: %f -> %f -> %f", kmh, mps, backToKmh)
	}

	mph := ConvertSpeed(kmh, MPH)
	backToKmh = ConvertToKmh(mph, MPH)
	if math.Abs(backToKmh-kmh) > 1e-10 {
		t.Errorf("mph round trip: %f -> %f -> %f", kmh, mph, backToKmh)
	}

	backToKmh = ConvertToKmh(ConvertSpeed(kmh, KPH), KPH)
	if math.Abs(backToKmh-kmh) > 1e-10 {
		t.Errorf("kph round trip: %f -> %f", kmh, backToKmh)
	}
}
