// Package units provides shared constants and conversions for speed
// units used when displaying flight parameters
package units

// Unit constants
const (
	MPS  = "mps"
	MPH  = "mph"
	KMPH = "kmph"
	KPH  = "kph"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{MPS, MPH, KMPH, KPH}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "mps, mph, kmph, kph"
}

// ConvertSpeed converts a speed from kilometers per hour to the target
// units. The planner works in km/h internally, matching how cruise
// speeds are requested.
func ConvertSpeed(speedKmh float64, targetUnits string) float64 {
	switch targetUnits {
	case MPS:
		return speedKmh / 3.6 // km/h to m/s
	case MPH:
		return speedKmh * 0.621371192237334 // km/h to mph
	case KMPH, KPH:
		return speedKmh // no conversion needed
	default:
		return speedKmh // default to km/h if unknown unit
	}
}

// ConvertToKmh converts a speed in the named units back to kilometers
// per hour for the planner.
func ConvertToKmh(speed float64, fromUnits string) float64 {
	switch fromUnits {
	case MPS:
		return speed * 3.6
	case MPH:
		return speed / 0.621371192237334
	case KMPH, KPH:
		return speed
	default:
		return speed
	}
}
