package vehicle

import (
	"fmt"

	"fleetroute/internal/pkg/errs"
)

// TransportType is how the courier is registered: the concrete means of
// transport shown in the UI and recorded against the courier.
type TransportType string

const (
	TransportCar     TransportType = "car"
	TransportTruck   TransportType = "truck"
	TransportBicycle TransportType = "bicycle"
	TransportScooter TransportType = "scooter"
	TransportWalk    TransportType = "walk"
)

// Profile is the movement class a routing backend plans with. It is a small
// fixed enumeration; several transport types collapse into one profile.
type Profile int

const (
	// ProfileUnknown catches uninitialized Profile values.
	ProfileUnknown Profile = iota

	// DrivingCar is the general driving profile and the fallback for
	// unknown transport types.
	DrivingCar

	// DrivingTruck applies truck-specific road restrictions.
	DrivingTruck

	// Cycling covers bicycles and scooters.
	Cycling

	// Walking is the on-foot profile.
	Walking
)

func getProfileStrings() map[Profile]string {
	return map[Profile]string{
		ProfileUnknown: "Unknown",
		DrivingCar:     "DrivingCar",
		DrivingTruck:   "DrivingTruck",
		Cycling:        "Cycling",
		Walking:        "Walking",
	}
}

// Validate checks that the Profile holds one of the defined movement classes.
func (p Profile) Validate() error {
	if p != DrivingCar && p != DrivingTruck && p != Cycling && p != Walking {
		return errs.NewValueIsInvalidErrorWithCause("profile is invalid",
			fmt.Errorf("%d is not a valid movement profile", p))
	}
	return nil
}

// String implements fmt.Stringer.
func (p Profile) String() string {
	if str, ok := getProfileStrings()[p]; ok {
		return str
	}
	return "Unknown"
}

// ProfileForTransport maps a transport type to its movement profile.
// Unknown transport types fall back to the general driving profile.
func ProfileForTransport(t TransportType) Profile {
	switch t {
	case TransportTruck:
		return DrivingTruck
	case TransportBicycle, TransportScooter:
		return Cycling
	case TransportWalk:
		return Walking
	case TransportCar:
		return DrivingCar
	default:
		return DrivingCar
	}
}
