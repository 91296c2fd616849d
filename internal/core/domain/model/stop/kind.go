package stop

import (
	"fmt"

	"fleetroute/internal/pkg/errs"
)

// Kind distinguishes where the courier interacts with the recipient. A
// Delivery stop is an outbound depot→customer visit; a Pickup stop is a
// customer→depot collection. The distinction drives how the stop is modelled
// for the solver: the customer-side leg is the one that carries the service
// time and time window.
type Kind int

const (
	// KindUnknown catches uninitialized Kind values.
	KindUnknown Kind = iota

	// Delivery is an outbound visit bringing goods to the customer.
	Delivery

	// Pickup is a collection visit bringing goods back to the depot.
	Pickup
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown: "Unknown",
		Delivery:    "Delivery",
		Pickup:      "Pickup",
	}
}

// Validate checks that the Kind is Delivery or Pickup.
func (k Kind) Validate() error {
	if k != Delivery && k != Pickup {
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid",
			fmt.Errorf("%d is not a valid stop kind", k))
	}
	return nil
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}
