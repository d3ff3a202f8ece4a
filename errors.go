package hxconnect

import (
	"errors"

	"github.com/pthm/hxconnect/lib/componentstate"
)

// Sentinel errors for binding operations.
//
// Configuration errors mean the host wiring is incomplete. Contract
// violations mean a user-supplied mapping function misbehaved. Neither is
// transient and neither is retried.
var (
	ErrStoreNotFound         = errors.New("hxconnect: store not found in props or context")
	ErrRegistryNotFound      = errors.New("hxconnect: component registry not found on store or context")
	ErrComponentsNotCombined = componentstate.ErrNotCombined
	ErrReservedStateKey      = errors.New("hxconnect: \"" + StatePropName + "\" is reserved in mapped state props when using component level state")
	ErrRefDisabled           = errors.New("hxconnect: wrapped instance requires the WithRef option")
	ErrNotMapping            = errors.New("hxconnect: mapping function must return a mapping")
)

var configurationErrors = []error{
	ErrStoreNotFound,
	ErrRegistryNotFound,
	ErrComponentsNotCombined,
	ErrReservedStateKey,
	ErrRefDisabled,
}

// IsConfigurationError checks if err stems from incomplete or invalid host
// wiring.
func IsConfigurationError(err error) bool {
	for _, target := range configurationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsContractViolation checks if err stems from a mapping or merge function
// that did not return a mapping.
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrNotMapping)
}
