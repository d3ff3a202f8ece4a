package hxconnect

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pthm/hxconnect/lib/encoding"
)

func TestSentinelErrors(t *testing.T) {
	// Verify sentinel errors are distinct
	errs := []error{
		ErrStoreNotFound,
		ErrRegistryNotFound,
		ErrComponentsNotCombined,
		ErrReservedStateKey,
		ErrRefDisabled,
		ErrNotMapping,
	}

	for i, err1 := range errs {
		for j, err2 := range errs {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v and %v", err1, err2)
			}
		}
	}
}

func TestIsConfigurationError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrStoreNotFound", ErrStoreNotFound, true},
		{"wrapped ErrStoreNotFound", fmt.Errorf("%w: detail", ErrStoreNotFound), true},
		{"ErrRegistryNotFound", ErrRegistryNotFound, true},
		{"ErrComponentsNotCombined", ErrComponentsNotCombined, true},
		{"ErrReservedStateKey", ErrReservedStateKey, true},
		{"ErrRefDisabled", ErrRefDisabled, true},
		{"ErrNotMapping", ErrNotMapping, false},
		{"other error", errors.New("other error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsConfigurationError(tt.err)
			if result != tt.expect {
				t.Errorf("IsConfigurationError(%v) = %v, want %v", tt.err, result, tt.expect)
			}
		})
	}
}

func TestIsContractViolation(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrNotMapping", ErrNotMapping, true},
		{"wrapped ErrNotMapping", fmt.Errorf("wrapped: %w", ErrNotMapping), true},
		{"ErrStoreNotFound", ErrStoreNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsContractViolation(tt.err)
			if result != tt.expect {
				t.Errorf("IsContractViolation(%v) = %v, want %v", tt.err, result, tt.expect)
			}
		})
	}
}

func TestIsSnapshotError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrInvalidFormat", encoding.ErrInvalidFormat, true},
		{"ErrSignatureInvalid", encoding.ErrSignatureInvalid, true},
		{"wrapped ErrDecryptFailed", fmt.Errorf("wrapped: %w", encoding.ErrDecryptFailed), true},
		{"ErrNotMapping", ErrNotMapping, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSnapshotError(tt.err); got != tt.expect {
				t.Errorf("IsSnapshotError(%v) = %v, want %v", tt.err, got, tt.expect)
			}
		})
	}
}
