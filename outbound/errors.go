package outbound

import "github.com/sipkit/egress/internal/errorutil"

// Common errors.
const (
	ErrInvalidArgument = errorutil.ErrInvalidArgument
)

// Listening point selection errors.
const (
	// ErrNoMatchingInterface is returned when no listening point matches
	// the requested transport or outbound interface.
	ErrNoMatchingInterface Error = "no matching interface"
	// ErrInvalidOutboundInterface is returned when an explicit outbound interface
	// cannot be parsed as a SIP URI.
	ErrInvalidOutboundInterface Error = "invalid outbound interface"
)

// Error represents an outbound layer error.
// See [errorutil.Error].
type Error = errorutil.Error

// NewInvalidArgumentError creates a new error with [ErrInvalidArgument] or
// wraps provided error with [ErrInvalidArgument].
func NewInvalidArgumentError(args ...any) error {
	return errorutil.NewInvalidArgumentError(args...) //errtrace:skip
}
