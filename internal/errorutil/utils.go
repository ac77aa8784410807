package errorutil

import (
	"errors"
	"net"
)

// IsTimeoutErr returns true if the error is a timeout error.
func IsTimeoutErr(err error) bool {
	var e interface{ Timeout() bool }
	return errors.As(err, &e) && e.Timeout()
}

// IsNotFoundErr returns true if the error is a DNS "not found" error.
func IsNotFoundErr(err error) bool {
	var e *net.DNSError
	return errors.As(err, &e) && e.IsNotFound
}
