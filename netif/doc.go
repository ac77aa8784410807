// Package netif provides the reference network interface registry of the outbound layer:
// immutable listening points, a registry selecting them, NAT detectors
// and the YAML configuration they are built from.
package netif

//go:generate errtrace -w .
