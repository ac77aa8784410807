// Package outbound prepares SIP messages for sending.
//
// For every message a server originates or proxies the package decides
// which transport to use ([ResolveTransport]), which local listening point
// and address to advertise ([Builder]) and which branch identifier to stamp
// on proxy-created branches ([NewBranch]).
//
// Listening points and NAT detection are external collaborators described
// by the [ListeningPointRegistry], [ListeningPoint] and [NATDetector] interfaces.
// The network interface registry of package netif is the reference implementation.
package outbound

//go:generate errtrace -w .
//go:generate mockgen -destination=../internal/testutil/outboundmock/outbound.go -package=outboundmock . ListeningPoint,ListeningPointRegistry,NATDetector,ProxyBranchListener
