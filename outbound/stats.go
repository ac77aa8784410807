package outbound

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

type StatsReport struct {
	Time        time.Time        `json:"time"`
	Transports  []TransportStats `json:"transports"`
	Headers     []HeaderStats    `json:"headers"`
	Branches    uint64           `json:"branches"`
	Timeouts    TimeoutStats     `json:"timeouts"`
	CacheHits   uint64           `json:"cache_hits"`
	PublicAddrs uint64           `json:"public_addrs"`
}

type TransportStats struct {
	// Transport is a resolved transport.
	Transport Transport `json:"transport"`
	// Resolved is a number of messages resolved to the transport.
	Resolved uint64 `json:"resolved"`
}

type HeaderStats struct {
	// Kind is a header kind: "via", "contact" or "record_route".
	Kind string `json:"kind"`
	// Built is a number of successfully built headers.
	Built uint64 `json:"built"`
	// NoInterface is a number of failures due to a missing listening point.
	NoInterface uint64 `json:"no_interface"`
	// InvalidInterface is a number of failures due to a malformed outbound interface.
	InvalidInterface uint64 `json:"invalid_interface"`
}

type TimeoutStats struct {
	// Provisional is a number of reported provisional response timeouts.
	Provisional uint64 `json:"provisional"`
	// Final is a number of reported final response timeouts.
	Final uint64 `json:"final"`
}

// StatsRecorder records outbound layer statistics.
// The zero value is ready to use. A nil recorder discards all records.
type StatsRecorder struct {
	transps sync.Map // map[Transport]*atomic.Uint64
	hdrs    sync.Map // map[headerKind]*hdrStats

	cacheHits,
	publicAddrs,
	branches,
	provTimeouts,
	finalTimeouts atomic.Uint64
}

type hdrStats struct {
	built,
	noIface,
	badIface atomic.Uint64
}

func (rcdr *StatsRecorder) recordResolve(tp Transport, cached bool) {
	if rcdr == nil {
		return
	}
	if cached {
		rcdr.cacheHits.Add(1)
		return
	}
	v, _ := rcdr.transps.LoadOrStore(tp, new(atomic.Uint64))
	v.(*atomic.Uint64).Add(1) //nolint:forcetypeassert
}

func (rcdr *StatsRecorder) hdrStats(kind headerKind) *hdrStats {
	v, _ := rcdr.hdrs.LoadOrStore(kind, new(hdrStats))
	return v.(*hdrStats) //nolint:forcetypeassert
}

func (rcdr *StatsRecorder) recordHeader(kind headerKind, usePublic bool) {
	if rcdr == nil {
		return
	}
	rcdr.hdrStats(kind).built.Add(1)
	if usePublic {
		rcdr.publicAddrs.Add(1)
	}
}

func (rcdr *StatsRecorder) recordHeaderErr(kind headerKind, invalidIface bool) {
	if rcdr == nil {
		return
	}
	if invalidIface {
		rcdr.hdrStats(kind).badIface.Add(1)
	} else {
		rcdr.hdrStats(kind).noIface.Add(1)
	}
}

// RecordBranch records a generated branch identifier.
func (rcdr *StatsRecorder) RecordBranch() {
	if rcdr == nil {
		return
	}
	rcdr.branches.Add(1)
}

func (rcdr *StatsRecorder) recordTimeout(class ResponseClass) {
	if rcdr == nil {
		return
	}
	switch class {
	case ResponseClassProvisional:
		rcdr.provTimeouts.Add(1)
	case ResponseClassFinal:
		rcdr.finalTimeouts.Add(1)
	}
}

// Report returns statistics report about the outbound layer.
// Call this function periodically to get updated values.
func (rcdr *StatsRecorder) Report() StatsReport {
	report := StatsReport{
		Time: time.Now(),
	}
	if rcdr == nil {
		return report
	}

	rcdr.transps.Range(func(key, value any) bool {
		report.Transports = append(report.Transports, TransportStats{
			Transport: key.(Transport),               //nolint:forcetypeassert
			Resolved:  value.(*atomic.Uint64).Load(), //nolint:forcetypeassert
		})
		return true
	})
	slices.SortFunc(report.Transports, func(a, b TransportStats) int {
		return cmp.Compare(a.Transport, b.Transport)
	})

	rcdr.hdrs.Range(func(key, value any) bool {
		st := value.(*hdrStats) //nolint:forcetypeassert
		report.Headers = append(report.Headers, HeaderStats{
			Kind:             string(key.(headerKind)), //nolint:forcetypeassert
			Built:            st.built.Load(),
			NoInterface:      st.noIface.Load(),
			InvalidInterface: st.badIface.Load(),
		})
		return true
	})
	slices.SortFunc(report.Headers, func(a, b HeaderStats) int {
		return cmp.Compare(a.Kind, b.Kind)
	})

	report.CacheHits = rcdr.cacheHits.Load()
	report.PublicAddrs = rcdr.publicAddrs.Load()
	report.Branches = rcdr.branches.Load()
	report.Timeouts = TimeoutStats{
		Provisional: rcdr.provTimeouts.Load(),
		Final:       rcdr.finalTimeouts.Load(),
	}
	return report
}
