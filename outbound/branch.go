package outbound

import (
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sipkit/egress/internal/util"
)

// MagicCookie is the RFC 3261 branch prefix.
const MagicCookie = "z9hG4bK"

var (
	clockBase = time.Now()
	lastStamp atomic.Int64
)

// monotonicStamp returns a strictly increasing nanosecond timestamp.
// Two calls never return the same value, even on platforms with a coarse clock.
func monotonicStamp() int64 {
	now := clockBase.UnixNano() + int64(time.Since(clockBase))
	for {
		last := lastStamp.Load()
		next := max(now, last+1)
		if lastStamp.CompareAndSwap(last, next) {
			return next
		}
	}
}

// NewBranch generates a branch identifier for a proxy-created branch:
// the magic cookie, the application session id, the application name
// and a monotonic timestamp, joined by underscores.
//
//	z9hG4bK<appSessionID>_<appName>_<timestamp>
//
// The result is unique within the process.
func NewBranch(appSessionID, appName string) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	sb.WriteString(MagicCookie)
	sb.WriteString(appSessionID)
	sb.WriteByte('_')
	sb.WriteString(appName)
	sb.WriteByte('_')
	sb.WriteString(strconv.FormatInt(monotonicStamp(), 10))
	return sb.String()
}

// NewBranch is like [NewBranch] but also records statistics.
func (b *Builder) NewBranch(appSessionID, appName string) string {
	b.stats.RecordBranch()
	return NewBranch(appSessionID, appName)
}

// IsRFC3261Branch reports whether the branch starts with the RFC 3261 magic cookie.
func IsRFC3261Branch(branch string) bool {
	return len(branch) > len(MagicCookie) && strings.HasPrefix(branch, MagicCookie)
}
