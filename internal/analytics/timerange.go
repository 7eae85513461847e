package analytics

import (
	"time"

	"github.com/chixitown/site/internal/types"
)

// Window is the trailing period every summary covers
const Window = 7 * 24 * time.Hour

// TimestampLayout renders UTC instants with millisecond precision
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// TrailingWindow returns [now-Window, now] formatted for the upstream API
func TrailingWindow(now time.Time) types.TimeRange {
	to := now.UTC().Truncate(time.Millisecond)
	from := to.Add(-Window)
	return types.TimeRange{
		From: from.Format(TimestampLayout),
		To:   to.Format(TimestampLayout),
	}
}
