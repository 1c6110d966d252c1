package catalog

import (
	"time"

	iso8601 "github.com/senseyeio/duration"
	"github.com/travigo/coruna-bus/pkg/ctdf"
)

// IsStale reports whether the catalog was generated more than maxAge before
// now. A catalog without a generation time is always stale.
func IsStale(catalog *ctdf.Catalog, now time.Time, maxAge iso8601.Duration) bool {
	if catalog == nil || catalog.GeneratedAt.IsZero() {
		return true
	}

	return maxAge.Shift(catalog.GeneratedAt).Before(now)
}
