// Package routetext extracts an (origin, destination) candidate pair from
// combined free text such as "from Dhaka to Toronto".  It performs no
// validation of whether either segment is a real place; callers must treat
// a hit as a candidate and re-validate both parts before accepting them.
package routetext

import (
	"regexp"

	"github.com/flightexpert/booking-engine/internal/utils"
)

// The "from A to B" form is tried first.  The bare "A to B" form is
// intentionally permissive and will match many unrelated two-part phrases,
// which is why parse results are only candidates.
var (
	fromToPattern = regexp.MustCompile(`(?i)^\s*from\s+(.+?)\s+to\s+(.+?)\s*$`)
	barePattern   = regexp.MustCompile(`(?i)^\s*(.+?)\s+to\s+(.+?)\s*$`)
)

// ParseRoute returns both segments normalized to title case on the first
// matching pattern, and ok=false when neither pattern matches.
func ParseRoute(text string) (origin, destination string, ok bool) {
	for _, re := range []*regexp.Regexp{fromToPattern, barePattern} {
		if m := re.FindStringSubmatch(text); m != nil {
			return utils.TitleCase(m[1]), utils.TitleCase(m[2]), true
		}
	}
	return "", "", false
}
