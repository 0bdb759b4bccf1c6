// Package location resolves free-text place names to route codes and
// expands a code to its metro-area alternates.  The underlying index and
// nearby-code table are loaded once at startup and treated as immutable
// for the process lifetime, so all lookups are lock-free.
package location

import (
	"sort"
	"strings"

	"github.com/flightexpert/booking-engine/internal/utils"
)

// Resolver maps normalized place names to route codes.  Construct one with
// NewResolver and share it freely; it is read-only after construction.
type Resolver struct {
	index  map[string]string   // title-cased place name -> primary code
	nearby map[string][]string // code -> ordered alternate codes
}

// NewResolver builds a Resolver from a place-name index and a nearby-code
// table.  Keys of the index are re-normalized defensively so that config
// files with odd casing still resolve.  Nil maps are accepted and yield an
// empty resolver.
func NewResolver(index map[string]string, nearby map[string][]string) *Resolver {
	r := &Resolver{
		index:  make(map[string]string, len(index)),
		nearby: make(map[string][]string, len(nearby)),
	}
	for name, code := range index {
		r.index[utils.TitleCase(name)] = strings.ToUpper(strings.TrimSpace(code))
	}
	for code, alts := range nearby {
		key := strings.ToUpper(strings.TrimSpace(code))
		list := make([]string, 0, len(alts))
		for _, a := range alts {
			a = strings.ToUpper(strings.TrimSpace(a))
			if a != "" {
				list = append(list, a)
			}
		}
		r.nearby[key] = list
	}
	return r
}

// Resolve normalizes the input and looks it up in the index.  On a miss it
// falls back to the trimmed, uppercased raw input rather than failing, so
// downstream lookups proceed with an unverified code instead of aborting
// the conversation.
func (r *Resolver) Resolve(name string) string {
	if code, ok := r.index[utils.TitleCase(name)]; ok {
		return code
	}
	return strings.ToUpper(strings.TrimSpace(name))
}

// IsSupported reports whether the normalized name is a key of the index.
func (r *Resolver) IsSupported(name string) bool {
	_, ok := r.index[utils.TitleCase(name)]
	return ok
}

// ExpandCandidates returns the code followed by its nearby alternates,
// deduplicated with order preserved and the primary code first.
func (r *Resolver) ExpandCandidates(code string) []string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	out := []string{code}
	seen := map[string]bool{code: true}
	for _, alt := range r.nearby[code] {
		if !seen[alt] {
			seen[alt] = true
			out = append(out, alt)
		}
	}
	return out
}

// SupportedNames returns every place name in the index, sorted, for use in
// re-prompt messages listing the supported locations.
func (r *Resolver) SupportedNames() []string {
	names := make([]string, 0, len(r.index))
	for name := range r.index {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
