// Package dates normalizes the date notations the booking engine accepts.
// Two paths exist on purpose: a permissive multi-format normalizer used for
// bulk schedule ingestion, and a strict DD/MM/YYYY validator for the
// conversational travel/return date fields.
package dates

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ISOFormat is the canonical storage form for every normalized date.
const ISOFormat = "2006-01-02"

// Error kinds surfaced by the conversational validator.  Callers branch on
// these to choose the right re-prompt, so they are sentinels rather than
// plain fmt.Errorf values.
var (
	// ErrFormat means the text does not match any accepted notation.
	ErrFormat = errors.New("unrecognized date format")
	// ErrInvalidCalendarDate means the notation matched but the date does
	// not exist (e.g. 31/02/2025).
	ErrInvalidCalendarDate = errors.New("invalid calendar date")
	// ErrPastDate means the date lies strictly before today.
	ErrPastDate = errors.New("date is in the past")
	// ErrReturnBeforeTravel means the return date precedes the travel date.
	ErrReturnBeforeTravel = errors.New("return date before travel date")
)

var (
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slashedPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	dashedDMY      = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
	slashedYMD     = regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})$`)
	conversational = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// Normalizer parses date strings to the canonical ISO form.  DayFirst
// breaks the tie for slashed dates where both components could be the day
// (e.g. 03/04/2025); when a component exceeds 12 the ambiguity resolves
// itself.
type Normalizer struct {
	DayFirst bool
}

// New returns a Normalizer with the day-first preference, which matches
// the DD/MM/YYYY convention the conversational path enforces.
func New() *Normalizer { return &Normalizer{DayFirst: true} }

// NormalizeGeneral accepts ISO dates, ISO datetimes (with an optional
// trailing Z), DD/MM/YYYY or MM/DD/YYYY, DD-MM-YYYY and YYYY/MM/DD, and
// returns the date in ISO form.  It is used for bulk schedule ingestion,
// not for live conversation input.
func (n *Normalizer) NormalizeGeneral(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrFormat
	}

	if isoDatePattern.MatchString(s) {
		t, err := time.Parse(ISOFormat, s)
		if err != nil {
			return "", ErrInvalidCalendarDate
		}
		return t.Format(ISOFormat), nil
	}

	// ISO datetime, accepting a literal Z zone marker.
	if strings.Contains(s, "T") {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format(ISOFormat), nil
			}
		}
		return "", ErrFormat
	}

	if m := slashedPattern.FindStringSubmatch(s); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		var day, month int
		switch {
		case a > 12 && b <= 12:
			day, month = a, b
		case b > 12 && a <= 12:
			day, month = b, a
		case n.DayFirst:
			day, month = a, b
		default:
			day, month = b, a
		}
		return buildDate(y, month, day)
	}

	if m := dashedDMY.FindStringSubmatch(s); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		return buildDate(y, mo, d)
	}

	if m := slashedYMD.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		return buildDate(y, mo, d)
	}

	return "", ErrFormat
}

// ParseConversational converts a strict DD/MM/YYYY string to ISO form.  The
// layout is fixed: unlike NormalizeGeneral it never consults the DayFirst
// preference, and it applies no past-date rule.  It is the re-parse path for
// dates a previous turn already accepted via ValidateConversationalDate.
func ParseConversational(s string) (string, error) {
	m := conversational.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", ErrFormat
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	return buildDate(year, month, day)
}

// ValidateConversationalDate is the strict path for the user-facing
// travel/return date fields.  Only DD/MM/YYYY is accepted.  It rejects
// malformed strings, impossible calendar dates and dates strictly before
// today, and returns the date in ISO form on success.
func (n *Normalizer) ValidateConversationalDate(s string, today time.Time) (string, error) {
	iso, err := ParseConversational(s)
	if err != nil {
		return "", err
	}
	// ISO dates order lexicographically, so a plain string comparison
	// against today's date is enough.
	if iso < today.Format(ISOFormat) {
		return "", ErrPastDate
	}
	return iso, nil
}

// ValidateReturnDate applies the conversational rules and additionally
// rejects a return date earlier than the already-collected travel date,
// given in ISO form.  An empty travelISO skips the range check.
func (n *Normalizer) ValidateReturnDate(s string, today time.Time, travelISO string) (string, error) {
	iso, err := n.ValidateConversationalDate(s, today)
	if err != nil {
		return "", err
	}
	if travelISO != "" && iso < travelISO {
		return "", ErrReturnBeforeTravel
	}
	return iso, nil
}

// buildDate verifies that year/month/day name a real calendar date.
// time.Date silently normalizes overflow (Feb 31 -> Mar 3), so the result
// is compared back against the inputs.
func buildDate(year, month, day int) (string, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", ErrInvalidCalendarDate
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return "", ErrInvalidCalendarDate
	}
	return t.Format(ISOFormat), nil
}
