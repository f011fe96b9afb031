package substack

import (
	"fmt"
	"time"
)

// DateRange restricts which discovered posts get fetched. both bounds
// are inclusive, the end bound through the end of its calendar day.
// a zero bound leaves that side open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

func (r DateRange) Validate() error {
	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		return fmt.Errorf("date range ends before it starts")
	}
	return nil
}

// Contains reports whether a publish date falls inside the range.
// zero dates (listing entries with no machine readable date) are
// retained rather than silently filtered on a made-up date.
func (r DateRange) Contains(t time.Time) bool {
	if t.IsZero() {
		return true
	}
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() {
		endOfDay := time.Date(
			r.End.Year(), r.End.Month(), r.End.Day(),
			23, 59, 59, 0, r.End.Location(),
		)
		if t.After(endOfDay) {
			return false
		}
	}
	return true
}

// FilterByDate drops references outside the range, preserving the
// listing order of everything it keeps.
func FilterByDate(refs []PostReference, r DateRange) []PostReference {
	if r.IsZero() {
		return refs
	}
	filtered := make([]PostReference, 0, len(refs))
	for _, ref := range refs {
		if r.Contains(ref.PublishedAt) {
			filtered = append(filtered, ref)
		}
	}
	return filtered
}
