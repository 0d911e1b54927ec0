// Package validate enforces acceptance criteria on parsed record sets.
package validate

import (
	"fmt"
	"sort"
	"time"

	"github.com/prasitlab/disaster-lens/internal/model"
)

// CardinalityKind distinguishes the count-based rejection outcomes.
type CardinalityKind string

const (
	// NoData means the extraction produced zero records.
	NoData CardinalityKind = "no_data"
	// TooFew means the record count fell below the lower bound.
	TooFew CardinalityKind = "too_few"
	// TooMany means the record count exceeded the upper bound.
	TooMany CardinalityKind = "too_many"
)

// CardinalityError is a validation-level rejection. Raw preserves the
// generated text unchanged for operator inspection.
type CardinalityError struct {
	Kind  CardinalityKind
	Count int
	Min   int
	Max   int
	Raw   string
}

func (e *CardinalityError) Error() string {
	switch e.Kind {
	case NoData:
		return "no events found"
	case TooFew:
		return fmt.Sprintf("insufficient data: %d events, need at least %d — try a broader disaster type or location", e.Count, e.Min)
	default:
		return fmt.Sprintf("excessive data: %d events, at most %d allowed — try a narrower disaster type or location", e.Count, e.Max)
	}
}

// Bounds are the inclusive limits on acceptable record-set size.
type Bounds struct {
	Min int
	Max int
}

// Result is an accepted record set. ParsedCount is the size before rows with
// unparseable dates were dropped; Events holds the post-drop, time-ordered set.
type Result struct {
	Events      []model.DisasterEvent
	ParsedCount int
}

// timeLayouts are the accepted forms of the event time field, most specific
// first.
var timeLayouts = []string{"2006-01-02", "2006-01", "2006"}

// ParseEventTime parses a month+year or year-only time value.
func ParseEventTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time value %q", value)
}

// Events checks cardinality bounds against the parsed count, drops records
// with an unparseable time field, sorts ascending by parsed time, and assigns
// 1-based display sequence numbers.
//
// Bounds are evaluated before dropping, matching the published behavior: one
// bad date reduces the final set rather than rejecting the whole extraction.
func Events(records []model.DisasterEvent, raw string, b Bounds) (*Result, error) {
	count := len(records)

	switch {
	case count == 0:
		return nil, &CardinalityError{Kind: NoData, Count: count, Min: b.Min, Max: b.Max, Raw: raw}
	case count < b.Min:
		return nil, &CardinalityError{Kind: TooFew, Count: count, Min: b.Min, Max: b.Max, Raw: raw}
	case count > b.Max:
		return nil, &CardinalityError{Kind: TooMany, Count: count, Min: b.Min, Max: b.Max, Raw: raw}
	}

	kept := make([]model.DisasterEvent, 0, count)
	for _, ev := range records {
		t, err := ParseEventTime(ev.Time)
		if err != nil {
			continue // row-level defect: exclude silently
		}
		ev.ParsedTime = t
		kept = append(kept, ev)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].ParsedTime.Before(kept[j].ParsedTime)
	})

	for i := range kept {
		kept[i].Sequence = i + 1
	}

	return &Result{Events: kept, ParsedCount: count}, nil
}
