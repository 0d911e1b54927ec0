package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasitlab/disaster-lens/internal/model"
)

var bounds = Bounds{Min: 10, Max: 100}

func makeEvents(times ...string) []model.DisasterEvent {
	events := make([]model.DisasterEvent, len(times))
	for i, tm := range times {
		events[i] = model.DisasterEvent{
			Time:         tm,
			DamageAmount: 1000000,
			Fatalities:   1,
			Injuries:     2,
			Source:       "X: http://x",
			Description:  "...",
		}
	}
	return events
}

func TestEvents_TooFew(t *testing.T) {
	raw := `[{"เวลา":"2023-05"}]`
	events := makeEvents("2023-05", "2023-05", "2023-05", "2023-05", "2023-05",
		"2023-05", "2023-05", "2023-05", "2023-05")

	_, err := Events(events, raw, bounds)
	require.Error(t, err)

	var cardErr *CardinalityError
	require.ErrorAs(t, err, &cardErr)
	assert.Equal(t, TooFew, cardErr.Kind)
	assert.Equal(t, 9, cardErr.Count)
	assert.Equal(t, raw, cardErr.Raw)
	assert.Contains(t, cardErr.Error(), "insufficient data")
}

func TestEvents_TooMany(t *testing.T) {
	times := make([]string, 101)
	for i := range times {
		times[i] = "2020-01"
	}

	var cardErr *CardinalityError
	_, err := Events(makeEvents(times...), "raw", bounds)
	require.ErrorAs(t, err, &cardErr)
	assert.Equal(t, TooMany, cardErr.Kind)
	assert.Equal(t, "raw", cardErr.Raw)
}

func TestEvents_Empty(t *testing.T) {
	var cardErr *CardinalityError
	_, err := Events(nil, "[]", bounds)
	require.ErrorAs(t, err, &cardErr)
	assert.Equal(t, NoData, cardErr.Kind)
}

func TestEvents_SortsAscendingAndNumbers(t *testing.T) {
	// 15 distinct times supplied out of order
	times := []string{
		"2024-03", "2010", "2019-12", "2005-06", "2021-01",
		"2018", "2013-07", "2022-11", "2008-02", "2016-09",
		"2011-04", "2023-05", "2007", "2015-10", "2020-08",
	}

	result, err := Events(makeEvents(times...), "raw", bounds)
	require.NoError(t, err)
	require.Len(t, result.Events, 15)
	assert.Equal(t, 15, result.ParsedCount)

	for i := 1; i < len(result.Events); i++ {
		assert.False(t, result.Events[i].ParsedTime.Before(result.Events[i-1].ParsedTime),
			"events must be non-decreasing by parsed time")
	}
	for i, ev := range result.Events {
		assert.Equal(t, i+1, ev.Sequence)
	}
	assert.Equal(t, "2005-06", result.Events[0].Time)
	assert.Equal(t, "2024-03", result.Events[14].Time)
}

func TestEvents_DropsUnparseableDates(t *testing.T) {
	times := []string{
		"2020-01", "2020-02", "2020-03", "2020-04", "2020-05", "2020-06",
		"2020-07", "2020-08", "2020-09", "2020-10", "2020-11", "not-a-date",
	}

	result, err := Events(makeEvents(times...), "raw", bounds)
	require.NoError(t, err)

	// bounds were checked against the pre-drop count of 12
	assert.Equal(t, 12, result.ParsedCount)
	assert.Len(t, result.Events, 11)
	for _, ev := range result.Events {
		assert.NotEqual(t, "not-a-date", ev.Time)
	}
}

func TestEvents_DropBelowMinimumStillAccepted(t *testing.T) {
	// 10 parsed, one bad date: the pre-drop count satisfies the bound, so the
	// reduced 9-record set is returned as best effort.
	times := []string{
		"2020-01", "2020-02", "2020-03", "2020-04", "2020-05",
		"2020-06", "2020-07", "2020-08", "2020-09", "bad",
	}

	result, err := Events(makeEvents(times...), "raw", bounds)
	require.NoError(t, err)
	assert.Len(t, result.Events, 9)
	assert.Equal(t, 10, result.ParsedCount)
}

func TestParseEventTime(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2023", true},
		{"2023-05", true},
		{"2023-05-17", true},
		{"not-a-date", false},
		{"May 2023", false},
		{"", false},
	}

	for _, tc := range cases {
		_, err := ParseEventTime(tc.in)
		if tc.ok {
			assert.NoError(t, err, tc.in)
		} else {
			assert.Error(t, err, tc.in)
		}
	}
}

func TestParseEventTime_Ordering(t *testing.T) {
	yearOnly, err := ParseEventTime("2023")
	require.NoError(t, err)
	monthYear, err := ParseEventTime("2023-05")
	require.NoError(t, err)

	assert.True(t, yearOnly.Before(monthYear))
}
