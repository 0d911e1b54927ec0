package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasitlab/disaster-lens/internal/model"
)

const eventJSON = `[{"เวลา":"2023-05","มูลค่าความเสียหาย(บาท)":1000000,"ผู้เสียชีวิต(คน)":1,"ผู้บาดเจ็บ(คน)":2,"แหล่งที่มา":"X: http://x","รายละเอียดของเหตุการณ์":"น้ำท่วมใหญ่"}]`

func TestParseEvents_Direct(t *testing.T) {
	events, err := ParseEvents(eventJSON)
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Equal(t, "2023-05", events[0].Time)
	assert.Equal(t, 1000000.0, events[0].DamageAmount)
	assert.Equal(t, 1, events[0].Fatalities)
	assert.Equal(t, 2, events[0].Injuries)
	assert.Equal(t, "X: http://x", events[0].Source)
	assert.Equal(t, "น้ำท่วมใหญ่", events[0].Description)
}

func TestParseEvents_FencedWithTag(t *testing.T) {
	fenced := "```json\n" + eventJSON + "\n```"

	events, err := ParseEvents(fenced)
	require.NoError(t, err)

	plain, err := ParseEvents(eventJSON)
	require.NoError(t, err)
	assert.Equal(t, plain, events)
}

func TestParseEvents_FencedWithoutTag(t *testing.T) {
	fenced := "```\n" + eventJSON + "\n```"

	events, err := ParseEvents(fenced)
	require.NoError(t, err)
	require.Len(t, events, 1)
}

func TestParseEvents_Idempotent(t *testing.T) {
	raw := "  ```json\n" + eventJSON + "\n```  "

	first, err := ParseEvents(raw)
	require.NoError(t, err)
	second, err := ParseEvents(raw)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestParseEvents_Malformed(t *testing.T) {
	raw := "I could not find any data, sorry."

	_, err := ParseEvents(raw)
	require.Error(t, err)

	var structErr *MalformedStructureError
	require.ErrorAs(t, err, &structErr)
	assert.Equal(t, raw, structErr.Raw)
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", `{"a":1}`, `{"a":1}`},
		{"json tag", "```json\n[1]\n```", "[1]"},
		{"csv tag", "```csv\na,b\n```", "a,b"},
		{"no tag", "```\n[1]\n```", "[1]"},
		{"surrounding whitespace", "  \n```json\n[1]\n```\n  ", "[1]"},
		{"single line", "```json [1] ```", "[1]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripFences(tc.in))
		})
	}
}

func TestParseGeoTable(t *testing.T) {
	raw := strings.Join([]string{
		"ID_EVENT,LOCATION_NAME,LATITUDE_EST,LONGITUDE_EST,EVENT_TYPE,MAGNITUDE_SIZE,DAMAGE_SUMMARY",
		`E1,Hat Yai,7.0086,100.4747,flood,severe,"Flooded downtown, 3 districts"`,
		"E2,Chiang Rai,19.9105,99.8406,earthquake,6.3,Cracked roads",
	}, "\n")

	records, err := ParseGeoTable(raw, model.GeoHeaders)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "E1", records[0].EventID)
	assert.Equal(t, "Hat Yai", records[0].LocationName)
	assert.InDelta(t, 7.0086, records[0].Latitude, 1e-9)
	assert.InDelta(t, 100.4747, records[0].Longitude, 1e-9)
	assert.Equal(t, "Flooded downtown, 3 districts", records[0].DamageSummary)
}

func TestParseGeoTable_Fenced(t *testing.T) {
	raw := "```csv\nID_EVENT,LOCATION_NAME,LATITUDE_EST,LONGITUDE_EST,EVENT_TYPE,MAGNITUDE_SIZE,DAMAGE_SUMMARY\nE1,Phuket,7.8804,98.3923,tsunami,major,Coastal damage\n```"

	records, err := ParseGeoTable(raw, model.GeoHeaders)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Phuket", records[0].LocationName)
}

func TestParseGeoTable_MissingHeaderColumn(t *testing.T) {
	raw := "ID_EVENT,LOCATION_NAME,LATITUDE_EST,LONGITUDE_EST,EVENT_TYPE,MAGNITUDE_SIZE\nE1,Hat Yai,7.0,100.4,flood,severe"

	_, err := ParseGeoTable(raw, model.GeoHeaders)
	require.Error(t, err)

	var tableErr *MalformedTableError
	require.ErrorAs(t, err, &tableErr)
	assert.Equal(t, raw, tableErr.Raw)
}

func TestParseGeoTable_WrongHeaderName(t *testing.T) {
	raw := "ID_EVENT,PLACE,LATITUDE_EST,LONGITUDE_EST,EVENT_TYPE,MAGNITUDE_SIZE,DAMAGE_SUMMARY\nE1,Hat Yai,7.0,100.4,flood,severe,damage"

	var tableErr *MalformedTableError
	_, err := ParseGeoTable(raw, model.GeoHeaders)
	require.ErrorAs(t, err, &tableErr)
}

func TestParseGeoTable_BadLatitude(t *testing.T) {
	raw := "ID_EVENT,LOCATION_NAME,LATITUDE_EST,LONGITUDE_EST,EVENT_TYPE,MAGNITUDE_SIZE,DAMAGE_SUMMARY\nE1,Hat Yai,unknown,100.4,flood,severe,damage"

	var tableErr *MalformedTableError
	_, err := ParseGeoTable(raw, model.GeoHeaders)
	require.ErrorAs(t, err, &tableErr)
	assert.Equal(t, raw, tableErr.Raw)
}

func TestParseGeoTable_RaggedRow(t *testing.T) {
	raw := "ID_EVENT,LOCATION_NAME,LATITUDE_EST,LONGITUDE_EST,EVENT_TYPE,MAGNITUDE_SIZE,DAMAGE_SUMMARY\nE1,Hat Yai,7.0"

	var tableErr *MalformedTableError
	_, err := ParseGeoTable(raw, model.GeoHeaders)
	require.ErrorAs(t, err, &tableErr)
}
