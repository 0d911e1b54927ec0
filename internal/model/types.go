package model

import "time"

// DisasterEvent is one historical event record extracted by the model.
// JSON keys are the Thai field names the extraction prompt contracts for;
// they must match the prompt schema byte for byte.
type DisasterEvent struct {
	Time         string  `json:"เวลา"`
	DamageAmount float64 `json:"มูลค่าความเสียหาย(บาท)"`
	Fatalities   int     `json:"ผู้เสียชีวิต(คน)"`
	Injuries     int     `json:"ผู้บาดเจ็บ(คน)"`
	Source       string  `json:"แหล่งที่มา"`
	Description  string  `json:"รายละเอียดของเหตุการณ์"`

	// Sequence is the 1-based display position assigned after sorting.
	// Derived, not part of the wire payload.
	Sequence int `json:"-"`
	// ParsedTime is the sortable form of Time, set by the validator.
	ParsedTime time.Time `json:"-"`
}

// EventColumns is the fixed display/CSV column order for DisasterEvent.
var EventColumns = []string{
	"เวลา",
	"มูลค่าความเสียหาย(บาท)",
	"ผู้เสียชีวิต(คน)",
	"ผู้บาดเจ็บ(คน)",
	"แหล่งที่มา",
	"รายละเอียดของเหตุการณ์",
}

// GeoHeaders is the exact header row contracted for the geo extraction tool.
var GeoHeaders = []string{
	"ID_EVENT",
	"LOCATION_NAME",
	"LATITUDE_EST",
	"LONGITUDE_EST",
	"EVENT_TYPE",
	"MAGNITUDE_SIZE",
	"DAMAGE_SUMMARY",
}

// GeoRecord is one row extracted from a geospatial narrative. Coordinates
// are decimal-degree estimates inferred by the model when not explicit.
type GeoRecord struct {
	EventID       string  `json:"id_event"`
	LocationName  string  `json:"location_name"`
	Latitude      float64 `json:"latitude_est"`
	Longitude     float64 `json:"longitude_est"`
	EventType     string  `json:"event_type"`
	MagnitudeSize string  `json:"magnitude_size"`
	DamageSummary string  `json:"damage_summary"`
}

// Usage is the token accounting reported by the generation service.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Add accumulates usage across pipeline stages.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}

// Analysis is a completed event-statistics run as saved to history.
type Analysis struct {
	ID          string          `json:"id"`
	EventType   string          `json:"event_type"`
	Location    string          `json:"location"`
	EventTypeEN string          `json:"event_type_en"`
	LocationEN  string          `json:"location_en"`
	Model       string          `json:"model"`
	Events      []DisasterEvent `json:"events"`
	ParsedCount int             `json:"parsed_count"`
	RawText     string          `json:"-"`
	CreatedAt   string          `json:"created_at"`
}
