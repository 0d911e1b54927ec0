// Package parser converts untrusted generated text into typed record sets,
// tolerating common formatting noise. It performs no semantic validation;
// cardinality and field checks belong to the validate package.
package parser

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/prasitlab/disaster-lens/internal/model"
)

// MalformedStructureError reports that the JSON pipeline could not decode the
// generated text. Raw carries the full text for operator inspection.
type MalformedStructureError struct {
	Raw string
	Err error
}

func (e *MalformedStructureError) Error() string {
	return fmt.Sprintf("response is not a valid JSON event array: %v", e.Err)
}

func (e *MalformedStructureError) Unwrap() error { return e.Err }

// MalformedTableError reports that the CSV pipeline could not decode the
// generated text, or that its header/row shape does not match the contract.
type MalformedTableError struct {
	Raw    string
	Reason string
	Err    error
}

func (e *MalformedTableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("response is not a valid CSV table: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("response is not a valid CSV table: %s", e.Reason)
}

func (e *MalformedTableError) Unwrap() error { return e.Err }

// StripFences removes fenced-code markers wrapping generated output. The
// opening marker is removed regardless of any attached language tag, along
// with the closing marker. Text without fences passes through trimmed.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		// anything between the opening fence and the newline is a language tag
		text = text[i+1:]
	} else {
		text = strings.TrimLeft(text, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	}

	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// ParseEvents decodes generated text as a JSON array of event records with
// Thai field names. Parsing is deterministic: the same raw text always yields
// the same record set.
func ParseEvents(raw string) ([]model.DisasterEvent, error) {
	cleaned := StripFences(raw)

	var events []model.DisasterEvent
	if err := json.Unmarshal([]byte(cleaned), &events); err != nil {
		return nil, &MalformedStructureError{Raw: raw, Err: err}
	}

	return events, nil
}

// ParseGeoTable decodes generated text as CSV whose header row must match
// headers exactly.
func ParseGeoTable(raw string, headers []string) ([]model.GeoRecord, error) {
	cleaned := StripFences(raw)

	r := csv.NewReader(strings.NewReader(cleaned))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, &MalformedTableError{Raw: raw, Reason: "decode failed", Err: err}
	}
	if len(rows) == 0 {
		return nil, &MalformedTableError{Raw: raw, Reason: "empty table"}
	}

	if len(rows[0]) != len(headers) {
		return nil, &MalformedTableError{Raw: raw,
			Reason: fmt.Sprintf("header has %d columns, want %d", len(rows[0]), len(headers))}
	}
	for i, h := range headers {
		if strings.TrimSpace(rows[0][i]) != h {
			return nil, &MalformedTableError{Raw: raw,
				Reason: fmt.Sprintf("header column %d is %q, want %q", i+1, rows[0][i], h)}
		}
	}

	records := make([]model.GeoRecord, 0, len(rows)-1)
	for n, row := range rows[1:] {
		lat, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return nil, &MalformedTableError{Raw: raw,
				Reason: fmt.Sprintf("row %d: bad latitude %q", n+1, row[2]), Err: err}
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil {
			return nil, &MalformedTableError{Raw: raw,
				Reason: fmt.Sprintf("row %d: bad longitude %q", n+1, row[3]), Err: err}
		}

		records = append(records, model.GeoRecord{
			EventID:       strings.TrimSpace(row[0]),
			LocationName:  strings.TrimSpace(row[1]),
			Latitude:      lat,
			Longitude:     lon,
			EventType:     strings.TrimSpace(row[4]),
			MagnitudeSize: strings.TrimSpace(row[5]),
			DamageSummary: strings.TrimSpace(row[6]),
		})
	}

	return records, nil
}
