// Package export renders validated record sets as downloadable CSV text.
package export

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/prasitlab/disaster-lens/internal/model"
)

// EventsCSV renders events in the fixed display column order. The synthetic
// sequence number is display-only and deliberately not exported.
func EventsCSV(events []model.DisasterEvent) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(model.EventColumns); err != nil {
		return "", err
	}
	for _, ev := range events {
		row := []string{
			ev.Time,
			strconv.FormatFloat(ev.DamageAmount, 'f', -1, 64),
			strconv.Itoa(ev.Fatalities),
			strconv.Itoa(ev.Injuries),
			ev.Source,
			ev.Description,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	return sb.String(), w.Error()
}

// GeoCSV renders geo records under the contract header row, so the output can
// be re-parsed by the same table parser.
func GeoCSV(records []model.GeoRecord) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(model.GeoHeaders); err != nil {
		return "", err
	}
	for _, rec := range records {
		row := []string{
			rec.EventID,
			rec.LocationName,
			strconv.FormatFloat(rec.Latitude, 'f', -1, 64),
			strconv.FormatFloat(rec.Longitude, 'f', -1, 64),
			rec.EventType,
			rec.MagnitudeSize,
			rec.DamageSummary,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	return sb.String(), w.Error()
}
