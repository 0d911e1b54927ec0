// Package pipeline orchestrates the two-stage research-and-extraction flow:
// translate inputs, research with web search, coerce to a strict structured
// format, parse defensively, and validate.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/prasitlab/disaster-lens/internal/generation"
	"github.com/prasitlab/disaster-lens/internal/model"
	"github.com/prasitlab/disaster-lens/internal/observability"
	"github.com/prasitlab/disaster-lens/internal/parser"
	"github.com/prasitlab/disaster-lens/internal/prompt"
	"github.com/prasitlab/disaster-lens/internal/validate"
)

// Generator is one call to the hosted text-generation service.
type Generator interface {
	Generate(ctx context.Context, instruction string, opts generation.Options) (string, model.Usage, error)
}

// Request carries the user inputs for one event-statistics run.
type Request struct {
	EventType string `json:"event_type"`
	Location  string `json:"location"`
}

// Result is an accepted event-statistics run.
type Result struct {
	Events      []model.DisasterEvent `json:"events"`
	EventTypeEN string                `json:"event_type_en"`
	LocationEN  string                `json:"location_en"`
	ParsedCount int                   `json:"parsed_count"`
	RawText     string                `json:"-"`
	Usage       model.Usage           `json:"usage"`
}

// GeoResult is an accepted geo-extraction run.
type GeoResult struct {
	Records []model.GeoRecord `json:"records"`
	RawText string            `json:"-"`
	Usage   model.Usage       `json:"usage"`
}

// Analyzer runs the pipelines. One user action triggers a strictly sequential
// chain; no state is shared across requests except the generation client.
type Analyzer struct {
	gen     Generator
	bounds  validate.Bounds
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates an Analyzer.
func New(gen Generator, bounds validate.Bounds, logger *slog.Logger, metrics *observability.Metrics) *Analyzer {
	return &Analyzer{gen: gen, bounds: bounds, logger: logger, metrics: metrics}
}

// Run executes the full event-statistics pipeline. All errors are terminal
// for the request; the caller must resubmit.
func (a *Analyzer) Run(ctx context.Context, req Request) (*Result, error) {
	eventTypeEN := a.translate(ctx, req.EventType)
	locationEN := a.translate(ctx, req.Location)

	if strings.TrimSpace(eventTypeEN) == "" && strings.TrimSpace(locationEN) == "" {
		a.metrics.Requests.WithLabelValues("events", "error").Inc()
		return nil, &Error{Kind: KindTranslation, Stage: "translate",
			Err: errTranslationsEmpty}
	}

	rawSummary, usage, err := a.generate(ctx, "research",
		prompt.Research(eventTypeEN, locationEN, a.bounds.Min, a.bounds.Max),
		generation.Options{EnableSearch: true})
	totalUsage := usage
	if err != nil {
		a.metrics.Requests.WithLabelValues("events", "error").Inc()
		return nil, &Error{Kind: KindGeneration, Stage: "research", Err: err}
	}

	rawJSON, usage, err := a.generate(ctx, "extract",
		prompt.ExtractionUser(rawSummary),
		generation.Options{
			Temperature:       generation.Zero(),
			SystemInstruction: prompt.ExtractionSystem(eventTypeEN, locationEN, a.bounds.Min, a.bounds.Max),
		})
	totalUsage.Add(usage)
	if err != nil {
		a.metrics.Requests.WithLabelValues("events", "error").Inc()
		return nil, &Error{Kind: KindGeneration, Stage: "extract", Err: err}
	}

	events, err := parser.ParseEvents(rawJSON)
	if err != nil {
		a.metrics.Requests.WithLabelValues("events", "error").Inc()
		return nil, classify("parse", err)
	}

	validated, err := validate.Events(events, rawJSON, a.bounds)
	if err != nil {
		a.metrics.Requests.WithLabelValues("events", "error").Inc()
		return nil, classify("validate", err)
	}

	a.metrics.Requests.WithLabelValues("events", "ok").Inc()
	a.metrics.EventsAccepted.Observe(float64(len(validated.Events)))
	a.logger.Info("analysis accepted",
		"event_type", eventTypeEN,
		"location", locationEN,
		"parsed", validated.ParsedCount,
		"usable", len(validated.Events),
		"tokens_in", totalUsage.InputTokens,
		"tokens_out", totalUsage.OutputTokens,
	)

	return &Result{
		Events:      validated.Events,
		EventTypeEN: eventTypeEN,
		LocationEN:  locationEN,
		ParsedCount: validated.ParsedCount,
		RawText:     rawJSON,
		Usage:       totalUsage,
	}, nil
}

// ExtractGeo executes the one-stage geospatial extraction pipeline.
func (a *Analyzer) ExtractGeo(ctx context.Context, narrative string) (*GeoResult, error) {
	raw, usage, err := a.generate(ctx, "geo_extract",
		prompt.GeoExtraction(model.GeoHeaders, narrative),
		generation.Options{Temperature: generation.Zero()})
	if err != nil {
		a.metrics.Requests.WithLabelValues("geo", "error").Inc()
		return nil, &Error{Kind: KindGeneration, Stage: "geo_extract", Err: err}
	}

	records, err := parser.ParseGeoTable(raw, model.GeoHeaders)
	if err != nil {
		a.metrics.Requests.WithLabelValues("geo", "error").Inc()
		return nil, classify("geo_parse", err)
	}

	a.metrics.Requests.WithLabelValues("geo", "ok").Inc()
	a.logger.Info("geo extraction accepted", "records", len(records),
		"tokens_in", usage.InputTokens, "tokens_out", usage.OutputTokens)

	return &GeoResult{Records: records, RawText: raw, Usage: usage}, nil
}

// translate converts user text to English, falling back to the original text
// when the service fails or returns nothing. Degrading beats aborting here:
// research still works, just with weaker search quality.
func (a *Analyzer) translate(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	out, _, err := a.generate(ctx, "translate", prompt.Translation(text),
		generation.Options{Temperature: generation.Zero()})
	if err != nil {
		a.logger.Warn("translation failed, using original text", "text", text, "error", err)
		return text
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return text
	}
	return out
}

// generate wraps one service call with metrics.
func (a *Analyzer) generate(ctx context.Context, stage, instruction string, opts generation.Options) (string, model.Usage, error) {
	start := time.Now()
	text, usage, err := a.gen.Generate(ctx, instruction, opts)
	a.metrics.GenerationDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	a.metrics.GenerationCalls.WithLabelValues(stage, outcome).Inc()
	a.metrics.TokensConsumed.WithLabelValues("input").Add(float64(usage.InputTokens))
	a.metrics.TokensConsumed.WithLabelValues("output").Add(float64(usage.OutputTokens))

	return text, usage, err
}
