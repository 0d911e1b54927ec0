package pipeline

import (
	"errors"
	"fmt"

	"github.com/prasitlab/disaster-lens/internal/parser"
	"github.com/prasitlab/disaster-lens/internal/validate"
)

// errTranslationsEmpty aborts a run whose inputs could not be translated and
// were empty to begin with.
var errTranslationsEmpty = errors.New("both translations are empty")

// ErrorKind classifies pipeline failures so callers can pattern-match on the
// outcome instead of catching by type.
type ErrorKind string

const (
	// KindTranslation: both required translations came back empty.
	KindTranslation ErrorKind = "translation_failure"
	// KindGeneration: the generation service failed during research or
	// extraction. Not recoverable locally.
	KindGeneration ErrorKind = "generation_failure"
	// KindMalformedStructure: the JSON pipeline could not decode the output.
	KindMalformedStructure ErrorKind = "malformed_structure"
	// KindMalformedTable: the CSV pipeline could not decode the output.
	KindMalformedTable ErrorKind = "malformed_table"
	// KindNoData / KindTooFew / KindTooMany: cardinality rejections.
	KindNoData  ErrorKind = "no_data"
	KindTooFew  ErrorKind = "insufficient_data"
	KindTooMany ErrorKind = "excessive_data"
)

// Error is the terminal failure of one pipeline run. RawText preserves the
// provider output on every abort path that has one.
type Error struct {
	Kind    ErrorKind
	Stage   string
	RawText string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (stage %s): %v", e.Kind, e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// classify wraps a stage failure, lifting typed parser/validator errors into
// the matching kind and attaching their raw text.
func classify(stage string, err error) *Error {
	var structErr *parser.MalformedStructureError
	if errors.As(err, &structErr) {
		return &Error{Kind: KindMalformedStructure, Stage: stage, RawText: structErr.Raw, Err: err}
	}

	var tableErr *parser.MalformedTableError
	if errors.As(err, &tableErr) {
		return &Error{Kind: KindMalformedTable, Stage: stage, RawText: tableErr.Raw, Err: err}
	}

	var cardErr *validate.CardinalityError
	if errors.As(err, &cardErr) {
		kind := KindNoData
		switch cardErr.Kind {
		case validate.TooFew:
			kind = KindTooFew
		case validate.TooMany:
			kind = KindTooMany
		}
		return &Error{Kind: kind, Stage: stage, RawText: cardErr.Raw, Err: err}
	}

	return &Error{Kind: KindGeneration, Stage: stage, Err: err}
}
