package transform

import (
	"context"
	"log/slog"
)

// WarningKind classifies a non-fatal transform diagnostic.
type WarningKind string

const (
	// UnknownQuestion: an id in questionOrder has no matching record.
	UnknownQuestion WarningKind = "unknown_question"

	// UnknownTopic: a record names a topic that is not in topicOrder.
	UnknownTopic WarningKind = "unknown_topic"

	// DuplicateTopic: a name appears more than once in topicOrder.
	DuplicateTopic WarningKind = "duplicate_topic"

	// DuplicateQuestion: an id appears more than once in questionOrder.
	DuplicateQuestion WarningKind = "duplicate_question"

	// UnknownDifficulty: a record carries a difficulty label that is not Easy, Medium or Hard.
	UnknownDifficulty WarningKind = "unknown_difficulty"
)

// Warning is a record the transform skipped or repaired.
type Warning struct {
	Kind       WarningKind
	QuestionID string
	Topic      string
	Value      string
}

// Reporter receives transform diagnostics.
type Reporter interface {
	Report(Warning)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Warning)

// Report calls f(w).
func (f ReporterFunc) Report(w Warning) { f(w) }

// Discard drops every warning.
var Discard Reporter = ReporterFunc(func(Warning) {})

// LogReporter writes each warning to logger at warn level.
func LogReporter(logger *slog.Logger) Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return ReporterFunc(func(w Warning) {
		logger.LogAttrs(context.Background(), slog.LevelWarn, "skipped sheet record",
			slog.String("kind", string(w.Kind)),
			slog.String("questionID", w.QuestionID),
			slog.String("topic", w.Topic),
			slog.String("value", w.Value),
		)
	})
}

// Collector keeps every warning it receives.
type Collector struct {
	Warnings []Warning
}

// Report appends w.
func (c *Collector) Report(w Warning) {
	c.Warnings = append(c.Warnings, w)
}

// Count returns how many warnings of the given kind were collected.
func (c *Collector) Count(kind WarningKind) int {
	n := 0
	for _, w := range c.Warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}
