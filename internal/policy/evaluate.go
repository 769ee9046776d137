package policy

import (
	"time"

	"github.com/codereport-dev/codereport/internal/report"
)

// DefaultLookaheadDays is the window used to flag reports as expiring soon.
// Display only; it never affects CI blocking.
const DefaultLookaheadDays = 7

// ExpirationState of a report relative to the evaluation date.
type ExpirationState string

const (
	// ExpirationNone means the report has no expiration date.
	ExpirationNone ExpirationState = "none"
	// ExpirationActive means the expiration date is comfortably in the future.
	ExpirationActive ExpirationState = "active"
	// ExpirationSoon means the report expires within the lookahead window.
	ExpirationSoon ExpirationState = "expiring_soon"
	// ExpirationExpired means the expiration date has passed.
	ExpirationExpired ExpirationState = "expired"
)

// Evaluation is the derived view of one report. The CI check and the
// dashboard both consume this; they must never diverge in what "violating"
// means, so this is the only place it is defined.
type Evaluation struct {
	IsOpen          bool
	Severity        Severity
	ExpirationState ExpirationState
	IsBlocking      bool
	// TagKnown is false when the report carries a tag absent from the
	// config; such reports degrade to low severity.
	TagKnown bool
}

// Evaluator evaluates reports against one policy config and one fixed date.
type Evaluator struct {
	Config        *Config
	Today         time.Time
	LookaheadDays int
}

// NewEvaluator creates an Evaluator for the given config and date with the
// default lookahead window.
func NewEvaluator(cfg *Config, today time.Time) *Evaluator {
	return &Evaluator{
		Config:        cfg,
		Today:         today,
		LookaheadDays: DefaultLookaheadDays,
	}
}

// Evaluate derives open/severity/expiration/blocking for one report.
func (e *Evaluator) Evaluate(r *report.Report) Evaluation {
	severity, known := e.Config.SeverityOf(r.Tag)

	ev := Evaluation{
		IsOpen:          r.Status == report.StatusOpen,
		Severity:        severity,
		ExpirationState: e.expirationState(r),
		TagKnown:        known,
	}
	ev.IsBlocking = ev.IsOpen && (ev.Severity == SeverityBlocking || ev.ExpirationState == ExpirationExpired)
	return ev
}

func (e *Evaluator) expirationState(r *report.Report) ExpirationState {
	if r.ExpiresAt == "" {
		return ExpirationNone
	}
	expires, err := time.Parse(report.DateFormat, r.ExpiresAt)
	if err != nil {
		// A mangled date cannot fail evaluation; treat it as non-expiring.
		return ExpirationNone
	}

	today := truncateToDay(e.Today)
	expires = truncateToDay(expires)

	switch {
	case expires.Before(today):
		return ExpirationExpired
	case expires.Before(today.AddDate(0, 0, e.LookaheadDays)):
		return ExpirationSoon
	default:
		return ExpirationActive
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Violations returns the reports whose evaluation is blocking, in ascending
// ID order. This is the exact set the CI gate fails on.
func (e *Evaluator) Violations(entries []report.Report) []report.Report {
	var out []report.Report
	for i := range entries {
		if e.Evaluate(&entries[i]).IsBlocking {
			out = append(out, entries[i])
		}
	}
	return out
}
