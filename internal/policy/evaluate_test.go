package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/codereport-dev/codereport/internal/report"
)

func date(s string) time.Time {
	t, err := time.Parse(report.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func openReport(tag, expiresAt string) report.Report {
	return report.Report{
		ID:        "CR-000001",
		Path:      "src/a.go",
		Range:     report.LineRange{Start: 1, End: 2},
		Tag:       tag,
		Message:   "x",
		Owner:     report.UnknownOwner(),
		Status:    report.StatusOpen,
		CreatedAt: "2024-01-01",
		ExpiresAt: expiresAt,
	}
}

func TestEvaluateResolvedNeverBlocks(t *testing.T) {
	ev := NewEvaluator(Default(), date("2024-06-01"))

	r := openReport("critical", "2024-01-15")
	r.Status = report.StatusResolved

	got := ev.Evaluate(&r)
	assert.False(t, got.IsOpen)
	assert.False(t, got.IsBlocking)
	assert.Equal(t, SeverityBlocking, got.Severity)
}

func TestEvaluateBlockingSeverityAlwaysBlocks(t *testing.T) {
	ev := NewEvaluator(Default(), date("2024-01-02"))

	// Expiration is far in the future; severity alone blocks.
	r := openReport("critical", "2024-01-15")
	got := ev.Evaluate(&r)
	assert.True(t, got.IsBlocking)
	assert.Equal(t, ExpirationActive, got.ExpirationState)
}

func TestEvaluateExpiredLowSeverityBlocks(t *testing.T) {
	ev := NewEvaluator(Default(), date("2024-06-01"))

	r := openReport("todo", "2024-01-15")
	got := ev.Evaluate(&r)
	assert.Equal(t, SeverityLow, got.Severity)
	assert.Equal(t, ExpirationExpired, got.ExpirationState)
	assert.True(t, got.IsBlocking)
}

func TestExpirationStates(t *testing.T) {
	ev := NewEvaluator(Default(), date("2024-01-10"))

	tests := []struct {
		name      string
		expiresAt string
		want      ExpirationState
	}{
		{name: "no expiration", expiresAt: "", want: ExpirationNone},
		{name: "expired yesterday", expiresAt: "2024-01-09", want: ExpirationExpired},
		{name: "expires today", expiresAt: "2024-01-10", want: ExpirationSoon},
		{name: "last day of window", expiresAt: "2024-01-16", want: ExpirationSoon},
		{name: "just past window", expiresAt: "2024-01-17", want: ExpirationActive},
		{name: "mangled date", expiresAt: "not-a-date", want: ExpirationNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := openReport("todo", tc.expiresAt)
			assert.Equal(t, tc.want, ev.Evaluate(&r).ExpirationState)
		})
	}
}

func TestEvaluateUnknownTagDefaultsToLow(t *testing.T) {
	ev := NewEvaluator(Default(), date("2024-01-10"))

	r := openReport("vanished", "")
	got := ev.Evaluate(&r)
	assert.False(t, got.TagKnown)
	assert.Equal(t, SeverityLow, got.Severity)
	assert.Equal(t, ExpirationNone, got.ExpirationState)
	assert.False(t, got.IsBlocking)
}

func TestExpirationScenario(t *testing.T) {
	// A report with a 14-day expiration created on 2024-01-01 expires on
	// 2024-01-15: not a violation on the 10th, a violation on the 20th.
	days := 14
	cfg := &Config{
		Version: ConfigVersion,
		Tags: map[string]TagPolicy{
			"buggy": {Enabled: true, Severity: SeverityHigh, Expires: &days},
		},
	}
	r := openReport("buggy", "2024-01-15")

	early := NewEvaluator(cfg, date("2024-01-10")).Evaluate(&r)
	assert.False(t, early.IsBlocking)
	assert.Empty(t, NewEvaluator(cfg, date("2024-01-10")).Violations([]report.Report{r}))

	late := NewEvaluator(cfg, date("2024-01-20")).Evaluate(&r)
	assert.True(t, late.IsBlocking)

	violations := NewEvaluator(cfg, date("2024-01-20")).Violations([]report.Report{r})
	assert.Len(t, violations, 1)
	assert.Equal(t, "CR-000001", violations[0].ID)
}

func TestViolationsKeepsOrder(t *testing.T) {
	ev := NewEvaluator(Default(), date("2024-06-01"))

	a := openReport("critical", "")
	a.ID = "CR-000001"
	b := openReport("todo", "")
	b.ID = "CR-000002"
	c := openReport("critical", "")
	c.ID = "CR-000003"

	violations := ev.Violations([]report.Report{a, b, c})
	assert.Len(t, violations, 2)
	assert.Equal(t, "CR-000001", violations[0].ID)
	assert.Equal(t, "CR-000003", violations[1].ID)
}

func TestLookaheadWindowIsConfigurable(t *testing.T) {
	ev := NewEvaluator(Default(), date("2024-01-10"))
	ev.LookaheadDays = 30

	r := openReport("todo", "2024-01-25")
	assert.Equal(t, ExpirationSoon, ev.Evaluate(&r).ExpirationState)
}
