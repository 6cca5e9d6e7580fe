package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bjsim/internal/simulator"
	"github.com/lox/bjsim/internal/statistics"
)

func sampleResult() *simulator.Result {
	stats := &statistics.Statistics{}
	stats.Add(statistics.RoundResult{Money: 450, Bet: 900, Hands: 3,
		Outcomes: map[string]int{"WON 3:2": 1, "PUSH": 1, "LOST": 1}})
	stats.Add(statistics.RoundResult{Money: -900, Bet: 1200, Hands: 4,
		Outcomes: map[string]int{"LOST": 3, "WON": 1}})
	return &simulator.Result{
		RunID:   uuid.MustParse("8a1c2f50-3c8e-4b8c-9a55-5d8f2f7c1e01"),
		Stats:   stats,
		Workers: 1,
		Elapsed: 1500 * time.Millisecond,
	}
}

func TestWriteSummaryLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), WithColorProfile(termenv.Ascii)))

	out := buf.String()
	assert.Contains(t, out, "=== Blackjack simulation ===")
	assert.Contains(t, out, "8a1c2f50-3c8e-4b8c-9a55-5d8f2f7c1e01")
	assert.Contains(t, out, "2 rounds, 1 worker(s) in 1.5s")
	assert.Contains(t, out, "7 hands overall, 3.50 hands per game on average")
	assert.Contains(t, out, "2100.00 total bet")
	assert.Contains(t, out, "Overall winnings: -450.00 (edge = -21.429 %)")
	assert.NotContains(t, out, "\x1b[", "ascii profile must not emit escape codes")
}

func TestWriteOutcomes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), WithColorProfile(termenv.Ascii), WithTitle("Run")))

	out := buf.String()
	assert.Contains(t, out, "=== Run ===")
	assert.Contains(t, out, "=== OUTCOMES ===")
	assert.Regexp(t, `LOST\s+4\s+57\.14%`, out)
	assert.Regexp(t, `WON 3:2\s+1\s+14\.29%`, out)
	assert.Regexp(t, `SURRENDER\s+0\s+0\.00%`, out)
	assert.Regexp(t, `Best round\s+450\.00`, out)
	assert.Regexp(t, `Worst round\s+-900\.00`, out)
}

func TestWriteColour(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), WithColorProfile(termenv.ANSI256)))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestWriteNoResult(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, nil))
	assert.Error(t, Write(&buf, &simulator.Result{}))
}
