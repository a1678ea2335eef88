package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func response(question string, score int) Response {
	return Response{
		Question:      question,
		Type:          "text",
		AnswerSummary: "answer to " + question,
		Score:         score,
		Feedback:      "feedback",
		SubmittedAt:   time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
}

func TestLedgerRecordIsIdempotentPerQuestion(t *testing.T) {
	ledger := NewLedger()

	first := response("Q1", 8)
	second := response("Q1", 2)
	second.AnswerSummary = "Excel file uploaded"

	assert.True(t, ledger.Record(first))
	assert.False(t, ledger.Record(second))

	summary := ledger.Summarize()
	require.Len(t, summary.Responses, 1)
	assert.Equal(t, first, summary.Responses[0])
	assert.True(t, ledger.Has("Q1"))
	assert.False(t, ledger.Has("Q2"))

	got, ok := ledger.Get("Q1")
	require.True(t, ok)
	assert.Equal(t, 8, got.Score)
}

func TestLedgerSummarizeAverage(t *testing.T) {
	ledger := NewLedger()
	ledger.Record(response("Q1", 10))
	ledger.Record(response("Q2", 5))
	ledger.Record(response("Q3", 7))

	summary := ledger.Summarize()

	require.True(t, summary.HasAverage)
	assert.InDelta(t, 7.33, summary.Average, 0.01)
	require.Len(t, summary.Responses, 3)
	assert.Equal(t, "Q1", summary.Responses[0].Question)
	assert.Equal(t, "Q3", summary.Responses[2].Question)
}

func TestLedgerSummarizeEmptyHasNoAverage(t *testing.T) {
	summary := NewLedger().Summarize()

	assert.False(t, summary.HasAverage)
	assert.Zero(t, summary.Average)
	assert.Empty(t, summary.Responses)
}

func TestLedgerSummarizeAllZeroIsDefined(t *testing.T) {
	ledger := NewLedger()
	ledger.Record(response("Q1", 0))

	summary := ledger.Summarize()

	assert.True(t, summary.HasAverage)
	assert.Zero(t, summary.Average)
}

func TestLedgerReset(t *testing.T) {
	ledger := NewLedger()
	ledger.Record(response("Q1", 10))
	ledger.Record(response("Q2", 5))
	ledger.Record(response("Q3", 7))

	ledger.Reset()

	summary := ledger.Summarize()
	assert.False(t, summary.HasAverage)
	assert.Empty(t, summary.Responses)
	assert.Zero(t, ledger.Len())

	assert.True(t, ledger.Record(response("Q1", 4)), "question is answerable again after reset")
}

func TestLedgerSummarizeReturnsCopy(t *testing.T) {
	ledger := NewLedger()
	ledger.Record(response("Q1", 10))

	summary := ledger.Summarize()
	summary.Responses[0].Score = 0

	again := ledger.Summarize()
	assert.Equal(t, 10, again.Responses[0].Score)
}
