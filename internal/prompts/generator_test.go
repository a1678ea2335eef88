package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateTextEvaluationPrompt(t *testing.T) {
	prompt := GenerateTextEvaluationPrompt(" What is a pivot table? ", "A summary table", "It groups data")

	assert.Contains(t, prompt, "QUESTION:\nWhat is a pivot table?\n")
	assert.Contains(t, prompt, "EXPECTED ANSWER:\nA summary table\n")
	assert.Contains(t, prompt, "CANDIDATE ANSWER:\nIt groups data\n")
	assert.Contains(t, prompt, "Score: X/10")
}
