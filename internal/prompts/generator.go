package prompts

import (
	"fmt"
	"strings"
)

// EvaluatorSystemPrompt задает роль модели при оценке текстовых ответов
const EvaluatorSystemPrompt = "You are a strict but fair Excel interviewer."

// GenerateTextEvaluationPrompt формирует запрос на оценку ответа кандидата.
// Модель обязана начать ответ строкой "Score: X/10", иначе оценка
// не будет распознана.
func GenerateTextEvaluationPrompt(question, expectedAnswer, candidateAnswer string) string {
	var prompt strings.Builder

	prompt.WriteString("Evaluate the candidate's answer to an Excel interview question.\n\n")

	prompt.WriteString(fmt.Sprintf("QUESTION:\n%s\n\n", strings.TrimSpace(question)))
	prompt.WriteString(fmt.Sprintf("EXPECTED ANSWER:\n%s\n\n", strings.TrimSpace(expectedAnswer)))
	prompt.WriteString(fmt.Sprintf("CANDIDATE ANSWER:\n%s\n\n", strings.TrimSpace(candidateAnswer)))

	prompt.WriteString("RULES:\n")
	prompt.WriteString("- Compare the candidate answer with the expected answer, not with its length or style\n")
	prompt.WriteString("- Give partial credit for answers that are correct but incomplete\n")
	prompt.WriteString("- Score 0 for answers that are wrong or off-topic\n\n")

	prompt.WriteString("RESPONSE FORMAT:\n")
	prompt.WriteString("First line: Score: X/10 (X is an integer from 0 to 10)\n")
	prompt.WriteString("Then 1-3 sentences of feedback for the candidate.")

	return prompt.String()
}
