package evaluator

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"excel-interviewer/internal/config"
	"excel-interviewer/internal/prompts"
)

// DefaultTextScore ставится, когда модель не вернула оценку в формате "Score: X/10"
const DefaultTextScore = 5

var scorePattern = regexp.MustCompile(`Score:\**\s*(\d+)\s*/\s*10\b`)

// ParseScore извлекает целое число перед "/10", следующее за "Score:".
// Второе значение false, если шаблон не найден.
func ParseScore(text string) (int, bool) {
	match := scorePattern.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}
	score, err := strconv.Atoi(match[1])
	if err != nil {
		// переполнение int: заведомо больше максимума
		return MaxScore, true
	}
	return clampScore(score), true
}

// ScoreText оценивает текстовый ответ с помощью языковой модели.
// Ошибки модели не возвращаются: ответ получает 0 баллов и описание сбоя.
func (s *Service) ScoreText(ctx context.Context, answer string, task config.Task) Result {
	if strings.TrimSpace(task.ExpectedAnswer) == "" {
		s.logger.Warn("text task has no expected answer", "question", task.Question)
		return Result{
			Score:    MinScore,
			Feedback: "Task is misconfigured: no expected answer is defined for this question.",
		}
	}

	if s.llm == nil {
		s.logger.Error("text evaluation unavailable", "question", task.Question, "reason", "no client configured")
		return Result{
			Score:    MinScore,
			Feedback: "Error evaluating answer: text evaluation service is not configured.",
		}
	}

	prompt := prompts.GenerateTextEvaluationPrompt(task.Question, task.ExpectedAnswer, answer)
	content, err := s.llm.Complete(ctx, prompts.EvaluatorSystemPrompt, prompt)
	if err != nil {
		s.logger.Error("text evaluation failed", "question", task.Question, "error", err)
		return Result{
			Score:    MinScore,
			Feedback: fmt.Sprintf("Error evaluating answer: %v", err),
		}
	}

	feedback := strings.TrimSpace(content)
	score, ok := ParseScore(feedback)
	if !ok {
		score = DefaultTextScore
		s.logger.Warn("score pattern not found, using default", "question", task.Question, "score", score)
	}

	s.logger.Info("text answer scored", "question", task.Question, "score", score, "feedback", feedback)

	return Result{Score: score, Feedback: feedback}
}
