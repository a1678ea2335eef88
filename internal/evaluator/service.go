// Package evaluator оценивает ответы кандидата: текстовые через внешнюю
// языковую модель, табличные проверкой наличия ожидаемой колонки.
package evaluator

import (
	"context"
	"log/slog"
)

const (
	MinScore = 0
	MaxScore = 10
)

// Result представляет оценку одного ответа
type Result struct {
	Score    int
	Feedback string
}

// Completer отправляет промпт внешней модели и возвращает текст ответа
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Service представляет сервис оценки ответов
type Service struct {
	llm    Completer
	logger *slog.Logger
}

// New создает новый сервис оценки
func New(llm Completer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		llm:    llm,
		logger: logger,
	}
}

func clampScore(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
