package interviewer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"excel-interviewer/internal/config"
	"excel-interviewer/internal/evaluator"
	"excel-interviewer/internal/metrics"
	"excel-interviewer/internal/storage"

	"github.com/google/uuid"
)

// ExcelAnswerSummary подставляется вместо текста ответа для загруженных таблиц
const ExcelAnswerSummary = "Excel file uploaded"

var (
	ErrUnknownTask     = errors.New("unknown question")
	ErrWrongAnswerType = errors.New("answer type does not match the question")
	ErrEmptyAnswer     = errors.New("answer is empty")
	ErrFileTooLarge    = errors.New("file is too large")
	ErrScoringFailed   = errors.New("unexpected error while scoring the answer")
)

// Scorer оценивает ответы кандидата
type Scorer interface {
	ScoreText(ctx context.Context, answer string, task config.Task) evaluator.Result
	ScoreExcel(r io.Reader, task config.Task) evaluator.Result
}

// Outcome представляет результат отправки ответа. Duplicate == true, если на
// вопрос уже был записан ответ: тогда Response содержит первый ответ, а
// новый не оценивался.
type Outcome struct {
	Response  storage.Response
	Duplicate bool
}

// Service представляет сервис проведения интервью
type Service struct {
	scorer         Scorer
	metrics        *metrics.Metrics
	logger         *slog.Logger
	maxUploadBytes int64
	now            func() time.Time
}

// New создает новый сервис интервьюера
func New(scorer Scorer, m *metrics.Metrics, logger *slog.Logger, maxUploadBytes int64) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if m == nil {
		m = metrics.NewMetrics()
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = config.DefaultMaxUploadBytes
	}
	return &Service{
		scorer:         scorer,
		metrics:        m,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
		now:            time.Now,
	}
}

// MaxUploadBytes возвращает лимит размера загружаемой таблицы
func (s *Service) MaxUploadBytes() int64 {
	return s.maxUploadBytes
}

// NewSession начинает новую сессию. Задания с неизвестным типом
// пропускаются и не предлагаются кандидату.
func (s *Service) NewSession(catalog *config.Catalog) *Session {
	session := &Session{
		ID:        uuid.New().String(),
		StartedAt: s.now(),
		Tasks:     catalog.ValidTasks(),
		Skipped:   catalog.InvalidTasks(),
		Ledger:    storage.NewLedger(),
	}

	for _, task := range session.Skipped {
		s.logger.Warn("skipping task with invalid type", "question", task.Question, "type", string(task.Type))
	}

	s.metrics.IncrementSessionsStarted()
	s.logger.Info("interview session started",
		"session_id", session.ID,
		"tasks", len(session.Tasks),
		"skipped", len(session.Skipped),
	)

	return session
}

// SubmitText оценивает текстовый ответ на вопрос с индексом index
func (s *Service) SubmitText(ctx context.Context, session *Session, index int, answer string) (Outcome, error) {
	task, err := s.lookup(session, index, config.TaskTypeText)
	if err != nil {
		return Outcome{}, err
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return Outcome{}, ErrEmptyAnswer
	}

	if outcome, ok := s.duplicate(session, task); ok {
		return outcome, nil
	}

	result, err := s.score(task, func() evaluator.Result {
		return s.scorer.ScoreText(ctx, answer, task)
	})
	if err != nil {
		return Outcome{}, err
	}

	s.metrics.IncrementTextAnswersScored()
	return s.record(session, task, answer, result), nil
}

// SubmitExcel оценивает загруженную таблицу. size может быть -1, если
// размер заранее неизвестен: тогда лимит проверяется при чтении.
func (s *Service) SubmitExcel(session *Session, index int, file io.Reader, size int64) (Outcome, error) {
	task, err := s.lookup(session, index, config.TaskTypeExcel)
	if err != nil {
		return Outcome{}, err
	}

	if outcome, ok := s.duplicate(session, task); ok {
		return outcome, nil
	}

	if size > s.maxUploadBytes {
		return Outcome{}, s.rejectUpload(task, size)
	}

	data, err := io.ReadAll(io.LimitReader(file, s.maxUploadBytes+1))
	if err != nil {
		return Outcome{}, fmt.Errorf("read uploaded file: %w", err)
	}
	if int64(len(data)) > s.maxUploadBytes {
		return Outcome{}, s.rejectUpload(task, int64(len(data)))
	}

	result, err := s.score(task, func() evaluator.Result {
		return s.scorer.ScoreExcel(bytes.NewReader(data), task)
	})
	if err != nil {
		return Outcome{}, err
	}

	s.metrics.IncrementExcelAnswersScored()
	return s.record(session, task, ExcelAnswerSummary, result), nil
}

// Reset возвращает все вопросы сессии в состояние без ответа
func (s *Service) Reset(session *Session) {
	cleared := session.Ledger.Len()
	session.Ledger.Reset()
	s.logger.Info("interview session reset", "session_id", session.ID, "cleared", cleared)
}

// Finish строит итоговый отчет. Состояние вопросов не меняется,
// вызывать можно многократно.
func (s *Service) Finish(session *Session) *storage.Report {
	summary := session.Ledger.Summarize()
	report := storage.NewReport(session.ID, summary, s.now())

	s.metrics.IncrementReportsRendered()
	if summary.HasAverage {
		s.logger.Info("interview finished",
			"session_id", session.ID,
			"responses", len(summary.Responses),
			"average_score", summary.Average,
		)
	} else {
		s.logger.Info("interview finished without responses", "session_id", session.ID)
	}

	return report
}

// Metrics возвращает счетчики сервиса
func (s *Service) Metrics() metrics.Snapshot {
	return s.metrics.GetSnapshot()
}

func (s *Service) lookup(session *Session, index int, want config.TaskType) (config.Task, error) {
	if index < 0 || index >= len(session.Tasks) {
		return config.Task{}, fmt.Errorf("%w: index %d", ErrUnknownTask, index+1)
	}
	task := session.Tasks[index]
	if task.Type != want {
		return config.Task{}, fmt.Errorf("%w: question %d expects a %s answer", ErrWrongAnswerType, index+1, task.Type)
	}
	return task, nil
}

func (s *Service) duplicate(session *Session, task config.Task) (Outcome, bool) {
	existing, ok := session.Ledger.Get(task.Question)
	if !ok {
		return Outcome{}, false
	}
	s.metrics.IncrementDuplicatesIgnored()
	s.logger.Info("duplicate submission ignored", "session_id", session.ID, "question", task.Question)
	return Outcome{Response: existing, Duplicate: true}, true
}

func (s *Service) rejectUpload(task config.Task, size int64) error {
	s.metrics.IncrementUploadsRejected()
	s.logger.Warn("upload rejected", "question", task.Question, "size", size, "limit", s.maxUploadBytes)
	return fmt.Errorf("%w: limit is %d MiB", ErrFileTooLarge, s.maxUploadBytes>>20)
}

// score вызывает оценщик и превращает панику в ErrScoringFailed,
// журнал ответов при этом не меняется
func (s *Service) score(task config.Task, fn func() evaluator.Result) (result evaluator.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.metrics.IncrementScoringFailures()
			s.logger.Error("scoring panicked",
				"question", task.Question,
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
			err = fmt.Errorf("%w: %v", ErrScoringFailed, r)
		}
	}()
	return fn(), nil
}

func (s *Service) record(session *Session, task config.Task, summary string, result evaluator.Result) Outcome {
	resp := storage.Response{
		Question:      task.Question,
		Type:          string(task.Type),
		AnswerSummary: summary,
		Score:         result.Score,
		Feedback:      result.Feedback,
		SubmittedAt:   s.now(),
	}
	session.Ledger.Record(resp)
	return Outcome{Response: resp}
}
