package interviewer

import (
	"time"

	"excel-interviewer/internal/config"
	"excel-interviewer/internal/storage"
)

// QuestionState представляет состояние вопроса в сессии
type QuestionState string

const (
	StateUnanswered QuestionState = "unanswered"
	StateRecorded   QuestionState = "recorded"
)

// Session представляет прохождение каталога одним кандидатом.
// Каждая сессия владеет собственным журналом ответов.
type Session struct {
	ID        string
	StartedAt time.Time
	Tasks     []config.Task
	Skipped   []config.Task
	Ledger    *storage.Ledger
}

// QuestionStatus представляет вопрос и его текущее состояние
type QuestionStatus struct {
	Index    int
	Task     config.Task
	State    QuestionState
	Response *storage.Response
}

// Status возвращает состояние всех вопросов сессии в порядке каталога
func (s *Session) Status() []QuestionStatus {
	statuses := make([]QuestionStatus, 0, len(s.Tasks))
	for i, task := range s.Tasks {
		status := QuestionStatus{Index: i, Task: task, State: StateUnanswered}
		if resp, ok := s.Ledger.Get(task.Question); ok {
			status.State = StateRecorded
			status.Response = &resp
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// State возвращает состояние вопроса по индексу
func (s *Session) State(index int) QuestionState {
	if index < 0 || index >= len(s.Tasks) {
		return StateUnanswered
	}
	if s.Ledger.Has(s.Tasks[index].Question) {
		return StateRecorded
	}
	return StateUnanswered
}

// NextUnanswered возвращает индекс первого вопроса без ответа начиная с from
func (s *Session) NextUnanswered(from int) (int, bool) {
	for i := from; i < len(s.Tasks); i++ {
		if s.State(i) == StateUnanswered {
			return i, true
		}
	}
	return 0, false
}

// Answered возвращает количество вопросов с записанным ответом
func (s *Session) Answered() int {
	return s.Ledger.Len()
}
