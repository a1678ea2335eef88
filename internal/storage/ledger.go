package storage

// Ledger хранит ответы одной сессии: не более одного ответа на вопрос,
// порядок добавления сохраняется. Не предназначен для конкурентного доступа.
type Ledger struct {
	responses []Response
	index     map[string]int
}

// NewLedger создает пустой журнал ответов
func NewLedger() *Ledger {
	return &Ledger{
		index: make(map[string]int),
	}
}

// Record добавляет ответ. Повторный ответ на тот же вопрос игнорируется,
// в этом случае возвращается false.
func (l *Ledger) Record(resp Response) bool {
	if _, exists := l.index[resp.Question]; exists {
		return false
	}
	l.index[resp.Question] = len(l.responses)
	l.responses = append(l.responses, resp)
	return true
}

// Has сообщает, записан ли ответ на вопрос
func (l *Ledger) Has(question string) bool {
	_, exists := l.index[question]
	return exists
}

// Get возвращает записанный ответ на вопрос
func (l *Ledger) Get(question string) (Response, bool) {
	i, exists := l.index[question]
	if !exists {
		return Response{}, false
	}
	return l.responses[i], true
}

func (l *Ledger) Len() int {
	return len(l.responses)
}

// Reset удаляет все ответы
func (l *Ledger) Reset() {
	l.responses = nil
	l.index = make(map[string]int)
}

// Summarize считает среднюю оценку и возвращает копию ответов в порядке записи
func (l *Ledger) Summarize() Summary {
	summary := Summary{
		Responses: make([]Response, len(l.responses)),
	}
	copy(summary.Responses, l.responses)

	if len(l.responses) == 0 {
		return summary
	}

	total := 0
	for _, resp := range l.responses {
		total += resp.Score
	}
	summary.Average = float64(total) / float64(len(l.responses))
	summary.HasAverage = true
	return summary
}
